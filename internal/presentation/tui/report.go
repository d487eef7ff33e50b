package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/rivercross/internal/presentation/playback"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/muesli/termenv"
)

// MarkdownReport summarizes a solution as markdown: stats, then every path as a
// numbered list of crossings.
func MarkdownReport(sol *domain.Solution) string {
	var sb strings.Builder

	name := "puzzle"
	if sol.Instance != nil && sol.Instance.Name != "" {
		name = sol.Instance.Name
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)

	if sol.Instance != nil {
		fmt.Fprintf(&sb, "From `%s` to `%s`.\n\n", sol.Instance.Initial, sol.Instance.Goal)
	}

	sb.WriteString("| States | Transitions | Paths | Solvable |\n")
	sb.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %s | %s |\n\n", sol.Stats.States, sol.Stats.Transitions, pathCount(sol), yesNo(sol.Solvable))

	switch {
	case !sol.Solvable:
		sb.WriteString("No sequence of crossings reaches the goal.\n")
		return sb.String()
	case sol.PathsSkipped:
		sb.WriteString("Path enumeration was skipped.\n")
		return sb.String()
	}

	for i, p := range sol.Paths {
		fmt.Fprintf(&sb, "## Path %d (%d crossings)\n\n", i+1, p.Crossings())
		for j, c := range p {
			fmt.Fprintf(&sb, "%d. `%s`\n", j+1, c)
		}
		sb.WriteString("\n")
	}
	if sol.Truncated {
		fmt.Fprintf(&sb, "_Stopped after %d paths._\n", len(sol.Paths))
	}

	return sb.String()
}

func pathCount(sol *domain.Solution) string {
	switch {
	case sol.PathsSkipped:
		return "-"
	case sol.Truncated:
		return fmt.Sprintf("%d+", len(sol.Paths))
	default:
		return fmt.Sprintf("%d", len(sol.Paths))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatFrame renders one playback frame on a single line, with the boat drawn
// on its bank. Colors are applied only when styled is set.
func FormatFrame(f playback.Frame, styled bool) string {
	left, right := f.State.LeftString(), f.State.RightString()
	boat := "\\__/"
	if styled {
		p := termenv.ColorProfile()
		boat = termenv.String(boat).Foreground(p.Color("#f59e0b")).String()
	}

	river := "~~~~ " + boat + " ~~~~~~~~~"
	if f.Boat == domain.SideRight {
		river = "~~~~~~~~~ " + boat + " ~~~~"
	}

	line := fmt.Sprintf("%3d  %-12s %s %12s", f.Step, left, river, right)
	if len(f.Moved) > 0 {
		line += fmt.Sprintf("   (%s crossed)", strings.Join(f.Moved, ", "))
	}
	return line
}
