package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/rivercross/internal/presentation/tui"
	"github.com/aretw0/rivercross/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects how results are printed.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, yaml or markdown)", s)
	}
}

// Printer writes results in one format.
type Printer struct {
	Out    io.Writer
	Format Format

	// Render post-processes markdown (glamour on terminals). Nil prints it raw.
	Render func(string) (string, error)
}

// Solution prints a full solution.
func (p Printer) Solution(sol *domain.Solution) error {
	switch p.Format {
	case FormatJSON:
		return p.json(sol.Report())
	case FormatYAML:
		return p.yaml(sol.Report())
	case FormatMarkdown:
		return p.markdown(tui.MarkdownReport(sol))
	}

	fmt.Fprintf(p.Out, "Puzzle:      %s\n", sol.Instance.Name)
	fmt.Fprintf(p.Out, "States:      %d\n", sol.Stats.States)
	fmt.Fprintf(p.Out, "Transitions: %d\n", sol.Stats.Transitions)
	fmt.Fprintf(p.Out, "Solvable:    %t\n", sol.Solvable)
	switch {
	case sol.PathsSkipped:
		fmt.Fprintln(p.Out, "Paths:       skipped")
		return nil
	case sol.Truncated:
		fmt.Fprintf(p.Out, "Paths:       %d (limit reached)\n", len(sol.Paths))
	default:
		fmt.Fprintf(p.Out, "Paths:       %d\n", len(sol.Paths))
	}
	for i, path := range sol.Paths {
		fmt.Fprintf(p.Out, "\n[%d] %s\n", i+1, strings.Join(path.Strings(), " -> "))
	}
	return nil
}

// States prints the canonical state list.
func (p Printer) States(sol *domain.Solution) error {
	states := sol.Report().States
	switch p.Format {
	case FormatJSON:
		return p.json(states)
	case FormatYAML:
		return p.yaml(states)
	case FormatMarkdown:
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s states\n\n", sol.Instance.Name)
		for _, s := range states {
			fmt.Fprintf(&sb, "- `%s`\n", s)
		}
		return p.markdown(sb.String())
	}
	for _, s := range states {
		fmt.Fprintln(p.Out, s)
	}
	return nil
}

// Transitions prints every transition triple.
func (p Printer) Transitions(sol *domain.Solution) error {
	records := sol.Report().Transitions
	switch p.Format {
	case FormatJSON:
		return p.json(records)
	case FormatYAML:
		return p.yaml(records)
	case FormatMarkdown:
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s transitions\n\n", sol.Instance.Name)
		sb.WriteString("| From | Boat | To | Crossing |\n|---|---|---|---|\n")
		for _, r := range records {
			fmt.Fprintf(&sb, "| `%s` | %s | `%s` | %s |\n", r.From, r.Condition, r.To, r.Group)
		}
		return p.markdown(sb.String())
	}
	for _, r := range records {
		fmt.Fprintf(p.Out, "(%s, %s, %s)\n", r.From, r.Condition, r.To)
	}
	return nil
}

func (p Printer) json(v any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p Printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.Out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (p Printer) markdown(md string) error {
	if p.Render != nil {
		rendered, err := p.Render(md)
		if err != nil {
			return err
		}
		md = rendered
	}
	_, err := io.WriteString(p.Out, md)
	return err
}
