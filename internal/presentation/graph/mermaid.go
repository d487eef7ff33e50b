package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/rivercross/pkg/domain"
)

// PathOverlay highlights one solution path on the graph.
type PathOverlay struct {
	Path domain.Path
}

// GenerateMermaid produces a Mermaid flowchart of the solution's state graph.
// It applies semantic styling:
// - Initial state: ((Circle))
// - Goal state: (((Double circle)))
// - Default: [Rectangle]
// Edges are labeled with the departure side and the group that crossed.
// The overlay, if any, styles the path's states and crossings.
func GenerateMermaid(sol *domain.Solution, overlay *PathOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var initial, goal domain.ConfigKey
	if sol.Instance != nil {
		initial, goal = sol.Instance.Initial.Key(), sol.Instance.Goal.Key()
	}

	ids := make(map[domain.ConfigKey]string, len(sol.States))
	node := func(c domain.Config) string {
		if id, ok := ids[c.Key()]; ok {
			return id
		}
		id := fmt.Sprintf("s%d", len(ids))
		ids[c.Key()] = id

		opener, closer := "[", "]"
		switch c.Key() {
		case initial:
			opener, closer = "((", "))"
		case goal:
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(c.String()), closer)
		return id
	}

	for _, c := range sol.States {
		node(c)
	}

	edges := make(map[domain.TransitionKey]int, len(sol.Transitions))
	for i, t := range sol.Transitions {
		from, to := node(t.From), node(t.To)
		edges[t.Key()] = i
		fmt.Fprintf(&sb, "    %s -- \"%s: %s\" --> %s\n", from, t.Condition, escapeLabel(t.GroupString()), to)
	}

	if overlay != nil && len(overlay.Path) > 0 {
		sb.WriteString("\n    %% Path Overlay\n")
		sb.WriteString("    classDef path fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool, len(overlay.Path))
		for _, c := range overlay.Path {
			id, ok := ids[c.Key()]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s path;\n", id)
		}

		side := domain.SideLeft
		for i := 0; i+1 < len(overlay.Path); i++ {
			key := domain.TransitionKey{From: overlay.Path[i].Key(), Condition: side, To: overlay.Path[i+1].Key()}
			if n, ok := edges[key]; ok {
				fmt.Fprintf(&sb, "    linkStyle %d stroke:#01579b,stroke-width:3px;\n", n)
			}
			side = side.Opposite()
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
