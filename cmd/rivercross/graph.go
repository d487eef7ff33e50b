package main

import (
	"fmt"

	"github.com/aretw0/rivercross/internal/presentation/graph"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [puzzle-id]",
	Short: "Export the state graph visualization",
	Long: `Solves the puzzle and outputs a Mermaid diagram (graph LR) of its legal states and crossings.
With --path N the N-th solution path is highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("path")
		if n < 0 {
			return fmt.Errorf("--path must not be negative (got %d)", n)
		}

		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.Close()

		id, err := eng.ResolveID(args)
		if err != nil {
			return err
		}

		opts := []domain.SolveOption{domain.WithoutPaths()}
		if n > 0 {
			opts = []domain.SolveOption{domain.WithPathLimit(n)}
		}
		sol, err := eng.SolveByID(cmd.Context(), id, opts...)
		if err != nil {
			return err
		}

		var overlay *graph.PathOverlay
		if n > 0 {
			if n > len(sol.Paths) {
				return fmt.Errorf("path %d does not exist (%d found)", n, len(sol.Paths))
			}
			overlay = &graph.PathOverlay{Path: sol.Paths[n-1]}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(sol, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("file", "f", "", "Use a single definition file instead of a puzzle in --dir")
	graphCmd.Flags().Int("path", 0, "Highlight this solution path (1-based)")
}
