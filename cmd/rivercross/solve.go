package main

import (
	"context"
	"os"

	"github.com/aretw0/rivercross/internal/cli"
	"github.com/aretw0/rivercross/internal/presentation/tui"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve [puzzle-id]",
	Short: "Solve a puzzle and print its paths",
	Long: `Solves a puzzle from the --dir repository (or --file) and prints the number of
states and transitions followed by the paths from the initial to the goal configuration.

The number of paths grows combinatorially with the state graph: missionaries and
cannibals alone has hundreds of thousands. Enumeration stops after --limit paths
(default 1000) and the report says when more exist. Use --limit 0 to enumerate all
of them, or --no-paths to check solvability only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(cmd, args, func(p cli.Printer, sol *domain.Solution) error {
			return p.Solution(sol)
		})
	},
}

var statesCmd = &cobra.Command{
	Use:   "states [puzzle-id]",
	Short: "List the legal states of a puzzle",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(cmd, args, func(p cli.Printer, sol *domain.Solution) error {
			return p.States(sol)
		}, domain.WithoutPaths())
	},
}

var transitionsCmd = &cobra.Command{
	Use:   "transitions [puzzle-id]",
	Short: "List the transitions between legal states",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSolve(cmd, args, func(p cli.Printer, sol *domain.Solution) error {
			return p.Transitions(sol)
		}, domain.WithoutPaths())
	},
}

func init() {
	for _, cmd := range []*cobra.Command{solveCmd, statesCmd, transitionsCmd} {
		rootCmd.AddCommand(cmd)
		addSourceFlags(cmd)
		cmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml or markdown")
	}
	solveCmd.Flags().Bool("no-paths", false, "Only report whether the puzzle is solvable")
	solveCmd.Flags().BoolP("watch", "w", false, "Solve again whenever the definition changes")
}

func runSolve(cmd *cobra.Command, args []string, show func(cli.Printer, *domain.Solution) error, opts ...domain.SolveOption) error {
	output, _ := cmd.Flags().GetString("output")
	format, err := cli.ParseFormat(output)
	if err != nil {
		return err
	}

	if noPaths, _ := cmd.Flags().GetBool("no-paths"); noPaths {
		opts = append(opts, domain.WithoutPaths())
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

	printer := cli.Printer{Out: cmd.OutOrStdout(), Format: format}
	if format == cli.FormatMarkdown && tui.IsTerminal(os.Stdout) {
		printer.Render = tui.NewRenderer()
	}

	run := func(ctx context.Context) error {
		sol, err := eng.SolveByID(ctx, id, opts...)
		if err != nil {
			return err
		}
		return show(printer, sol)
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return cli.Watch(cmd.Context(), eng.Engine, id, cmd.ErrOrStderr(), logger, run)
	}
	return run(cmd.Context())
}
