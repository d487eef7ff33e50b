package main

import (
	"os"
	"time"

	"github.com/aretw0/rivercross/internal/cli"
	"github.com/aretw0/rivercross/internal/presentation/tui"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play [puzzle-id]",
	Short: "Replay a solution crossing by crossing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("path")
		delay, _ := cmd.Flags().GetDuration("delay")

		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.Close()

		id, err := eng.ResolveID(args)
		if err != nil {
			return err
		}

		var opts []domain.SolveOption
		if n > 0 {
			opts = append(opts, domain.WithPathLimit(n))
		}
		sol, err := eng.SolveByID(cmd.Context(), id, opts...)
		if err != nil {
			return err
		}

		styled := tui.IsTerminal(os.Stdout)
		if styled {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		return cli.Play(cmd.Context(), cmd.OutOrStdout(), sol, cli.PlayOptions{Path: n, Delay: delay, Styled: styled})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("file", "f", "", "Use a single definition file instead of a puzzle in --dir")
	playCmd.Flags().Int("path", 1, "Solution path to replay (1-based)")
	playCmd.Flags().Duration("delay", 700*time.Millisecond, "Pause between crossings")
}
