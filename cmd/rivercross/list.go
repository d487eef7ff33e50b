package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the puzzles in the repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.Close()

		ids, err := eng.ListPuzzles(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			p, err := eng.GetPuzzle(cmd.Context(), id)
			if err != nil || p.Description == "" {
				fmt.Fprintln(cmd.OutOrStdout(), id)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", id, p.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
