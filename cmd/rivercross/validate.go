package main

import (
	"fmt"

	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [puzzle-id...]",
	Short: "Check puzzle definitions for consistency",
	Long: `Checks definitions without solving them. With no arguments every puzzle in --dir is checked.
Each rule violation is reported with the field it concerns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer eng.Close()

		ids := args
		switch {
		case len(ids) > 0:
		case eng.DefaultID != "":
			ids = []string{eng.DefaultID}
		default:
			if ids, err = eng.ListPuzzles(cmd.Context()); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, id := range ids {
			p, err := eng.GetPuzzle(cmd.Context(), id)
			if err == nil {
				_, err = eng.Validate(p)
			}
			if err == nil {
				fmt.Fprintf(out, "%s: ok\n", id)
				continue
			}

			failed++
			fields := domain.FieldErrors(err)
			if len(fields) == 0 {
				fmt.Fprintf(out, "%s: %v\n", id, err)
				continue
			}
			fmt.Fprintf(out, "%s: %d problem(s)\n", id, len(fields))
			for _, fe := range fields {
				fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Reason)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d definitions are invalid", failed, len(ids))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("file", "f", "", "Check a single definition file instead of --dir")
}
