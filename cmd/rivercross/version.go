package main

import (
	"fmt"

	"github.com/aretw0/rivercross"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rivercross",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rivercross version %s\n", rivercross.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
