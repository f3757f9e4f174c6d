package main

import (
	"fmt"

	"github.com/Victor-Leroy/winemix"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of winemix",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "winemix version %s\n", winemix.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
