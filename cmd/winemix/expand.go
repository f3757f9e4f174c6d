package main

import (
	"github.com/Victor-Leroy/winemix/internal/cli"
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Print the successors of the initial state",
	Long:  `Loads the configured tank bank, builds its initial state and lists every transfer that can be applied to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		markdown, _ := cmd.Flags().GetBool("markdown")
		contents, _ := cmd.Flags().GetBool("contents")

		opts := sharedOptions(cmd)
		opts.Out = cmd.OutOrStdout()
		return cli.RunExpand(cli.ExpandOptions{
			Options:  opts,
			Markdown: markdown,
			Contents: contents,
		})
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().Bool("markdown", false, "Render as markdown")
	expandCmd.Flags().Bool("contents", true, "Include per-tank contents")
}
