package main

import (
	"github.com/Victor-Leroy/winemix/internal/cli"
	"github.com/spf13/cobra"
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Walk the state space interactively",
	Long:  `Lists the transfers available from the current state and applies the one you pick. Type 'quit' to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		opts := sharedOptions(cmd)
		opts.In = cmd.InOrStdin()
		opts.Out = cmd.OutOrStdout()
		return cli.RunStep(sigCtx, cli.StepOptions{Options: opts, Headless: headless})
	},
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().Bool("headless", false, "No banner or prompts, strict IO")
}
