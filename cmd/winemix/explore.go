package main

import (
	"github.com/Victor-Leroy/winemix/internal/cli"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Search the state space breadth first",
	Long: `Explores every state reachable from the initial state, up to the configured
limits, and reports the best blend found. With --mermaid the explored graph is
printed as a Mermaid flowchart instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		full, _ := cmd.Flags().GetBool("full")
		goal, _ := cmd.Flags().GetFloat64("goal")

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		opts := sharedOptions(cmd)
		opts.Out = cmd.OutOrStdout()
		return cli.RunExplore(sigCtx, cli.ExploreOptions{
			Options: opts,
			Mermaid: mermaid,
			Full:    full,
			Goal:    goal,
		})
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
	exploreCmd.Flags().Int("max-depth", 0, "Stop expanding at this depth (0: unbounded)")
	exploreCmd.Flags().Int("max-states", 0, "Stop after this many distinct states (0: unbounded)")
	exploreCmd.Flags().Float64("goal", 0, "Stop at the first state with a mix this close to a full bank")
	exploreCmd.Flags().Bool("mermaid", false, "Print the explored graph as Mermaid")
	exploreCmd.Flags().Bool("full", false, "Print the path to the best state and its contents")
}
