package main

import (
	"fmt"
	"os"

	"github.com/Victor-Leroy/winemix/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "winemix",
	Short: "winemix explores wine blends across a bank of tanks",
	Long: `winemix enumerates the transfers that move wine between tanks, applies them
and searches the resulting state space for the best blend.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().IntP("tanks", "t", 0, "Number of tanks (overrides the configuration)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// sharedOptions collects the persistent flags.
func sharedOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")

	overrides := map[string]any{}
	if cmd.Flags().Changed("tanks") {
		tanks, _ := cmd.Flags().GetInt("tanks")
		overrides["tanks"] = tanks
	}
	if cmd.Flags().Lookup("max-depth") != nil && cmd.Flags().Changed("max-depth") {
		depth, _ := cmd.Flags().GetInt("max-depth")
		overrides["max_depth"] = depth
	}
	if cmd.Flags().Lookup("max-states") != nil && cmd.Flags().Changed("max-states") {
		n, _ := cmd.Flags().GetInt("max-states")
		overrides["max_states"] = n
	}

	return cli.Options{
		ConfigPath: configPath,
		Overrides:  overrides,
		LogLevel:   logLevel,
	}
}
