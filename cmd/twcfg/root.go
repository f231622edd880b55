package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "twcfg",
	Short: "Validate and normalize Tailwind-style configuration declarations",
	Long: `Load a tailwind.config.{js,cjs,mjs,yaml,yml,json} declaration, validate
content, theme and plugins, and print or watch the normalized result.
Without a subcommand, twcfg runs check.`,
	// Default behavior: run check when no subcommand is given.
	// loadConfig is called here because checkCmd's PreRunE does not run
	// when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runCheck(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output (--color=false disables it)")
	rootCmd.PersistentFlags().String("config", ".twcfg.yaml", "Settings file path")
	rootCmd.PersistentFlags().StringP("declaration", "d", "", "Declaration file (default: discovered in --root)")
	rootCmd.PersistentFlags().String("root", ".", "Project root used for discovery and content patterns")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text|json")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
