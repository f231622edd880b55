package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the declaration and summarize it",
	Long: `Load and validate the declaration. Prints the content patterns, theme
categories and plugins, or the first violation found. Exits 1 when the
declaration is rejected.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("strict", false, "Exit 1 on warnings such as theme collisions (CI mode)")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	rep := newReporter(cmd.OutOrStdout())
	quiet := getBoolWithFallback("quiet", "quiet", false)

	path, cfg, err := loadDeclaration(rep)
	if err != nil {
		return err
	}

	if !quiet {
		rep.PrintSummary(path, cfg)
	}

	if warnings := report.Warnings(cfg); len(warnings) > 0 && getBoolWithFallback("strict", "check.strict", false) {
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nStrict mode: %d warning(s) found\n", len(warnings))
		}
		return errReported
	}
	return nil
}
