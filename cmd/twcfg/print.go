package main

import (
	"fmt"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg/internal/report"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the normalized declaration",
	Long: `Load the declaration and print it in normalized form: defaults filled
in, plugins as names or {name, options}. The output loads back to the same
configuration.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runPrint,
}

func init() {
	f := printCmd.Flags()
	f.String("format", "js", "Output format: js|yaml|json")
	f.StringP("output", "o", "", "Write to a file instead of stdout")
}

func runPrint(cmd *cobra.Command, _ []string) error {
	format, err := report.ParseFormat(getStringWithFallback("format", "print.format", "js"))
	if err != nil {
		return err
	}

	_, cfg, err := loadDeclaration(newReporter(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	data, err := report.Encode(cfg, format)
	if err != nil {
		return fmt.Errorf("encoding declaration: %w", err)
	}

	output := getStringWithFallback("output", "print.output", "")
	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := renameio.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	if !getBoolWithFallback("quiet", "quiet", false) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
	}
	return nil
}
