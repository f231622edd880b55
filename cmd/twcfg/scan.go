package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twcfg"
	"github.com/yacobolo/twcfg/internal/report"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan content files for class-name candidates",
	Long: `Expand the declaration's content patterns from --root, honoring "!"
exclusions and .gitignore, and list the class-name candidates found in the
matched files, most frequent first.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.Int("limit", 0, "Max candidates to list (0=unlimited)")
	f.Bool("files-only", false, "List matched files instead of candidates")
	f.String("format", "text", "Output format: text|json")
}

func runScan(cmd *cobra.Command, _ []string) error {
	settings := buildScanSettings()
	if settings.Format != "text" && settings.Format != "json" {
		return fmt.Errorf("unknown scan format %q (want text or json)", settings.Format)
	}

	rep := newReporter(cmd.OutOrStdout())
	_, cfg, err := loadDeclaration(newReporter(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	result, err := twcfg.NewScanner(settings.Root, cfg.Content).Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	opts := report.ScanOptions{
		Root:      settings.Root,
		Limit:     settings.Limit,
		FilesOnly: settings.FilesOnly,
	}
	if settings.Format == "json" {
		return report.WriteScanJSON(cmd.OutOrStdout(), result, opts)
	}
	if !getBoolWithFallback("quiet", "quiet", false) {
		rep.PrintScan(result, opts)
	}
	return nil
}
