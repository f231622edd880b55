package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/twcfg"
	"github.com/yacobolo/twcfg/internal/logging"
	"github.com/yacobolo/twcfg/internal/report"
)

var k = koanf.New(".")

// loadConfig loads settings with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".twcfg.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set override file and env values;
	// unset flags fall through to the getXWithFallback defaults.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads settings from a file and environment variables.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("TWCFG_", ".", func(s string) string {
		// TWCFG_SCAN_LIMIT -> scan.limit
		// TWCFG_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TWCFG_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// resolveDeclaration returns the declaration path from settings, or the
// first declaration discovered in the project root.
func resolveDeclaration() (string, error) {
	if path := getStringWithFallback("declaration", "declaration", ""); path != "" {
		return path, nil
	}
	return twcfg.Discover(getStringWithFallback("root", "root", "."))
}

// loadDeclaration resolves and loads the declaration. Validation failures are
// printed through rep and returned as errReported.
func loadDeclaration(rep *report.Reporter) (string, *twcfg.Config, error) {
	path, err := resolveDeclaration()
	if err != nil {
		return "", nil, err
	}

	cfg, err := twcfg.LoadFile(path)
	if err != nil {
		if !getBoolWithFallback("quiet", "quiet", false) {
			rep.PrintError(path, err)
		}
		return path, nil, errReported
	}
	return path, cfg, nil
}

// buildReportOptions constructs reporter options from koanf state.
// An explicit --color=false (or color: false in settings) turns colors off
// even on a terminal or in CI; leaving it unset keeps auto-detection.
func buildReportOptions() report.Options {
	opts := report.Options{
		Verbose: getBoolWithFallback("verbose", "verbose", false),
	}
	if k.Exists("color") {
		opts.UseColors = k.Bool("color")
		opts.NoColors = !opts.UseColors
	}
	return opts
}

func newReporter(w io.Writer) *report.Reporter {
	return report.New(w, buildReportOptions())
}

// buildLogConfig constructs the logger settings from koanf state.
func buildLogConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.Level(getStringWithFallback("log-level", "log.level", string(logging.LevelInfo)))
	if getBoolWithFallback("verbose", "verbose", false) {
		cfg.Level = logging.LevelDebug
	}
	cfg.Format = logging.Format(getStringWithFallback("log-format", "log.format", string(logging.FormatText)))
	return cfg
}

// scanSettings are the scan command settings.
type scanSettings struct {
	Root      string
	Limit     int
	FilesOnly bool
	Format    string
}

// buildScanSettings constructs scan settings from koanf state.
func buildScanSettings() scanSettings {
	return scanSettings{
		Root:      getStringWithFallback("root", "root", "."),
		Limit:     getIntWithFallback("limit", "scan.limit", 0),
		FilesOnly: getBoolWithFallback("files-only", "scan.files-only", false),
		Format:    getStringWithFallback("format", "scan.format", "text"),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
