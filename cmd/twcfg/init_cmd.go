package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter tailwind.config declaration",
	Long: `Create tailwind.config.js (or tailwind.config.yaml with --format yaml) in
--root, scanning HTML files at the root and Rust sources under src/.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		format := getStringWithFallback("format", "init.format", "js")

		var name, content string
		switch format {
		case "js":
			name, content = "tailwind.config.js", defaultJSDeclaration
		case "yaml", "yml":
			name, content = "tailwind.config.yaml", defaultYAMLDeclaration
		default:
			return fmt.Errorf("unknown init format %q (want js or yaml)", format)
		}

		path := filepath.Join(getStringWithFallback("root", "root", "."), name)
		force := getBoolWithFallback("force", "init.force", false)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := renameio.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing declaration: %w", err)
		}

		if !getBoolWithFallback("quiet", "quiet", false) {
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		}
		return nil
	},
}

const defaultJSDeclaration = `/** @type {import('tailwindcss').Config} */
module.exports = {
  content: [
    "*.html",
    "./src/**/*.rs",
  ],
  theme: {
    extend: {},
  },
  plugins: [],
}
`

const defaultYAMLDeclaration = `# tailwind configuration
content:
  - "*.html"
  - "./src/**/*.rs"
theme:
  extend: {}
plugins: []
`

func init() {
	f := initCmd.Flags()
	f.Bool("force", false, "Overwrite an existing declaration")
	f.String("format", "js", "Declaration format: js|yaml")
}
