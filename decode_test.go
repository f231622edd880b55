package twcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsDeclaration = `/** @type {import('tailwindcss').Config} */
module.exports = {
  content: [
    "*.html",
    "./src/**/*.rs", // Scans all your Rust files
  ],
  theme: {
    extend: {},
  },
  plugins: [],
}
`

const yamlDeclaration = `content:
  - "*.html"
  - "./src/**/*.rs"
theme:
  extend: {}
plugins: []
`

const jsonDeclaration = `{
  "content": ["*.html", "./src/**/*.rs"],
  "theme": {"extend": {}},
  "plugins": []
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileFormatsAgree(t *testing.T) {
	dir := t.TempDir()

	fromJS, err := LoadFile(writeFile(t, dir, "tailwind.config.js", jsDeclaration))
	require.NoError(t, err)
	fromYAML, err := LoadFile(writeFile(t, dir, "tailwind.config.yaml", yamlDeclaration))
	require.NoError(t, err)
	fromJSON, err := LoadFile(writeFile(t, dir, "tailwind.config.json", jsonDeclaration))
	require.NoError(t, err)

	assert.Equal(t, []string{"*.html", "./src/**/*.rs"}, fromJS.Content)
	assert.Equal(t, fromJS, fromYAML)
	assert.Equal(t, fromJS, fromJSON)
}

func TestLoadFileKeepsDottedThemeKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tailwind.config.yaml", `content: ["*.html"]
theme:
  extend:
    spacing:
      "1.5": 0.375rem
    width:
      "1/2": 50%
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"spacing": map[string]any{"1.5": "0.375rem"},
		"width":   map[string]any{"1/2": "50%"},
	}, cfg.Theme.Extend)
}

func TestLoadFileValidationError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tailwind.config.js", `module.exports = { content: [] }`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFileDecodeErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.js"))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, dir, "broken.js", `module.exports = { content: [...base] }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spread")

	_, err = LoadFile(writeFile(t, dir, "tailwind.config.toml", `content = []`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported declaration format")
}

func TestMarshalRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFile(writeFile(t, dir, "tailwind.config.js", `module.exports = {
  content: ["*.html"],
  theme: { extend: { colors: { brand: "#0af" }, lineHeight: { none: 1.0, tight: 1.25, loose: 2 } } },
  plugins: [require("@tailwindcss/forms")({ strategy: "class" })],
}`))
	require.NoError(t, err)
	lineHeight := cfg.Theme.Extend["lineHeight"].(map[string]any)
	require.IsType(t, float64(0), lineHeight["none"])

	for _, name := range []string{"out.js", "out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			b, err := Marshal(cfg, name)
			require.NoError(t, err)

			again, err := LoadFile(writeFile(t, dir, name, string(b)))
			require.NoError(t, err)
			assert.Equal(t, cfg, again)
		})
	}
}

func TestYAMLMarshalIndentsSequences(t *testing.T) {
	cfg, err := Load(map[string]any{"content": []any{"./src/**/*.rs"}})
	require.NoError(t, err)

	b, err := Marshal(cfg, "tailwind.config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(b), "content:\n  - ./src/**/*.rs\n")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover(dir)
	require.ErrorIs(t, err, ErrNoDeclaration)

	writeFile(t, dir, "tailwind.config.yaml", yamlDeclaration)
	writeFile(t, dir, "tailwind.config.js", jsDeclaration)

	path, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tailwind.config.js"), path)
}
