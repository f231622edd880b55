package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/twcfg"
)

func load(t *testing.T, raw map[string]any) *twcfg.Config {
	t.Helper()
	cfg, err := twcfg.Load(raw)
	require.NoError(t, err)
	return cfg
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 plugin", pluralizeCount(1, "plugin", "plugins"))
	assert.Equal(t, "0 plugins", pluralizeCount(0, "plugin", "plugins"))
	assert.Equal(t, "3 plugins", pluralizeCount(3, "plugin", "plugins"))
}

func TestRenderStyleWithoutColors(t *testing.T) {
	assert.Equal(t, "text", RenderStyle(StyleRed, "text", false))
}

func TestShouldUseColors(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, shouldUseColors(Options{}))
	assert.False(t, shouldUseColors(Options{NoColors: true}))
	assert.False(t, shouldUseColors(Options{UseColors: true, NoColors: true}))

	t.Setenv("FORCE_COLOR", "")
	t.Setenv("NO_COLOR", "1")
	assert.False(t, shouldUseColors(Options{}))
	assert.True(t, shouldUseColors(Options{UseColors: true}))
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{NoColors: true})

	r.PrintSummary("tailwind.config.js", load(t, map[string]any{
		"content": []any{"*.html", "./src/**/*.rs"},
	}))

	want := "✓ tailwind.config.js\n2 content patterns, 0 theme categories, 0 plugins\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintSummaryVerbose(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{NoColors: true, Verbose: true})

	r.PrintSummary("tailwind.config.js", load(t, map[string]any{
		"content": []any{"*.html", "!./dist/**"},
		"theme": map[string]any{
			"colors": map[string]any{"red": "#f00"},
			"extend": map[string]any{"colors": map[string]any{"brand": "#0af"}, "spacing": map[string]any{}},
		},
		"plugins":  []any{"forms", map[string]any{"name": "typography", "options": map[string]any{"className": "prose"}}, "forms"},
		"darkMode": "class",
	}))

	out := buf.String()
	assert.Contains(t, out, "3 plugins")
	assert.Contains(t, out, "  !./dist/**\n")
	assert.Contains(t, out, "  colors (replace + extend)\n")
	assert.Contains(t, out, "  spacing (extend)\n")
	assert.Contains(t, out, "  typography (1 option)\n")
	assert.Contains(t, out, "Other keys\n  darkMode\n")
	assert.Contains(t, out, "theme.colors is both replaced and extended")
	assert.Contains(t, out, "plugin forms is listed more than once")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{NoColors: true})

	_, err := twcfg.Load(map[string]any{"theme": map[string]any{}})
	require.Error(t, err)
	r.PrintError("tailwind.config.js", err)

	assert.Equal(t,
		"tailwind.config.js: content: required field is missing (MissingField)\n"+
			"Hint: declare content, e.g. content: [\"./src/**/*.{html,rs}\"]\n",
		buf.String())

	buf.Reset()
	r.PrintError("tailwind.config.js", os.ErrNotExist)
	assert.Equal(t, "error: file does not exist\n", buf.String())
}

func TestEncodeJSON(t *testing.T) {
	cfg := load(t, map[string]any{"content": []any{"*.html", "./src/**/*.rs"}})

	got, err := Encode(cfg, FormatJSON)
	require.NoError(t, err)

	want := `{
  "content": [
    "*.html",
    "./src/**/*.rs"
  ],
  "plugins": [],
  "theme": {
    "extend": {}
  }
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	cfg := load(t, map[string]any{
		"content": []any{"./src/**/*.rs"},
		"theme":   map[string]any{"extend": map[string]any{"lineHeight": map[string]any{"none": 1.0}}},
	})

	got, err := Encode(cfg, FormatYAML)
	require.NoError(t, err)

	want := `content:
  - ./src/**/*.rs
plugins: []
theme:
  extend:
    lineHeight:
      none: 1.0
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeMatchesMarshal(t *testing.T) {
	cfg := load(t, map[string]any{"content": []any{"*.html"}})

	for _, f := range Formats {
		got, err := Encode(cfg, f)
		require.NoError(t, err)
		want, err := twcfg.Marshal(cfg, "tailwind.config"+f.Extension())
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got), f)
	}

	_, err := Encode(cfg, Format("toml"))
	require.Error(t, err)
}

func TestEncodeLoadsBack(t *testing.T) {
	cfg := load(t, map[string]any{
		"content": []any{"*.html", "./src/**/*.rs"},
		"theme": map[string]any{"extend": map[string]any{
			"spacing": map[string]any{"1.5": "0.375rem"},
			"opacity": map[string]any{"full": 1.0, "half": 0.5, "layers": 3},
		}},
		"plugins": []any{"@tailwindcss/forms"},
	})

	dir := t.TempDir()
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			b, err := Encode(cfg, f)
			require.NoError(t, err)

			path := filepath.Join(dir, "tailwind.config"+f.Extension())
			require.NoError(t, os.WriteFile(path, b, 0o644))

			again, err := twcfg.LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, again)
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"js": FormatJS, "javascript": FormatJS, "yml": FormatYAML, "yaml": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("toml")
	require.Error(t, err)
}

func scanResult(root string) *twcfg.ScanResult {
	return &twcfg.ScanResult{
		Files: []string{filepath.Join(root, "index.html"), filepath.Join(root, "src", "app.rs")},
		Candidates: []twcfg.Candidate{
			{Token: "p-4", Count: 3, First: twcfg.FileLocation{File: filepath.Join(root, "index.html"), Line: 1, Column: 13}},
			{Token: "text-sm", Count: 2, First: twcfg.FileLocation{File: filepath.Join(root, "index.html"), Line: 1, Column: 17}},
			{Token: "flex", Count: 3, First: twcfg.FileLocation{File: filepath.Join(root, "src", "app.rs"), Line: 4, Column: 9}},
		},
		Stats: twcfg.ScanStats{FilesDiscovered: 3, FilesScanned: 2, FilesSkipped: 1},
	}
}

func TestPrintScan(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	r := New(&buf, Options{NoColors: true})

	r.PrintScan(scanResult(root), ScanOptions{Root: root, Limit: 2})

	out := buf.String()
	// most frequent first, ties broken by token
	assert.Contains(t, out, filepath.Join("src", "app.rs")+":4:9: flex (3)\nindex.html:1:13: p-4 (3)\n")
	assert.NotContains(t, out, "text-sm")
	assert.Contains(t, out, "Files Skipped:    1\n")
	assert.NotContains(t, out, "Files Failed")
}

func TestPrintScanFilesOnly(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	New(&buf, Options{NoColors: true}).PrintScan(scanResult(root), ScanOptions{Root: root, FilesOnly: true})

	assert.Contains(t, buf.String(), "index.html\n"+filepath.Join("src", "app.rs")+"\n")
}

func TestWriteScanJSON(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, WriteScanJSON(&buf, scanResult(root), ScanOptions{Root: root}))

	var out JSONScanOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0", out.Version)
	assert.Equal(t, 3, out.Summary.Candidates)
	assert.Equal(t, []string{"index.html", filepath.Join("src", "app.rs")}, out.Files)
	require.Len(t, out.Candidates, 3)
	assert.Equal(t, JSONCandidate{Token: "flex", Count: 3, File: filepath.Join("src", "app.rs"), Line: 4, Column: 9}, out.Candidates[0])
	assert.NotNil(t, out.Warnings)
}
