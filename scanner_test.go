package twcfg

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestExtractCandidates(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "variants, arbitrary values and negatives",
			line: `<div class="md:hover:bg-red-500 w-[10px] -mt-2">`,
			want: []string{"div", "class", "md:hover:bg-red-500", "w-[10px]", "-mt-2"},
		},
		{
			name: "fractions and important marker",
			line: `let x = "w-1/2 !font-bold";`,
			want: []string{"let", "x", "w-1/2", "!font-bold"},
		},
		{
			name: "leptos view macro",
			line: `view! { <p class="text-sm">"Hello, world."</p> }`,
			want: []string{"view!", "p", "class", "text-sm", "Hello", "world"},
		},
		{
			name: "urls and hex colors are dropped",
			line: `<a href="https://example.com/x" data-x="#fff">`,
			want: []string{"a", "href", "data-x"},
		},
		{
			name: "nested parentheses inside brackets",
			line: `class="grid-cols-[repeat(2,minmax(0,1fr))]"`,
			want: []string{"class", "grid-cols-[repeat(2,minmax(0,1fr))]"},
		},
		{
			name: "call arguments",
			line: `("p-4", "m-2")`,
			want: []string{"p-4", "m-2"},
		},
		{
			name: "numbers only",
			line: `{ width: 100 }`,
			want: []string{"width"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, m := range extractCandidates(tt.line) {
				got = append(got, m.token)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCandidatesColumn(t *testing.T) {
	matches := extractCandidates(`<div class="md:hover:bg-red-500 w-[10px] -mt-2">`)
	require.Len(t, matches, 5)
	assert.Equal(t, 13, matches[2].column)
	assert.Equal(t, 33, matches[3].column)
	assert.Equal(t, 42, matches[4].column)
}

func newContentTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "index.html", "<div class=\"p-4 text-sm\">\n<p class=\"p-4\">\n")
	writeFile(t, root, "src/app.rs", `view! { <p class="text-sm p-4">"hi"</p> }`+"\n")
	writeFile(t, root, "src/vendor/lib.rs", `"vendor-only"`+"\n")
	writeFile(t, root, "src/out.gen.rs", `"generated-only"`+"\n")
	writeFile(t, root, ".gitignore", "*.gen.rs\n")
	return root
}

func TestScannerFiles(t *testing.T) {
	root := newContentTree(t)
	s := NewScanner(root, []string{"*.html", "**/*.html", "./src/**/*.rs", "!./src/vendor/**"})

	files, stats, err := s.Files()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "index.html"),
		filepath.Join(root, "src", "app.rs"),
	}, files)
	assert.Equal(t, 4, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesSkipped)
}

func TestScannerShouldSkipFile(t *testing.T) {
	root := newContentTree(t)
	s := NewScanner(root, []string{"./src/**/*.rs", "!./src/vendor/**"})

	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(root, "src", "app.rs"), false},
		{filepath.Join(root, "src", "vendor", "lib.rs"), true},
		{filepath.Join(root, "src", "out.gen.rs"), true},
		{filepath.Join(t.TempDir(), "elsewhere.rs"), false},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			assert.Equal(t, tt.want, s.shouldSkipFile(tt.path))
		})
	}
}

func TestScannerScan(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	root := newContentTree(t)
	s := NewScanner(root, []string{"*.html", "./src/**/*.rs", "!./src/vendor/**"})

	result, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesScanned)
	assert.Empty(t, result.Warnings)

	byToken := make(map[string]Candidate)
	for _, c := range result.Candidates {
		byToken[c.Token] = c
	}

	p4 := byToken["p-4"]
	assert.Equal(t, 3, p4.Count)
	assert.Equal(t, FileLocation{File: filepath.Join(root, "index.html"), Line: 1, Column: 13}, p4.First)
	assert.Equal(t, 2, byToken["text-sm"].Count)
	assert.NotContains(t, byToken, "vendor-only")
	assert.NotContains(t, byToken, "generated-only")

	for i := 1; i < len(result.Candidates); i++ {
		assert.Less(t, result.Candidates[i-1].Token, result.Candidates[i].Token)
	}
}

func TestScannerScanRecordsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ok.html", `<p class="p-4">`)
	writeFile(t, root, "bundle.html", strings.Repeat("a", maxLineLength+1))

	result, err := NewScanner(root, []string{"*.html"}).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesScanned)
	assert.Equal(t, 1, result.Stats.FilesFailed)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "bundle.html")
}

func TestScannerScanCancelled(t *testing.T) {
	root := newContentTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(root, []string{"*.html"}).Scan(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScannerInvalidPattern(t *testing.T) {
	_, _, err := NewScanner(t.TempDir(), []string{"src/*.{js"}).Files()
	require.Error(t, err)
}

func TestRelativePath(t *testing.T) {
	assert.Equal(t, filepath.Join("src", "app.rs"), RelativePath("/work", "/work/src/app.rs"))
}
