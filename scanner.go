package twcfg

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"
)

// maxCandidateLength drops minified blobs and data URIs.
const maxCandidateLength = 120

// maxLineLength bounds a single source line (minified bundles are one line).
const maxLineLength = 4 * 1024 * 1024

// FileLocation tracks where a candidate was found.
type FileLocation struct {
	File   string
	Line   int
	Column int // 1-based byte column
}

// Candidate is a token that may name a utility class.
type Candidate struct {
	Token string
	Count int          // occurrences across all scanned files
	First FileLocation // first occurrence in scan order
}

// ScanStats tracks file scanning statistics.
type ScanStats struct {
	FilesDiscovered int // unique files matched by include patterns
	FilesScanned    int // files read successfully
	FilesSkipped    int // excluded by "!" patterns or .gitignore
	FilesFailed     int // files that could not be read
}

// ScanResult is the output of a content scan.
type ScanResult struct {
	Files      []string
	Candidates []Candidate // sorted by token
	Stats      ScanStats
	Warnings   []string
}

// Scanner expands content patterns relative to a root directory and
// extracts class-name candidates from the matched files.
type Scanner struct {
	root     string
	includes []string
	excludes []string

	gitIgnore     *ignore.GitIgnore
	gitIgnoreOnce sync.Once
}

var (
	// Split on whitespace, quotes, markup delimiters and statement punctuation.
	candidatePattern = regexp.MustCompile("[^\\s\"'`<>{}=;]+")

	hasLetter = regexp.MustCompile(`[A-Za-z]`)
)

// NewScanner creates a scanner for the given content patterns. Relative
// patterns are resolved against root.
func NewScanner(root string, content []string) *Scanner {
	s := &Scanner{root: root}
	for _, p := range content {
		if body, negated := splitNegation(p); negated {
			s.excludes = append(s.excludes, s.resolve(body))
		} else {
			s.includes = append(s.includes, s.resolve(p))
		}
	}
	return s
}

func (s *Scanner) resolve(pattern string) string {
	if filepath.IsAbs(pattern) {
		return filepath.Clean(pattern)
	}
	return filepath.Join(s.root, pattern)
}

// loadGitIgnore loads <root>/.gitignore once.
// A missing .gitignore disables the filter.
func (s *Scanner) loadGitIgnore() *ignore.GitIgnore {
	s.gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(filepath.Join(s.root, ".gitignore"))
		if err != nil {
			return
		}
		s.gitIgnore = gi
	})
	return s.gitIgnore
}

// shouldSkipFile reports whether path is excluded by a "!" pattern or .gitignore.
func (s *Scanner) shouldSkipFile(path string) bool {
	for _, ex := range s.excludes {
		if ok, _ := doublestar.PathMatch(ex, path); ok {
			return true
		}
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	if gi := s.loadGitIgnore(); gi != nil && gi.MatchesPath(filepath.ToSlash(rel)) {
		return true
	}
	return false
}

// Files expands the include patterns into the set of files to scan.
func (s *Scanner) Files() ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range s.includes {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if s.shouldSkipFile(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
		}
	}

	return files, stats, nil
}

// Scan reads every matched file and collects candidates. Files are read
// concurrently; counts and first occurrences are merged in file order, so the
// result does not depend on scheduling. Unreadable files are recorded as
// warnings; cancellation stops the scan with ctx.Err().
func (s *Scanner) Scan(ctx context.Context) (*ScanResult, error) {
	files, stats, err := s.Files()
	if err != nil {
		return nil, err
	}

	perFile := make([]fileScan, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i] = scanFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ScanResult{Files: files}
	byToken := make(map[string]*Candidate)

	for i, fs := range perFile {
		if fs.err != nil {
			stats.FilesFailed++
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to scan %s: %v", files[i], fs.err))
			continue
		}
		stats.FilesScanned++

		for _, c := range fs.candidates {
			if existing, ok := byToken[c.Token]; ok {
				existing.Count += c.Count
				continue
			}
			byToken[c.Token] = &Candidate{Token: c.Token, Count: c.Count, First: c.First}
		}
	}

	result.Candidates = make([]Candidate, 0, len(byToken))
	for _, c := range byToken {
		result.Candidates = append(result.Candidates, *c)
	}
	sort.Slice(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].Token < result.Candidates[j].Token
	})
	result.Stats = stats

	return result, nil
}

// fileScan holds the candidates of one file in first-seen order.
type fileScan struct {
	candidates []Candidate
	err        error
}

func scanFile(path string) fileScan {
	// #nosec G304 - path comes from the configured content patterns
	f, err := os.Open(path)
	if err != nil {
		return fileScan{err: err}
	}
	defer f.Close()

	var out fileScan
	index := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		for _, m := range extractCandidates(scanner.Text()) {
			if i, ok := index[m.token]; ok {
				out.candidates[i].Count++
				continue
			}
			index[m.token] = len(out.candidates)
			out.candidates = append(out.candidates, Candidate{
				Token: m.token,
				Count: 1,
				First: FileLocation{File: path, Line: lineNum, Column: m.column},
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return fileScan{err: err}
	}
	return out
}

type lineMatch struct {
	token  string
	column int
}

// extractCandidates finds utility-like tokens in a line: plain utilities
// (p-4), variants (md:hover:bg-red-500), arbitrary values (w-[10px]),
// fractions (w-1/2), negatives (-mt-2) and important markers (!font-bold).
func extractCandidates(line string) []lineMatch {
	var out []lineMatch

	for _, loc := range candidatePattern.FindAllStringIndex(line, -1) {
		raw := line[loc[0]:loc[1]]
		token, offset := cleanCandidate(raw)
		if !isCandidate(token) {
			continue
		}
		out = append(out, lineMatch{token: token, column: loc[0] + offset + 1})
	}

	return out
}

// cleanCandidate trims trailing punctuation and unbalanced parentheses and
// returns the offset of the cleaned token within raw.
func cleanCandidate(raw string) (string, int) {
	token := strings.TrimRight(raw, ".,:")
	offset := 0

	for strings.HasPrefix(token, "(") && strings.Count(token, "(") > strings.Count(token, ")") {
		token = token[1:]
		offset++
	}
	for strings.HasSuffix(token, ")") && strings.Count(token, ")") > strings.Count(token, "(") {
		token = strings.TrimRight(token[:len(token)-1], ".,:")
	}
	for strings.HasPrefix(token, ",") {
		token = token[1:]
		offset++
	}

	return token, offset
}

func isCandidate(token string) bool {
	if token == "" || len(token) > maxCandidateLength {
		return false
	}
	if !hasLetter.MatchString(token) {
		return false
	}
	switch token[0] {
	case '.', '/', '#', '@', '&', '$':
		return false
	}
	if strings.Contains(token, "://") || strings.HasPrefix(token, "--") {
		return false
	}
	return strings.Count(token, "[") == strings.Count(token, "]")
}

// RelativePath returns p relative to base, or p unchanged when that fails.
func RelativePath(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return p
	}
	return rel
}
