package report

import (
	"fmt"
	"sort"

	"github.com/yacobolo/twcfg"
)

// ScanOptions controls PrintScan.
type ScanOptions struct {
	Root      string // file paths are printed relative to Root
	Limit     int    // maximum candidates to list, 0 for all
	FilesOnly bool   // list matched files instead of candidates
}

// PrintScan prints the result of a content scan.
//
// Candidates are listed most frequent first in the form
// file:line:col: token (count).
func (r *Reporter) PrintScan(result *twcfg.ScanResult, opts ScanOptions) {
	if opts.FilesOnly {
		for _, f := range result.Files {
			fmt.Fprintln(r.w, twcfg.RelativePath(opts.Root, f))
		}
	} else {
		for _, c := range topCandidates(result.Candidates, opts.Limit) {
			location := fmt.Sprintf("%s:%d:%d:", twcfg.RelativePath(opts.Root, c.First.File), c.First.Line, c.First.Column)
			fmt.Fprintf(r.w, "%s %s %s\n",
				RenderStyle(StyleCyan, location, r.useColors),
				c.Token,
				RenderStyle(StyleGray, fmt.Sprintf("(%d)", c.Count), r.useColors))
		}
	}

	r.PrintScanStatistics(result)
	r.PrintWarnings(result.Warnings)
}

// PrintScanStatistics prints file and candidate counts.
func (r *Reporter) PrintScanStatistics(result *twcfg.ScanResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Scan Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------")
	fmt.Fprintf(r.w, "Files Matched:    %d\n", result.Stats.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.Stats.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:    %d\n", result.Stats.FilesSkipped)
	if result.Stats.FilesFailed > 0 {
		fmt.Fprintf(r.w, "Files Failed:     %d\n", result.Stats.FilesFailed)
	}
	fmt.Fprintf(r.w, "Candidates:       %d\n", len(result.Candidates))
}

// topCandidates orders by count descending, then token, and applies limit.
func topCandidates(candidates []twcfg.Candidate, limit int) []twcfg.Candidate {
	sorted := make([]twcfg.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Token < sorted[j].Token
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
