package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/twcfg"
)

// JSONScanOutput is the structured export of a content scan.
type JSONScanOutput struct {
	Version    string          `json:"version"`
	Timestamp  string          `json:"timestamp"`
	Summary    JSONScanSummary `json:"summary"`
	Files      []string        `json:"files"`
	Candidates []JSONCandidate `json:"candidates"`
	Warnings   []string        `json:"warnings"`
}

// JSONScanSummary contains file counts.
type JSONScanSummary struct {
	FilesMatched int `json:"files_matched"`
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
	FilesFailed  int `json:"files_failed"`
	Candidates   int `json:"candidates"`
}

// JSONCandidate is a single class-name candidate.
type JSONCandidate struct {
	Token  string `json:"token"`
	Count  int    `json:"count"`
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// WriteScanJSON exports a scan result as indented JSON. Paths are relative
// to root and candidates follow the same order and limit as PrintScan.
func WriteScanJSON(w io.Writer, result *twcfg.ScanResult, opts ScanOptions) error {
	output := JSONScanOutput{
		Version:   "1.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Summary: JSONScanSummary{
			FilesMatched: result.Stats.FilesDiscovered,
			FilesScanned: result.Stats.FilesScanned,
			FilesSkipped: result.Stats.FilesSkipped,
			FilesFailed:  result.Stats.FilesFailed,
			Candidates:   len(result.Candidates),
		},
		Files:      make([]string, 0, len(result.Files)),
		Candidates: []JSONCandidate{},
		Warnings:   result.Warnings,
	}
	if output.Warnings == nil {
		output.Warnings = []string{}
	}

	for _, f := range result.Files {
		output.Files = append(output.Files, twcfg.RelativePath(opts.Root, f))
	}
	if !opts.FilesOnly {
		for _, c := range topCandidates(result.Candidates, opts.Limit) {
			output.Candidates = append(output.Candidates, JSONCandidate{
				Token:  c.Token,
				Count:  c.Count,
				File:   twcfg.RelativePath(opts.Root, c.First.File),
				Line:   c.First.Line,
				Column: c.First.Column,
			})
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
