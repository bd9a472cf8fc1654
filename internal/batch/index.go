package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// IndexEntry describes one built post for listing pages and feeds.
type IndexEntry struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug,omitempty"`
	Date           string   `json:"date,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	Output         string   `json:"output"` // slash-separated, relative to the output directory
	ReadingMinutes int      `json:"reading_minutes"`
}

// Index returns entries for the files that were written, newest first.
// Posts without a date sort last; ties are ordered by title.
func Index(result *Result) []IndexEntry {
	entries := make([]IndexEntry, 0, len(result.Files))
	for _, f := range result.Files {
		if f.Err != nil || f.Skipped || f.Output == "" {
			continue
		}
		out := f.Output
		if rel, err := filepath.Rel(result.OutputDir, f.Output); err == nil {
			out = filepath.ToSlash(rel)
		}
		entries = append(entries, IndexEntry{
			Title:          f.Metadata.Title,
			Slug:           f.Metadata.Slug,
			Date:           f.Metadata.Date,
			Summary:        f.Metadata.Summary,
			Tags:           f.Metadata.Tags,
			Output:         out,
			ReadingMinutes: f.Metadata.ReadingMinutes,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			// ISO dates compare lexically; empty sorts last
			return a.Date > b.Date
		}
		return a.Title < b.Title
	})
	return entries
}

// WriteIndex writes entries as indented JSON.
func WriteIndex(path string, entries []IndexEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
