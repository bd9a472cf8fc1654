package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roboco-io/postmd/internal/ir"
	"github.com/roboco-io/postmd/internal/parser"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		file      string
		data      string
		wantTitle string
		wantFirst ir.BlockType
	}{
		{
			name:      "markdown post",
			file:      "post.md",
			data:      "---\ntitle: Markdown\n---\n# Heading\nbody",
			wantTitle: "Markdown",
			wantFirst: ir.BlockTypeHeading,
		},
		{
			name:      "text post",
			file:      "notes.txt",
			data:      "- first\n- second",
			wantTitle: "notes",
			wantFirst: ir.BlockTypeUnorderedItem,
		},
		{
			name:      "ir json",
			file:      "doc.json",
			data:      `{"version":"1.0","metadata":{"title":"From IR"},"content":[{"type":"paragraph","paragraph":{"spans":[{"kind":"plain","text":"hi"}]}}]}`,
			wantTitle: "From IR",
			wantFirst: ir.BlockTypeParagraph,
		},
		{
			name:      "unknown extension sniffed as text",
			file:      "ABOUT",
			data:      "1. one",
			wantTitle: "ABOUT",
			wantFirst: ir.BlockTypeOrderedItem,
		},
		{
			name:      "unknown extension sniffed as json",
			file:      "export.ir",
			data:      `{"version":"1.0","metadata":{"title":"Sniffed"},"content":[{"type":"heading","heading":{"level":1,"spans":[]}}]}`,
			wantTitle: "Sniffed",
			wantFirst: ir.BlockTypeHeading,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.file, []byte(tc.data))

			doc, err := Load(path, parser.DefaultOptions())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.Metadata.Title != tc.wantTitle {
				t.Errorf("expected title %q, got %q", tc.wantTitle, doc.Metadata.Title)
			}
			if len(doc.Content) == 0 {
				t.Fatal("expected content")
			}
			if doc.Content[0].Type != tc.wantFirst {
				t.Errorf("expected first block %s, got %s", tc.wantFirst, doc.Content[0].Type)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	binary := writeFile(t, dir, "image.bin", []byte{0x89, 'P', 'N', 'G', 0x00})
	empty := writeFile(t, dir, "empty", nil)

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.md")},
		{"binary content", binary},
		{"empty unknown file", empty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.path, parser.DefaultOptions()); err == nil {
				t.Error("expected error")
			}
		})
	}
}
