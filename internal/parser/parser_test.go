package parser

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{
			name:     "md extension",
			path:     "welcome.md",
			expected: FormatMarkdown,
		},
		{
			name:     "MD uppercase",
			path:     "WELCOME.MD",
			expected: FormatMarkdown,
		},
		{
			name:     "markdown extension",
			path:     "welcome.markdown",
			expected: FormatMarkdown,
		},
		{
			name:     "txt extension",
			path:     "notes.txt",
			expected: FormatText,
		},
		{
			name:     "json extension",
			path:     "post.json",
			expected: FormatJSON,
		},
		{
			name:     "unknown extension",
			path:     "photo.png",
			expected: FormatUnknown,
		},
		{
			name:     "no extension",
			path:     "README",
			expected: FormatUnknown,
		},
		{
			name:     "path with directory",
			path:     "/content/posts/2024/kickoff.md",
			expected: FormatMarkdown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectFormat(tc.path)
			if got != tc.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tc.path, got, tc.expected)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatMarkdown, "markdown"},
		{FormatText, "text"},
		{FormatJSON, "json"},
		{FormatUnknown, "unknown"},
		{Format(999), "unknown"},
	}

	for _, tc := range tests {
		got := tc.format.String()
		if got != tc.expected {
			t.Errorf("Format(%d).String() = %q, want %q", int(tc.format), got, tc.expected)
		}
	}
}

func TestDetectFormatFromReader(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{
			name:     "ir json",
			data:     []byte(`{"version":"1.0","content":[]}`),
			expected: FormatJSON,
		},
		{
			name:     "json after whitespace",
			data:     []byte("\n  {\"version\":\"1.0\"}"),
			expected: FormatJSON,
		},
		{
			name:     "front matter",
			data:     []byte("---\ntitle: Hello\n---\nBody"),
			expected: FormatMarkdown,
		},
		{
			name:     "front matter after BOM",
			data:     []byte("\ufeff---\ntitle: Hello\n---\n"),
			expected: FormatMarkdown,
		},
		{
			name:     "plain text",
			data:     []byte("# Heading\n\nSome text"),
			expected: FormatText,
		},
		{
			name:     "binary",
			data:     []byte{0x89, 'P', 'N', 'G', 0x00, 0x01},
			expected: FormatUnknown,
		},
		{
			name:     "invalid utf-8",
			data:     []byte{0xff, 0xfe, 0xfd, 'a'},
			expected: FormatUnknown,
		},
		{
			name:     "multibyte rune cut at sniff boundary",
			data:     append([]byte(strings.Repeat("a", sniffSize-1)), "é"...),
			expected: FormatText,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			got, err := DetectFormatFromReader(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("DetectFormatFromReader() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestDetectFormatFromReader_Empty(t *testing.T) {
	reader := bytes.NewReader(nil)

	_, err := DetectFormatFromReader(reader)
	if err == nil {
		t.Error("expected error for empty data")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if !opts.FrontMatter {
		t.Error("expected FrontMatter to be true by default")
	}
	if opts.ExcerptLength != 160 {
		t.Errorf("expected ExcerptLength 160, got %d", opts.ExcerptLength)
	}
}
