// Package parser provides interfaces and implementations for reading post sources.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/roboco-io/postmd/internal/ir"
)

// Parser is the interface for document parsers.
type Parser interface {
	// Parse reads the document and returns an IR representation.
	Parse() (*ir.Document, error)

	// Close releases any resources held by the parser.
	Close() error
}

// Format represents a source format.
type Format int

const (
	FormatUnknown Format = iota
	FormatMarkdown
	FormatText
	FormatJSON // IR previously written by the json renderer
)

// sniffSize is how many leading bytes DetectFormatFromReader inspects.
const sniffSize = 512

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// DetectFormat detects the source format from the file path.
func DetectFormat(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".md", ".markdown", ".mdx":
		return FormatMarkdown
	case ".txt", ".text":
		return FormatText
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by sniffing the leading bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, sniffSize)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read leading bytes: %w", err)
	}
	if n < 1 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}
	buf = buf[:n]

	// Binary content
	if bytes.IndexByte(buf, 0) >= 0 {
		return FormatUnknown, nil
	}
	if !utf8.Valid(trimPartialRune(buf)) {
		return FormatUnknown, nil
	}

	trimmed := bytes.TrimLeft(buf, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON, nil
	}

	// Front matter marks a post
	if bytes.HasPrefix(bytes.TrimPrefix(buf, []byte("\ufeff")), []byte("---")) {
		return FormatMarkdown, nil
	}

	return FormatText, nil
}

// trimPartialRune drops an incomplete UTF-8 sequence cut off at the end of buf.
func trimPartialRune(buf []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}
			break
		}
	}
	return buf
}

// Options contains parser configuration options.
type Options struct {
	FrontMatter   bool // Whether to read a leading YAML front matter block
	ExcerptLength int  // Rune limit for summaries derived from content (0 = unlimited)
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{
		FrontMatter:   true,
		ExcerptLength: 160,
	}
}
