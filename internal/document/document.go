// Package document loads a post source of any supported format into IR.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roboco-io/postmd/internal/ir"
	"github.com/roboco-io/postmd/internal/parser"
	"github.com/roboco-io/postmd/internal/parser/irjson"
	"github.com/roboco-io/postmd/internal/parser/post"
)

// Load detects the format of path and parses it.
// Unknown extensions fall back to sniffing the file content.
func Load(path string, opts parser.Options) (*ir.Document, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	format := parser.DetectFormat(path)
	if format == parser.FormatUnknown {
		sniffed, err := sniff(path)
		if err != nil {
			return nil, err
		}
		format = sniffed
	}

	p, err := open(path, format, opts)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	return p.Parse()
}

func open(path string, format parser.Format, opts parser.Options) (parser.Parser, error) {
	switch format {
	case parser.FormatMarkdown, parser.FormatText:
		return post.New(path, opts)
	case parser.FormatJSON:
		return irjson.New(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(path))
	}
}

func sniff(path string) (parser.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return parser.FormatUnknown, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	format, err := parser.DetectFormatFromReader(f)
	if err != nil {
		return parser.FormatUnknown, fmt.Errorf("failed to detect format of %s: %w", path, err)
	}
	return format, nil
}
