// Package post provides a parser for post sources: a plain text body with an
// optional YAML front matter block.
package post

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/roboco-io/postmd/internal/content"
	"github.com/roboco-io/postmd/internal/ir"
	"github.com/roboco-io/postmd/internal/parser"
)

// Parser parses post files.
type Parser struct {
	path    string
	file    *os.File
	options parser.Options
}

// New creates a new post parser for the given file path.
func New(path string, opts parser.Options) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open post: %w", err)
	}

	return &Parser{
		path:    path,
		file:    f,
		options: opts,
	}, nil
}

// Parse implements the Parser interface.
func (p *Parser) Parse() (*ir.Document, error) {
	data, err := io.ReadAll(p.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read post: %w", err)
	}
	return ParseBytes(p.path, data, p.options)
}

// Close releases resources.
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseBytes parses an in-memory post. name is used for error messages and
// for metadata that falls back to the file name.
func ParseBytes(name string, data []byte, opts parser.Options) (*ir.Document, error) {
	src := normalize(string(data))

	body := src
	var meta ir.Metadata
	if opts.FrontMatter {
		if front, rest, ok := splitFrontMatter(src); ok {
			m, err := decodeFrontMatter(front)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			meta = m
			body = rest
		}
	}

	doc := content.ParseDocument(body)
	doc.Metadata = deriveMetadata(meta, doc.Content, name, opts)
	return doc, nil
}

// normalize strips a byte order mark and converts CRLF/CR line endings to LF.
func normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	if strings.ContainsRune(s, '\r') {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	}
	return s
}

// deriveMetadata fills the fields front matter left empty.
func deriveMetadata(meta ir.Metadata, blocks []ir.Block, name string, opts parser.Options) ir.Metadata {
	meta.Source = name
	meta.WordCount = content.WordCount(blocks)
	meta.ReadingMinutes = content.ReadingMinutes(meta.WordCount)

	if meta.Summary == "" {
		meta.Summary = content.Excerpt(blocks, opts.ExcerptLength)
	}
	if meta.Title == "" {
		if h, ok := content.FirstHeading(blocks, 1); ok {
			meta.Title = strings.TrimSpace(h)
		} else if name != "" {
			base := filepath.Base(name)
			meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}
	}
	if meta.Slug == "" {
		meta.Slug = Slugify(meta.Title)
	}
	return meta
}
