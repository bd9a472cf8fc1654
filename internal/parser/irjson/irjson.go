// Package irjson reads IR documents previously written by the json renderer.
package irjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/roboco-io/postmd/internal/ir"
)

// Parser parses IR JSON files.
type Parser struct {
	path string
	file *os.File
}

// New creates a new IR JSON parser for the given file path.
func New(path string) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open IR file: %w", err)
	}
	return &Parser{path: path, file: f}, nil
}

// Parse implements the Parser interface.
func (p *Parser) Parse() (*ir.Document, error) {
	return Decode(p.file)
}

// Close releases resources.
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// Decode reads and validates an IR document.
func Decode(r io.Reader) (*ir.Document, error) {
	var doc ir.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode IR: %w", err)
	}
	if doc.Version == "" {
		return nil, errors.New("IR document has no version")
	}
	for i, b := range doc.Content {
		if !b.Valid() {
			return nil, fmt.Errorf("block %d: payload does not match type %q", i, b.Type)
		}
	}
	if doc.Content == nil {
		doc.Content = make([]ir.Block, 0)
	}
	return &doc, nil
}
