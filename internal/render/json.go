package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/roboco-io/postmd/internal/ir"
)

// JSON writes the IR document itself.
type JSON struct {
	opts Options
}

// NewJSON creates a JSON renderer.
func NewJSON(opts Options) *JSON {
	return &JSON{opts: opts}
}

func (j *JSON) Name() string        { return "json" }
func (j *JSON) Extension() string   { return ".json" }
func (j *JSON) Description() string { return "IR document as JSON, readable by the json parser" }

// Render implements the Renderer interface.
func (j *JSON) Render(w io.Writer, doc *ir.Document) error {
	var data []byte
	var err error
	if j.opts.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode IR: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}
