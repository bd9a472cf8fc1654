// Package render turns parsed documents into output formats.
package render

import (
	"io"

	"github.com/roboco-io/postmd/internal/ir"
)

// Renderer is the interface that all output formats must implement.
type Renderer interface {
	// Name returns the renderer identifier (e.g., "markdown", "html").
	Name() string

	// Extension returns the output file extension including the dot.
	Extension() string

	// Description is a one-line summary shown by the renderers command.
	Description() string

	// Render writes doc to w. The document is not modified.
	Render(w io.Writer, doc *ir.Document) error
}

// Options contains options shared by the built-in renderers.
type Options struct {
	EscapeMarkdown bool   `yaml:"escape_markdown"` // backslash-escape punctuation in markdown output
	FrontMatter    bool   `yaml:"front_matter"`    // emit metadata before content
	WordWrap       int    `yaml:"word_wrap"`       // 0 disables wrapping
	Color          bool   `yaml:"color"`           // style text output with lipgloss
	GlamourStyle   string `yaml:"glamour_style"`   // glamour standard style or "auto"
	Pretty         bool   `yaml:"pretty"`          // indent json output
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		WordWrap:     80,
		GlamourStyle: "auto",
		Pretty:       true,
	}
}

// NewRegistry returns a registry pre-loaded with the built-in renderers.
func NewRegistry(opts Options) *Registry {
	r := newRegistry()
	for _, rd := range []Renderer{
		NewMarkdown(opts),
		NewHTML(opts),
		NewText(opts),
		NewTerminal(opts),
		NewJSON(opts),
	} {
		// built-in names are unique
		_ = r.Register(rd)
	}
	return r
}
