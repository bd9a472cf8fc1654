package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/roboco-io/postmd/internal/ir"
)

// Terminal renders documents for display in a terminal using glamour.
type Terminal struct {
	opts Options
}

// NewTerminal creates a terminal renderer.
func NewTerminal(opts Options) *Terminal {
	return &Terminal{opts: opts}
}

func (t *Terminal) Name() string        { return "terminal" }
func (t *Terminal) Extension() string   { return ".ansi" }
func (t *Terminal) Description() string { return "ANSI terminal output rendered with glamour" }

// Render implements the Renderer interface.
func (t *Terminal) Render(w io.Writer, doc *ir.Document) error {
	mdOpts := t.opts
	mdOpts.EscapeMarkdown = true
	mdOpts.FrontMatter = false

	var md strings.Builder
	if err := NewMarkdown(mdOpts).Render(&md, doc); err != nil {
		return err
	}

	tr, err := glamour.NewTermRenderer(t.rendererOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out, err := tr.Render(md.String())
	if err != nil {
		return fmt.Errorf("failed to render terminal output: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write terminal output: %w", err)
	}
	return nil
}

func (t *Terminal) rendererOptions() []glamour.TermRendererOption {
	var opts []glamour.TermRendererOption
	switch t.opts.GlamourStyle {
	case "", "auto":
		opts = append(opts, glamour.WithAutoStyle())
	default:
		// standard style name ("dark", "light", "notty", ...) or a JSON style file
		opts = append(opts, glamour.WithStylePath(t.opts.GlamourStyle))
	}
	if t.opts.WordWrap > 0 {
		opts = append(opts, glamour.WithWordWrap(t.opts.WordWrap))
	}
	return opts
}
