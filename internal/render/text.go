package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/roboco-io/postmd/internal/ir"
)

// Text renders documents as readable plain text, optionally styled.
type Text struct {
	opts Options
}

// NewText creates a text renderer.
func NewText(opts Options) *Text {
	return &Text{opts: opts}
}

func (t *Text) Name() string        { return "text" }
func (t *Text) Extension() string   { return ".txt" }
func (t *Text) Description() string { return "Plain text, lipgloss styling with --color" }

// Render implements the Renderer interface.
func (t *Text) Render(w io.Writer, doc *ir.Document) error {
	st := newTextStyles(w, t.opts.Color)
	var sb strings.Builder

	if t.opts.FrontMatter {
		writeTextHeader(&sb, st, doc.Metadata)
	}

	blocks := doc.Content
	for i, block := range blocks {
		if !block.Valid() {
			continue
		}
		switch block.Type {
		case ir.BlockTypeHeading:
			t.writeHeading(&sb, st, block.Heading)
		case ir.BlockTypeOrderedItem:
			t.writeItem(&sb, block.OrderedItem.Index+". ", st.spans(block.OrderedItem.Spans))
			endListRun(&sb, blocks, i)
		case ir.BlockTypeUnorderedItem:
			t.writeItem(&sb, "• ", st.spans(block.UnorderedItem.Spans))
			endListRun(&sb, blocks, i)
		case ir.BlockTypeParagraph:
			sb.WriteString(t.wrap(st.spans(block.Paragraph.Spans), t.opts.WordWrap))
			sb.WriteString("\n\n")
		}
	}

	out := strings.TrimRight(sb.String(), "\n")
	if out != "" {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

func writeTextHeader(sb *strings.Builder, st textStyles, meta ir.Metadata) {
	var lines []string
	if meta.Title != "" {
		lines = append(lines, st.label("Title")+meta.Title)
	}
	if meta.Author != "" {
		lines = append(lines, st.label("Author")+meta.Author)
	}
	if meta.Date != "" {
		lines = append(lines, st.label("Date")+meta.Date)
	}
	if len(meta.Tags) > 0 {
		lines = append(lines, st.label("Tags")+strings.Join(meta.Tags, ", "))
	}
	if len(lines) == 0 {
		return
	}
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n---\n\n")
}

func (t *Text) writeHeading(sb *strings.Builder, st textStyles, h *ir.Heading) {
	text := st.spans(h.Spans)
	plain := ir.SpansText(h.Spans)

	switch h.Level {
	case 1:
		sb.WriteString(st.render(st.h1, text))
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("=", lipgloss.Width(plain)))
	case 2:
		sb.WriteString(st.render(st.h2, text))
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", lipgloss.Width(plain)))
	default:
		sb.WriteString(st.render(st.h3, "▸ "+text))
	}
	sb.WriteString("\n\n")
}

// writeItem writes a list line; wrapped continuation lines hang under the text.
func (t *Text) writeItem(sb *strings.Builder, prefix, text string) {
	width := t.opts.WordWrap
	pad := lipgloss.Width(prefix)
	if width > 0 {
		width -= pad
		if width < 1 {
			width = 1
		}
	}
	wrapped := t.wrap(text, width)
	sb.WriteString(prefix)
	sb.WriteString(strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", pad)))
	sb.WriteString("\n")
}

func (t *Text) wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// textStyles holds lipgloss styles bound to the output writer's color profile.
type textStyles struct {
	enabled bool
	h1      lipgloss.Style
	h2      lipgloss.Style
	h3      lipgloss.Style
	bold    lipgloss.Style
	code    lipgloss.Style
	muted   lipgloss.Style
}

func newTextStyles(w io.Writer, color bool) textStyles {
	if !color {
		return textStyles{}
	}
	r := lipgloss.NewRenderer(w)
	return textStyles{
		enabled: true,
		h1:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		h2:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		h3:      r.NewStyle().Bold(true),
		bold:    r.NewStyle().Bold(true),
		code:    r.NewStyle().Foreground(lipgloss.Color("203")).Background(lipgloss.Color("236")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (s textStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s textStyles) label(name string) string {
	return s.render(s.muted, name+":") + " "
}

func (s textStyles) spans(spans []ir.Span) string {
	var sb strings.Builder
	for _, span := range spans {
		switch span.Kind {
		case ir.SpanBold:
			sb.WriteString(s.render(s.bold, span.Text))
		case ir.SpanCode:
			sb.WriteString(s.render(s.code, span.Text))
		default:
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}
