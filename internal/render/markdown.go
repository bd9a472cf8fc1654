package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roboco-io/postmd/internal/ir"
)

// markdownPunctuation lists the characters escaped in plain and bold text.
const markdownPunctuation = "\\`*_[]<>#|~!"

// listMarkerPattern matches text that would open an ordered list at the start
// of a line.
var listMarkerPattern = regexp.MustCompile(`^(\d+)([.)])`)

// Markdown writes documents back out in the content syntax.
type Markdown struct {
	opts Options
}

// NewMarkdown creates a markdown renderer.
func NewMarkdown(opts Options) *Markdown {
	return &Markdown{opts: opts}
}

func (m *Markdown) Name() string        { return "markdown" }
func (m *Markdown) Extension() string   { return ".md" }
func (m *Markdown) Description() string { return "Markdown using the post content syntax" }

// Render implements the Renderer interface.
func (m *Markdown) Render(w io.Writer, doc *ir.Document) error {
	var sb strings.Builder

	if m.opts.FrontMatter && !doc.Metadata.IsEmpty() {
		data, err := yaml.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode front matter: %w", err)
		}
		sb.WriteString("---\n")
		sb.Write(data)
		sb.WriteString("---\n\n")
	}

	blocks := doc.Content
	for i, block := range blocks {
		if !block.Valid() {
			continue
		}
		switch block.Type {
		case ir.BlockTypeHeading:
			sb.WriteString(strings.Repeat("#", block.Heading.Level))
			sb.WriteString(" ")
			m.writeSpans(&sb, block.Heading.Spans)
			sb.WriteString("\n\n")
		case ir.BlockTypeOrderedItem:
			sb.WriteString(block.OrderedItem.Index)
			sb.WriteString(". ")
			m.writeSpans(&sb, block.OrderedItem.Spans)
			sb.WriteString("\n")
			endListRun(&sb, blocks, i)
		case ir.BlockTypeUnorderedItem:
			sb.WriteString("- ")
			m.writeSpans(&sb, block.UnorderedItem.Spans)
			sb.WriteString("\n")
			endListRun(&sb, blocks, i)
		case ir.BlockTypeParagraph:
			m.writeSpans(&sb, block.Paragraph.Spans)
			sb.WriteString("\n\n")
		}
	}

	out := strings.TrimRight(sb.String(), "\n")
	if out != "" {
		out += "\n"
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// endListRun writes the blank line that closes a run of same-kind list items.
func endListRun(sb *strings.Builder, blocks []ir.Block, i int) {
	if i+1 < len(blocks) && blocks[i+1].Type == blocks[i].Type {
		return
	}
	sb.WriteString("\n")
}

func (m *Markdown) writeSpans(sb *strings.Builder, spans []ir.Span) {
	for i, s := range spans {
		switch s.Kind {
		case ir.SpanCode:
			sb.WriteString("`" + s.Text + "`")
		case ir.SpanBold:
			sb.WriteString("**" + m.escape(s.Text) + "**")
		default:
			text := m.escape(s.Text)
			if i == 0 && m.opts.EscapeMarkdown {
				text = EscapeLineStart(text)
			}
			sb.WriteString(text)
		}
	}
}

func (m *Markdown) escape(s string) string {
	if !m.opts.EscapeMarkdown {
		return s
	}
	return EscapeMarkdown(s)
}

// EscapeMarkdown backslash-escapes markdown punctuation in s.
func EscapeMarkdown(s string) string {
	if !strings.ContainsAny(s, markdownPunctuation) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for _, r := range s {
		if strings.ContainsRune(markdownPunctuation, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// EscapeLineStart escapes a leading bullet, thematic break, setext underline
// or "N." marker so that text placed at the start of a line stays a
// paragraph when read back as markdown.
func EscapeLineStart(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '-', '+', '=':
		return "\\" + s
	}
	if m := listMarkerPattern.FindStringSubmatchIndex(s); m != nil {
		return s[:m[4]] + "\\" + s[m[4]:]
	}
	return s
}
