package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/roboco-io/postmd/internal/ir"
)

// HTML renders documents through goldmark's HTML renderer.
// The AST is built directly from the IR; goldmark's parser is never run.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML creates an HTML renderer.
func NewHTML(opts Options) *HTML {
	return &HTML{md: goldmark.New()}
}

func (h *HTML) Name() string        { return "html" }
func (h *HTML) Extension() string   { return ".html" }
func (h *HTML) Description() string { return "HTML fragment rendered with goldmark" }

// Render implements the Renderer interface.
func (h *HTML) Render(w io.Writer, doc *ir.Document) error {
	b := &astBuilder{}
	root := b.build(doc.Content)
	if err := h.md.Renderer().Render(w, b.source, root); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}

// astBuilder accumulates span text into source so that Text nodes can
// reference it by segment.
type astBuilder struct {
	source []byte
}

func (b *astBuilder) build(blocks []ir.Block) *ast.Document {
	root := ast.NewDocument()

	var list *ast.List
	var listType ir.BlockType
	for _, block := range blocks {
		if !block.Valid() {
			continue
		}
		if block.Type != listType {
			list = nil
			listType = ""
		}

		switch block.Type {
		case ir.BlockTypeHeading:
			heading := ast.NewHeading(block.Heading.Level)
			b.appendSpans(heading, block.Heading.Spans)
			root.AppendChild(root, heading)

		case ir.BlockTypeParagraph:
			para := ast.NewParagraph()
			b.appendSpans(para, block.Paragraph.Spans)
			root.AppendChild(root, para)

		case ir.BlockTypeOrderedItem:
			if list == nil {
				list = ast.NewList('.')
				list.IsTight = true
				list.Start = listStart(block.OrderedItem.Index)
				listType = block.Type
				root.AppendChild(root, list)
			}
			item := b.listItem(block.OrderedItem.Spans)
			item.SetAttributeString("value", []byte(block.OrderedItem.Index))
			list.AppendChild(list, item)

		case ir.BlockTypeUnorderedItem:
			if list == nil {
				list = ast.NewList('-')
				list.IsTight = true
				listType = block.Type
				root.AppendChild(root, list)
			}
			list.AppendChild(list, b.listItem(block.UnorderedItem.Spans))
		}
	}
	return root
}

func (b *astBuilder) listItem(spans []ir.Span) *ast.ListItem {
	item := ast.NewListItem(2)
	tb := ast.NewTextBlock()
	b.appendSpans(tb, spans)
	item.AppendChild(item, tb)
	return item
}

func (b *astBuilder) appendSpans(parent ast.Node, spans []ir.Span) {
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		switch s.Kind {
		case ir.SpanCode:
			code := ast.NewCodeSpan()
			code.AppendChild(code, b.text(s.Text))
			parent.AppendChild(parent, code)
		case ir.SpanBold:
			strong := ast.NewEmphasis(2)
			strong.AppendChild(strong, b.text(s.Text))
			parent.AppendChild(parent, strong)
		default:
			parent.AppendChild(parent, b.text(s.Text))
		}
	}
}

// text appends s to the source buffer and returns a raw Text node over it.
// Raw text is HTML-escaped but never re-interpreted as markdown.
func (b *astBuilder) text(s string) *ast.Text {
	start := len(b.source)
	b.source = append(b.source, s...)
	t := ast.NewTextSegment(gtext.NewSegment(start, len(b.source)))
	t.SetRaw(true)
	return t
}

// listStart converts a literal index to the <ol start> value.
// Indices that do not fit an int start at 1; each item still carries its literal value.
func listStart(index string) int {
	n, err := strconv.Atoi(index)
	if err != nil {
		return 1
	}
	return n
}
