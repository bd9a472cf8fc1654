// Package ir defines the Intermediate Representation for post content.
// IR is the output of the content parser and the input for every renderer.
package ir

import "strings"

// Version is the IR schema version written into every document.
const Version = "1.0"

// Document represents the intermediate representation of a post.
type Document struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
	Content  []Block  `json:"content"`
}

// Metadata contains post metadata, read from front matter or derived from content.
type Metadata struct {
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
	Author         string   `json:"author,omitempty" yaml:"author,omitempty"`
	Date           string   `json:"date,omitempty" yaml:"date,omitempty"`
	Slug           string   `json:"slug,omitempty" yaml:"slug,omitempty"`
	Summary        string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags           []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Draft          bool     `json:"draft,omitempty" yaml:"draft,omitempty"`
	WordCount      int      `json:"word_count,omitempty" yaml:"-"`
	ReadingMinutes int      `json:"reading_minutes,omitempty" yaml:"-"`
	Source         string   `json:"source,omitempty" yaml:"-"`
}

// IsEmpty reports whether no author-facing field is set.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" && m.Author == "" && m.Date == "" && m.Slug == "" &&
		m.Summary == "" && len(m.Tags) == 0 && !m.Draft
}

// BlockType represents the type of content block.
type BlockType string

const (
	BlockTypeHeading       BlockType = "heading"
	BlockTypeOrderedItem   BlockType = "ordered_item"
	BlockTypeUnorderedItem BlockType = "unordered_item"
	BlockTypeParagraph     BlockType = "paragraph"
)

// Block represents a content block in the document.
// Exactly one payload is set, the one matching Type.
type Block struct {
	Type          BlockType      `json:"type"`
	Heading       *Heading       `json:"heading,omitempty"`
	OrderedItem   *OrderedItem   `json:"ordered_item,omitempty"`
	UnorderedItem *UnorderedItem `json:"unordered_item,omitempty"`
	Paragraph     *Paragraph     `json:"paragraph,omitempty"`
}

// Spans returns the inline spans of the block's payload.
func (b Block) Spans() []Span {
	switch b.Type {
	case BlockTypeHeading:
		if b.Heading != nil {
			return b.Heading.Spans
		}
	case BlockTypeOrderedItem:
		if b.OrderedItem != nil {
			return b.OrderedItem.Spans
		}
	case BlockTypeUnorderedItem:
		if b.UnorderedItem != nil {
			return b.UnorderedItem.Spans
		}
	case BlockTypeParagraph:
		if b.Paragraph != nil {
			return b.Paragraph.Spans
		}
	}
	return nil
}

// PlainText returns the block text with all formatting removed.
func (b Block) PlainText() string {
	return SpansText(b.Spans())
}

// Valid reports whether the payload matches the block type.
func (b Block) Valid() bool {
	set := 0
	for _, p := range []bool{b.Heading != nil, b.OrderedItem != nil, b.UnorderedItem != nil, b.Paragraph != nil} {
		if p {
			set++
		}
	}
	if set != 1 {
		return false
	}
	switch b.Type {
	case BlockTypeHeading:
		return b.Heading != nil && b.Heading.Level >= 1 && b.Heading.Level <= MaxHeadingLevel
	case BlockTypeOrderedItem:
		return b.OrderedItem != nil
	case BlockTypeUnorderedItem:
		return b.UnorderedItem != nil
	case BlockTypeParagraph:
		return b.Paragraph != nil
	}
	return false
}

// NewDocument creates a new IR document with the current version.
func NewDocument() *Document {
	return &Document{
		Version: Version,
		Content: make([]Block, 0),
	}
}

// AddHeading adds a heading block to the document.
func (d *Document) AddHeading(h *Heading) {
	d.Content = append(d.Content, Block{
		Type:    BlockTypeHeading,
		Heading: h,
	})
}

// AddOrderedItem adds an ordered list item block to the document.
func (d *Document) AddOrderedItem(item *OrderedItem) {
	d.Content = append(d.Content, Block{
		Type:        BlockTypeOrderedItem,
		OrderedItem: item,
	})
}

// AddUnorderedItem adds an unordered list item block to the document.
func (d *Document) AddUnorderedItem(item *UnorderedItem) {
	d.Content = append(d.Content, Block{
		Type:          BlockTypeUnorderedItem,
		UnorderedItem: item,
	})
}

// AddParagraph adds a paragraph block to the document.
func (d *Document) AddParagraph(p *Paragraph) {
	d.Content = append(d.Content, Block{
		Type:      BlockTypeParagraph,
		Paragraph: p,
	})
}

// Count returns the number of blocks of the given type.
func (d *Document) Count(t BlockType) int {
	n := 0
	for _, b := range d.Content {
		if b.Type == t {
			n++
		}
	}
	return n
}

// SpansText concatenates the text of the spans.
func SpansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
