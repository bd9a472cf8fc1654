package ir

// OrderedItem represents a single numbered list line.
type OrderedItem struct {
	Index string `json:"index"` // literal digits as written by the author
	Spans []Span `json:"spans"`
}

// UnorderedItem represents a single bullet list line.
type UnorderedItem struct {
	Spans []Span `json:"spans"`
}

// NewOrderedItem creates a new ordered list item.
func NewOrderedItem(index string, spans []Span) *OrderedItem {
	return &OrderedItem{
		Index: index,
		Spans: spans,
	}
}

// NewUnorderedItem creates a new unordered list item.
func NewUnorderedItem(spans []Span) *UnorderedItem {
	return &UnorderedItem{
		Spans: spans,
	}
}

// IsListItem returns true for ordered and unordered item blocks.
func (t BlockType) IsListItem() bool {
	return t == BlockTypeOrderedItem || t == BlockTypeUnorderedItem
}
