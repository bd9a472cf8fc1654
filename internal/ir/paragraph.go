package ir

// SpanKind represents the formatting treatment of an inline span.
type SpanKind string

const (
	SpanPlain SpanKind = "plain"
	SpanCode  SpanKind = "code"
	SpanBold  SpanKind = "bold"
)

// Span represents a contiguous run of text sharing one formatting treatment.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// Plain creates a plain text span.
func Plain(text string) Span {
	return Span{Kind: SpanPlain, Text: text}
}

// Code creates an inline code span.
func Code(text string) Span {
	return Span{Kind: SpanCode, Text: text}
}

// Bold creates a bold span.
func Bold(text string) Span {
	return Span{Kind: SpanBold, Text: text}
}

// Paragraph represents one or more joined source lines of body text.
type Paragraph struct {
	Spans []Span `json:"spans"`
}

// NewParagraph creates a new paragraph with the given spans.
func NewParagraph(spans []Span) *Paragraph {
	return &Paragraph{
		Spans: spans,
	}
}

// IsEmpty returns true if the paragraph has no text content.
func (p *Paragraph) IsEmpty() bool {
	return SpansText(p.Spans) == ""
}
