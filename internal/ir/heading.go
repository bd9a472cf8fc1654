package ir

// MaxHeadingLevel is the deepest heading level the content syntax produces.
const MaxHeadingLevel = 3

// Heading represents a section heading.
type Heading struct {
	Level int    `json:"level"` // 1-3
	Spans []Span `json:"spans"`
}

// NewHeading creates a heading, clamping the level to 1..MaxHeadingLevel.
func NewHeading(level int, spans []Span) *Heading {
	if level < 1 {
		level = 1
	}
	if level > MaxHeadingLevel {
		level = MaxHeadingLevel
	}
	return &Heading{
		Level: level,
		Spans: spans,
	}
}
