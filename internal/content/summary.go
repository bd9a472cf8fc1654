package content

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roboco-io/postmd/internal/ir"
)

// WordsPerMinute is the reading speed used for ReadingMinutes.
const WordsPerMinute = 200

// OutlineEntry is one heading in a document outline.
type OutlineEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// WordCount counts whitespace-separated words across all blocks.
func WordCount(blocks []ir.Block) int {
	n := 0
	for _, b := range blocks {
		n += len(strings.Fields(b.PlainText()))
	}
	return n
}

// ReadingMinutes estimates reading time, rounding up.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// Excerpt returns the plain text of the first paragraph, shortened to at most
// maxRunes runes. A shortened excerpt is cut at a word boundary and ends with
// an ellipsis. maxRunes <= 0 disables shortening.
func Excerpt(blocks []ir.Block, maxRunes int) string {
	for _, b := range blocks {
		if b.Type == ir.BlockTypeParagraph {
			return truncate(b.PlainText(), maxRunes)
		}
	}
	return ""
}

// Outline lists the headings of blocks in order.
func Outline(blocks []ir.Block) []OutlineEntry {
	var out []OutlineEntry
	for _, b := range blocks {
		if b.Type == ir.BlockTypeHeading && b.Heading != nil {
			out = append(out, OutlineEntry{Level: b.Heading.Level, Text: b.PlainText()})
		}
	}
	return out
}

// FirstHeading returns the text of the first heading at the given level.
func FirstHeading(blocks []ir.Block, level int) (string, bool) {
	for _, b := range blocks {
		if b.Type == ir.BlockTypeHeading && b.Heading != nil && b.Heading.Level == level {
			return b.PlainText(), true
		}
	}
	return "", false
}

func truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	const ellipsis = "…"
	runes := []rune(s)
	cut := string(runes[:maxRunes-1])
	if !unicode.IsSpace(runes[maxRunes-1]) {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,;:") + ellipsis
}
