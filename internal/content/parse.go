// Package content parses post bodies into IR blocks.
//
// The syntax is a small line-oriented subset of Markdown: "#", "##" and "###"
// headings, "N." ordered items, "- " bullets, and paragraphs of consecutive
// lines separated by blank lines. Inline `code` and **bold** are recognised
// within a line. Parsing never fails; every input yields a block sequence.
package content

import (
	"regexp"
	"strings"

	"github.com/roboco-io/postmd/internal/ir"
)

// orderedItemPattern matches "7. " style prefixes and captures the digits.
// The separator may be any Unicode space, including NBSP and vertical tab.
var orderedItemPattern = regexp.MustCompile(`^(\d+)\.[\s\v\p{Zs}\x{2028}\x{2029}\x{feff}]`)

// headingPrefixes are tried deepest first so "### " never reads as "# ".
var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

// Parse classifies src line by line and returns its blocks in source order.
//
// Rules are tried in a fixed order and the first match wins: headings,
// ordered items, bullets, blank lines, and finally paragraph text. Paragraph
// lines are trimmed and accumulated until a blank or special line, then joined
// with single spaces.
func Parse(src string) []ir.Block {
	doc := ir.NewDocument()
	var paragraph []string

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		doc.AddParagraph(ir.NewParagraph(FormatInline(strings.Join(paragraph, " "))))
		paragraph = paragraph[:0]
	}

	for _, line := range strings.Split(src, "\n") {
		if level, rest, ok := matchHeading(line); ok {
			flush()
			doc.AddHeading(ir.NewHeading(level, FormatInline(rest)))
			continue
		}

		if m := orderedItemPattern.FindStringSubmatchIndex(line); m != nil {
			flush()
			doc.AddOrderedItem(ir.NewOrderedItem(line[m[2]:m[3]], FormatInline(line[m[1]:])))
			continue
		}

		if rest, ok := strings.CutPrefix(line, "- "); ok {
			flush()
			doc.AddUnorderedItem(ir.NewUnorderedItem(FormatInline(rest)))
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		paragraph = append(paragraph, trimmed)
	}
	flush()

	if len(doc.Content) == 0 {
		return nil
	}
	return doc.Content
}

// ParseDocument parses src into a fresh document with no metadata.
func ParseDocument(src string) *ir.Document {
	doc := ir.NewDocument()
	if blocks := Parse(src); blocks != nil {
		doc.Content = blocks
	}
	return doc
}

func matchHeading(line string) (int, string, bool) {
	for _, h := range headingPrefixes {
		if rest, ok := strings.CutPrefix(line, h.prefix); ok {
			return h.level, rest, true
		}
	}
	return 0, "", false
}
