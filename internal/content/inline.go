package content

import (
	"regexp"

	"github.com/roboco-io/postmd/internal/ir"
)

var (
	// codeSpanPattern matches `code` with non-empty, backtick-free content.
	codeSpanPattern = regexp.MustCompile("`([^`]+)`")
	// boldSpanPattern matches **bold** with non-empty, asterisk-free content.
	boldSpanPattern = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// FormatInline splits one line of text into styled spans.
//
// Code spans are resolved first; bold spans are only looked for in the text
// between them. Delimiters without a matching close on the same line are kept
// as literal characters. The returned spans cover the whole input in order;
// empty plain fragments are omitted, so "" yields no spans.
func FormatInline(line string) []ir.Span {
	var spans []ir.Span
	last := 0
	for _, m := range codeSpanPattern.FindAllStringSubmatchIndex(line, -1) {
		spans = appendBold(spans, line[last:m[0]])
		spans = append(spans, ir.Code(line[m[2]:m[3]]))
		last = m[1]
	}
	return appendBold(spans, line[last:])
}

// appendBold splits a plain segment on bold spans and appends the pieces.
func appendBold(spans []ir.Span, segment string) []ir.Span {
	last := 0
	for _, m := range boldSpanPattern.FindAllStringSubmatchIndex(segment, -1) {
		if m[0] > last {
			spans = append(spans, ir.Plain(segment[last:m[0]]))
		}
		spans = append(spans, ir.Bold(segment[m[2]:m[3]]))
		last = m[1]
	}
	if last < len(segment) {
		spans = append(spans, ir.Plain(segment[last:]))
	}
	return spans
}
