package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/roboco-io/postmd/internal/ir"
)

func TestFormatInline(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []ir.Span
	}{
		{
			name: "empty",
			line: "",
			want: nil,
		},
		{
			name: "plain text",
			line: "Welcome to the chapter",
			want: []ir.Span{ir.Plain("Welcome to the chapter")},
		},
		{
			name: "code span isolation",
			line: "Use `foo()` here",
			want: []ir.Span{ir.Plain("Use "), ir.Code("foo()"), ir.Plain(" here")},
		},
		{
			name: "bold then code",
			line: "**Bold** and `code`",
			want: []ir.Span{ir.Bold("Bold"), ir.Plain(" and "), ir.Code("code")},
		},
		{
			name: "bold markers inside code are literal",
			line: "`**not bold**`",
			want: []ir.Span{ir.Code("**not bold**")},
		},
		{
			name: "unterminated backtick",
			line: "a `b without close",
			want: []ir.Span{ir.Plain("a `b without close")},
		},
		{
			name: "unterminated bold",
			line: "**open only",
			want: []ir.Span{ir.Plain("**open only")},
		},
		{
			name: "empty code span is literal",
			line: "a `` b",
			want: []ir.Span{ir.Plain("a `` b")},
		},
		{
			name: "empty bold is literal",
			line: "a **** b",
			want: []ir.Span{ir.Plain("a **** b")},
		},
		{
			name: "adjacent spans",
			line: "`a``b`**c**",
			want: []ir.Span{ir.Code("a"), ir.Code("b"), ir.Bold("c")},
		},
		{
			name: "multiple bold segments",
			line: "**one** two **three**",
			want: []ir.Span{ir.Bold("one"), ir.Plain(" two "), ir.Bold("three")},
		},
		{
			name: "bold split by code span is not joined",
			line: "**a `b` c**",
			want: []ir.Span{ir.Plain("**a "), ir.Code("b"), ir.Plain(" c**")},
		},
		{
			name: "single asterisks are literal",
			line: "*emphasis* is not supported",
			want: []ir.Span{ir.Plain("*emphasis* is not supported")},
		},
		{
			name: "triple asterisks",
			line: "***x**",
			want: []ir.Span{ir.Plain("*"), ir.Bold("x")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatInline(tc.line)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("FormatInline(%q) mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}

func TestFormatInline_CoversInput(t *testing.T) {
	lines := []string{
		"plain",
		"mix `code` and **bold** text",
		"`a` `b` `c`",
		"edge ` case ** here",
	}

	for _, line := range lines {
		spans := FormatInline(line)
		var rebuilt string
		for _, s := range spans {
			switch s.Kind {
			case ir.SpanCode:
				rebuilt += "`" + s.Text + "`"
			case ir.SpanBold:
				rebuilt += "**" + s.Text + "**"
			default:
				rebuilt += s.Text
			}
		}
		if rebuilt != line {
			t.Errorf("spans of %q rebuild to %q", line, rebuilt)
		}
	}
}
