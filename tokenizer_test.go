package tex2typst_test

import (
	"testing"

	"github.com/eolymp/go-tex2typst"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ignorePos = cmpopts.IgnoreFields(tex2typst.Token{}, "Pos")

func el(v string) tex2typst.Token  { return tex2typst.Token{Kind: tex2typst.ElementToken, Value: v} }
func cmd(v string) tex2typst.Token { return tex2typst.Token{Kind: tex2typst.CommandToken, Value: v} }
func ctl(v string) tex2typst.Token { return tex2typst.Token{Kind: tex2typst.ControlToken, Value: v} }
func txt(v string) tex2typst.Token { return tex2typst.Token{Kind: tex2typst.TextToken, Value: v} }
func ws(v string) tex2typst.Token  { return tex2typst.Token{Kind: tex2typst.WhitespaceToken, Value: v} }

func TestTokenize(t *testing.T) {
	nl := tex2typst.Token{Kind: tex2typst.NewlineToken, Value: "\n"}

	tt := []struct {
		name   string
		input  string
		output []tex2typst.Token
	}{
		{
			name:   "scripts",
			input:  "x_1^2",
			output: []tex2typst.Token{el("x"), ctl("_"), el("1"), ctl("^"), el("2")},
		},
		{
			name:   "letters are separate elements",
			input:  "xyz",
			output: []tex2typst.Token{el("x"), el("y"), el("z")},
		},
		{
			name:   "numbers are grouped",
			input:  "123.45+6",
			output: []tex2typst.Token{el("123.45"), el("+"), el("6")},
		},
		{
			name:   "trailing dot is not a decimal part",
			input:  "1.",
			output: []tex2typst.Token{el("1"), el(".")},
		},
		{
			name:   "commands",
			input:  "\\alpha\\beta x",
			output: []tex2typst.Token{cmd("\\alpha"), cmd("\\beta"), ws(" "), el("x")},
		},
		{
			name:  "comment",
			input: "a % note\nb",
			output: []tex2typst.Token{
				el("a"),
				ws(" "),
				{Kind: tex2typst.CommentToken, Value: " note"},
				nl,
				el("b"),
			},
		},
		{
			name:   "text argument is taken verbatim",
			input:  "\\text{a \\{b\\} x_1}",
			output: []tex2typst.Token{cmd("\\text"), ctl("{"), txt("a {b} x_1"), ctl("}")},
		},
		{
			name:   "text argument after space",
			input:  "\\operatorname {sech}",
			output: []tex2typst.Token{cmd("\\operatorname"), ctl("{"), txt("sech"), ctl("}")},
		},
		{
			name:   "environment name",
			input:  "\\begin{matrix}a\\end{matrix}",
			output: []tex2typst.Token{cmd("\\begin"), ctl("{"), txt("matrix"), ctl("}"), el("a"), cmd("\\end"), ctl("{"), txt("matrix"), ctl("}")},
		},
		{
			name:   "escaped pairs",
			input:  "\\{\\}\\|\\;",
			output: []tex2typst.Token{el("\\{"), el("\\}"), el("\\|"), el("\\;")},
		},
		{
			name:   "line break and thin space",
			input:  "a\\\\b\\,c",
			output: []tex2typst.Token{el("a"), ctl("\\\\"), el("b"), ctl("\\,"), el("c")},
		},
		{
			name:   "separator",
			input:  "a&b",
			output: []tex2typst.Token{el("a"), ctl("&"), el("b")},
		},
		{
			name:   "windows line ending",
			input:  "a\r\nb",
			output: []tex2typst.Token{el("a"), nl, el("b")},
		},
		{
			name:   "digits after command",
			input:  "\\frac123",
			output: []tex2typst.Token{cmd("\\frac"), el("123")},
		},
		{
			name:   "digits after script mark",
			input:  "x^23",
			output: []tex2typst.Token{el("x"), ctl("^"), el("23")},
		},
		{
			name:  "unknown characters",
			input: "é\\@\\",
			output: []tex2typst.Token{
				{Kind: tex2typst.UnknownToken, Value: "é"},
				{Kind: tex2typst.UnknownToken, Value: "\\@"},
				{Kind: tex2typst.UnknownToken, Value: "\\"},
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tex2typst.Tokenize(tc.input)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.output, got, ignorePos); diff != "" {
				t.Errorf("Tokens do not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	got, err := tex2typst.Tokenize("a \\beta\\text{b}")
	require.NoError(t, err)

	var positions []int
	for _, token := range got {
		positions = append(positions, token.Pos)
	}

	assert.Equal(t, []int{0, 1, 2, 7, 12, 13, 14}, positions)
}

func TestTokenize_Errors(t *testing.T) {
	tt := []struct {
		name  string
		input string
		err   error
	}{
		{name: "text without braces", input: "\\text x", err: tex2typst.ErrMissingArgument},
		{name: "text at end of input", input: "\\text", err: tex2typst.ErrMissingArgument},
		{name: "unclosed text", input: "\\text{a", err: tex2typst.ErrUnmatchedBrackets},
		{name: "unclosed environment name", input: "\\begin{matrix", err: tex2typst.ErrUnmatchedBrackets},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tex2typst.Tokenize(tc.input)
			assert.ErrorIs(t, err, tc.err)

			var perr *tex2typst.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 0, perr.Token.Pos)
		})
	}
}
