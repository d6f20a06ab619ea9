package tex2typst_test

import (
	"testing"

	"github.com/eolymp/go-tex2typst"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElideScriptWhitespace(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output []tex2typst.Token
	}{
		{
			name:   "around subscript",
			input:  "x _ 1",
			output: []tex2typst.Token{el("x"), ctl("_"), el("1")},
		},
		{
			name:   "around superscript with tabs",
			input:  "x\t^\t2",
			output: []tex2typst.Token{el("x"), ctl("^"), el("2")},
		},
		{
			name:   "other whitespace is kept",
			input:  "a ^{b} c",
			output: []tex2typst.Token{el("a"), ctl("^"), ctl("{"), el("b"), ctl("}"), ws(" "), el("c")},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := tex2typst.Tokenize(tc.input)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.output, tex2typst.ElideScriptWhitespace(tokens), ignorePos); diff != "" {
				t.Errorf("Tokens do not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestElideScriptWhitespace_SameTree(t *testing.T) {
	parse := func(input string) *tex2typst.TexNode {
		tokens, err := tex2typst.Tokenize(input)
		require.NoError(t, err)

		tree, err := tex2typst.Parse(tex2typst.ElideScriptWhitespace(tokens), nil)
		require.NoError(t, err)

		return tree
	}

	if diff := cmp.Diff(parse("x_1"), parse("x _ 1")); diff != "" {
		t.Errorf("Trees do not match (-want +got):\n%s", diff)
	}
}

func TestExpandMacros(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		macros map[string]string
		output []tex2typst.Token
	}{
		{
			name:   "name without backslash",
			input:  "\\RR",
			macros: map[string]string{"RR": "\\mathbb{R}"},
			output: []tex2typst.Token{cmd("\\mathbb"), ctl("{"), el("R"), ctl("}")},
		},
		{
			name:   "name with backslash",
			input:  "1+\\half",
			macros: map[string]string{"\\half": "\\frac{1}{2}"},
			output: []tex2typst.Token{el("1"), el("+"), cmd("\\frac"), ctl("{"), el("1"), ctl("}"), ctl("{"), el("2"), ctl("}")},
		},
		{
			name:   "replacement is not expanded again",
			input:  "\\a",
			macros: map[string]string{"a": "\\b", "b": "x"},
			output: []tex2typst.Token{cmd("\\b")},
		},
		{
			name:   "replacement with text",
			input:  "\\T",
			macros: map[string]string{"T": "\\text{a b}"},
			output: []tex2typst.Token{cmd("\\text"), ctl("{"), txt("a b"), ctl("}")},
		},
		{
			name:   "no macros",
			input:  "\\alpha",
			output: []tex2typst.Token{cmd("\\alpha")},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := tex2typst.Tokenize(tc.input)
			require.NoError(t, err)

			got, err := tex2typst.ExpandMacros(tokens, tc.macros)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.output, got, ignorePos); diff != "" {
				t.Errorf("Tokens do not match (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandMacros_Position(t *testing.T) {
	tokens, err := tex2typst.Tokenize("ab\\RR")
	require.NoError(t, err)

	got, err := tex2typst.ExpandMacros(tokens, map[string]string{"RR": "xy"})
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, 2, got[2].Pos)
	assert.Equal(t, 2, got[3].Pos)
}

func TestExpandMacros_InvalidReplacement(t *testing.T) {
	tokens, err := tex2typst.Tokenize("\\T")
	require.NoError(t, err)

	_, err = tex2typst.ExpandMacros(tokens, map[string]string{"T": "\\text"})
	assert.ErrorIs(t, err, tex2typst.ErrMissingArgument)
}
