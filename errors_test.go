package tex2typst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	err := parseErrorf(Token{Kind: ControlToken, Value: "}", Pos: 6}, ErrUnexpectedBrace, "unmatched '%s'", "}")
	assert.Equal(t, "unexpected closing brace: unmatched '}'", err.Error())
	assert.True(t, errors.Is(err, ErrUnexpectedBrace))

	err.locate("ab\ncd }")
	assert.Equal(t, 2, err.Line)
	assert.Equal(t, 4, err.Column)
	assert.Equal(t, "2:4: unexpected closing brace: unmatched '}'", err.Error())
}

func TestParseError_LocateOutOfRange(t *testing.T) {
	err := &ParseError{Err: ErrMissingArgument, Token: Token{Pos: 100}}
	err.locate("x\ny")

	assert.Equal(t, 2, err.Line)
	assert.Equal(t, 2, err.Column)
}

func TestConvertError(t *testing.T) {
	err := convertErrorf(nil, ErrUnknownMacro, "\\%s", "lamda")
	assert.Equal(t, "unknown macro: \\lamda", err.Error())

	err.Suggestion = "\\lambda"
	assert.Equal(t, "unknown macro: \\lamda (did you mean \\lambda?)", err.Error())
	assert.ErrorIs(t, err, ErrUnknownMacro)
}

func TestSuggest(t *testing.T) {
	names := DefaultDictionary().Names()

	tt := []struct {
		name   string
		input  string
		output string
	}{
		{name: "missing letter", input: "lamda", output: "lambda"},
		{name: "prefix", input: "matbb", output: "mathbb"},
		{name: "typo", input: "infinty", output: "infty"},
		{name: "extra letters", input: "mathbbb", output: "mathbb"},
		{name: "short name", input: "foo", output: ""},
		{name: "subsequence too far", input: "flr", output: ""},
		{name: "nothing close", input: "qwertyuiop", output: ""},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.output, suggest(names, tc.input))
		})
	}
}
