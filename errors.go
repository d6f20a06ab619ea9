package tex2typst

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rivo/uniseg"
)

var (
	// lexical and structural errors
	ErrUnmatchedBrackets = errors.New("unmatched brackets")
	ErrUnexpectedBrace   = errors.New("unexpected closing brace")
	ErrMissingArgument   = errors.New("missing argument")

	// grammatical errors
	ErrDoubleScript         = errors.New("double superscript or subscript")
	ErrUnexpectedSeparator  = errors.New("unexpected separator outside of an environment")
	ErrUnknownControl       = errors.New("unknown control sequence")
	ErrMalformedEnvironment = errors.New("malformed environment")

	// translation errors, fatal only in strict mode
	ErrUnknownMacro       = errors.New("unknown macro")
	ErrUnknownEnvironment = errors.New("unknown environment")
	ErrMalformedOperator  = errors.New("malformed operator name")

	// ErrInternal means an earlier stage produced a shape that later stages do not accept.
	ErrInternal = errors.New("internal error")

	// ErrTooDeep is returned when the input nests deeper than Options.MaxDepth.
	ErrTooDeep = errors.New("expression is nested too deep")
)

// ParseError is returned by Tokenizer, token passes and Parser. Line and Column are 1-based and filled
// when the error passes through Convert, Column counts display width rather than bytes.
type ParseError struct {
	Err    error
	Token  Token
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %v", e.Line, e.Column, e.Err)
	}

	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// locate fills Line and Column from the token offset in source.
func (e *ParseError) locate(source string) {
	offset := min(max(e.Token.Pos, 0), len(source))
	before := source[:offset]

	e.Line = strings.Count(before, "\n") + 1
	e.Column = uniseg.StringWidth(before[strings.LastIndexByte(before, '\n')+1:]) + 1
}

func parseErrorf(t Token, sentinel error, format string, args ...any) *ParseError {
	return &ParseError{Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...), Token: t}
}

// ConvertError is returned by Converter and Writer, Node is the offending *TexNode or *TypstNode.
type ConvertError struct {
	Err        error
	Node       any
	Suggestion string
}

func (e *ConvertError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v (did you mean %s?)", e.Err, e.Suggestion)
	}

	return e.Err.Error()
}

func (e *ConvertError) Unwrap() error {
	return e.Err
}

func convertErrorf(node any, sentinel error, format string, args ...any) *ConvertError {
	return &ConvertError{Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...), Node: node}
}

// suggest finds the name nearest to an unknown one by edit distance, the first in order on ties.
// Short names tolerate fewer edits, so that foo does not turn into lfloor. It returns "" when nothing
// is close.
func suggest(names []string, name string) string {
	limit := min(maxSuggestDistance, len(name)/3)

	best, distance := "", limit+1
	for _, n := range names {
		if d := fuzzy.LevenshteinDistance(name, n); d < distance {
			best, distance = n, d
		}
	}

	return best
}

const maxSuggestDistance = 2
