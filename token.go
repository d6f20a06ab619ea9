package tex2typst

import "fmt"

type TokenKind int

const (
	ElementToken TokenKind = iota
	CommandToken
	TextToken
	CommentToken
	WhitespaceToken
	NewlineToken
	ControlToken
	UnknownToken
)

var tokenKindNames = [...]string{
	ElementToken:    "element",
	CommandToken:    "command",
	TextToken:       "text",
	CommentToken:    "comment",
	WhitespaceToken: "whitespace",
	NewlineToken:    "newline",
	ControlToken:    "control",
	UnknownToken:    "unknown",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}

	return tokenKindNames[k]
}

// Token is one lexical unit of the input. Pos is the byte offset of the token in the source text,
// tokens produced by macro expansion carry the offset of the macro they replaced.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

func (t Token) String() string {
	return fmt.Sprintf("%v(%q)", t.Kind, t.Value)
}

func (t Token) is(kind TokenKind, value string) bool {
	return t.Kind == kind && t.Value == value
}

func (t Token) isControl(value string) bool {
	return t.is(ControlToken, value)
}

func (t Token) isCommand(value string) bool {
	return t.is(CommandToken, value)
}

func (t Token) isBlank() bool {
	return t.Kind == WhitespaceToken || t.Kind == NewlineToken
}
