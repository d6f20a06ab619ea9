package tex2typst

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Tokenizer splits math markup into a flat sequence of tokens.
type Tokenizer struct {
	input   string
	pos     int
	pending []Token
}

func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

// Tokenize reads all tokens from the text. It only fails when an argument of a text-bearing command
// (like \text or \begin) is missing or its braces are not balanced.
func Tokenize(text string) ([]Token, error) {
	l := NewTokenizer(text)

	var tokens []Token
	for {
		t, err := l.Token()
		if err == io.EOF {
			return tokens, nil
		}

		if err != nil {
			return nil, err
		}

		tokens = append(tokens, t)
	}
}

// Token returns next token or io.EOF when the input is exhausted.
func (l *Tokenizer) Token() (Token, error) {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t, nil
	}

	if l.pos >= len(l.input) {
		return Token{}, io.EOF
	}

	return l.read()
}

func (l *Tokenizer) read() (Token, error) {
	start := l.pos
	char := l.input[l.pos]

	switch {
	case char == '%':
		return l.readComment(), nil
	case char == '{' || char == '}' || char == '_' || char == '^' || char == '&':
		l.pos++
		return Token{Kind: ControlToken, Value: string(char), Pos: start}, nil
	case char == '\n':
		l.pos++
		return Token{Kind: NewlineToken, Value: "\n", Pos: start}, nil
	case char == '\r':
		l.pos++
		if l.pos < len(l.input) && l.input[l.pos] == '\n' {
			l.pos++
		}

		return Token{Kind: NewlineToken, Value: "\n", Pos: start}, nil
	case char == ' ' || char == '\t':
		return l.readWhitespace(), nil
	case char == '\\':
		return l.readBackslash()
	case isDigit(char):
		return l.readNumber(), nil
	case isLetter(rune(char)):
		l.pos++
		return Token{Kind: ElementToken, Value: string(char), Pos: start}, nil
	case strings.IndexByte(elementChars, char) >= 0:
		l.pos++
		return Token{Kind: ElementToken, Value: string(char), Pos: start}, nil
	default:
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += size
		return Token{Kind: UnknownToken, Value: l.input[start:l.pos], Pos: start}, nil
	}
}

// readComment reads a comment after %, the line break itself is left for the next token.
func (l *Tokenizer) readComment() Token {
	start := l.pos
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		end = len(l.input)
	} else {
		end += start
	}

	l.pos = end
	return Token{Kind: CommentToken, Value: strings.TrimSuffix(l.input[start+1:end], "\r"), Pos: start}
}

func (l *Tokenizer) readWhitespace() Token {
	start := l.pos
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}

	return Token{Kind: WhitespaceToken, Value: l.input[start:l.pos], Pos: start}
}

// readNumber reads a run of digits with an optional decimal part.
func (l *Tokenizer) readNumber() Token {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}

	if l.pos+1 < len(l.input) && l.input[l.pos] == '.' && isDigit(l.input[l.pos+1]) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}

	return Token{Kind: ElementToken, Value: l.input[start:l.pos], Pos: start}
}

func (l *Tokenizer) readBackslash() (Token, error) {
	start := l.pos
	if start+1 >= len(l.input) {
		l.pos++
		return Token{Kind: UnknownToken, Value: "\\", Pos: start}, nil
	}

	pair := l.input[start : start+2]
	if pair == "\\\\" || pair == "\\," {
		l.pos += 2
		return Token{Kind: ControlToken, Value: pair, Pos: start}, nil
	}

	if _, ok := escapedPairs[pair]; ok {
		l.pos += 2
		return Token{Kind: ElementToken, Value: pair, Pos: start}, nil
	}

	l.pos++
	for l.pos < len(l.input) && isLetter(rune(l.input[l.pos])) {
		l.pos++
	}

	// backslash followed by something which is neither a letter nor a known escape
	if l.pos == start+1 {
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.pos += size
		return Token{Kind: UnknownToken, Value: l.input[start:l.pos], Pos: start}, nil
	}

	command := Token{Kind: CommandToken, Value: l.input[start:l.pos], Pos: start}
	if _, ok := textCommands[command.Value]; ok {
		if err := l.readTextArgument(command); err != nil {
			return Token{}, err
		}
	}

	return command, nil
}

// readTextArgument captures the braced argument of a text-bearing command verbatim and queues it as
// three tokens: an opening brace, the unescaped text and a closing brace.
func (l *Tokenizer) readTextArgument(command Token) error {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\t') {
		l.pos++
	}

	if l.pos >= len(l.input) || l.input[l.pos] != '{' {
		return &ParseError{Err: fmt.Errorf("%w: no content for %s command", ErrMissingArgument, command.Value), Token: command}
	}

	open := l.pos
	end, err := findClosingBraceChar(l.input, open)
	if err != nil {
		return &ParseError{Err: fmt.Errorf("%w: argument of %s command", err, command.Value), Token: command}
	}

	l.pending = append(l.pending,
		Token{Kind: ControlToken, Value: "{", Pos: open},
		Token{Kind: TextToken, Value: unescapeText(l.input[open+1 : end]), Pos: open + 1},
		Token{Kind: ControlToken, Value: "}", Pos: end},
	)

	l.pos = end + 1
	return nil
}

// unescapeText resolves escape sequences of the characters which have special meaning in markup.
func unescapeText(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && strings.IndexByte("{}\\$&#_%", s[i+1]) >= 0 {
			b.WriteByte(s[i+1])
			i++
			continue
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// elementChars are printable characters emitted as single element tokens.
const elementChars = "+-*/=<>!.,;:?()[]|'~@"

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isLetter returns true for a letter
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
