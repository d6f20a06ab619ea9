package tex2typst

// findClosing walks forward from the opener at start and returns the index of the matching closer,
// or -1 if the tokens end first. Nested opener/closer pairs are skipped.
func findClosing(tokens []Token, start int, isOpen, isClose func(Token) bool) int {
	depth := 0
	for i := start; i < len(tokens); i++ {
		switch {
		case isOpen(tokens[i]):
			depth++
		case isClose(tokens[i]):
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func isOpenBrace(t Token) bool  { return t.isControl("{") }
func isCloseBrace(t Token) bool { return t.isControl("}") }

func isOpenSquare(t Token) bool  { return t.is(ElementToken, "[") }
func isCloseSquare(t Token) bool { return t.is(ElementToken, "]") }

func isLeft(t Token) bool  { return t.isCommand("\\left") }
func isRight(t Token) bool { return t.isCommand("\\right") }

func isBegin(t Token) bool { return t.isCommand("\\begin") }
func isEnd(t Token) bool   { return t.isCommand("\\end") }

// findClosingBraceChar is the character level version of findClosing for curly braces. A backslash
// and the character after it are one unit, so escaped braces are not counted.
func findClosingBraceChar(s string, start int) (int, error) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return -1, ErrUnmatchedBrackets
}
