package tex2typst

import (
	"fmt"
	"strings"
)

// ElideScriptWhitespace drops whitespace right before or right after a _ or ^ marker, so "x _ 1"
// and "x_1" produce the same tokens.
func ElideScriptWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for i, t := range tokens {
		if t.Kind == WhitespaceToken {
			if i+1 < len(tokens) && isScriptMark(tokens[i+1]) {
				continue
			}

			if len(out) > 0 && isScriptMark(out[len(out)-1]) {
				continue
			}
		}

		out = append(out, t)
	}

	return out
}

// ExpandMacros replaces every command found in macros with the tokens of its replacement text. The
// replacement is not searched for further macros.
func ExpandMacros(tokens []Token, macros map[string]string) ([]Token, error) {
	if len(macros) == 0 {
		return tokens, nil
	}

	expansions := make(map[string][]Token, len(macros))
	for name, replacement := range macros {
		if !strings.HasPrefix(name, "\\") {
			name = "\\" + name
		}

		expanded, err := Tokenize(replacement)
		if err != nil {
			return nil, fmt.Errorf("invalid replacement of macro %s: %w", name, err)
		}

		expansions[name] = expanded
	}

	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		expanded, ok := expansions[t.Value]
		if t.Kind != CommandToken || !ok {
			out = append(out, t)
			continue
		}

		for _, e := range expanded {
			e.Pos = t.Pos
			out = append(out, e)
		}
	}

	return out, nil
}

func isScriptMark(t Token) bool {
	return t.isControl("_") || t.isControl("^")
}
