package tex2typst

// tokenText joins token values back into markup.
func tokenText(tokens []Token) (str string) {
	for _, t := range tokens {
		str += t.Value
	}

	return
}

func isLineBreak(node *TexNode) bool {
	return node.Kind == TexControl && node.Content == "\\\\"
}
