package tex2typst

import "strings"

// String writes node back as markup. The result is normalized (groups are braced, scripts follow
// their base) and meant for diagnostics rather than round trips.
func String(node *TexNode) string {
	var b strings.Builder
	writeTex(&b, node)
	return b.String()
}

func writeTex(b *strings.Builder, node *TexNode) {
	switch node.Kind {
	case TexEmpty:
	case TexElement, TexControl, TexWhitespace, TexNewline:
		b.WriteString(node.Content)
	case TexSymbol:
		b.WriteString(node.Content + " ")
	case TexUnknownMacro:
		b.WriteString("\\" + node.Content + " ")
	case TexText:
		b.WriteString("\\text{" + node.Content + "}")
	case TexComment:
		b.WriteString("%" + node.Content + "\n")
	case TexOrdGroup:
		for _, child := range node.Args {
			writeTex(b, child)
		}
	case TexSupSub:
		writeTex(b, node.Base)
		if node.Sub != nil {
			b.WriteString("_")
			writeBraced(b, node.Sub)
		}

		if node.Sup != nil {
			b.WriteString("^")
			writeBraced(b, node.Sup)
		}
	case TexUnaryFunc, TexBinaryFunc:
		b.WriteString(node.Content)
		if node.Index != nil {
			b.WriteString("[")
			writeTex(b, node.Index)
			b.WriteString("]")
		}

		for _, arg := range node.Args {
			if arg.Kind == TexText && node.Content == "\\operatorname" {
				b.WriteString("{" + arg.Content + "}")
				continue
			}

			writeBraced(b, arg)
		}
	case TexLeftRight:
		b.WriteString("\\left")
		writeTex(b, node.Args[0])
		writeTex(b, node.Args[1])
		b.WriteString("\\right")
		writeTex(b, node.Args[2])
	case TexBeginEnd:
		b.WriteString("\\begin{" + node.Content + "}")
		if node.Options != "" {
			b.WriteString("{" + node.Options + "}")
		}

		for i, row := range node.Rows {
			if i > 0 {
				b.WriteString("\\\\")
			}

			for j, cell := range row {
				if j > 0 {
					b.WriteString("&")
				}

				writeTex(b, cell)
			}
		}

		b.WriteString("\\end{" + node.Content + "}")
	}
}

func writeBraced(b *strings.Builder, node *TexNode) {
	b.WriteString("{")
	writeTex(b, node)
	b.WriteString("}")
}
