package tex2typst

// textCommands take a braced argument which is captured verbatim by the tokenizer.
var textCommands = map[string]struct{}{
	"\\text":         {},
	"\\textrm":       {},
	"\\mbox":         {},
	"\\operatorname": {},
	"\\begin":        {},
	"\\end":          {},
}

// unaryCommands take exactly one argument, every other command not listed in binaryCommands
// takes none.
var unaryCommands = map[string]struct{}{
	"\\sqrt":           {},
	"\\text":           {},
	"\\textrm":         {},
	"\\mbox":           {},
	"\\operatorname":   {},
	"\\acute":          {},
	"\\bar":            {},
	"\\bold":           {},
	"\\boldsymbol":     {},
	"\\breve":          {},
	"\\check":          {},
	"\\ddot":           {},
	"\\dot":            {},
	"\\grave":          {},
	"\\hat":            {},
	"\\mathbb":         {},
	"\\mathbf":         {},
	"\\mathcal":        {},
	"\\mathfrak":       {},
	"\\mathit":         {},
	"\\mathring":       {},
	"\\mathrm":         {},
	"\\mathscr":        {},
	"\\mathsf":         {},
	"\\mathtt":         {},
	"\\overbrace":      {},
	"\\overleftarrow":  {},
	"\\overline":       {},
	"\\overrightarrow": {},
	"\\pmb":            {},
	"\\rm":             {},
	"\\tilde":          {},
	"\\underbrace":     {},
	"\\underline":      {},
	"\\vec":            {},
	"\\widehat":        {},
	"\\widetilde":      {},
}

var binaryCommands = map[string]struct{}{
	"\\frac":   {},
	"\\tfrac":  {},
	"\\dfrac":  {},
	"\\binom":  {},
	"\\dbinom": {},
	"\\tbinom": {},
}

// arity returns the number of arguments a command takes.
func arity(command string) int {
	if _, ok := unaryCommands[command]; ok {
		return 1
	}

	if _, ok := binaryCommands[command]; ok {
		return 2
	}

	return 0
}

// scriptModifiers may follow an operator before its scripts, they do not change the output.
var scriptModifiers = map[string]struct{}{
	"\\limits":   {},
	"\\nolimits": {},
}

// intrinsicOperators are operator names Typst knows as symbols while \operatorname is needed for
// them in the source.
var intrinsicOperators = map[string]struct{}{
	"dim":  {},
	"id":   {},
	"im":   {},
	"mod":  {},
	"Pr":   {},
	"sech": {},
	"csch": {},
}

// autoSizedPairs are delimiter pairs Typst scales on its own, so \left...\right needs no lr() call.
var autoSizedPairs = map[string]struct{}{
	"()":               {},
	"[]":               {},
	"\\{\\}":           {},
	"\\lfloor\\rfloor": {},
	"\\lceil\\rceil":   {},
}

// delimiterCommands may follow \left, \middle and \right besides the single character delimiters.
var delimiterCommands = map[string]struct{}{
	"\\lfloor": {},
	"\\rfloor": {},
	"\\lceil":  {},
	"\\rceil":  {},
	"\\langle": {},
	"\\rangle": {},
	"\\lvert":  {},
	"\\rvert":  {},
	"\\lVert":  {},
	"\\rVert":  {},
	"\\vert":   {},
	"\\Vert":   {},
	"\\lbrace": {},
	"\\rbrace": {},
	"\\lbrack": {},
	"\\rbrack": {},
}

func isDelimiter(t Token) bool {
	switch t.Kind {
	case ElementToken:
		switch t.Value {
		case "(", ")", "[", "]", "|", ".", "/", "<", ">", "\\{", "\\}", "\\|":
			return true
		}
	case CommandToken:
		_, ok := delimiterCommands[t.Value]
		return ok
	}

	return false
}

type environmentFamily int

const (
	unknownEnvironment environmentFamily = iota
	alignEnvironment
	matrixEnvironment
	casesEnvironment
)

var environments = map[string]environmentFamily{
	"align":       alignEnvironment,
	"align*":      alignEnvironment,
	"aligned":     alignEnvironment,
	"gather":      alignEnvironment,
	"gather*":     alignEnvironment,
	"gathered":    alignEnvironment,
	"split":       alignEnvironment,
	"eqnarray":    alignEnvironment,
	"matrix":      matrixEnvironment,
	"smallmatrix": matrixEnvironment,
	"pmatrix":     matrixEnvironment,
	"bmatrix":     matrixEnvironment,
	"Bmatrix":     matrixEnvironment,
	"vmatrix":     matrixEnvironment,
	"Vmatrix":     matrixEnvironment,
	"array":       matrixEnvironment,
	"cases":       casesEnvironment,
	"dcases":      casesEnvironment,
}

// matrixDelimiters holds the delim argument of mat() per environment, pmatrix uses the default.
var matrixDelimiters = map[string]string{
	"matrix":      "#none",
	"smallmatrix": "#none",
	"array":       "#none",
	"bmatrix":     `"["`,
	"Bmatrix":     `"{"`,
	"vmatrix":     `"|"`,
	"Vmatrix":     `"||"`,
}

// environmentsWithSpec take a column spec argument right after \begin{name}.
var environmentsWithSpec = map[string]struct{}{
	"array": {},
}
