package tex2typst

// escapedPairs are backslash sequences tokenized as a single element.
var escapedPairs = map[string]struct{}{
	"\\{": {},
	"\\}": {},
	"\\%": {},
	"\\$": {},
	"\\&": {},
	"\\#": {},
	"\\_": {},
	"\\|": {},
	"\\;": {},
	"\\:": {},
	"\\!": {},
	"\\ ": {},
}

// element translates a single element (a letter, number, punctuation or escaped pair) to Typst.
func element(a string) string {
	switch a {
	case "\\{":
		return "{"
	case "\\}":
		return "}"
	case "\\%":
		return "%"
	case "\\|":
		return "||"
	case "\\;":
		return "thick"
	case "\\:":
		return "med"
	case "\\!":
		return ""
	case "\\ ":
		return "space"
	case "~":
		return "space.nobreak"
	case "/":
		return "\\/"
	case "#":
		return "\\#"
	case "$":
		return "\\$"
	case "\"":
		return "\\\""
	case "@":
		return "\\@"
	default:
		return a
	}
}
