package tex2typst

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"
)

// Dictionary maps command names (without the leading backslash) to Typst symbols and function names.
// A dictionary is never modified after construction, so it is safe for concurrent use.
type Dictionary struct {
	symbols *btree.Map[string, string]
	names   []string
}

// NewDictionary builds a dictionary from entries, keys may be given with or without backslash.
func NewDictionary(entries map[string]string) *Dictionary {
	symbols := btree.NewMap[string, string](0)
	for name, value := range entries {
		symbols.Set(strings.TrimPrefix(name, "\\"), value)
	}

	return newDictionary(symbols)
}

func newDictionary(symbols *btree.Map[string, string]) *Dictionary {
	names := make([]string, 0, symbols.Len())
	symbols.Scan(func(name, _ string) bool {
		names = append(names, name)
		return true
	})

	return &Dictionary{symbols: symbols, names: names}
}

// DefaultDictionary returns the built-in dictionary.
func DefaultDictionary() *Dictionary {
	return defaultDictionary
}

// LoadDictionary reads a YAML mapping of command names to Typst names and layers it over base
// (the default dictionary if base is nil).
func LoadDictionary(r io.Reader, base *Dictionary) (*Dictionary, error) {
	if base == nil {
		base = defaultDictionary
	}

	entries := map[string]string{}
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to decode symbol dictionary: %w", err)
	}

	return base.With(entries), nil
}

// With returns a copy of the dictionary with entries added or replaced.
func (d *Dictionary) With(entries map[string]string) *Dictionary {
	// Map.Copy marks the source map as shared, which is a write, so the entries are copied one by one
	symbols := btree.NewMap[string, string](0)
	d.symbols.Scan(func(name, value string) bool {
		symbols.Set(name, value)
		return true
	})

	for name, value := range entries {
		symbols.Set(strings.TrimPrefix(name, "\\"), value)
	}

	return newDictionary(symbols)
}

// Lookup returns the Typst name for a command name, the backslash is optional.
func (d *Dictionary) Lookup(name string) (string, bool) {
	return d.symbols.Get(strings.TrimPrefix(name, "\\"))
}

// Names lists command names in lexical order. The returned slice must not be modified.
func (d *Dictionary) Names() []string {
	return d.names
}

func (d *Dictionary) Len() int {
	return len(d.names)
}

// translate returns the Typst name of a command, or the command name without backslash if the
// dictionary has no entry for it.
func (d *Dictionary) translate(command string) string {
	if v, ok := d.Lookup(command); ok {
		return v
	}

	return strings.TrimPrefix(command, "\\")
}

var defaultDictionary = NewDictionary(defaultSymbols)

var defaultSymbols = map[string]string{
	// functions
	"acute":          "acute",
	"bar":            "macron",
	"binom":          "binom",
	"bold":           "bold",
	"boldsymbol":     "bold",
	"breve":          "breve",
	"check":          "caron",
	"dbinom":         "binom",
	"ddot":           "dot.double",
	"dfrac":          "frac",
	"dot":            "dot",
	"frac":           "frac",
	"grave":          "grave",
	"hat":            "hat",
	"mathbb":         "bb",
	"mathbf":         "bold",
	"mathcal":        "cal",
	"mathfrak":       "frak",
	"mathit":         "italic",
	"mathring":       "circle",
	"mathrm":         "upright",
	"mathscr":        "cal",
	"mathsf":         "sans",
	"mathtt":         "mono",
	"overbrace":      "overbrace",
	"overleftarrow":  "arrow.l",
	"overline":       "overline",
	"overrightarrow": "arrow",
	"pmb":            "bold",
	"rm":             "upright",
	"sqrt":           "sqrt",
	"tbinom":         "binom",
	"tfrac":          "frac",
	"tilde":          "tilde",
	"underbrace":     "underbrace",
	"underline":      "underline",
	"vec":            "arrow",
	"widehat":        "hat",
	"widetilde":      "tilde",

	// greek letters
	"alpha":      "alpha",
	"beta":       "beta",
	"gamma":      "gamma",
	"delta":      "delta",
	"epsilon":    "epsilon.alt",
	"varepsilon": "epsilon",
	"zeta":       "zeta",
	"eta":        "eta",
	"theta":      "theta",
	"vartheta":   "theta.alt",
	"iota":       "iota",
	"kappa":      "kappa",
	"varkappa":   "kappa.alt",
	"lambda":     "lambda",
	"mu":         "mu",
	"nu":         "nu",
	"xi":         "xi",
	"pi":         "pi",
	"varpi":      "pi.alt",
	"rho":        "rho",
	"varrho":     "rho.alt",
	"sigma":      "sigma",
	"varsigma":   "sigma.alt",
	"tau":        "tau",
	"upsilon":    "upsilon",
	"phi":        "phi.alt",
	"varphi":     "phi",
	"chi":        "chi",
	"psi":        "psi",
	"omega":      "omega",
	"Gamma":      "Gamma",
	"Delta":      "Delta",
	"Theta":      "Theta",
	"Lambda":     "Lambda",
	"Xi":         "Xi",
	"Pi":         "Pi",
	"Sigma":      "Sigma",
	"Upsilon":    "Upsilon",
	"Phi":        "Phi",
	"Psi":        "Psi",
	"Omega":      "Omega",

	// binary operators
	"pm":       "plus.minus",
	"mp":       "minus.plus",
	"times":    "times",
	"div":      "div",
	"cdot":     "dot.op",
	"ast":      "ast",
	"star":     "star",
	"circ":     "compose",
	"bullet":   "bullet",
	"oplus":    "xor",
	"ominus":   "minus.circle",
	"otimes":   "times.circle",
	"odot":     "dot.circle",
	"boxplus":  "plus.square",
	"boxtimes": "times.square",
	"setminus": "without",
	"wedge":    "and",
	"vee":      "or",
	"land":     "and",
	"lor":      "or",
	"neg":      "not",
	"lnot":     "not",
	"cap":      "sect",
	"cup":      "union",
	"sqcap":    "sect.sq",
	"sqcup":    "union.sq",
	"uplus":    "union.plus",
	"amalg":    "product.co",

	// relations
	"le":        "lt.eq",
	"leq":       "lt.eq",
	"ge":        "gt.eq",
	"geq":       "gt.eq",
	"ne":        "eq.not",
	"neq":       "eq.not",
	"leqslant":  "lt.eq.slant",
	"geqslant":  "gt.eq.slant",
	"lneq":      "lt.neq",
	"gneq":      "gt.neq",
	"nleq":      "lt.eq.not",
	"ngeq":      "gt.eq.not",
	"nless":     "lt.not",
	"ngtr":      "gt.not",
	"ll":        "lt.double",
	"gg":        "gt.double",
	"lesssim":   "lt.tilde",
	"gtrsim":    "gt.tilde",
	"prec":      "prec",
	"succ":      "succ",
	"preceq":    "prec.eq",
	"succeq":    "succ.eq",
	"sim":       "tilde.op",
	"simeq":     "tilde.eq",
	"approx":    "approx",
	"cong":      "tilde.equiv",
	"equiv":     "equiv",
	"propto":    "prop",
	"asymp":     "≍",
	"doteq":     "dot(eq)",
	"parallel":  "parallel",
	"perp":      "perp",
	"mid":       "divides",
	"nmid":      "divides.not",
	"in":        "in",
	"notin":     "in.not",
	"ni":        "in.rev",
	"subset":    "subset",
	"supset":    "supset",
	"subseteq":  "subset.eq",
	"supseteq":  "supset.eq",
	"subsetneq": "subset.neq",
	"supsetneq": "supset.neq",
	"nsubseteq": "subset.eq.not",
	"models":    "models",
	"vdash":     "tack.r",
	"dashv":     "tack.l",

	// arrows
	"to":                 "arrow.r",
	"rightarrow":         "arrow.r",
	"leftarrow":          "arrow.l",
	"gets":               "arrow.l",
	"leftrightarrow":     "arrow.l.r",
	"Rightarrow":         "arrow.r.double",
	"Leftarrow":          "arrow.l.double",
	"Leftrightarrow":     "arrow.l.r.double",
	"longrightarrow":     "arrow.r.long",
	"longleftarrow":      "arrow.l.long",
	"longleftrightarrow": "arrow.l.r.long",
	"Longrightarrow":     "arrow.r.double.long",
	"Longleftarrow":      "arrow.l.double.long",
	"Longleftrightarrow": "arrow.l.r.double.long",
	"implies":            "arrow.r.double.long",
	"impliedby":          "arrow.l.double.long",
	"iff":                "arrow.l.r.double.long",
	"mapsto":             "arrow.r.bar",
	"longmapsto":         "arrow.r.long.bar",
	"uparrow":            "arrow.t",
	"downarrow":          "arrow.b",
	"updownarrow":        "arrow.t.b",
	"Uparrow":            "arrow.t.double",
	"Downarrow":          "arrow.b.double",
	"nearrow":            "arrow.tr",
	"searrow":            "arrow.br",
	"nwarrow":            "arrow.tl",
	"swarrow":            "arrow.bl",
	"hookrightarrow":     "arrow.r.hook",
	"hookleftarrow":      "arrow.l.hook",
	"twoheadrightarrow":  "arrow.r.twohead",
	"leadsto":            "arrow.r.squiggly",
	"rightrightarrows":   "arrows.rr",
	"leftleftarrows":     "arrows.ll",
	"leftrightarrows":    "arrows.lr",
	"rightleftharpoons":  "harpoons.rtlb",
	"rightharpoonup":     "harpoon.rt",

	// big operators
	"sum":       "sum",
	"prod":      "product",
	"coprod":    "product.co",
	"int":       "integral",
	"oint":      "integral.cont",
	"iint":      "integral.double",
	"iiint":     "integral.triple",
	"iiiint":    "integral.quad",
	"oiint":     "integral.surf",
	"oiiint":    "integral.vol",
	"bigcup":    "union.big",
	"bigcap":    "sect.big",
	"bigvee":    "or.big",
	"bigwedge":  "and.big",
	"bigoplus":  "xor.big",
	"bigotimes": "times.circle.big",
	"bigodot":   "dot.circle.big",
	"biguplus":  "union.plus.big",
	"bigsqcup":  "union.sq.big",

	// operator names
	"arccos": "arccos",
	"arcsin": "arcsin",
	"arctan": "arctan",
	"arg":    "arg",
	"bmod":   "mod",
	"cos":    "cos",
	"cosh":   "cosh",
	"cot":    "cot",
	"coth":   "coth",
	"csc":    "csc",
	"deg":    "deg",
	"det":    "det",
	"dim":    "dim",
	"exp":    "exp",
	"gcd":    "gcd",
	"hom":    "hom",
	"inf":    "inf",
	"ker":    "ker",
	"lg":     "lg",
	"lim":    "lim",
	"liminf": "liminf",
	"limsup": "limsup",
	"ln":     "ln",
	"log":    "log",
	"max":    "max",
	"min":    "min",
	"mod":    "mod",
	"Pr":     "Pr",
	"sec":    "sec",
	"sin":    "sin",
	"sinh":   "sinh",
	"sup":    "sup",
	"tan":    "tan",
	"tanh":   "tanh",

	// delimiters
	"langle":    "angle.l",
	"rangle":    "angle.r",
	"lfloor":    "⌊",
	"rfloor":    "⌋",
	"lceil":     "⌈",
	"rceil":     "⌉",
	"lvert":     "|",
	"rvert":     "|",
	"vert":      "|",
	"lVert":     "||",
	"rVert":     "||",
	"Vert":      "||",
	"lbrace":    "{",
	"rbrace":    "}",
	"lbrack":    "[",
	"rbrack":    "]",
	"backslash": "backslash",

	// miscellaneous
	"infty":       "infinity",
	"partial":     "diff",
	"nabla":       "nabla",
	"emptyset":    "nothing",
	"varnothing":  "diameter",
	"forall":      "forall",
	"exists":      "exists",
	"nexists":     "exists.not",
	"aleph":       "aleph",
	"hbar":        "planck.reduce",
	"ell":         "ell",
	"Re":          "Re",
	"Im":          "Im",
	"angle":       "angle",
	"triangle":    "triangle.t",
	"square":      "square",
	"Box":         "square",
	"top":         "top",
	"bot":         "bot",
	"prime":       "prime",
	"dagger":      "dagger",
	"ddagger":     "dagger.double",
	"S":           "section",
	"P":           "pilcrow",
	"checkmark":   "checkmark",
	"flat":        "flat",
	"sharp":       "sharp",
	"natural":     "natural",
	"clubsuit":    "suit.club",
	"diamondsuit": "suit.diamond",
	"heartsuit":   "suit.heart",
	"spadesuit":   "suit.spade",
	"imath":       "dotless.i",
	"jmath":       "dotless.j",
	"therefore":   "therefore",
	"because":     "because",
	"dots":        "dots.h",
	"ldots":       "dots.h",
	"cdots":       "dots.h.c",
	"vdots":       "dots.v",
	"ddots":       "dots.down",
	"colon":       "colon",

	// spacing and layout
	"quad":         "quad",
	"qquad":        "wide",
	"nonumber":     "",
	"displaystyle": "",
	"textstyle":    "",
}
