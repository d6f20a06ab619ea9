package tex2typst

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Converter maps the source syntax tree onto the Typst tree. Like Parser it keeps a depth counter
// and must not be shared between goroutines.
type Converter struct {
	dict            *Dictionary
	nonStrict       bool
	preferIntrinsic bool
	maxDepth        int
	depth           int
	logger          *slog.Logger
}

// ConvertTree converts a source tree with the given options, nil options mean DefaultOptions.
func ConvertTree(node *TexNode, opts *Options) (*TypstNode, error) {
	return NewConverter(opts).Convert(node)
}

func NewConverter(opts *Options) *Converter {
	if opts == nil {
		opts = DefaultOptions()
	}

	return &Converter{
		dict:            opts.dictionary(),
		nonStrict:       opts.NonStrict,
		preferIntrinsic: opts.PreferTypstIntrinsic,
		maxDepth:        opts.maxDepth(),
		logger:          opts.logger(),
	}
}

func (c *Converter) Convert(node *TexNode) (*TypstNode, error) {
	c.depth = 0
	return c.convert(node)
}

func (c *Converter) convert(node *TexNode) (*TypstNode, error) {
	c.depth++
	defer func() { c.depth-- }()

	if c.depth > c.maxDepth {
		return nil, &ConvertError{Err: ErrTooDeep, Node: node}
	}

	switch node.Kind {
	case TexEmpty, TexWhitespace:
		return &TypstNode{Kind: TypstEmpty}, nil
	case TexElement:
		return typstSymbol(element(node.Content)), nil
	case TexSymbol:
		return typstSymbol(c.dict.translate(node.Content)), nil
	case TexText:
		return &TypstNode{Kind: TypstText, Content: node.Content}, nil
	case TexComment:
		return &TypstNode{Kind: TypstComment, Content: node.Content}, nil
	case TexNewline:
		return &TypstNode{Kind: TypstNewline}, nil
	case TexControl:
		return c.control(node)
	case TexOrdGroup:
		args, err := c.convertAll(node.Args)
		if err != nil {
			return nil, err
		}

		return &TypstNode{Kind: TypstGroup, Args: args}, nil
	case TexSupSub:
		return c.supSub(node)
	case TexUnaryFunc:
		return c.unaryFunc(node)
	case TexBinaryFunc:
		args, err := c.convertAll(node.Args)
		if err != nil {
			return nil, err
		}

		return &TypstNode{Kind: TypstBinaryFunc, Content: c.dict.translate(node.Content), Args: args}, nil
	case TexLeftRight:
		return c.leftRight(node)
	case TexBeginEnd:
		return c.environment(node)
	case TexUnknownMacro:
		if !c.nonStrict {
			err := convertErrorf(node, ErrUnknownMacro, "\\%s", node.Content)
			if s := suggest(c.dict.Names(), node.Content); s != "" {
				err.Suggestion = "\\" + s
			}

			return nil, err
		}

		c.logger.Debug("passing unknown macro through", "name", node.Content)
		return &TypstNode{Kind: TypstUnknown, Content: node.Content}, nil
	}

	return nil, &ConvertError{Err: ErrInternal, Node: node}
}

func (c *Converter) convertAll(nodes []*TexNode) ([]*TypstNode, error) {
	out := make([]*TypstNode, 0, len(nodes))
	for _, n := range nodes {
		converted, err := c.convert(n)
		if err != nil {
			return nil, err
		}

		out = append(out, converted)
	}

	return out, nil
}

func (c *Converter) control(node *TexNode) (*TypstNode, error) {
	switch node.Content {
	case "\\\\":
		return typstSymbol("\\"), nil
	case "\\,":
		return typstSymbol("thin"), nil
	}

	return nil, convertErrorf(node, ErrInternal, "control sequence %q outside of an environment", node.Content)
}

func (c *Converter) supSub(node *TexNode) (*TypstNode, error) {
	base, sup, sub := node.Base, node.Sup, node.Sub

	// \overbrace{x}^{note} and \underbrace{x}_{note} take the note as a second argument
	if base.Kind == TexUnaryFunc && (base.Content == "\\overbrace" && sup != nil || base.Content == "\\underbrace" && sub != nil) {
		note := sup
		if base.Content == "\\overbrace" {
			sup = nil
		} else {
			note, sub = sub, nil
		}

		braced := &TexNode{Kind: TexBinaryFunc, Content: base.Content, Args: []*TexNode{base.Args[0], note}}
		if sup == nil && sub == nil {
			return c.convert(braced)
		}

		base = braced
	}

	out := &TypstNode{Kind: TypstSupSub}
	if base.Kind == TexEmpty {
		out.Base = &TypstNode{Kind: TypstText}
	} else {
		converted, err := c.convert(base)
		if err != nil {
			return nil, err
		}

		out.Base = converted
	}

	out.Primes, sup = splitPrimes(sup)

	if sub != nil && sub.Kind != TexEmpty {
		converted, err := c.convert(sub)
		if err != nil {
			return nil, err
		}

		out.Sub = converted
	}

	if sup != nil && sup.Kind != TexEmpty {
		converted, err := c.convert(sup)
		if err != nil {
			return nil, err
		}

		out.Sup = converted
	}

	if out.Sub == nil && out.Sup == nil && out.Primes == 0 {
		return out.Base, nil
	}

	return out, nil
}

// splitPrimes counts the prime marks leading the superscript and returns what follows them.
func splitPrimes(sup *TexNode) (int, *TexNode) {
	switch {
	case sup == nil:
		return 0, nil
	case isPrime(sup):
		return 1, nil
	case sup.Kind != TexOrdGroup:
		return 0, sup
	}

	n := 0
	for n < len(sup.Args) && isPrime(sup.Args[n]) {
		n++
	}

	if n == 0 {
		return 0, sup
	}

	return n, group(sup.Args[n:])
}

func isPrime(node *TexNode) bool {
	return node.Kind == TexSymbol && node.Content == "\\prime"
}

func (c *Converter) unaryFunc(node *TexNode) (*TypstNode, error) {
	arg := node.Args[0]

	switch node.Content {
	case "\\sqrt":
		if node.Index == nil {
			break
		}

		args, err := c.convertAll([]*TexNode{node.Index, arg})
		if err != nil {
			return nil, err
		}

		return &TypstNode{Kind: TypstBinaryFunc, Content: "root", Args: args}, nil
	case "\\mathbb":
		if arg.Kind == TexElement && len(arg.Content) == 1 && 'A' <= arg.Content[0] && arg.Content[0] <= 'Z' {
			return typstSymbol(arg.Content + arg.Content), nil
		}
	case "\\mathbf":
		converted, err := c.convert(arg)
		if err != nil {
			return nil, err
		}

		bold := &TypstNode{Kind: TypstUnaryFunc, Content: c.dict.translate(node.Content), Args: []*TypstNode{converted}}
		return &TypstNode{Kind: TypstUnaryFunc, Content: "upright", Args: []*TypstNode{bold}}, nil
	case "\\operatorname":
		return c.operatorName(node)
	case "\\middle":
		converted, err := c.delimiter(arg)
		if err != nil {
			return nil, err
		}

		return &TypstNode{Kind: TypstUnaryFunc, Content: "mid", Args: []*TypstNode{converted}}, nil
	}

	converted, err := c.convert(arg)
	if err != nil {
		return nil, err
	}

	return &TypstNode{Kind: TypstUnaryFunc, Content: c.dict.translate(node.Content), Args: []*TypstNode{converted}}, nil
}

func (c *Converter) operatorName(node *TexNode) (*TypstNode, error) {
	name := strings.TrimSpace(node.Args[0].Content)
	if node.Args[0].Kind != TexText || name == "" {
		if !c.nonStrict {
			return nil, convertErrorf(node, ErrMalformedOperator, "expecting a name")
		}

		return &TypstNode{Kind: TypstEmpty}, nil
	}

	if _, ok := intrinsicOperators[name]; ok && c.preferIntrinsic {
		return typstSymbol(name), nil
	}

	return &TypstNode{Kind: TypstUnaryFunc, Content: "op", Args: []*TypstNode{{Kind: TypstText, Content: name}}}, nil
}

func (c *Converter) leftRight(node *TexNode) (*TypstNode, error) {
	left, body, right := node.Args[0], node.Args[1], node.Args[2]

	l, err := c.delimiter(left)
	if err != nil {
		return nil, err
	}

	b, err := c.convert(body)
	if err != nil {
		return nil, err
	}

	r, err := c.delimiter(right)
	if err != nil {
		return nil, err
	}

	inner := &TypstNode{Kind: TypstGroup, Args: []*TypstNode{l, b, r}}
	if _, ok := autoSizedPairs[left.Content+right.Content]; ok {
		return inner, nil
	}

	return &TypstNode{Kind: TypstUnaryFunc, Content: "lr", Args: []*TypstNode{inner}}, nil
}

// delimiter converts the delimiter of \left, \middle or \right.
func (c *Converter) delimiter(node *TexNode) (*TypstNode, error) {
	switch node.Content {
	case ".":
		return &TypstNode{Kind: TypstEmpty}, nil
	case "<":
		return typstSymbol("angle.l"), nil
	case ">":
		return typstSymbol("angle.r"), nil
	}

	return c.convert(node)
}

func (c *Converter) environment(node *TexNode) (*TypstNode, error) {
	family, known := environments[node.Content]
	if !known {
		if !c.nonStrict {
			err := convertErrorf(node, ErrUnknownEnvironment, "%s", node.Content)
			err.Suggestion = suggest(slices.Sorted(maps.Keys(environments)), node.Content)
			return nil, err
		}

		c.logger.Debug("converting unknown environment as matrix", "name", node.Content)
		family = matrixEnvironment
	}

	out := &TypstNode{Kind: TypstMatrix}
	switch family {
	case alignEnvironment:
		out.Kind = TypstAlign
	case casesEnvironment:
		out.Content = "cases"
	default:
		out.Content = "mat"
		if delim, ok := matrixDelimiters[node.Content]; ok {
			out.Options = append(out.Options, "delim: "+delim)
		} else if !known {
			out.Options = append(out.Options, "delim: #none")
		}

		if node.Options != "" {
			out.Options = append(out.Options, matrixOptions(ColumnSpecs(node.Options))...)
		}
	}

	for _, row := range node.Rows {
		cells := row
		if out.Kind == TypstMatrix && len(cells) > 1 && cells[0].Kind == TexEmpty {
			cells = cells[1:]
		}

		converted, err := c.convertAll(cells)
		if err != nil {
			return nil, err
		}

		out.Rows = append(out.Rows, converted)
	}

	return out, nil
}
