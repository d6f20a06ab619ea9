package tex2typst

import (
	"log/slog"
	"slices"
	"strings"
)

// Parser builds the source syntax tree from tokens. A Parser must not be shared between goroutines,
// create one per conversion.
type Parser struct {
	dict     *Dictionary
	maxDepth int
	depth    int
	logger   *slog.Logger
}

// Parse parses tokens with the given options, nil options mean DefaultOptions.
func Parse(tokens []Token, opts *Options) (*TexNode, error) {
	return NewParser(opts).Parse(tokens)
}

func NewParser(opts *Options) *Parser {
	if opts == nil {
		opts = DefaultOptions()
	}

	return &Parser{dict: opts.dictionary(), maxDepth: opts.maxDepth(), logger: opts.logger()}
}

// Parse builds the tree of tokens. The tokens are not modified.
func (p *Parser) Parse(tokens []Token) (*TexNode, error) {
	p.depth = 0
	p.logger.Debug("parsing", "tokens", len(tokens))

	// argument splits digit runs in place
	return p.sequence(slices.Clone(tokens))
}

// sequence parses tokens as a list of sibling expressions.
func (p *Parser) sequence(tokens []Token) (*TexNode, error) {
	var children []*TexNode
	for pos := 0; pos < len(tokens); {
		node, next, err := p.expr(tokens, pos)
		if err != nil {
			return nil, err
		}

		switch {
		case node.Kind == TexWhitespace || node.Kind == TexNewline:
		case node.Kind == TexControl && node.Content == "&":
			return nil, parseErrorf(tokens[pos], ErrUnexpectedSeparator, "& is only allowed in environments")
		default:
			children = append(children, node)
		}

		pos = next
	}

	return group(children), nil
}

// expr parses one expression with its optional primes, subscript and superscript.
func (p *Parser) expr(tokens []Token, start int) (*TexNode, int, error) {
	base, pos, err := p.atom(tokens, start)
	if err != nil {
		return nil, 0, err
	}

	switch base.Kind {
	case TexWhitespace, TexNewline, TexComment, TexControl:
		return base, pos, nil
	}

	for pos < len(tokens) && tokens[pos].Kind == CommandToken {
		if _, ok := scriptModifiers[tokens[pos].Value]; !ok {
			break
		}

		pos++
	}

	var sub, sup *TexNode
	primes := countPrimes(tokens, pos)
	pos += primes

	switch {
	case pos < len(tokens) && tokens[pos].isControl("_"):
		if sub, pos, err = p.argument(tokens, pos+1, tokens[pos]); err != nil {
			return nil, 0, err
		}

		n := countPrimes(tokens, pos)
		primes += n
		pos += n

		if pos < len(tokens) && tokens[pos].isControl("^") {
			if sup, pos, err = p.argument(tokens, pos+1, tokens[pos]); err != nil {
				return nil, 0, err
			}

			if countPrimes(tokens, pos) > 0 {
				return nil, 0, parseErrorf(tokens[pos], ErrDoubleScript, "prime after superscript")
			}
		}
	case pos < len(tokens) && tokens[pos].isControl("^"):
		if sup, pos, err = p.argument(tokens, pos+1, tokens[pos]); err != nil {
			return nil, 0, err
		}

		if countPrimes(tokens, pos) > 0 {
			return nil, 0, parseErrorf(tokens[pos], ErrDoubleScript, "prime after superscript")
		}

		if pos < len(tokens) && tokens[pos].isControl("_") {
			if sub, pos, err = p.argument(tokens, pos+1, tokens[pos]); err != nil {
				return nil, 0, err
			}

			if countPrimes(tokens, pos) > 0 {
				return nil, 0, parseErrorf(tokens[pos], ErrDoubleScript, "prime after subscript and superscript")
			}
		}
	}

	// every script mark left here repeats one already consumed
	if pos < len(tokens) && tokens[pos].isControl("_") {
		return nil, 0, parseErrorf(tokens[pos], ErrDoubleScript, "double subscript")
	}

	if pos < len(tokens) && tokens[pos].isControl("^") {
		return nil, 0, parseErrorf(tokens[pos], ErrDoubleScript, "double superscript")
	}

	if sub == nil && sup == nil && primes == 0 {
		return base, pos, nil
	}

	node := &TexNode{Kind: TexSupSub, Base: base, Sub: sub, Sup: sup}
	if primes > 0 {
		marks := make([]*TexNode, 0, primes+1)
		for range primes {
			marks = append(marks, &TexNode{Kind: TexSymbol, Content: "\\prime"})
		}

		if sup != nil {
			marks = append(marks, sup)
		}

		node.Sup = group(marks)
	}

	return node, pos, nil
}

// atom parses one expression without scripts.
func (p *Parser) atom(tokens []Token, start int) (*TexNode, int, error) {
	if start >= len(tokens) {
		return nil, 0, parseErrorf(at(tokens, start), ErrMissingArgument, "unexpected end of input")
	}

	p.depth++
	defer func() { p.depth-- }()

	t := tokens[start]
	if p.depth > p.maxDepth {
		return nil, 0, &ParseError{Err: ErrTooDeep, Token: t}
	}

	switch t.Kind {
	case ElementToken:
		return &TexNode{Kind: TexElement, Content: t.Value}, start + 1, nil
	case TextToken:
		return &TexNode{Kind: TexText, Content: t.Value}, start + 1, nil
	case CommentToken:
		return &TexNode{Kind: TexComment, Content: t.Value}, start + 1, nil
	case WhitespaceToken:
		return &TexNode{Kind: TexWhitespace, Content: t.Value}, start + 1, nil
	case NewlineToken:
		return &TexNode{Kind: TexNewline, Content: t.Value}, start + 1, nil
	case UnknownToken:
		if strings.HasPrefix(t.Value, "\\") {
			return nil, 0, parseErrorf(t, ErrUnknownControl, "%s", t.Value)
		}

		return &TexNode{Kind: TexElement, Content: t.Value}, start + 1, nil
	case CommandToken:
		switch t.Value {
		case "\\begin":
			return p.environment(tokens, start)
		case "\\end":
			return nil, 0, parseErrorf(t, ErrMalformedEnvironment, "\\end without \\begin")
		case "\\left":
			return p.leftRight(tokens, start)
		case "\\right":
			return nil, 0, parseErrorf(t, ErrUnmatchedBrackets, "\\right without \\left")
		case "\\middle":
			return p.middle(tokens, start)
		default:
			return p.command(tokens, start)
		}
	case ControlToken:
		switch t.Value {
		case "{":
			end := findClosing(tokens, start, isOpenBrace, isCloseBrace)
			if end < 0 {
				return nil, 0, parseErrorf(t, ErrUnmatchedBrackets, "unmatched '{'")
			}

			node, err := p.sequence(tokens[start+1 : end])
			return node, end + 1, err
		case "}":
			return nil, 0, parseErrorf(t, ErrUnexpectedBrace, "unmatched '}'")
		case "\\\\", "\\,", "&":
			return &TexNode{Kind: TexControl, Content: t.Value}, start + 1, nil
		case "_", "^":
			// a script without base applies to an empty base, the caller consumes the mark
			return &TexNode{Kind: TexEmpty}, start, nil
		}

		return nil, 0, parseErrorf(t, ErrUnknownControl, "%s", t.Value)
	}

	return nil, 0, parseErrorf(t, ErrInternal, "unexpected token %v", t)
}

// argument parses the argument of a command or a script mark, owner is the token it belongs to.
func (p *Parser) argument(tokens []Token, pos int, owner Token) (*TexNode, int, error) {
	pos = skipBlank(tokens, pos)
	if pos >= len(tokens) || isScriptMark(tokens[pos]) || tokens[pos].isControl("&") || tokens[pos].isControl("\\\\") {
		return nil, 0, parseErrorf(owner, ErrMissingArgument, "expecting argument for %s", owner.Value)
	}

	// a single digit is an argument, x^23 is x^2 followed by 3
	if t := tokens[pos]; t.Kind == ElementToken && len(t.Value) > 1 && isDigit(t.Value[0]) {
		tokens[pos] = Token{Kind: ElementToken, Value: t.Value[1:], Pos: t.Pos + 1}
		return &TexNode{Kind: TexElement, Content: t.Value[:1]}, pos, nil
	}

	return p.atom(tokens, pos)
}

// command parses a command with its fixed number of arguments.
func (p *Parser) command(tokens []Token, start int) (*TexNode, int, error) {
	t := tokens[start]

	switch arity(t.Value) {
	case 1:
		if _, ok := textCommands[t.Value]; ok {
			return p.textCommand(tokens, start)
		}

		if t.Value == "\\sqrt" {
			if q := skipBlank(tokens, start+1); q < len(tokens) && isOpenSquare(tokens[q]) {
				return p.root(tokens, start, q)
			}
		}

		arg, pos, err := p.argument(tokens, start+1, t)
		if err != nil {
			return nil, 0, err
		}

		return &TexNode{Kind: TexUnaryFunc, Content: t.Value, Args: []*TexNode{arg}}, pos, nil
	case 2:
		first, pos, err := p.argument(tokens, start+1, t)
		if err != nil {
			return nil, 0, err
		}

		second, pos, err := p.argument(tokens, pos, t)
		if err != nil {
			return nil, 0, err
		}

		return &TexNode{Kind: TexBinaryFunc, Content: t.Value, Args: []*TexNode{first, second}}, pos, nil
	default:
		if _, ok := p.dict.Lookup(t.Value); !ok {
			return &TexNode{Kind: TexUnknownMacro, Content: strings.TrimPrefix(t.Value, "\\")}, start + 1, nil
		}

		return &TexNode{Kind: TexSymbol, Content: t.Value}, start + 1, nil
	}
}

// root parses \sqrt[index]{radicand}, open is the position of '['.
func (p *Parser) root(tokens []Token, start, open int) (*TexNode, int, error) {
	end := findClosing(tokens, open, isOpenSquare, isCloseSquare)
	if end < 0 {
		return nil, 0, parseErrorf(tokens[open], ErrUnmatchedBrackets, "unmatched '['")
	}

	index, err := p.sequence(tokens[open+1 : end])
	if err != nil {
		return nil, 0, err
	}

	arg, pos, err := p.argument(tokens, end+1, tokens[start])
	if err != nil {
		return nil, 0, err
	}

	return &TexNode{Kind: TexUnaryFunc, Content: tokens[start].Value, Args: []*TexNode{arg}, Index: index}, pos, nil
}

// textCommand reads the verbatim argument the tokenizer captured for a text-bearing command.
func (p *Parser) textCommand(tokens []Token, start int) (*TexNode, int, error) {
	t := tokens[start]

	text, pos, err := verbatimArgument(tokens, start+1, t)
	if err != nil {
		return nil, 0, err
	}

	node := &TexNode{Kind: TexText, Content: text}
	if t.Value == "\\operatorname" {
		node = &TexNode{Kind: TexUnaryFunc, Content: t.Value, Args: []*TexNode{node}}
	}

	return node, pos, nil
}

// leftRight parses \left<delim> ... \right<delim>.
func (p *Parser) leftRight(tokens []Token, start int) (*TexNode, int, error) {
	left, pos, err := delimiterAfter(tokens, start)
	if err != nil {
		return nil, 0, err
	}

	end := findClosing(tokens, start, isLeft, isRight)
	if end < 0 {
		return nil, 0, parseErrorf(tokens[start], ErrUnmatchedBrackets, "no matching \\right")
	}

	right, next, err := delimiterAfter(tokens, end)
	if err != nil {
		return nil, 0, err
	}

	body, err := p.sequence(tokens[pos:end])
	if err != nil {
		return nil, 0, err
	}

	return &TexNode{Kind: TexLeftRight, Args: []*TexNode{left, body, right}}, next, nil
}

// middle parses \middle<delim>.
func (p *Parser) middle(tokens []Token, start int) (*TexNode, int, error) {
	delim, pos, err := delimiterAfter(tokens, start)
	if err != nil {
		return nil, 0, err
	}

	return &TexNode{Kind: TexUnaryFunc, Content: tokens[start].Value, Args: []*TexNode{delim}}, pos, nil
}

// delimiterAfter reads the delimiter following \left, \middle or \right at start.
func delimiterAfter(tokens []Token, start int) (*TexNode, int, error) {
	pos := skipBlank(tokens, start+1)
	if pos >= len(tokens) || !isDelimiter(tokens[pos]) {
		return nil, 0, parseErrorf(tokens[start], ErrMissingArgument, "expecting delimiter after %s", tokens[start].Value)
	}

	t := tokens[pos]
	if t.Kind == CommandToken {
		return &TexNode{Kind: TexSymbol, Content: t.Value}, pos + 1, nil
	}

	return &TexNode{Kind: TexElement, Content: t.Value}, pos + 1, nil
}

// environment parses \begin{name} ... \end{name} into a grid of cells.
func (p *Parser) environment(tokens []Token, start int) (*TexNode, int, error) {
	name, pos, err := environmentName(tokens, start)
	if err != nil {
		return nil, 0, err
	}

	end := findClosing(tokens, start, isBegin, isEnd)
	if end < 0 {
		return nil, 0, parseErrorf(tokens[start], ErrMalformedEnvironment, "no matching \\end{%s}", name)
	}

	closing, next, err := environmentName(tokens, end)
	if err != nil {
		return nil, 0, err
	}

	if closing != name {
		return nil, 0, parseErrorf(tokens[end], ErrMalformedEnvironment, "\\begin{%s} ended by \\end{%s}", name, closing)
	}

	var options string
	if _, ok := environmentsWithSpec[name]; ok {
		if q := skipBlank(tokens, pos); q < end && isOpenBrace(tokens[q]) {
			closeSpec := findClosing(tokens[:end], q, isOpenBrace, isCloseBrace)
			if closeSpec < 0 {
				return nil, 0, parseErrorf(tokens[q], ErrUnmatchedBrackets, "unmatched '{' in column spec")
			}

			options = tokenText(tokens[q+1 : closeSpec])
			pos = closeSpec + 1
		}
	}

	body := tokens[skipBlank(tokens[:end], pos):end]
	for len(body) > 0 && body[len(body)-1].isBlank() {
		body = body[:len(body)-1]
	}

	rows, err := p.rows(body)
	if err != nil {
		return nil, 0, err
	}

	return &TexNode{Kind: TexBeginEnd, Content: name, Rows: rows, Options: options}, next, nil
}

// rows splits an environment body into rows on \\ and into cells on &.
func (p *Parser) rows(tokens []Token) ([][]*TexNode, error) {
	var rows [][]*TexNode
	var row, cell []*TexNode

	for pos := 0; pos < len(tokens); {
		if tokens[pos].isCommand("\\hline") {
			pos++
			continue
		}

		node, next, err := p.expr(tokens, pos)
		if err != nil {
			return nil, err
		}

		pos = next

		switch {
		case node.Kind == TexWhitespace || node.Kind == TexNewline:
		case node.Kind == TexControl && node.Content == "&":
			row = append(row, group(cell))
			cell = nil
		case isLineBreak(node):
			row = append(row, group(cell))
			rows = append(rows, row)
			row, cell = nil, nil

			// optional row spacing, like \\[2pt]
			if q := skipBlank(tokens, pos); q < len(tokens) && isOpenSquare(tokens[q]) {
				if end := findClosing(tokens, q, isOpenSquare, isCloseSquare); end >= 0 {
					pos = end + 1
				}
			}
		default:
			cell = append(cell, node)
		}
	}

	row = append(row, group(cell))
	rows = append(rows, row)

	// a trailing \\ leaves an empty row behind
	if last := rows[len(rows)-1]; len(rows) > 1 && len(last) == 1 && last[0].Kind == TexEmpty {
		rows = rows[:len(rows)-1]
	}

	return rows, nil
}

// environmentName reads {name} after \begin or \end at start.
func environmentName(tokens []Token, start int) (string, int, error) {
	name, pos, err := verbatimArgument(tokens, start+1, tokens[start])
	if err != nil {
		return "", 0, parseErrorf(tokens[start], ErrMalformedEnvironment, "expecting environment name after %s", tokens[start].Value)
	}

	return name, pos, nil
}

// verbatimArgument reads the '{' TEXT '}' triple produced by the tokenizer for text-bearing commands.
func verbatimArgument(tokens []Token, pos int, owner Token) (string, int, error) {
	if pos+2 >= len(tokens) || !isOpenBrace(tokens[pos]) || tokens[pos+1].Kind != TextToken || !isCloseBrace(tokens[pos+2]) {
		return "", 0, parseErrorf(owner, ErrMissingArgument, "expecting text argument for %s", owner.Value)
	}

	return tokens[pos+1].Value, pos + 3, nil
}

// countPrimes counts prime marks starting at pos.
func countPrimes(tokens []Token, pos int) int {
	n := 0
	for pos+n < len(tokens) && tokens[pos+n].is(ElementToken, "'") {
		n++
	}

	return n
}

func skipBlank(tokens []Token, pos int) int {
	for pos < len(tokens) && tokens[pos].isBlank() {
		pos++
	}

	return pos
}

// at returns the token at pos or the last token if pos is past the end.
func at(tokens []Token, pos int) Token {
	if pos < len(tokens) {
		return tokens[pos]
	}

	if len(tokens) > 0 {
		return tokens[len(tokens)-1]
	}

	return Token{}
}
