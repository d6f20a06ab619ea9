package tex2typst

type TexKind int

const (
	TexEmpty TexKind = iota
	TexElement
	TexText
	TexComment
	TexWhitespace
	TexNewline
	TexControl
	TexOrdGroup
	TexSupSub
	TexUnaryFunc
	TexBinaryFunc
	TexLeftRight
	TexBeginEnd
	TexSymbol
	TexUnknownMacro
)

// TexNode is a node of the source syntax tree. Which fields are set depends on Kind:
//
//   - TexOrdGroup: Args holds the siblings, never exactly one
//   - TexSupSub: Base is always set, Sup and Sub are optional
//   - TexUnaryFunc, TexBinaryFunc: Content is the command, Args holds 1 or 2 arguments,
//     Index is the optional [n] of \sqrt
//   - TexLeftRight: Args holds left delimiter, body and right delimiter
//   - TexBeginEnd: Content is the environment name, Rows the cell grid, Options the
//     column spec of array-like environments
//   - leaves keep their payload in Content
type TexNode struct {
	Kind    TexKind
	Content string
	Args    []*TexNode

	Base  *TexNode
	Sup   *TexNode
	Sub   *TexNode
	Index *TexNode

	Rows    [][]*TexNode
	Options string
}

// group wraps sibling nodes, zero nodes become the empty node and a single node is returned as is.
func group(children []*TexNode) *TexNode {
	switch len(children) {
	case 0:
		return &TexNode{Kind: TexEmpty}
	case 1:
		return children[0]
	default:
		return &TexNode{Kind: TexOrdGroup, Args: children}
	}
}

type TypstKind int

const (
	TypstEmpty TypstKind = iota
	TypstGroup
	TypstSupSub
	TypstUnaryFunc
	TypstBinaryFunc
	TypstAlign
	TypstMatrix
	TypstSymbol
	TypstText
	TypstComment
	TypstNewline
	TypstSoftSpace
	TypstUnknown
)

// TypstNode is a node of the output tree.
//
//   - TypstGroup: Args in order
//   - TypstSupSub: Base, optional Sub and Sup, Primes is the number of prime marks written
//     between base and subscript
//   - TypstUnaryFunc, TypstBinaryFunc: Content is the function name, Args its arguments
//   - TypstAlign: Rows of cells
//   - TypstMatrix: Content is the function name (mat or cases), Rows of cells and Options
//     named arguments written before the cells (e.g. "delim: #none")
//   - leaves keep their payload in Content
type TypstNode struct {
	Kind    TypstKind
	Content string
	Args    []*TypstNode

	Base   *TypstNode
	Sup    *TypstNode
	Sub    *TypstNode
	Primes int

	Rows    [][]*TypstNode
	Options []string
}

func typstSymbol(content string) *TypstNode {
	return &TypstNode{Kind: TypstSymbol, Content: content}
}
