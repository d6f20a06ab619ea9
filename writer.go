package tex2typst

import (
	"io"
	"regexp"
	"strings"
)

type entryKind int

const (
	atomEntry entryKind = iota
	symbolEntry
	textEntry
	softSpaceEntry
	commentEntry
	newlineEntry
)

// entry is one item of the output queue.
type entry struct {
	kind    entryKind
	content string
}

// Writer serializes Typst trees. Nodes are queued by Append and turned into text by Finalize, which
// also resets the writer.
type Writer struct {
	queue     []entry
	buffer    string
	softSpace bool
	funcDepth int
}

// Render writes the Typst markup of node to w.
func Render(w io.Writer, node *TypstNode) error {
	writer := &Writer{}
	if err := writer.Append(node); err != nil {
		return err
	}

	_, err := io.WriteString(w, writer.Finalize())
	return err
}

// Append queues the output of node.
func (w *Writer) Append(node *TypstNode) error {
	switch node.Kind {
	case TypstEmpty:
		return nil
	case TypstGroup:
		return w.appendAll(node.Args)
	case TypstSymbol:
		switch {
		case node.Content == "":
		case node.Content == "\\":
			w.push(symbolEntry, node.Content)
			w.push(newlineEntry, "\n")
		case node.Content == "," && w.funcDepth > 0:
			w.push(symbolEntry, "comma")
		default:
			w.push(symbolEntry, node.Content)
		}

		return nil
	case TypstUnknown:
		w.push(symbolEntry, node.Content)
		return nil
	case TypstText:
		w.push(textEntry, node.Content)
		return nil
	case TypstComment:
		w.push(commentEntry, node.Content)
		w.push(newlineEntry, "\n")
		return nil
	case TypstNewline:
		w.push(newlineEntry, "\n")
		return nil
	case TypstSoftSpace:
		w.push(softSpaceEntry, "")
		return nil
	case TypstSupSub:
		return w.appendSupSub(node)
	case TypstUnaryFunc, TypstBinaryFunc:
		return w.appendCall(node.Content, nil, [][]*TypstNode{node.Args}, ",", "")
	case TypstAlign:
		for i, row := range node.Rows {
			if i > 0 {
				w.push(symbolEntry, "\\")
				w.push(newlineEntry, "\n")
			}

			for j, cell := range row {
				if j > 0 {
					w.push(atomEntry, "&")
				}

				if err := w.Append(cell); err != nil {
					return err
				}
			}
		}

		return nil
	case TypstMatrix:
		if node.Content == "cases" {
			return w.appendCall(node.Content, node.Options, node.Rows, "&", ",")
		}

		return w.appendCall(node.Content, node.Options, node.Rows, ",", ";")
	}

	return convertErrorf(node, ErrInternal, "unable to write node of kind %d", node.Kind)
}

func (w *Writer) appendAll(nodes []*TypstNode) error {
	for _, n := range nodes {
		if err := w.Append(n); err != nil {
			return err
		}
	}

	return nil
}

// appendCall queues name(options..., cells) with cells joined by cellSep and rows by rowSep.
func (w *Writer) appendCall(name string, options []string, rows [][]*TypstNode, cellSep, rowSep string) error {
	w.push(symbolEntry, name)
	w.push(atomEntry, "(")
	w.funcDepth++

	for _, option := range options {
		w.push(symbolEntry, option)
		w.push(atomEntry, ",")
	}

	for i, row := range rows {
		if i > 0 {
			w.push(atomEntry, rowSep)
		}

		for j, cell := range row {
			if j > 0 {
				w.push(atomEntry, cellSep)
			}

			if err := w.Append(cell); err != nil {
				return err
			}
		}
	}

	w.funcDepth--
	w.push(atomEntry, ")")
	return nil
}

// appendSupSub queues base, primes, subscript and superscript in this order.
func (w *Writer) appendSupSub(node *TypstNode) error {
	if _, err := w.appendScript(node.Base); err != nil {
		return err
	}

	for range node.Primes {
		w.push(atomEntry, "'")
	}

	bare := false
	if node.Sub != nil {
		w.push(atomEntry, "_")

		var err error
		if bare, err = w.appendScript(node.Sub); err != nil {
			return err
		}
	}

	if node.Sup != nil {
		w.push(atomEntry, "^")

		var err error
		if bare, err = w.appendScript(node.Sup); err != nil {
			return err
		}
	}

	// x_1 (a) must not become x_1(a), where the call would be taken into the script
	if bare {
		w.push(softSpaceEntry, "")
	}

	return nil
}

// appendScript queues a part of a script construct, wrapping it in parentheses unless it is a
// single unit. It reports whether the node went out bare.
func (w *Writer) appendScript(node *TypstNode) (bool, error) {
	switch node.Kind {
	case TypstSymbol, TypstText, TypstUnaryFunc, TypstBinaryFunc, TypstMatrix, TypstUnknown:
		return true, w.Append(node)
	}

	w.push(atomEntry, "(")
	if err := w.Append(node); err != nil {
		return false, err
	}

	w.push(atomEntry, ")")
	return false, nil
}

func (w *Writer) push(kind entryKind, content string) {
	w.queue = append(w.queue, entry{kind: kind, content: content})
}

// Finalize writes out the queue and returns the markup.
func (w *Writer) Finalize() string {
	for _, e := range w.queue {
		switch e.kind {
		case atomEntry, symbolEntry, newlineEntry:
			w.emit(e.content)
		case textEntry:
			w.emit(`"` + textEscaper.Replace(e.content) + `"`)
		case commentEntry:
			w.emit("//" + e.content)
		case softSpaceEntry:
			w.softSpace = true
		}
	}

	out := w.buffer
	for _, pass := range repairPasses {
		out = pass.pattern.ReplaceAllString(out, pass.replacement)
	}

	*w = Writer{}
	return out
}

// emit appends text to the buffer, separated by at most one space.
func (w *Writer) emit(text string) {
	if text == "" {
		return
	}

	if w.softSpace && startsSoftSpaced(text) || needSpace(w.buffer, text) {
		w.buffer += " "
	}

	w.softSpace = false
	w.buffer += text
}

// needSpace tells whether text must be separated from the buffer.
func needSpace(buffer, text string) bool {
	if buffer == "" || buffer == "-" || buffer == "+" {
		return false
	}

	last := buffer[len(buffer)-1]
	first := text[0]

	switch {
	case (last == '(' || last == '|') && isWordByte(first):
		return false
	case len(text) == 1 && strings.IndexByte("}()_^,;!|", first) >= 0:
		return false
	case text == "'":
		return false
	case isDigit(last) && isDigit(first):
		return false
	case leadingSign.MatchString(buffer):
		return false
	case strings.IndexByte(" \t\n\"_^{(", last) >= 0:
		return false
	case first == '\n':
		return false
	}

	return true
}

func startsSoftSpaced(text string) bool {
	c := text[0]
	return isDigit(c) || isLetter(rune(c)) || c == '('
}

func isWordByte(c byte) bool {
	return isDigit(c) || isLetter(rune(c)) || c == '_'
}

var leadingSign = regexp.MustCompile(`[(\[{]\s*[-+]$`)

var textEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// repairPasses turn floor and ceiling glyph pairs into calls, Typst does not accept an empty call.
var repairPasses = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`⌊\s*(.*?)\s*⌋`), "floor($1)"},
	{regexp.MustCompile(`floor\(\)`), `floor("")`},
	{regexp.MustCompile(`⌈\s*(.*?)\s*⌉`), "ceil($1)"},
	{regexp.MustCompile(`ceil\(\)`), `ceil("")`},
}
