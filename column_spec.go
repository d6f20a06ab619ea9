package tex2typst

import (
	"fmt"
	"strings"
)

type ColumnSpec struct {
	BorderLeft  bool   // column should have left border
	BorderRight bool   // column should have right border
	Align       string // column alignment: c, l or r
}

// ColumnSpecs parses the column spec of an array environment
// todo: add support for repeated syntax *{x}{...}
func ColumnSpecs(raw string) (spec []ColumnSpec) {
	raw = strings.Join(strings.Fields(raw), "") // spaces have no meaning in a column spec
	for pos, char := range raw {
		if char == '|' {
			continue
		}

		if char == 'c' || char == 'l' || char == 'r' {
			spec = append(spec, ColumnSpec{
				BorderLeft:  pos > 0 && raw[pos-1] == '|',
				BorderRight: pos < len(raw)-1 && raw[pos+1] == '|',
				Align:       string(char),
			})
		}
	}

	return
}

// matrixOptions translates a column spec into named arguments of mat(): a common alignment other than
// centered and a single vertical rule between columns.
func matrixOptions(spec []ColumnSpec) (options []string) {
	if len(spec) == 0 {
		return nil
	}

	align := spec[0].Align
	for _, column := range spec[1:] {
		if column.Align != align {
			align = "c"
			break
		}
	}

	switch align {
	case "l":
		options = append(options, "align: #left")
	case "r":
		options = append(options, "align: #right")
	}

	rule := -1
	for i, column := range spec[:len(spec)-1] {
		if column.BorderRight || spec[i+1].BorderLeft {
			if rule >= 0 {
				return options
			}

			rule = i + 1
		}
	}

	if rule > 0 {
		options = append(options, fmt.Sprintf("augment: #%d", rule))
	}

	return
}
