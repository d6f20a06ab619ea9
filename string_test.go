package tex2typst_test

import (
	"testing"

	"github.com/eolymp/go-tex2typst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output string
	}{
		{name: "scripts", input: "x_1^{2}", output: "x_{1}^{2}"},
		{name: "symbols", input: "\\alpha x", output: "\\alpha x"},
		{name: "fraction", input: "\\frac{a}{b}", output: "\\frac{a}{b}"},
		{name: "root", input: "\\sqrt[3]x", output: "\\sqrt[3]{x}"},
		{name: "operator name", input: "\\operatorname{lcm}", output: "\\operatorname{lcm}"},
		{name: "text", input: "\\text{a b}", output: "\\text{a b}"},
		{name: "delimiters", input: "\\left( x \\right)", output: "\\left(x\\right)"},
		{name: "environment", input: "\\begin{array}{cc} a & b \\\\ c & d \\end{array}", output: "\\begin{array}{cc}a&b\\\\c&d\\end{array}"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := parse(t, tc.input, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.output, tex2typst.String(tree))
		})
	}
}
