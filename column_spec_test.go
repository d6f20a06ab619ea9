package tex2typst

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestColumnSpecs(t *testing.T) {
	tt := []struct {
		name    string
		input   string
		spec    []ColumnSpec
		options []string
	}{
		{
			name:  "centered",
			input: "cc",
			spec:  []ColumnSpec{{Align: "c"}, {Align: "c"}},
		},
		{
			name:    "left aligned with spaces",
			input:   " l l ",
			spec:    []ColumnSpec{{Align: "l"}, {Align: "l"}},
			options: []string{"align: #left"},
		},
		{
			name:    "right aligned",
			input:   "rrr",
			spec:    []ColumnSpec{{Align: "r"}, {Align: "r"}, {Align: "r"}},
			options: []string{"align: #right"},
		},
		{
			name:  "mixed alignment",
			input: "lr",
			spec:  []ColumnSpec{{Align: "l"}, {Align: "r"}},
		},
		{
			name:    "one rule",
			input:   "cc|c",
			spec:    []ColumnSpec{{Align: "c"}, {Align: "c", BorderRight: true}, {Align: "c", BorderLeft: true}},
			options: []string{"augment: #2"},
		},
		{
			name:  "outer borders are ignored",
			input: "|c|",
			spec:  []ColumnSpec{{Align: "c", BorderLeft: true, BorderRight: true}},
		},
		{
			name:    "two rules are not expressible",
			input:   "l|l|l",
			spec:    []ColumnSpec{{Align: "l", BorderRight: true}, {Align: "l", BorderLeft: true, BorderRight: true}, {Align: "l", BorderLeft: true}},
			options: []string{"align: #left"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			spec := ColumnSpecs(tc.input)
			if diff := cmp.Diff(tc.spec, spec); diff != "" {
				t.Errorf("Spec does not match (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tc.options, matrixOptions(spec)); diff != "" {
				t.Errorf("Options do not match (-want +got):\n%s", diff)
			}
		})
	}
}
