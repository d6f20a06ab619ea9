package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eolymp/go-tex2typst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	tt := []struct {
		name   string
		stdin  string
		args   []string
		output string
	}{
		{name: "arguments in order", args: []string{"\\frac12", "x_1^2", "\\alpha"}, output: "frac(1, 2)\nx_1^2\nalpha\n"},
		{name: "single job", args: []string{"--jobs", "1", "a", "b"}, output: "a\nb\n"},
		{name: "macro", args: []string{"--macro", "\\RR=\\mathbb{R}", "\\RR^n"}, output: "RR^n\n"},
		{name: "non strict", args: []string{"--non-strict", "x + \\foo"}, output: "x + foo\n"},
		{name: "operator name", args: []string{"--prefer-intrinsic=false", "\\operatorname{sech} x"}, output: "op(\"sech\") x\n"},
		{name: "stdin", stdin: "a + b\r\n\\beta\n", args: []string{"-f", "-"}, output: "a + b\nbeta\n"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := execute(t, tc.stdin, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.output, stdout)
		})
	}
}

func TestRootCommand_File(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "input.tex")
	require.NoError(t, os.WriteFile(input, []byte("\\sqrt{x}\n\\foo\n"), 0o644))

	symbols := filepath.Join(dir, "symbols.yml")
	require.NoError(t, os.WriteFile(symbols, []byte("foo: bar\n"), 0o644))

	stdout, _, err := execute(t, "", "--file", input, "--symbols", symbols)
	require.NoError(t, err)
	assert.Equal(t, "sqrt(x)\nbar\n", stdout)
}

func TestRootCommand_Errors(t *testing.T) {
	t.Run("failing line", func(t *testing.T) {
		stdout, stderr, err := execute(t, "", "a", "b + }", "c")
		require.Error(t, err)
		assert.ErrorContains(t, err, "line 2: 1:5: unexpected closing brace")
		assert.Contains(t, stderr, "line 2")
		assert.Empty(t, stdout)
	})

	t.Run("first failing line in input order", func(t *testing.T) {
		args := []string{"--jobs", "4"}
		for range 20 {
			args = append(args, "x")
		}

		args[5], args[15] = "\\frac{a}", "a + }"

		_, _, err := execute(t, "", args...)
		assert.ErrorContains(t, err, "line 4: ")
		assert.ErrorIs(t, err, tex2typst.ErrMissingArgument)
	})

	t.Run("no input", func(t *testing.T) {
		_, _, err := execute(t, "")
		assert.ErrorContains(t, err, "no input")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "", "--file", filepath.Join(t.TempDir(), "missing.tex"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid symbols", func(t *testing.T) {
		symbols := filepath.Join(t.TempDir(), "symbols.yml")
		require.NoError(t, os.WriteFile(symbols, []byte("- a\n"), 0o644))

		_, _, err := execute(t, "", "--symbols", symbols, "x")
		assert.ErrorContains(t, err, "unable to decode symbol dictionary")
	})
}

func TestRootCommand_Debug(t *testing.T) {
	_, stderr, err := execute(t, "", "--debug", "\\frac{a}{b}")
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=parsed")
	assert.NotContains(t, stderr, "level=")
}
