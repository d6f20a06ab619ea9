package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/eolymp/go-tex2typst"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	nonStrict       bool
	preferIntrinsic bool
	macros          map[string]string
	symbols         string
	file            string
	jobs            int
	debug           bool
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "tex2typst [flags] [expression...]",
		Short: "Convert LaTeX math to Typst math",
		Long: "Converts every expression given as an argument, or every line of --file, and prints one\n" +
			"result per line in input order.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f, args)
		},
	}

	cmd.Flags().BoolVar(&f.nonStrict, "non-strict", false, "Pass unknown commands through instead of failing")
	cmd.Flags().BoolVar(&f.preferIntrinsic, "prefer-intrinsic", true, "Write operator names Typst knows as bare symbols")
	cmd.Flags().StringToStringVar(&f.macros, "macro", nil, "Custom macro as name=replacement (repeatable)")
	cmd.Flags().StringVar(&f.symbols, "symbols", "", "YAML file with extra command to symbol mappings")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read one expression per line from file (- for stdin)")
	cmd.Flags().IntVar(&f.jobs, "jobs", runtime.GOMAXPROCS(0), "Number of expressions converted in parallel")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Log pipeline stages to stderr (or set TEX2TYPST_DEBUG)")

	return cmd
}

func run(stdin io.Reader, stdout, stderr io.Writer, f *flags, args []string) error {
	opts, err := f.options(stderr)
	if err != nil {
		return err
	}

	inputs := args
	if f.file != "" {
		if inputs, err = readLines(f.file, stdin); err != nil {
			return err
		}
	}

	if len(inputs) == 0 {
		return errors.New("no input, pass expressions as arguments or use --file")
	}

	outputs := make([]string, len(inputs))
	failures := make([]error, len(inputs))

	var g errgroup.Group
	g.SetLimit(max(f.jobs, 1))

	for i, input := range inputs {
		g.Go(func() error {
			outputs[i], failures[i] = tex2typst.Convert(input, opts)
			return nil
		})
	}

	// failures are kept per line so the first one in input order is reported, not the first to finish
	g.Wait()

	for i, output := range outputs {
		if failures[i] != nil {
			return fmt.Errorf("line %d: %w", i+1, failures[i])
		}

		if _, err := fmt.Fprintln(stdout, output); err != nil {
			return err
		}
	}

	return nil
}

func (f *flags) options(stderr io.Writer) (*tex2typst.Options, error) {
	opts := &tex2typst.Options{
		NonStrict:            f.nonStrict,
		PreferTypstIntrinsic: f.preferIntrinsic,
		CustomTexMacros:      f.macros,
		Logger:               newLogger(stderr, f.debug || os.Getenv("TEX2TYPST_DEBUG") != ""),
	}

	if f.symbols != "" {
		file, err := os.Open(f.symbols)
		if err != nil {
			return nil, fmt.Errorf("unable to open symbols file: %w", err)
		}

		defer file.Close()

		if opts.Dictionary, err = tex2typst.LoadDictionary(file, nil); err != nil {
			return nil, fmt.Errorf("%s: %w", f.symbols, err)
		}
	}

	return opts, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// time and level only clutter interactive output
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}

			return a
		},
	}))
}

// readLines reads expressions from a file, one per line.
func readLines(name string, stdin io.Reader) ([]string, error) {
	r := stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}

		defer file.Close()
		r = file
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<20)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}

	return lines, scanner.Err()
}
