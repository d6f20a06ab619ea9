// Package tex2typst converts LaTeX math markup into Typst math markup.
//
// The conversion runs in stages: Tokenize splits the input, ElideScriptWhitespace and ExpandMacros
// rewrite the token stream, Parser builds the source tree, Converter maps it onto a Typst tree and
// Writer serializes the result. Convert runs all of them.
package tex2typst

import (
	"errors"
	"strings"
)

// Convert translates tex into Typst markup, nil options mean DefaultOptions. Errors are *ParseError
// for malformed input and *ConvertError for input which can not be translated, both wrap one of the
// Err* sentinels.
func Convert(tex string, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	log := opts.logger()

	tokens, err := Tokenize(tex)
	if err != nil {
		return "", located(err, tex)
	}

	tokens = ElideScriptWhitespace(tokens)

	if len(opts.CustomTexMacros) > 0 {
		// positions of these errors point into the replacement text
		if tokens, err = ExpandMacros(tokens, opts.CustomTexMacros); err != nil {
			return "", err
		}

		log.Debug("expanded macros", "macros", len(opts.CustomTexMacros), "tokens", len(tokens))
	}

	tree, err := NewParser(opts).Parse(tokens)
	if err != nil {
		return "", located(err, tex)
	}

	log.Debug("parsed", "tree", String(tree))

	typst, err := NewConverter(opts).Convert(tree)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := Render(&out, typst); err != nil {
		return "", err
	}

	log.Debug("converted", "input", len(tex), "output", out.Len())
	return out.String(), nil
}

// located fills the line and column of a parse error from the source text.
func located(err error, source string) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.locate(source)
	}

	return err
}
