package tex2typst

import "log/slog"

const defaultMaxDepth = 512

// Options controls a conversion. The zero value is strict and keeps \operatorname calls for names
// Typst knows natively, DefaultOptions prefers the native names.
type Options struct {
	// NonStrict passes unknown commands and environments through instead of failing.
	NonStrict bool

	// PreferTypstIntrinsic writes operator names Typst knows (like sech) as bare symbols instead of
	// op("sech").
	PreferTypstIntrinsic bool

	// CustomTexMacros maps command names (backslash optional) to replacement markup.
	CustomTexMacros map[string]string

	// Dictionary overrides the built-in symbol dictionary.
	Dictionary *Dictionary

	// MaxDepth bounds the nesting of the input, zero means 512.
	MaxDepth int

	// Logger receives debug traces of the pipeline, nil discards them.
	Logger *slog.Logger
}

func DefaultOptions() *Options {
	return &Options{PreferTypstIntrinsic: true}
}

func (o *Options) dictionary() *Dictionary {
	if o.Dictionary == nil {
		return defaultDictionary
	}

	return o.Dictionary
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return defaultMaxDepth
	}

	return o.MaxDepth
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}
