package qsparse

import (
	"fmt"
	"log/slog"
	"regexp"
)

// Default values applied when an option is not supplied.
const (
	DefaultDelimiter      = "&"
	DefaultParameterLimit = 1000
	DefaultDepth          = 5
	DefaultArrayLimit     = 20
	DefaultMaxBodyBytes   = 10 << 20
)

// DecodeFunc decodes one raw key or value half.
type DecodeFunc func(raw string) (string, error)

// Decoder is a caller-supplied decode step. It receives the raw text and the
// default decoder so it can fall back to it.
type Decoder func(raw string, def DecodeFunc) (string, error)

// Options defines configurable behavior for decoding.
//
// Start from DefaultOptions when building an Options value by hand; the zero
// value disables array parsing and uses a depth of zero.
//
// Delimiter / DelimiterPattern: how pairs are separated. A non-nil pattern wins.
// ParameterLimit: maximum number of pairs read from text input, 0 means no limit.
// Depth: maximum number of bracket groups parsed per key; the rest is kept as one literal segment.
// ArrayLimit: highest index that still produces a sequence; larger indices become mapping keys.
// PlainObjects: result mappings carry no reserved names to protect, so the pollution guard is off.
// AllowPrototypes: accept keys named like reserved base-object properties.
// StrictNullHandling: a pair without '=' decodes to nil instead of "".
// StrictDecode: malformed percent-escapes fail the decode instead of being kept literally.
type Options struct {
	Delimiter               string
	DelimiterPattern        *regexp.Regexp
	ParameterLimit          int
	Depth                   int
	ArrayLimit              int
	AllowDots               bool
	AllowPrototypes         bool
	PlainObjects            bool
	ParseArrays             bool
	ParseObjectsRecursively bool
	IgnoreQueryPrefix       bool
	StrictNullHandling      bool
	StrictDecode            bool
	Decoder                 Decoder
	Logger                  *slog.Logger
	MaxBodyBytes            int64
}

// DefaultOptions returns the options used when none are supplied.
func DefaultOptions() Options {
	return Options{
		Delimiter:      DefaultDelimiter,
		ParameterLimit: DefaultParameterLimit,
		Depth:          DefaultDepth,
		ArrayLimit:     DefaultArrayLimit,
		ParseArrays:    true,
		MaxBodyBytes:   DefaultMaxBodyBytes,
	}
}

// Option modifies the Options of one decode call.
type Option func(*Options) error

// WithOptions replaces the whole configuration. Options applied after it still take effect.
func WithOptions(o Options) Option {
	return func(dst *Options) error {
		*dst = o
		return nil
	}
}

// WithDelimiter splits pairs on a literal delimiter.
func WithDelimiter(d string) Option {
	return func(o *Options) error {
		o.Delimiter = d
		o.DelimiterPattern = nil
		return nil
	}
}

// WithDelimiterPattern splits pairs on every match of re.
func WithDelimiterPattern(re *regexp.Regexp) Option {
	return func(o *Options) error {
		if re == nil {
			return fmt.Errorf("%w: delimiter pattern is nil", ErrInvalidConfiguration)
		}
		o.DelimiterPattern = re
		return nil
	}
}

func WithParameterLimit(n int) Option {
	return func(o *Options) error {
		o.ParameterLimit = n
		return nil
	}
}

func WithDepth(n int) Option {
	return func(o *Options) error {
		o.Depth = n
		return nil
	}
}

func WithArrayLimit(n int) Option {
	return func(o *Options) error {
		o.ArrayLimit = n
		return nil
	}
}

// WithAllowDots rewrites a.b into a[b] before parsing keys.
func WithAllowDots(v bool) Option {
	return func(o *Options) error {
		o.AllowDots = v
		return nil
	}
}

func WithAllowPrototypes(v bool) Option {
	return func(o *Options) error {
		o.AllowPrototypes = v
		return nil
	}
}

func WithPlainObjects(v bool) Option {
	return func(o *Options) error {
		o.PlainObjects = v
		return nil
	}
}

// WithParseArrays controls whether index segments ever build sequences.
func WithParseArrays(v bool) Option {
	return func(o *Options) error {
		o.ParseArrays = v
		return nil
	}
}

// WithParseObjectsRecursively descends into nested maps of structured input.
func WithParseObjectsRecursively(v bool) Option {
	return func(o *Options) error {
		o.ParseObjectsRecursively = v
		return nil
	}
}

func WithIgnoreQueryPrefix(v bool) Option {
	return func(o *Options) error {
		o.IgnoreQueryPrefix = v
		return nil
	}
}

func WithStrictNullHandling(v bool) Option {
	return func(o *Options) error {
		o.StrictNullHandling = v
		return nil
	}
}

func WithStrictDecode(v bool) Option {
	return func(o *Options) error {
		o.StrictDecode = v
		return nil
	}
}

// WithDecoder installs a custom decoder. A nil decoder is rejected.
func WithDecoder(d Decoder) Option {
	return func(o *Options) error {
		if d == nil {
			return fmt.Errorf("%w: decoder has to be a function", ErrInvalidConfiguration)
		}
		o.Decoder = d
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Options) error {
		o.Logger = l
		return nil
	}
}

// WithMaxBodyBytes caps the request body read by ParseRequest.
func WithMaxBodyBytes(n int64) Option {
	return func(o *Options) error {
		o.MaxBodyBytes = n
		return nil
	}
}

// newOptions applies opts over the defaults and validates the result.
func newOptions(opts []Option) (*Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if o.Delimiter == "" && o.DelimiterPattern == nil {
		o.Delimiter = DefaultDelimiter
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return &o, nil
}

func (o *Options) validate() error {
	switch {
	case o.Depth < 0:
		return fmt.Errorf("%w: depth must not be negative, got %d", ErrInvalidConfiguration, o.Depth)
	case o.ArrayLimit < 0:
		return fmt.Errorf("%w: array limit must not be negative, got %d", ErrInvalidConfiguration, o.ArrayLimit)
	case o.ParameterLimit < 0:
		return fmt.Errorf("%w: parameter limit must not be negative, got %d", ErrInvalidConfiguration, o.ParameterLimit)
	case o.MaxBodyBytes < 0:
		return fmt.Errorf("%w: body limit must not be negative, got %d", ErrInvalidConfiguration, o.MaxBodyBytes)
	}
	return nil
}

// guarded reports whether a key name must be rejected by the pollution guard.
func (o *Options) guarded(name string) bool {
	if o.PlainObjects || o.AllowPrototypes {
		return false
	}
	_, ok := reservedNames[name]
	return ok
}
