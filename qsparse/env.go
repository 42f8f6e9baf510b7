package qsparse

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/joeshaw/envdecode"
)

// envOptions mirrors the scalar fields of Options. Defaults are provided via
// struct tags.
type envOptions struct {
	// ENV: QS_DELIMITER
	Delimiter string `env:"QS_DELIMITER,default=&"`
	// ENV: QS_DELIMITER_PATTERN, a regular expression overriding QS_DELIMITER
	DelimiterPattern        string `env:"QS_DELIMITER_PATTERN"`
	ParameterLimit          int    `env:"QS_PARAMETER_LIMIT,default=1000"`
	Depth                   int    `env:"QS_DEPTH,default=5"`
	ArrayLimit              int    `env:"QS_ARRAY_LIMIT,default=20"`
	AllowDots               bool   `env:"QS_ALLOW_DOTS,default=false"`
	AllowPrototypes         bool   `env:"QS_ALLOW_PROTOTYPES,default=false"`
	PlainObjects            bool   `env:"QS_PLAIN_OBJECTS,default=false"`
	ParseArrays             bool   `env:"QS_PARSE_ARRAYS,default=true"`
	ParseObjectsRecursively bool   `env:"QS_PARSE_OBJECTS_RECURSIVELY,default=false"`
	IgnoreQueryPrefix       bool   `env:"QS_IGNORE_QUERY_PREFIX,default=false"`
	StrictNullHandling      bool   `env:"QS_STRICT_NULL_HANDLING,default=false"`
	StrictDecode            bool   `env:"QS_STRICT_DECODE,default=false"`
	MaxBodyBytes            int64  `env:"QS_MAX_BODY_BYTES,default=10485760"`
}

// OptionsFromEnv builds Options from QS_* environment variables using
// envdecode. Unset variables keep their defaults.
func OptionsFromEnv() (Options, error) {
	var e envOptions
	if err := envdecode.Decode(&e); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	o := DefaultOptions()
	o.Delimiter = e.Delimiter
	o.ParameterLimit = e.ParameterLimit
	o.Depth = e.Depth
	o.ArrayLimit = e.ArrayLimit
	o.AllowDots = e.AllowDots
	o.AllowPrototypes = e.AllowPrototypes
	o.PlainObjects = e.PlainObjects
	o.ParseArrays = e.ParseArrays
	o.ParseObjectsRecursively = e.ParseObjectsRecursively
	o.IgnoreQueryPrefix = e.IgnoreQueryPrefix
	o.StrictNullHandling = e.StrictNullHandling
	o.StrictDecode = e.StrictDecode
	o.MaxBodyBytes = e.MaxBodyBytes

	if e.DelimiterPattern != "" {
		re, err := regexp.Compile(e.DelimiterPattern)
		if err != nil {
			return Options{}, fmt.Errorf("%w: QS_DELIMITER_PATTERN: %v", ErrInvalidConfiguration, err)
		}
		o.DelimiterPattern = re
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
