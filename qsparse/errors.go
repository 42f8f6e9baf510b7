package qsparse

import "errors"

var (
	// ErrInvalidConfiguration is returned before any parsing when options are unusable.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidPercent is returned in strict decode mode for malformed escapes.
	ErrInvalidPercent = errors.New("invalid percent-escape")
	// ErrUnsupportedEncoding is returned by ParseRequest for unknown Content-Encoding values.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
	// ErrBodyTooLarge is returned by ParseRequest when the body exceeds MaxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)
