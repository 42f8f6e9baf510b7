package qsparse

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elnormous/contenttype"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

var formMediaType = contenttype.NewMediaType("application/x-www-form-urlencoded")

// ParseRequest decodes the URL query of r and, for POST, PUT and PATCH
// requests with a form-urlencoded body, the body as well. Body pairs come
// before query pairs, matching the order of http.Request.Form, and append
// markers are numbered across both.
func ParseRequest(r *http.Request, opts ...Option) (map[string]any, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	var kv pairs
	if hasFormBody(r) {
		body, err := o.readBody(r)
		if err != nil {
			return nil, err
		}
		bodyPairs, err := tokenize(string(body), o)
		if err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
		kv.extend(bodyPairs)
	}

	if r.URL != nil {
		queryPairs, err := tokenize(r.URL.RawQuery, o)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		kv.extend(queryPairs)
	}
	return o.assemble(kv), nil
}

func hasFormBody(r *http.Request) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return false
	}
	ctype, err := contenttype.GetMediaType(r)
	if err != nil {
		return false
	}
	return strings.EqualFold(ctype.Type, formMediaType.Type) &&
		strings.EqualFold(ctype.Subtype, formMediaType.Subtype)
}

// readBody reads the decompressed body, failing once it exceeds MaxBodyBytes.
func (o *Options) readBody(r *http.Request) ([]byte, error) {
	body, err := decompress(r.Body, r.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var src io.Reader = body
	if o.MaxBodyBytes > 0 {
		src = io.LimitReader(body, o.MaxBodyBytes+1)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if o.MaxBodyBytes > 0 && int64(buf.Len()) > o.MaxBodyBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, o.MaxBodyBytes)
	}
	return buf.Bytes(), nil
}

func decompress(body io.ReadCloser, encoding string) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip body: %w", err)
		}
		return zr, nil
	case "deflate":
		zr, err := zlib.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("deflate body: %w", err)
		}
		return zr, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("zstd body: %w", err)
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}
