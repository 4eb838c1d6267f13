package utils

import (
	"bytes"
	"encoding/json"

	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

const jsonMediaType = "application/json"

var minifier = func() *minify.M {
	m := minify.New()
	m.AddFunc(jsonMediaType, mjson.Minify)
	return m
}()

// MarshalJSON encodes v without HTML escaping and without a trailing newline.
// indent == "" gives compact output.
func MarshalJSON(v any, indent string) ([]byte, error) {
	buf := SharedBufferPool.Get()
	defer SharedBufferPool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return bytes.Clone(out), nil
}

// MinifyJSON strips insignificant whitespace from a JSON document.
func MinifyJSON(data []byte) ([]byte, error) {
	return minifier.Bytes(jsonMediaType, data)
}
