package invert

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/keboola/go-utils/pkg/orderedmap"

	errs "github.com/matzehuels/jsoninvert/pkg/errors"
)

// Decode parses data into an ordered map from key to raw JSON value.
//
// The input must be valid UTF-8, must be a single syntactically valid JSON
// value, and that value must be an object. Checks run in that order, so
// malformed text is always reported as INVALID_JSON even when it starts
// like an array.
//
// Duplicate keys collapse the way a JSON object load does: the last value
// wins and the key stays at the position of its first occurrence.
func Decode(data []byte) (*orderedmap.OrderedMap, error) {
	if !utf8.Valid(data) {
		return nil, errs.New(errs.ErrCodeInvalidEncoding, "input is not valid UTF-8")
	}

	var probe json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidJSON, err, "input is not valid JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidJSON, err, "input is not valid JSON")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errs.New(errs.ErrCodeInvalidShape, "top-level JSON value must be an object, got %s", tokenKind(tok))
	}

	doc := orderedmap.New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidJSON, err, "read object key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errs.New(errs.ErrCodeInvalidJSON, "object key is %s, not a string", tokenKind(tok))
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidJSON, err, "read value of %q", key)
		}
		doc.Set(key, raw)
	}

	return doc, nil
}

// tokenKind names the JSON type a decoder token starts.
func tokenKind(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return "object"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
