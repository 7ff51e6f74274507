package invert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/keboola/go-utils/pkg/orderedmap"

	errs "github.com/matzehuels/jsoninvert/pkg/errors"
	"github.com/matzehuels/jsoninvert/pkg/observability"
)

// Collision records one source entry overwriting an earlier one.
type Collision struct {
	Key      string // Inverted key both entries produced
	Previous string // Source key that was overwritten
	Current  string // Source key that now owns Key
}

// Inversion is the in-memory result of inverting a document.
type Inversion struct {
	// Doc maps stringified values to source keys, in insertion order.
	Doc *orderedmap.OrderedMap

	// Entries is the number of source entries processed.
	Entries int

	// Collisions lists every overwrite in the order it happened.
	Collisions []Collision
}

// CollisionKeys returns the distinct colliding keys in first-seen order.
func (inv *Inversion) CollisionKeys() []string {
	seen := make(map[string]bool, len(inv.Collisions))
	var keys []string
	for _, c := range inv.Collisions {
		if !seen[c.Key] {
			seen[c.Key] = true
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// Invert swaps keys and values of src, which maps keys to raw JSON values
// as returned by [Decode].
//
// On collision the later entry wins. Each collision is recorded and passed
// to the registered convert hooks.
func Invert(ctx context.Context, src *orderedmap.OrderedMap) (*Inversion, error) {
	hooks := observability.Convert()
	inv := &Inversion{Doc: orderedmap.New()}

	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		raw, ok := value.(json.RawMessage)
		if !ok {
			return nil, errs.New(errs.ErrCodeInternal, "value of %q is %T, not raw JSON", key, value)
		}

		newKey, err := Stringify(raw)
		if err != nil {
			code := errs.GetCode(err)
			if code == "" {
				code = errs.ErrCodeInternal
			}
			return nil, errs.Wrap(code, err, "stringify value of %q", key)
		}

		if prev, exists := inv.Doc.Get(newKey); exists {
			c := Collision{Key: newKey, Previous: prev.(string), Current: key}
			inv.Collisions = append(inv.Collisions, c)
			hooks.OnCollision(ctx, c.Key, c.Previous, c.Current)
		}
		inv.Doc.Set(newKey, key)
		inv.Entries++
	}

	return inv, nil
}

// Stringify converts a raw JSON value into an object key.
//
// Strings are unquoted, numbers keep their literal text, booleans and null
// become "true", "false" and "null". Objects and arrays are compacted.
// A string holding an unpaired surrogate escape such as "\ud800" fails with
// INVALID_ENCODING.
func Stringify(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", fmt.Errorf("empty value")
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if strings.ContainsRune(s, utf8.RuneError) && hasLoneSurrogate(raw) {
			return "", errs.New(errs.ErrCodeInvalidEncoding, "string %s contains an unpaired surrogate escape", raw)
		}
		return s, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		if !json.Valid(raw) {
			return "", fmt.Errorf("invalid literal %q", raw)
		}
		return string(raw), nil
	}
}

// hasLoneSurrogate reports whether the quoted JSON string raw has a \u
// escape for a surrogate half that is not part of a high/low pair.
func hasLoneSurrogate(raw []byte) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' {
			continue
		}
		i++
		if i >= len(raw) || raw[i] != 'u' {
			continue
		}
		r, ok := hexRune(raw, i+1)
		if !ok {
			continue
		}
		i += 4
		if !utf16.IsSurrogate(r) {
			continue
		}
		if r >= 0xdc00 {
			return true
		}
		if i+2 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
			if lo, ok := hexRune(raw, i+3); ok && utf16.DecodeRune(r, lo) != utf8.RuneError {
				i += 6
				continue
			}
		}
		return true
	}
	return false
}

func hexRune(b []byte, at int) (rune, bool) {
	if at+4 > len(b) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(b[at:at+4]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}
