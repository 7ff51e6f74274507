// Package invert swaps the keys and values of a flat JSON object.
//
// # Overview
//
// Given a JSON document whose top-level value is an object, the package
// produces a new object whose keys are the original values and whose
// values are the original keys:
//
//	{"cat": "0", "dog": "1"}  →  {"0": "cat", "1": "dog"}
//
// Entries are processed in document order and the output preserves that
// order.
//
// # Key Stringification
//
// JSON object keys must be strings, so each value is turned into a key
// by [Stringify]:
//
//   - string: used as-is
//   - number: its literal text from the input ("1.50" stays "1.50")
//   - boolean: "true" or "false"
//   - null: "null"
//   - object or array: compact JSON text, key order preserved
//
// Nested objects and arrays are not inverted recursively. Their compact
// text is used as an opaque key and does not round-trip.
//
// # Collisions
//
// Two entries collide when their values stringify to the same key. The
// later entry overwrites the earlier one (last write wins); the key keeps
// the position where it first appeared. Every collision is recorded in
// [Inversion.Collisions] and reported to the registered
// [observability.ConvertHooks].
//
// # File Conversion
//
// [Converter.Convert] reads an input file, inverts it and writes the
// result, pretty-printed with [Options.Indent] spaces and with non-ASCII
// characters left unescaped. The output is written to a temporary file
// and renamed into place, so a failed conversion never creates or
// modifies the output path. Failures are returned as *errors.Error values
// whose code identifies the failure category:
//
//   - FILE_NOT_FOUND: the input path does not exist
//   - INVALID_JSON: the input is not syntactically valid JSON
//   - INVALID_SHAPE: the top-level value is not an object
//   - INVALID_ENCODING, INTERNAL_ERROR: anything else
//
// # Example
//
//	res, err := invert.Convert(ctx, "lables.json", "reversed.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.CollisionKeys())
//
// [observability.ConvertHooks]: github.com/matzehuels/jsoninvert/pkg/observability.ConvertHooks
package invert
