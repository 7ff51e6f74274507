// Package pkg provides the libraries behind jsoninvert.
//
// # Overview
//
// jsoninvert swaps the keys and values of a flat JSON object. The pkg
// directory is organized as:
//
//  1. [invert] - Decoding, inversion, encoding and file conversion
//  2. [errors] - Coded errors and input validation
//  3. [config] - TOML configuration file
//  4. [observability] - Hooks for logging and metrics
//  5. [buildinfo] - Version information set at build time
//
// # Architecture
//
// The data flow of a conversion:
//
//	input file
//	     ↓
//	[invert.Decode] (UTF-8 check, syntax check, object check)
//	     ↓
//	[invert.Invert] (stringify values, last write wins)
//	     ↓
//	[invert.Encode] (indented JSON, non-ASCII unescaped)
//	     ↓
//	temporary file → rename over output
//
// # Quick Start
//
//	import "github.com/matzehuels/jsoninvert/pkg/invert"
//
//	res, err := invert.Convert(ctx, "lables.json", "reversed.json")
//	if err != nil {
//	    switch errors.Category(err) {
//	    case errors.KindNotFound, errors.KindParse, errors.KindShape:
//	        // bad input
//	    }
//	}
//	for _, c := range res.Collisions {
//	    fmt.Printf("%q: %s replaced %s\n", c.Key, c.Current, c.Previous)
//	}
//
// # Error Handling
//
// Functions return *errors.Error values carrying a machine-readable code.
// Nothing in pkg prints; the CLI turns errors into diagnostics.
//
// [invert]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/invert
// [errors]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/errors
// [config]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/buildinfo
// [invert.Decode]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/invert#Decode
// [invert.Invert]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/invert#Invert
// [invert.Encode]: https://pkg.go.dev/github.com/matzehuels/jsoninvert/pkg/invert#Encode
package pkg
