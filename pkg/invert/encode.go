package invert

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Encode writes m as a JSON object with string values.
//
// Each member goes on its own line, indented by indent spaces, with ": "
// between key and value. Non-ASCII and HTML characters are written as-is,
// including the line and paragraph separators U+2028 and U+2029.
// An empty map is written as "{}". No trailing newline is added.
func Encode(w io.Writer, m *orderedmap.OrderedMap, indent int) error {
	keys := m.Keys()
	if len(keys) == 0 {
		_, err := io.WriteString(w, "{}")
		return err
	}

	pad := strings.Repeat(" ", indent)
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		value, _ := m.Get(key)
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("value of %q is %T, not a string", key, value)
		}

		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(pad)
		writeString(&buf, key)
		buf.WriteString(": ")
		writeString(&buf, s)
	}
	buf.WriteString("\n}")

	_, err := w.Write(buf.Bytes())
	return err
}

// writeString appends s as a quoted JSON string. Only the quote, the
// backslash and control characters are escaped; every other character,
// U+2028 and U+2029 included, is written as-is.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}
