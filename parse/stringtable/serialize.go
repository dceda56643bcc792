package stringtable

import (
	"bytes"
	"strings"
)

// =========================
// Serializer
// =========================

// Encode serializes f as UTF-8 with no BOM. Each entry becomes an
// optional block comment line, then `"key" = "value";` and a blank
// separator line. The formatting is fixed; output is deterministic for
// a given table. A comment containing "*/" would close its own block
// comment on disk and not round-trip, so it fails with a
// *SerializeError instead of being emitted.
func Encode(f File) ([]byte, error) {
	var buf bytes.Buffer
	for i, e := range f {
		if e.Comment != nil {
			if strings.Contains(*e.Comment, "*/") {
				return nil, &SerializeError{Kind: ErrCommentContainsTerminator, EntryIndex: i}
			}
			buf.WriteString("/* ")
			buf.WriteString(*e.Comment)
			buf.WriteString(" */\n")
		}
		writeQuoted(&buf, e.Key)
		buf.WriteString(" = ")
		writeQuoted(&buf, e.Value)
		buf.WriteString(";\n\n")
	}
	return buf.Bytes(), nil
}

// writeQuoted emits s in double quotes, escaping only embedded quotes
// and backslashes. Everything else, supplementary-plane characters
// included, is written as literal UTF-8; nothing is re-escaped as \U
// code units on the way out.
func writeQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, c := range s {
		if c == '"' || c == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteRune(c)
	}
	buf.WriteByte('"')
}
