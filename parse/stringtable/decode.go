package stringtable

import (
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// =========================
// Encodings
// =========================

type Encoding uint8

const (
	UTF8 Encoding = iota
	UTF16BE
	UTF16LE
	UTF32BE
	UTF32LE
)

func (e Encoding) String() string {
	switch e {
	case UTF16BE:
		return "UTF-16BE"
	case UTF16LE:
		return "UTF-16LE"
	case UTF32BE:
		return "UTF-32BE"
	case UTF32LE:
		return "UTF-32LE"
	}
	return "UTF-8"
}

// unitWidth is the code-unit width in bytes.
func (e Encoding) unitWidth() int {
	switch e {
	case UTF16BE, UTF16LE:
		return 2
	case UTF32BE, UTF32LE:
		return 4
	}
	return 1
}

// =========================
// BOM Detection
// =========================

// detectBOM inspects up to the first four bytes and returns the marked
// encoding and the marker length. Longer markers are checked first so
// the UTF-32LE BOM is not mistaken for UTF-16LE. Without a marker the
// input is assumed to be UTF-8 with nothing to skip.
func detectBOM(data []byte) (Encoding, int) {
	switch {
	case len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0xFE && data[3] == 0xFF:
		return UTF32BE, 4
	case len(data) >= 4 && data[0] == 0xFF && data[1] == 0xFE && data[2] == 0x00 && data[3] == 0x00:
		return UTF32LE, 4
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return UTF16BE, 2
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return UTF16LE, 2
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return UTF8, 3
	}
	return UTF8, 0
}

// =========================
// Strict Text Decoding
// =========================

// decodeText decodes data (BOM already stripped) and reports whether
// the result needed repair. The forward decode substitutes U+FFFD for
// bad input, so the same bytes are re-validated strictly; a trailing
// partial code unit is always a repair, with one replacement character
// appended to keep diagnostic lengths consistent. Callers must reject
// repaired text.
func decodeText(data []byte, enc Encoding) (string, bool) {
	rem := len(data) % enc.unitWidth()
	whole := data[:len(data)-rem]

	out, err := decoderFor(enc).Bytes(whole)
	text := string(out)
	valid := err == nil && validBytes(whole, enc)
	if rem != 0 {
		text += string(utf8.RuneError)
	}
	return text, !valid || rem != 0
}

func decoderFor(enc Encoding) *encoding.Decoder {
	switch enc {
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
	}
	return unicode.UTF8.NewDecoder()
}

// validBytes re-walks data scalar by scalar and reports whether every
// code unit sequence is well formed. data length is already a multiple
// of the unit width.
func validBytes(data []byte, enc Encoding) bool {
	switch enc {
	case UTF16BE, UTF16LE:
		return wellFormedUTF16(utf16Units(data, enc == UTF16BE))
	case UTF32BE, UTF32LE:
		return validUTF32(data, enc == UTF32BE)
	}
	return utf8.Valid(data)
}

func utf16Units(data []byte, bigEndian bool) []uint16 {
	units := make([]uint16, len(data)/2)
	for i := range units {
		if bigEndian {
			units[i] = binary.BigEndian.Uint16(data[i*2:])
		} else {
			units[i] = binary.LittleEndian.Uint16(data[i*2:])
		}
	}
	return units
}

// wellFormedUTF16 reports whether units contains no unpaired
// surrogates. Shared with the quoted-string escape accumulator, which
// must reject \U escapes that spell a broken pair.
func wellFormedUTF16(units []uint16) bool {
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u < 0xDC00: // high surrogate, low must follow
			if i+1 >= len(units) {
				return false
			}
			i++
			if units[i] < 0xDC00 || units[i] >= 0xE000 {
				return false
			}
		case u >= 0xDC00 && u < 0xE000: // unpaired low surrogate
			return false
		}
	}
	return true
}

func validUTF32(data []byte, bigEndian bool) bool {
	for i := 0; i+4 <= len(data); i += 4 {
		var u uint32
		if bigEndian {
			u = binary.BigEndian.Uint32(data[i:])
		} else {
			u = binary.LittleEndian.Uint32(data[i:])
		}
		if u > 0x10FFFF || (u >= 0xD800 && u < 0xE000) {
			return false
		}
	}
	return true
}
