package stringtable

import (
	"strings"
	"unicode/utf16"
)

// =========================
// Parser Implementation
// =========================

// parseErr is an internal failure tagged with a code-point offset into
// the decoded text. It never leaves the package; DecodeString maps it
// to a ParseError with line/column.
type parseErr struct {
	kind   ParseErrKind
	offset int
}

// parser is a recursive-descent parser over code points. The grammar
// level works rune by rune with single-code-point lookahead; only the
// quoted-string scanner drops down to UTF-16 code units, so that \U
// escape pairs reassemble naturally.
type parser struct {
	text []rune
	pos  int
}

func (p *parser) parse() (File, *parseErr) {
	f := File{}
	for {
		comment, perr := p.skipWhitespaceAndComments()
		if perr != nil {
			return nil, perr
		}
		if p.pos >= len(p.text) {
			return f, nil
		}
		e, perr := p.parseEntry(comment)
		if perr != nil {
			return nil, perr
		}
		f = append(f, *e)
	}
}

// skipWhitespaceAndComments advances past whitespace and comments and
// returns the text of the last comment seen, nil if none. With several
// consecutive comment blocks the nearest one wins; earlier ones are
// dropped. A lone '/' is not a comment opener, it starts an unquoted
// string, so skipping stops there.
func (p *parser) skipWhitespaceAndComments() (*string, *parseErr) {
	var last *string
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch {
		case isWhitespace(c):
			p.pos++
		case c == '/' && p.pos+1 < len(p.text) && p.text[p.pos+1] == '/':
			p.pos += 2
			start := p.pos
			for p.pos < len(p.text) && !isNewline(p.text[p.pos]) {
				p.pos++
			}
			s := string(p.text[start:p.pos])
			last = &s
		case c == '/' && p.pos+1 < len(p.text) && p.text[p.pos+1] == '*':
			open := p.pos
			p.pos += 2
			start := p.pos
			for {
				if p.pos >= len(p.text) {
					return nil, &parseErr{kind: ErrUnterminatedComment, offset: open}
				}
				if p.text[p.pos] == '*' && p.pos+1 < len(p.text) && p.text[p.pos+1] == '/' {
					break
				}
				p.pos++
			}
			s := string(p.text[start:p.pos])
			p.pos += 2
			last = &s
		default:
			return last, nil
		}
	}
	return last, nil
}

func (p *parser) parseEntry(comment *string) (*Entry, *parseErr) {
	key, perr := p.parseString()
	if perr != nil {
		return nil, perr
	}
	// comments between the key and its separator never bind to the entry
	if _, perr = p.skipWhitespaceAndComments(); perr != nil {
		return nil, perr
	}

	var value string
	switch {
	case p.pos < len(p.text) && p.text[p.pos] == ';':
		// shortcut form: the value is the key itself
		p.pos++
		value = key
	case p.pos < len(p.text) && p.text[p.pos] == '=':
		p.pos++
		if _, perr = p.skipWhitespaceAndComments(); perr != nil {
			return nil, perr
		}
		if value, perr = p.parseString(); perr != nil {
			return nil, perr
		}
		if _, perr = p.skipWhitespaceAndComments(); perr != nil {
			return nil, perr
		}
		if p.pos >= len(p.text) || p.text[p.pos] != ';' {
			return nil, &parseErr{kind: ErrExpectedSemicolon, offset: p.pos}
		}
		p.pos++
	default:
		return nil, &parseErr{kind: ErrExpectedSemicolonOrEquals, offset: p.pos}
	}

	e := &Entry{Key: key, Value: value}
	if comment != nil {
		c := strings.Trim(*comment, " \t")
		e.Comment = &c
	}
	return e, nil
}

func (p *parser) parseString() (string, *parseErr) {
	if p.pos >= len(p.text) {
		return "", &parseErr{kind: ErrUnexpectedEOF, offset: p.pos}
	}
	c := p.text[p.pos]
	if c == '"' || c == '\'' {
		return p.parseQuoted(c)
	}
	if isUnquoted(c) {
		start := p.pos
		for p.pos < len(p.text) && isUnquoted(p.text[p.pos]) {
			p.pos++
		}
		return string(p.text[start:p.pos]), nil
	}
	return "", &parseErr{kind: ErrUnexpectedCharacter, offset: p.pos}
}

// parseQuoted scans a string bounded by quote. Content accumulates as
// UTF-16 code units so that adjacent \U escapes can spell a surrogate
// pair; the whole string is checked for well-formedness at the closing
// quote. A trailing backslash just before end of input is consumed as a
// literal and the scan then runs off the end, which reports the string
// as unterminated at its opening quote.
func (p *parser) parseQuoted(quote rune) (string, *parseErr) {
	open := p.pos
	p.pos++
	var units []uint16
	for {
		if p.pos >= len(p.text) {
			return "", &parseErr{kind: ErrUnterminatedString, offset: open}
		}
		c := p.text[p.pos]
		if c == quote {
			p.pos++
			break
		}
		if c == '\\' && p.pos+1 < len(p.text) {
			var perr *parseErr
			if units, perr = p.appendEscape(units); perr != nil {
				return "", perr
			}
			continue
		}
		units = utf16.AppendRune(units, c)
		p.pos++
	}
	if !wellFormedUTF16(units) {
		return "", &parseErr{kind: ErrInvalidUTF16Surrogate, offset: open}
	}
	return string(utf16.Decode(units)), nil
}

// appendEscape decodes one backslash escape. p.pos is at the backslash
// and at least one more code point is available.
func (p *parser) appendEscape(units []uint16) ([]uint16, *parseErr) {
	p.pos++
	c := p.text[p.pos]
	switch {
	case c == 'a':
		units = append(units, 0x07)
		p.pos++
	case c == 'b':
		units = append(units, 0x08)
		p.pos++
	case c == 'f':
		units = append(units, 0x0C)
		p.pos++
	case c == 'n':
		units = append(units, 0x0A)
		p.pos++
	case c == 'r':
		units = append(units, 0x0D)
		p.pos++
	case c == 't':
		units = append(units, 0x09)
		p.pos++
	case c == 'v':
		units = append(units, 0x0B)
		p.pos++
	case c == 'U':
		p.pos++
		v, n := 0, 0
		for n < 4 && p.pos < len(p.text) {
			d, ok := hexDigit(p.text[p.pos])
			if !ok {
				break
			}
			v = v<<4 | d
			n++
			p.pos++
		}
		if n == 0 {
			// \U with no hex digits degrades to a literal U
			units = append(units, 'U')
		} else {
			units = append(units, uint16(v))
		}
	case c >= '0' && c <= '9':
		// NextStep's octal escapes are deliberately unsupported
		return nil, &parseErr{kind: ErrUnsupportedOctalEscape, offset: p.pos}
	default:
		units = utf16.AppendRune(units, c)
		p.pos++
	}
	return units, nil
}

// =========================
// Character Classes
// =========================

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\v', '\f', '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}

func isNewline(c rune) bool {
	switch c {
	case '\n', '\r', '\u2028', '\u2029':
		return true
	}
	return false
}

func isUnquoted(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_' || c == '$' || c == '/' || c == ':' || c == '.' || c == '-'
}

func hexDigit(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// =========================
// Error Location Mapping
// =========================

// lineCol maps a code-point offset to 0-based line and column by
// re-walking the text. Every newline code point starts a new line, so
// a CR LF pair counts as two.
func lineCol(text []rune, offset int) (int, int) {
	line, col := 0, 0
	for i := 0; i < offset && i < len(text); i++ {
		if isNewline(text[i]) {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}
