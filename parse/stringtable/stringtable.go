package stringtable

// stringtable 包实现了 NeXTSTEP/OpenStep 风格的 .strings 字符串表格式：
// 一个带可选注释的扁平 key/value 字典，常用于本地化字符串表。
//
// 范围：
// - 完整的解码管线：BOM 探测、多编码严格文本解码、递归下降解析
// - 有序、保留重复 key 的条目列表，注释绑定到最近的条目
// - 确定性的 UTF-8 序列化（无 BOM），带注释往返保护
// - 精确到行/列的错误定位（均为 0 基）
//
// 非目标（设计如此）：
// - 二进制 / XML property list
// - 字符串以外的值类型
// - 修复畸形输入（错误是精确且致命的，不返回部分结果）
// - 流式 / 增量解析

import (
	"fmt"
)

// =========================
// Entry Model
// =========================

// Entry is one key/value record of the table. Comment == nil means the
// entry has no comment; a pointer to "" is a present-but-blank comment,
// which is a distinct state and survives a round trip.
type Entry struct {
	Key     string  `json:"key" yaml:"key"`
	Value   string  `json:"value" yaml:"value"`
	Comment *string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// File is an insertion-ordered entry list. Duplicate keys are legal and
// are never merged or reordered; file order is preserved end to end.
type File []Entry

// Append adds an entry at the end of the table.
func (f *File) Append(key, value string, comment *string) {
	*f = append(*f, Entry{Key: key, Value: value, Comment: comment})
}

// Lookup returns the value bound to key. With duplicate keys the first
// binding in file order wins.
func (f File) Lookup(key string) (string, bool) {
	for _, e := range f {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Values returns every value bound to key, in file order.
func (f File) Values(key string) []string {
	var out []string
	for _, e := range f {
		if e.Key == key {
			out = append(out, e.Value)
		}
	}
	return out
}

// =========================
// Public API
// =========================

// Decode parses raw .strings bytes. The encoding is chosen by BOM
// (UTF-8, UTF-16BE/LE or UTF-32BE/LE); without a BOM the input must be
// UTF-8. Bytes that do not decode cleanly are rejected with an
// *EncodingError; replacement characters are never substituted
// silently. Grammar failures return a *ParseError.
func Decode(data []byte) (File, error) {
	enc, skip := detectBOM(data)
	text, repaired := decodeText(data[skip:], enc)
	if repaired {
		return nil, &EncodingError{Encoding: enc}
	}
	return DecodeString(text)
}

// DecodeString parses already-decoded text. On failure the error is a
// *ParseError locating the problem by 0-based line and column.
func DecodeString(text string) (File, error) {
	p := &parser{text: []rune(text)}
	f, perr := p.parse()
	if perr != nil {
		line, col := lineCol(p.text, perr.offset)
		return nil, &ParseError{Kind: perr.kind, Line: line, Column: col}
	}
	return f, nil
}

// =========================
// Errors
// =========================

type ParseErrKind uint8

const (
	ErrUnexpectedEOF ParseErrKind = iota
	ErrUnexpectedCharacter
	ErrUnterminatedComment
	ErrUnterminatedString
	ErrUnsupportedOctalEscape
	ErrExpectedSemicolonOrEquals
	ErrExpectedSemicolon
	ErrInvalidUTF16Surrogate
)

func (k ParseErrKind) String() string {
	switch k {
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrUnterminatedComment:
		return "unterminated comment"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrUnsupportedOctalEscape:
		return "unsupported octal escape sequence"
	case ErrExpectedSemicolonOrEquals:
		return "expected semicolon or equals sign after key"
	case ErrExpectedSemicolon:
		return "expected semicolon after key/value pair"
	case ErrInvalidUTF16Surrogate:
		return "invalid UTF-16 surrogate in escape sequence"
	}
	return "unknown error"
}

// ParseError is a grammar failure. Line and Column are 0-based; Column
// counts code points from the start of the line.
type ParseError struct {
	Kind   ParseErrKind
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("strings:%d:%d: %s", e.Line, e.Column, e.Kind)
}

// EncodingError reports bytes that are not valid in the detected
// encoding (including a trailing partial code unit).
type EncodingError struct {
	Encoding Encoding
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("strings: malformed %s input", e.Encoding)
}

type SerializeErrKind uint8

const (
	// ErrCommentContainsTerminator means an entry's comment contains
	// "*/" and would close its own block comment on disk.
	ErrCommentContainsTerminator SerializeErrKind = iota
)

// SerializeError reports an entry that cannot be serialized.
type SerializeError struct {
	Kind       SerializeErrKind
	EntryIndex int
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("strings: entry %d: comment contains end-of-comment marker", e.EntryIndex)
}
