package model

import "strings"

// SpanKind identifies the delimiter pair that bounds a span.
type SpanKind int

// Available SpanKind values.
const (
	Parenthesized SpanKind = iota
	Braced
	Bracketed
)

// Span is a balanced, delimiter-bounded region of a buffer. Start is the
// offset of the opening delimiter and End the offset of the matching closing
// delimiter (inclusive), so buf[Start] and buf[End] are always a matching
// pair under the scanner's quote-aware rules.
type Span struct {
	Start int
	End   int
	Kind  SpanKind
}

// Interior returns the text between the delimiters, excluding both.
func (s Span) Interior(buf string) string {
	return buf[s.Start+1 : s.End]
}

// Field is one element of a FieldList. Offsets are relative to the interior
// the list was split from; Text keeps surrounding whitespace so the original
// interior can be reproduced byte-for-byte.
type Field struct {
	Start int
	End   int
	Text  string
}

// FieldList is the ordered, quote/depth-aware split of a span's interior on
// a separator.
type FieldList []Field

// Join concatenates the field texts with sep. For any list produced by
// SplitFields, Join(sep) reproduces the interior it was split from.
func (fl FieldList) Join(sep string) string {
	parts := make([]string, len(fl))
	for i, f := range fl {
		parts[i] = f.Text
	}

	return strings.Join(parts, sep)
}
