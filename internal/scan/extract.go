package scan

import (
	m "github.com/resew-dev/resew/internal/model"
)

var closers = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

var kinds = map[byte]m.SpanKind{
	'(': m.Parenthesized,
	'[': m.Bracketed,
	'{': m.Braced,
}

// MatchDelimiter walks forward from the opening delimiter at open and
// returns the balanced span it bounds, including the closing delimiter.
// ok is false when buf[open] is not an opening delimiter or the buffer ends
// before depth returns to zero (unbalanced, non-fatal; the caller skips
// the candidate).
func MatchDelimiter(buf string, open int, dialect Dialect) (m.Span, bool) {
	if open < 0 || open >= len(buf) {
		return m.Span{}, false
	}

	openCh := buf[open]

	closeCh, ok := closers[openCh]
	if !ok {
		return m.Span{}, false
	}

	s := New(buf, open, dialect)

	for {
		offset, ch, ok := s.Next()
		if !ok {
			// Ran out of buffer inside the group (or inside a quoted
			// region, which is the same condition at this level).
			return m.Span{}, false
		}

		st := s.State()
		if st.InQuote {
			continue
		}

		if offset > open && ch == closeCh && st.Depth == 0 {
			return m.Span{Start: open, End: offset, Kind: kinds[openCh]}, true
		}
	}
}

// SplitFields splits a span's interior on sep, honouring quote state and
// nested depth: a separator inside a string literal or a nested delimiter
// group is part of a field, not a boundary. Field texts keep their
// surrounding whitespace so joining them with sep reproduces the interior
// byte-for-byte. An empty interior yields a single empty field.
func SplitFields(interior string, sep byte, dialect Dialect) m.FieldList {
	var fields m.FieldList

	start := 0
	s := New(interior, 0, dialect)

	for {
		offset, ch, ok := s.Next()
		if !ok {
			break
		}

		st := s.State()
		if ch != sep || st.InQuote || st.Depth != 0 {
			continue
		}

		fields = append(fields, m.Field{Start: start, End: offset, Text: interior[start:offset]})
		start = offset + 1
	}

	fields = append(fields, m.Field{Start: start, End: len(interior), Text: interior[start:]})

	return fields
}
