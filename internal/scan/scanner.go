// Package scan implements the quote- and depth-aware lexical scanner, the
// balanced-span extractor and the structural locator the rewriting policies
// are built on. Everything here is a pure function of a text buffer; no I/O.
package scan

// Dialect selects the string-escaping rules the scanner honours.
type Dialect int

// Available Dialect values.
const (
	// DialectBackslash treats a backslash inside a quoted region as
	// consuming the next character literally (code-like string literals).
	DialectBackslash Dialect = iota
	// DialectDoubledQuote treats a repeated quote character as an escaped
	// quote that stays inside the string (SQL-like literals). A wide-string
	// marker such as the N in N'...' is ordinary text before the opening
	// quote and never part of the quoted content.
	DialectDoubledQuote
)

// State is the scanner's transient view of the buffer at one offset. It is
// created at scan start and discarded at scan end, never persisted.
type State struct {
	InQuote bool
	Quote   byte
	Escaped bool
	Depth   int
}

// Scanner walks a buffer one byte at a time, tracking quoted-string state
// and bracket-nesting depth. Quote state never toggles on a delimiter inside
// an active quoted region, and depth never changes inside one.
type Scanner struct {
	buf     string
	pos     int
	dialect Dialect
	state   State
}

// New returns a Scanner positioned at from.
func New(buf string, from int, dialect Dialect) *Scanner {
	return &Scanner{buf: buf, pos: from, dialect: dialect}
}

// Next consumes one byte and returns its offset and value. ok is false once
// the buffer is exhausted; ending inside a quote or at non-zero depth is not
// an error here, the caller inspects State and decides.
func (s *Scanner) Next() (offset int, ch byte, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, 0, false
	}

	offset = s.pos
	ch = s.buf[s.pos]
	s.pos++
	s.step(ch)

	return offset, ch, true
}

// State returns the scanner state after the most recently consumed byte.
func (s *Scanner) State() State {
	return s.state
}

func (s *Scanner) step(ch byte) {
	if s.state.Escaped {
		s.state.Escaped = false
		return
	}

	if s.state.InQuote {
		s.stepInQuote(ch)
		return
	}

	switch ch {
	case '\'', '"':
		s.state.InQuote = true
		s.state.Quote = ch
	case '(', '[', '{':
		s.state.Depth++
	case ')', ']', '}':
		s.state.Depth--
	}
}

func (s *Scanner) stepInQuote(ch byte) {
	switch s.dialect {
	case DialectBackslash:
		if ch == '\\' {
			s.state.Escaped = true
			return
		}

		if ch == s.state.Quote {
			s.state.InQuote = false
		}
	case DialectDoubledQuote:
		if ch != s.state.Quote {
			return
		}

		// A doubled quote is an escaped quote: consume the second one
		// on the next step and stay inside the string.
		if s.pos < len(s.buf) && s.buf[s.pos] == s.state.Quote {
			s.state.Escaped = true
			return
		}

		s.state.InQuote = false
	}
}
