package scan

import (
	"regexp"
	"strings"

	m "github.com/resew-dev/resew/internal/model"
)

// Anchor is a coarse candidate handed to the span extractor: the offset of
// an opening delimiter whose matching span should be extracted, plus the
// identifier that led to it. Anchors deliberately over-match (pattern
// search, not grammar) and rely on the extractor to reject anything that
// does not close within the buffer.
type Anchor struct {
	Name string
	Open int
}

// InsertStatement is a located data-manipulation statement: the declared
// column list plus the span of each value tuple that follows the value-list
// keyword.
type InsertStatement struct {
	Table   string
	Columns m.Span
	Tuples  []m.Span
}

var insertRE = regexp.MustCompile(`(?i)\binsert\s+into\s+([\w.$"\[\]]+)\s*\(`)

// valuesRE is anchored so the keyword must immediately follow the column
// list; anything else means the candidate header was a false positive.
var valuesRE = regexp.MustCompile(`(?is)^\s*values\s*`)

// FindCalls returns anchors for invocations of the named operations, i.e.
// occurrences of name( or .name( for any name in names.
func FindCalls(buf string, names []string) []Anchor {
	if len(names) == 0 {
		return nil
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}

	re, err := regexp.Compile(`\b(` + strings.Join(quoted, "|") + `)\s*\(`)
	if err != nil {
		return nil
	}

	var anchors []Anchor

	for _, match := range re.FindAllStringSubmatchIndex(buf, -1) {
		anchors = append(anchors, Anchor{
			Name: buf[match[2]:match[3]],
			Open: match[1] - 1,
		})
	}

	return anchors
}

// FindDeclarations returns anchors for method declarations whose return
// type starts with one of the given keywords, e.g. Task Foo( or
// ValueTask<int> Foo(. The generic-argument pattern is intentionally loose;
// a false positive either fails to close or is filtered by the rewriter.
func FindDeclarations(buf string, returnTypes []string) []Anchor {
	if len(returnTypes) == 0 {
		return nil
	}

	quoted := make([]string, len(returnTypes))
	for i, rt := range returnTypes {
		quoted[i] = regexp.QuoteMeta(rt)
	}

	re, err := regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)(?:<[^\n{};]*>)?\s+([A-Za-z_]\w*)\s*\(`)
	if err != nil {
		return nil
	}

	var anchors []Anchor

	for _, match := range re.FindAllStringSubmatchIndex(buf, -1) {
		anchors = append(anchors, Anchor{
			Name: buf[match[2]:match[3]],
			Open: match[1] - 1,
		})
	}

	return anchors
}

// FindInsertStatements locates INSERT statements and refines their column
// list and value tuples into exact spans. Candidates whose header has no
// closing payload are dropped silently; candidates that open a group which
// never closes are returned as skipped anchors so the caller can enumerate
// them in the audit.
func FindInsertStatements(buf string) (stmts []InsertStatement, skipped []Anchor) {
	for _, match := range insertRE.FindAllStringSubmatchIndex(buf, -1) {
		table := buf[match[2]:match[3]]
		open := match[1] - 1

		columns, ok := MatchDelimiter(buf, open, DialectDoubledQuote)
		if !ok {
			skipped = append(skipped, Anchor{Name: table, Open: open})
			continue
		}

		rest := buf[columns.End+1:]

		vm := valuesRE.FindStringIndex(rest)
		if vm == nil {
			continue
		}

		pos := columns.End + 1 + vm[1]

		var tuples []m.Span

		for {
			for pos < len(buf) && isSpace(buf[pos]) {
				pos++
			}

			if pos >= len(buf) || buf[pos] != '(' {
				break
			}

			tuple, ok := MatchDelimiter(buf, pos, DialectDoubledQuote)
			if !ok {
				skipped = append(skipped, Anchor{Name: table, Open: pos})
				break
			}

			tuples = append(tuples, tuple)
			pos = tuple.End + 1

			for pos < len(buf) && isSpace(buf[pos]) {
				pos++
			}

			if pos < len(buf) && buf[pos] == ',' {
				pos++
				continue
			}

			break
		}

		if len(tuples) == 0 {
			continue
		}

		stmts = append(stmts, InsertStatement{Table: table, Columns: columns, Tuples: tuples})
	}

	return stmts, skipped
}

// LineOf returns the 1-based line number containing offset.
func LineOf(buf string, offset int) int {
	if offset > len(buf) {
		offset = len(buf)
	}

	return 1 + strings.Count(buf[:offset], "\n")
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}
