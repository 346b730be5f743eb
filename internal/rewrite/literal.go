package rewrite

import (
	"sort"
	"strings"

	m "github.com/resew-dev/resew/internal/model"
	"github.com/resew-dev/resew/internal/scan"
)

// LiteralSubst replaces quoted symbolic literals inside INSERT value tuples
// with their mapped plain values. Which tuple position maps to which role is
// derived from the statement's declared column list, so the same mapping
// file works across statements with different column orders.
type LiteralSubst struct {
	Mapping m.SymbolMapping
}

// Name implements Policy.
func (p LiteralSubst) Name() string { return "literal-subst" }

// Rewrite implements Policy.
func (p LiteralSubst) Rewrite(file m.Path, buf string) Result {
	var res Result

	stmts, skipped := scan.FindInsertStatements(buf)
	for _, anchor := range skipped {
		res.Audit = append(res.Audit, skippedEntry(file, buf, anchor, "unbalanced span"))
	}

	for _, stmt := range stmts {
		roles := p.roleColumns(stmt.Columns.Interior(buf))
		if len(roles) == 0 {
			continue
		}

		for _, tuple := range stmt.Tuples {
			p.rewriteTuple(&res, file, buf, tuple, roles)
		}
	}

	return res
}

// roleColumn binds a tuple field index to a mapping role.
type roleColumn struct {
	index   int
	role    string
	symbols map[string]string
}

func (p LiteralSubst) roleColumns(columnsInterior string) []roleColumn {
	fields := scan.SplitFields(columnsInterior, ',', scan.DialectDoubledQuote)

	var roles []roleColumn

	for i, f := range fields {
		name := strings.TrimSpace(f.Text)
		name = strings.Trim(name, `"[]`)

		symbols, ok := p.Mapping.Role(name)
		if !ok {
			continue
		}

		roles = append(roles, roleColumn{index: i, role: name, symbols: symbols})
	}

	return roles
}

func (p LiteralSubst) rewriteTuple(res *Result, file m.Path, buf string, tuple m.Span, roles []roleColumn) {
	fields := scan.SplitFields(tuple.Interior(buf), ',', scan.DialectDoubledQuote)

	for _, rc := range roles {
		if rc.index >= len(fields) {
			continue
		}

		field := fields[rc.index]

		// Already-numeric fields fail to unquote, which is exactly the
		// idempotence condition: a second run proposes nothing.
		literal, ok := unquoteLiteral(field.Text)
		if !ok {
			continue
		}

		fieldStart := tuple.Start + 1 + field.Start
		entry := m.AuditEntry{
			File:   file,
			Line:   scan.LineOf(buf, fieldStart),
			Offset: fieldStart,
			Symbol: literal,
		}

		value, ok := Resolve(rc.symbols, literal)
		if !ok {
			entry.Status = m.StatusUnresolved
			entry.Reason = "no mapping for role " + rc.role
			res.Audit = append(res.Audit, entry)

			continue
		}

		lead := len(field.Text) - len(strings.TrimLeft(field.Text, " \t\r\n"))
		trail := len(field.Text) - len(strings.TrimRight(field.Text, " \t\r\n"))

		res.Replacements = append(res.Replacements, m.Replacement{
			Start:   fieldStart + lead,
			End:     fieldStart + len(field.Text) - trail,
			NewText: value,
			Reason:  "remap " + rc.role,
		})

		entry.Status = m.StatusResolved
		entry.Value = value
		res.Audit = append(res.Audit, entry)
	}
}

// unquoteLiteral strips the quotes from a single-quoted SQL string literal,
// tolerating a wide-string marker prefix (N'...') and unescaping doubled
// quotes. ok is false for anything that is not a quoted literal.
func unquoteLiteral(text string) (string, bool) {
	s := strings.TrimSpace(text)

	if len(s) >= 2 && (s[0] == 'N' || s[0] == 'n') && s[1] == '\'' {
		s = s[1:]
	}

	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", false
	}

	return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), true
}

// Resolve looks a literal up in a role's symbol table using the two-tier
// policy: an exact case-insensitive match first, then a normalized
// substring fallback for free-text variants ("General Fund 2024" resolves
// through the "General Fund" key). Candidates are tried in sorted key order
// so the fallback is deterministic.
func Resolve(symbols map[string]string, literal string) (string, bool) {
	keys := make([]string, 0, len(symbols))
	for k := range symbols {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		if strings.EqualFold(k, literal) {
			return symbols[k], true
		}
	}

	norm := normalize(literal)
	if norm == "" {
		return "", false
	}

	for _, k := range keys {
		nk := normalize(k)
		if nk == "" {
			continue
		}

		if strings.Contains(norm, nk) || strings.Contains(nk, norm) {
			return symbols[k], true
		}
	}

	return "", false
}

// normalize lowercases and strips everything but letters and digits, so
// punctuation and spacing differences do not defeat the fallback tier.
func normalize(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}
