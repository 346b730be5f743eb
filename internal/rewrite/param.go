package rewrite

import (
	"strings"

	m "github.com/resew-dev/resew/internal/model"
	"github.com/resew-dev/resew/internal/scan"
)

// ParamOptions configures the parameter-append policies.
type ParamOptions struct {
	// ReturnTypes anchor candidate declarations: a keyword from this list
	// followed by an identifier and an opening parenthesis.
	ReturnTypes []string
	// MarkerTypes mark a span as already migrated when any of its fields
	// mentions one of them. Checked on both declarations and call sites.
	MarkerTypes []string
	// HandleHints is the loose already-has-a-handle heuristic for call
	// sites: a call is left untouched when any argument contains one of
	// these substrings, case-insensitively. This trades false negatives
	// (an unrelated identifier containing "token" is skipped) for never
	// double-passing a handle; override to tighten.
	HandleHints []string
	// ParamText is the field appended to declarations.
	ParamText string
	// ArgText is the field appended to call sites.
	ArgText string
}

// DefaultParamOptions returns the cancellation-propagation defaults.
func DefaultParamOptions() ParamOptions {
	return ParamOptions{
		ReturnTypes: []string{"Task", "ValueTask"},
		MarkerTypes: []string{"CancellationToken"},
		HandleHints: []string{"token"},
		ParamText:   "CancellationToken cancellationToken = default",
		ArgText:     "cancellationToken",
	}
}

// DeclAppend appends the configured parameter to method declarations that
// do not already carry a marker type.
type DeclAppend struct {
	Opts ParamOptions
}

// Name implements Policy.
func (p DeclAppend) Name() string { return "param-append/declarations" }

// Rewrite implements Policy.
func (p DeclAppend) Rewrite(file m.Path, buf string) Result {
	var res Result

	for _, anchor := range scan.FindDeclarations(buf, p.Opts.ReturnTypes) {
		span, ok := scan.MatchDelimiter(buf, anchor.Open, scan.DialectBackslash)
		if !ok {
			res.Audit = append(res.Audit, skippedEntry(file, buf, anchor, "unbalanced parameter list"))
			continue
		}

		fields := scan.SplitFields(span.Interior(buf), ',', scan.DialectBackslash)
		if anyFieldContains(fields, p.Opts.MarkerTypes, true) {
			continue
		}

		res.Replacements = append(res.Replacements, appendField(buf, span, p.Opts.ParamText))
		res.Audit = append(res.Audit, resolvedEntry(file, buf, anchor, p.Opts.ParamText))
	}

	return res
}

// MethodNames returns the name of every declaration the anchor patterns
// match, whether migrated or not. This is the cross-file symbol set the
// call-site phase consumes.
func (p DeclAppend) MethodNames(buf string) []string {
	seen := make(map[string]struct{})

	var names []string

	for _, anchor := range scan.FindDeclarations(buf, p.Opts.ReturnTypes) {
		if _, ok := scan.MatchDelimiter(buf, anchor.Open, scan.DialectBackslash); !ok {
			continue
		}

		if _, dup := seen[anchor.Name]; dup {
			continue
		}

		seen[anchor.Name] = struct{}{}
		names = append(names, anchor.Name)
	}

	return names
}

// CallAppend appends the configured argument to call sites of the named
// operations. Names is the cross-file set of signatures that accept the new
// parameter, typically collected by DeclAppend.MethodNames across the run.
type CallAppend struct {
	Opts  ParamOptions
	Names []string
}

// Name implements Policy.
func (p CallAppend) Name() string { return "param-append/calls" }

// Rewrite implements Policy.
func (p CallAppend) Rewrite(file m.Path, buf string) Result {
	var res Result

	for _, anchor := range scan.FindCalls(buf, p.Names) {
		span, ok := scan.MatchDelimiter(buf, anchor.Open, scan.DialectBackslash)
		if !ok {
			res.Audit = append(res.Audit, skippedEntry(file, buf, anchor, "unbalanced argument list"))
			continue
		}

		fields := scan.SplitFields(span.Interior(buf), ',', scan.DialectBackslash)

		// A declaration matched as a call carries the marker type; a call
		// already passing a handle trips the loose hint heuristic. Either
		// way the site is already migrated.
		if anyFieldContains(fields, p.Opts.MarkerTypes, true) ||
			anyFieldContains(fields, p.Opts.HandleHints, false) {
			continue
		}

		res.Replacements = append(res.Replacements, appendField(buf, span, p.Opts.ArgText))
		res.Audit = append(res.Audit, resolvedEntry(file, buf, anchor, p.Opts.ArgText))
	}

	return res
}

// appendField produces the insertion that adds text as a final field of the
// span: no leading separator when the list is empty, otherwise the last
// field's trailing whitespace is trimmed and ", "+text inserted just before
// the closing delimiter.
func appendField(buf string, span m.Span, text string) m.Replacement {
	interior := span.Interior(buf)

	if strings.TrimSpace(interior) == "" {
		return m.Replacement{
			Start:   span.Start + 1,
			End:     span.End,
			NewText: text,
			Reason:  "append first field",
		}
	}

	trimmed := strings.TrimRight(interior, " \t\r\n")

	return m.Replacement{
		Start:   span.Start + 1 + len(trimmed),
		End:     span.End,
		NewText: ", " + text,
		Reason:  "append field",
	}
}

func anyFieldContains(fields m.FieldList, needles []string, caseSensitive bool) bool {
	for _, f := range fields {
		text := f.Text
		if !caseSensitive {
			text = strings.ToLower(text)
		}

		for _, needle := range needles {
			if !caseSensitive {
				needle = strings.ToLower(needle)
			}

			if needle != "" && strings.Contains(text, needle) {
				return true
			}
		}
	}

	return false
}

func resolvedEntry(file m.Path, buf string, anchor scan.Anchor, value string) m.AuditEntry {
	return m.AuditEntry{
		File:   file,
		Line:   scan.LineOf(buf, anchor.Open),
		Offset: anchor.Open,
		Symbol: anchor.Name,
		Value:  value,
		Status: m.StatusResolved,
	}
}

func skippedEntry(file m.Path, buf string, anchor scan.Anchor, reason string) m.AuditEntry {
	return m.AuditEntry{
		File:   file,
		Line:   scan.LineOf(buf, anchor.Open),
		Offset: anchor.Open,
		Symbol: anchor.Name,
		Status: m.StatusSkipped,
		Reason: reason,
	}
}
