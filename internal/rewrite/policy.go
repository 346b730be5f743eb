// Package rewrite implements the mapping-driven rewriting policies and the
// patch applier. Policies inspect a buffer and propose Replacement records;
// nothing is mutated until Apply produces a new buffer.
package rewrite

import (
	m "github.com/resew-dev/resew/internal/model"
)

// Result is the outcome of running a policy over one buffer: the proposed
// replacements plus the audit trail of resolved, unresolved and skipped
// candidate sites.
type Result struct {
	Replacements []m.Replacement
	Audit        []m.AuditEntry
}

// Policy produces replacements for a buffer without mutating it. Policies
// are stateless per invocation and safe to use concurrently on distinct
// buffers; any mapping tables they hold are read-only.
type Policy interface {
	Name() string
	Rewrite(file m.Path, buf string) Result
}
