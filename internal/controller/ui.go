// Package controller provides output adapters for displaying scan and
// rewrite results.
package controller

import (
	m "github.com/resew-dev/resew/internal/model"
)

// UI defines the interface for presenting run output. Implementations can
// use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayCandidates shows the per-file candidate counts of a scan-only
	// run.
	DisplayCandidates(candidates []m.Candidate) error

	// DisplayReport shows the outcome of a rewrite run, including every
	// unresolved and skipped site.
	DisplayReport(report m.RunReport, dryRun bool) error
}
