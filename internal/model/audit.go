package model

import "time"

// AuditStatus classifies the outcome of a single candidate site.
type AuditStatus string

// Available AuditStatus values.
const (
	// StatusResolved means a replacement was produced for the site.
	StatusResolved AuditStatus = "resolved"
	// StatusUnresolved means a symbol had no mapping entry; the site was
	// left untouched and surfaced for manual review.
	StatusUnresolved AuditStatus = "unresolved"
	// StatusSkipped means the candidate was dropped, e.g. an unbalanced
	// span or a file-level failure.
	StatusSkipped AuditStatus = "skipped"
)

// AuditEntry records what happened at one candidate site. Unresolved and
// skipped entries feed the human-review report; they are never silently
// dropped.
type AuditEntry struct {
	File   Path        `yaml:"file"`
	Line   int         `yaml:"line"`
	Offset int         `yaml:"offset"`
	Symbol string      `yaml:"symbol,omitempty"`
	Value  string      `yaml:"value,omitempty"`
	Status AuditStatus `yaml:"status"`
	Reason string      `yaml:"reason,omitempty"`
}

// RunReport aggregates the outcome of one multi-file run.
type RunReport struct {
	Command             string       `yaml:"command"`
	CreatedAt           time.Time    `yaml:"created_at"`
	FilesScanned        int          `yaml:"files_scanned"`
	FilesChanged        int          `yaml:"files_changed"`
	ReplacementsApplied int          `yaml:"replacements_applied"`
	Unresolved          []AuditEntry `yaml:"unresolved,omitempty"`
	Skipped             []AuditEntry `yaml:"skipped,omitempty"`
}
