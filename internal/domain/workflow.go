// Package domain contains the core rewriting workflow: it wires the
// locator, policies and applier into per-file pipelines and coordinates
// multi-file runs.
package domain

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resew-dev/resew/internal/adapter"
	"github.com/resew-dev/resew/internal/controller"
	m "github.com/resew-dev/resew/internal/model"
	"github.com/resew-dev/resew/internal/rewrite"
	"github.com/resew-dev/resew/internal/scan"
)

// ListArgs selects the files a run operates on.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
	Exts    []string
}

// TokenArgs configures a cancellation-parameter propagation run.
type TokenArgs struct {
	ListArgs
	Options rewrite.ParamOptions
	DryRun  bool
	Threads int
	Reports m.Path
}

// RemapArgs configures a literal-substitution run.
type RemapArgs struct {
	ListArgs
	MappingFile m.Path
	DryRun      bool
	Threads     int
	Reports     m.Path
}

// ViewArgs selects the reports directory to read from.
type ViewArgs struct {
	Reports m.Path
}

// Workflow defines the interface for rewrite operations.
type Workflow interface {
	List(args ListArgs) error
	Token(args TokenArgs) error
	Remap(args RemapArgs) error
	View(args ViewArgs) error
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	mappings adapter.MappingStore
	reports  adapter.ReportStore
	ui       controller.UI
}

// NewWorkflow creates a Workflow instance with the provided adapters.
func NewWorkflow(fs adapter.SourceFSAdapter, mappings adapter.MappingStore, reports adapter.ReportStore, ui controller.UI) Workflow {
	return &workflow{fs: fs, mappings: mappings, reports: reports, ui: ui}
}

// List scans the selected files and displays per-file candidate counts
// without rewriting anything.
func (w *workflow) List(args ListArgs) error {
	sources, err := w.fs.Get(args.Paths, args.Exclude, args.Exts)
	if err != nil {
		return err
	}

	opts := rewrite.DefaultParamOptions()

	candidates := make([]m.Candidate, 0, len(sources))

	for _, source := range sources {
		content, err := w.fs.ReadFile(source.Origin)
		if err != nil {
			// Files that vanish or become unreadable between collection and
			// scan still show up in the listing instead of shrinking it.
			candidates = append(candidates, m.Candidate{Origin: source.Origin, Count: 0})
			continue
		}

		buf := string(content)
		count := len(scan.FindDeclarations(buf, opts.ReturnTypes))

		stmts, _ := scan.FindInsertStatements(buf)
		for _, stmt := range stmts {
			count += len(stmt.Tuples)
		}

		candidates = append(candidates, m.Candidate{Origin: source.Origin, Count: count})
	}

	return w.ui.DisplayCandidates(candidates)
}

// fileState carries one file's buffer and accumulated outcome between run
// phases. The buffer holds the latest in-memory rewrite; it is only written
// back to disk at the end, and only when not in dry-run mode.
type fileState struct {
	source  m.Source
	buf     string
	applied int
	changed bool
	audit   []m.AuditEntry
	failed  bool
}

// Token performs cancellation-parameter propagation in two phases: first
// declarations are rewritten while the cross-file set of affected method
// names is collected, then call sites of those methods receive the extra
// argument. Phase two operates on the phase-one buffers, so a declaration
// that now carries the marker type is never mistaken for a call site.
func (w *workflow) Token(args TokenArgs) error {
	sources, err := w.fs.Get(args.Paths, args.Exclude, args.Exts)
	if err != nil {
		return err
	}

	decl := rewrite.DeclAppend{Opts: args.Options}

	states := make([]*fileState, len(sources))

	var mu sync.Mutex

	nameSet := make(map[string]struct{})

	err = w.forEach(args.Threads, len(sources), func(i int) {
		st := &fileState{source: sources[i]}
		states[i] = st

		content, err := w.fs.ReadFile(st.source.Origin)
		if err != nil {
			st.failed = true
			st.audit = append(st.audit, fileFailure(st.source.Origin, fmt.Sprintf("read failed: %v", err)))

			return
		}

		st.buf = string(content)

		names := decl.MethodNames(st.buf)

		mu.Lock()
		for _, n := range names {
			nameSet[n] = struct{}{}
		}
		mu.Unlock()

		w.runPolicy(st, decl)
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(nameSet))
	for n := range nameSet {
		names = append(names, n)
	}

	sort.Strings(names)

	call := rewrite.CallAppend{Opts: args.Options, Names: names}

	err = w.forEach(args.Threads, len(states), func(i int) {
		if st := states[i]; !st.failed {
			w.runPolicy(st, call)
		}
	})
	if err != nil {
		return err
	}

	return w.finish("token", states, args.DryRun, args.Reports)
}

// Remap performs literal substitution driven by the mapping file.
func (w *workflow) Remap(args RemapArgs) error {
	mapping, err := w.mappings.Load(args.MappingFile)
	if err != nil {
		return err
	}

	sources, err := w.fs.Get(args.Paths, args.Exclude, args.Exts)
	if err != nil {
		return err
	}

	policy := rewrite.LiteralSubst{Mapping: mapping}

	states := make([]*fileState, len(sources))

	err = w.forEach(args.Threads, len(sources), func(i int) {
		st := &fileState{source: sources[i]}
		states[i] = st

		content, err := w.fs.ReadFile(st.source.Origin)
		if err != nil {
			st.failed = true
			st.audit = append(st.audit, fileFailure(st.source.Origin, fmt.Sprintf("read failed: %v", err)))

			return
		}

		st.buf = string(content)
		w.runPolicy(st, policy)
	})
	if err != nil {
		return err
	}

	return w.finish("remap", states, args.DryRun, args.Reports)
}

// View renders the most recent persisted report.
func (w *workflow) View(args ViewArgs) error {
	report, err := w.reports.Latest(args.Reports)
	if err != nil {
		return err
	}

	return w.ui.DisplayReport(report, false)
}

// runPolicy runs one policy over a file's current buffer and applies the
// proposed replacements in memory. An overlap error marks the whole file
// failed and leaves its buffer untouched: overlap means a rewriter defect,
// so partial application is never attempted.
func (w *workflow) runPolicy(st *fileState, policy rewrite.Policy) {
	res := policy.Rewrite(st.source.Origin, st.buf)
	st.audit = append(st.audit, res.Audit...)

	newBuf, applied, err := rewrite.Apply(st.buf, res.Replacements)
	if err != nil {
		st.failed = true
		st.audit = append(st.audit, fileFailure(st.source.Origin,
			fmt.Sprintf("%s: %v; file left untouched", policy.Name(), err)))

		return
	}

	if applied > 0 {
		st.buf = newBuf
		st.applied += applied
		st.changed = true
	}
}

// finish writes changed buffers back (backup first), assembles the run
// report, persists it and hands it to the UI.
func (w *workflow) finish(command string, states []*fileState, dryRun bool, reportsDir m.Path) error {
	report := m.RunReport{
		Command:   command,
		CreatedAt: time.Now(),
	}

	for _, st := range states {
		if st == nil {
			continue
		}

		report.FilesScanned++

		if st.changed && !st.failed {
			wrote := true

			if !dryRun {
				if err := w.fs.WriteFileWithBackup(st.source.Origin, []byte(st.buf)); err != nil {
					wrote = false
					st.audit = append(st.audit, fileFailure(st.source.Origin, fmt.Sprintf("write failed: %v", err)))
				}
			}

			if wrote {
				report.FilesChanged++
				report.ReplacementsApplied += st.applied
			}
		}

		// The audit loop runs for every file, including ones whose write
		// failed: unresolved and skipped sites are enumerated, never dropped.
		for _, entry := range st.audit {
			switch entry.Status {
			case m.StatusUnresolved:
				report.Unresolved = append(report.Unresolved, entry)
			case m.StatusSkipped:
				report.Skipped = append(report.Skipped, entry)
			case m.StatusResolved:
			}
		}
	}

	sortAudit(report.Unresolved)
	sortAudit(report.Skipped)

	if reportsDir != "" {
		if err := w.reports.Save(reportsDir, report); err != nil {
			return err
		}
	}

	return w.ui.DisplayReport(report, dryRun)
}

// forEach runs fn for every index with at most threads goroutines.
func (w *workflow) forEach(threads int, n int, fn func(i int)) error {
	if threads <= 0 {
		threads = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(threads)

	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}

	return g.Wait()
}

func fileFailure(file m.Path, reason string) m.AuditEntry {
	return m.AuditEntry{
		File:   file,
		Line:   0,
		Status: m.StatusSkipped,
		Reason: reason,
	}
}

func sortAudit(entries []m.AuditEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].File != entries[j].File {
			return entries[i].File < entries[j].File
		}

		return entries[i].Offset < entries[j].Offset
	})
}
