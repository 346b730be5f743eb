package controller

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/resew-dev/resew/internal/model"
)

// SimpleUI implements UI using the cobra command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayCandidates prints the per-file candidate counts as a table.
func (s *SimpleUI) DisplayCandidates(candidates []m.Candidate) error {
	if len(candidates) == 0 {
		s.printf("No source files found\n")
		return nil
	}

	sorted := make([]m.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Origin < sorted[j].Origin })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Candidates"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, c := range sorted {
		table.Append([]string{string(c.Origin), fmt.Sprintf("%d", c.Count)})
		total += c.Count
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		fmt.Sprintf("%d", total),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayReport prints the run summary and enumerates unresolved and
// skipped sites.
func (s *SimpleUI) DisplayReport(report m.RunReport, dryRun bool) error {
	verb := "applied"
	if dryRun {
		verb = "proposed (dry run, nothing written)"
	}

	s.printf("%s: scanned %d file(s), changed %d, %d replacement(s) %s\n",
		report.Command, report.FilesScanned, report.FilesChanged, report.ReplacementsApplied, verb)

	if len(report.Unresolved) > 0 {
		s.printf("\n%d unresolved site(s) need manual review:\n", len(report.Unresolved))
		s.printAudit(report.Unresolved)
	}

	if len(report.Skipped) > 0 {
		s.printf("\n%d skipped site(s):\n", len(report.Skipped))
		s.printAudit(report.Skipped)
	}

	return nil
}

func (s *SimpleUI) printAudit(entries []m.AuditEntry) {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Line", "Symbol", "Reason"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, e := range entries {
		table.Append([]string{string(e.File), fmt.Sprintf("%d", e.Line), e.Symbol, e.Reason})
	}

	table.Render()
	s.printf("%s", tableBuffer.String())
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
