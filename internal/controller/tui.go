package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/resew-dev/resew/internal/model"
)

// staticThreshold is the item count below which the TUI prints a plain
// listing instead of starting an interactive program.
const staticThreshold = 20

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	countStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Width(6).Align(lipgloss.Right)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	selectedLine = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayCandidates shows per-file candidate counts, interactively when the
// listing would not fit on one screen.
func (t *TUI) DisplayCandidates(candidates []m.Candidate) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintln(t.output, dimStyle.Render("No source files found"))
		return err
	}

	total := 0
	items := make([]list.Item, 0, len(candidates))

	for _, c := range candidates {
		items = append(items, candidateItem{c})
		total += c.Count
	}

	title := fmt.Sprintf("%d rewrite candidate(s) across %d file(s)", total, len(candidates))

	return t.browse(title, items, candidateDelegate{})
}

// DisplayReport shows the run summary and lets the user browse unresolved
// and skipped sites.
func (t *TUI) DisplayReport(report m.RunReport, dryRun bool) error {
	verb := "applied"
	if dryRun {
		verb = "proposed (dry run)"
	}

	summary := fmt.Sprintf("%s: scanned %d file(s), changed %d, %d replacement(s) %s",
		report.Command, report.FilesScanned, report.FilesChanged, report.ReplacementsApplied, verb)

	if _, err := fmt.Fprintln(t.output, titleStyle.Render(summary)); err != nil {
		return err
	}

	if len(report.Unresolved) > 0 {
		header := fmt.Sprintf("%d unresolved site(s) need manual review", len(report.Unresolved))
		if err := t.browse(warnStyle.Render(header), auditItems(report.Unresolved), auditDelegate{}); err != nil {
			return err
		}
	}

	if len(report.Skipped) > 0 {
		header := fmt.Sprintf("%d skipped site(s)", len(report.Skipped))
		if err := t.browse(dimStyle.Render(header), auditItems(report.Skipped), auditDelegate{}); err != nil {
			return err
		}
	}

	return nil
}

// browse prints small listings directly and starts an interactive program
// for anything longer.
func (t *TUI) browse(title string, items []list.Item, delegate list.ItemDelegate) error {
	if len(items) <= staticThreshold {
		var b strings.Builder

		b.WriteString(title)
		b.WriteString("\n")

		for _, item := range items {
			b.WriteString("  ")
			b.WriteString(staticLine(item))
			b.WriteString("\n")
		}

		_, err := fmt.Fprint(t.output, b.String())

		return err
	}

	model := newBrowseModel(title, items, delegate)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func staticLine(item list.Item) string {
	switch it := item.(type) {
	case candidateItem:
		return fmt.Sprintf("%s  %s", countStyle.Render(fmt.Sprintf("%d", it.candidate.Count)),
			pathStyle.Render(string(it.candidate.Origin)))
	case auditItem:
		return it.line(false)
	default:
		return ""
	}
}

// candidateItem adapts a model.Candidate for bubbles/list.
type candidateItem struct {
	candidate m.Candidate
}

// FilterValue implements list.Item.
func (i candidateItem) FilterValue() string { return string(i.candidate.Origin) }

type candidateDelegate struct{}

func (d candidateDelegate) Height() int  { return 1 }
func (d candidateDelegate) Spacing() int { return 0 }
func (d candidateDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d candidateDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	ci, ok := item.(candidateItem)
	if !ok {
		return
	}

	line := fmt.Sprintf("%s  %s", countStyle.Render(fmt.Sprintf("%d", ci.candidate.Count)),
		pathStyle.Render(string(ci.candidate.Origin)))
	if index == lm.Index() {
		line = selectedLine.Render(fmt.Sprintf("%6d  %s", ci.candidate.Count, ci.candidate.Origin))
	}

	_, _ = fmt.Fprint(w, line)
}

// auditItem adapts a model.AuditEntry for bubbles/list.
type auditItem struct {
	entry m.AuditEntry
}

// FilterValue implements list.Item.
func (i auditItem) FilterValue() string {
	return string(i.entry.File) + " " + i.entry.Symbol
}

func (i auditItem) line(selected bool) string {
	text := fmt.Sprintf("%s:%d  %q  %s", i.entry.File, i.entry.Line, i.entry.Symbol, i.entry.Reason)
	if selected {
		return selectedLine.Render(text)
	}

	return pathStyle.Render(text)
}

func auditItems(entries []m.AuditEntry) []list.Item {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditItem{e})
	}

	return items
}

type auditDelegate struct{}

func (d auditDelegate) Height() int  { return 1 }
func (d auditDelegate) Spacing() int { return 0 }
func (d auditDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d auditDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	ai, ok := item.(auditItem)
	if !ok {
		return
	}

	_, _ = fmt.Fprint(w, ai.line(index == lm.Index()))
}

// browseModel is the Bubble Tea model wrapping a bubbles list.
type browseModel struct {
	list     list.Model
	title    string
	quitting bool
}

func newBrowseModel(title string, items []list.Item, delegate list.ItemDelegate) browseModel {
	lm := list.New(items, delegate, 0, 0)
	lm.Title = title
	lm.SetShowStatusBar(false)
	lm.SetFilteringEnabled(true)

	return browseModel{list: lm, title: title}
}

// Init implements tea.Model.
func (bm browseModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (bm browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.list.SetSize(msg.Width, msg.Height-1)
		return bm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			bm.quitting = true
			return bm, tea.Quit
		}
	}

	var cmd tea.Cmd
	bm.list, cmd = bm.list.Update(msg)

	return bm, cmd
}

// View implements tea.Model.
func (bm browseModel) View() string {
	if bm.quitting {
		return ""
	}

	return bm.list.View()
}
