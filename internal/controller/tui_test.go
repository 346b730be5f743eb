package controller

import (
	"bytes"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/resew-dev/resew/internal/model"
)

func quitKeyMsg() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
}

func newTestCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(out)

	return cmd
}

func TestTUI_DisplayCandidates_Static(t *testing.T) {
	t.Run("small listing printed directly", func(t *testing.T) {
		out := &bytes.Buffer{}
		ui := NewTUI(out)

		err := ui.DisplayCandidates([]m.Candidate{
			{Origin: "a.cs", Count: 2},
			{Origin: "b.sql", Count: 1},
		})
		require.NoError(t, err)

		text := out.String()
		assert.Contains(t, text, "3 rewrite candidate(s) across 2 file(s)")
		assert.Contains(t, text, "a.cs")
		assert.Contains(t, text, "b.sql")
	})

	t.Run("empty listing", func(t *testing.T) {
		out := &bytes.Buffer{}
		ui := NewTUI(out)

		require.NoError(t, ui.DisplayCandidates(nil))
		assert.Contains(t, out.String(), "No source files found")
	})
}

func TestTUI_DisplayReport_Static(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	err := ui.DisplayReport(m.RunReport{
		Command:             "token",
		FilesScanned:        2,
		FilesChanged:        1,
		ReplacementsApplied: 3,
		Unresolved: []m.AuditEntry{
			{File: "a.cs", Line: 10, Symbol: "FooAsync", Status: m.StatusUnresolved, Reason: "x"},
		},
	}, false)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "token: scanned 2 file(s), changed 1, 3 replacement(s) applied")
	assert.Contains(t, text, "1 unresolved site(s)")
	assert.Contains(t, text, "FooAsync")
}

func TestTUI_DisplayReport_DryRun(t *testing.T) {
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	require.NoError(t, ui.DisplayReport(m.RunReport{Command: "remap"}, true))
	assert.Contains(t, out.String(), "proposed (dry run)")
}

func TestBrowseModel_Quit(t *testing.T) {
	model := newBrowseModel("title", nil, candidateDelegate{})

	assert.Nil(t, model.Init())

	updated, _ := model.Update(quitKeyMsg())

	bm, ok := updated.(browseModel)
	require.True(t, ok)
	assert.True(t, bm.quitting)
	assert.Equal(t, "", bm.View())
}

func TestNewUI_Factory(t *testing.T) {
	out := &bytes.Buffer{}

	t.Run("buffer output is never a TTY", func(t *testing.T) {
		assert.False(t, IsTTY(out))
	})

	t.Run("non-tty selects SimpleUI", func(t *testing.T) {
		cmd := newTestCommand(out)

		ui := NewUI(cmd, false)
		_, ok := ui.(*SimpleUI)
		assert.True(t, ok)
	})

	t.Run("tty selects TUI", func(t *testing.T) {
		cmd := newTestCommand(out)

		ui := NewUI(cmd, true)
		_, ok := ui.(*TUI)
		assert.True(t, ok)
	})
}
