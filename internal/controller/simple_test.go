package controller

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/resew-dev/resew/internal/model"
)

func newCapturedSimpleUI() (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(out)

	return NewSimpleUI(cmd), out
}

func TestSimpleUI_DisplayCandidates(t *testing.T) {
	t.Run("prints table with totals", func(t *testing.T) {
		ui, out := newCapturedSimpleUI()

		err := ui.DisplayCandidates([]m.Candidate{
			{Origin: "b.sql", Count: 3},
			{Origin: "a.cs", Count: 1},
		})
		require.NoError(t, err)

		text := out.String()
		assert.Contains(t, text, "a.cs")
		assert.Contains(t, text, "b.sql")
		assert.Contains(t, text, "TOTAL FILES 2")
		assert.Contains(t, text, "4")
	})

	t.Run("sorts by path", func(t *testing.T) {
		ui, out := newCapturedSimpleUI()

		err := ui.DisplayCandidates([]m.Candidate{
			{Origin: "z.sql", Count: 1},
			{Origin: "a.sql", Count: 1},
		})
		require.NoError(t, err)

		text := out.String()
		assert.Less(t, bytes.Index([]byte(text), []byte("a.sql")), bytes.Index([]byte(text), []byte("z.sql")))
	})

	t.Run("empty listing", func(t *testing.T) {
		ui, out := newCapturedSimpleUI()

		require.NoError(t, ui.DisplayCandidates(nil))
		assert.Contains(t, out.String(), "No source files found")
	})
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	t.Run("summary line for applied run", func(t *testing.T) {
		ui, out := newCapturedSimpleUI()

		err := ui.DisplayReport(m.RunReport{
			Command:             "remap",
			FilesScanned:        4,
			FilesChanged:        2,
			ReplacementsApplied: 7,
		}, false)
		require.NoError(t, err)

		assert.Contains(t, out.String(), "remap: scanned 4 file(s), changed 2, 7 replacement(s) applied")
	})

	t.Run("dry run wording", func(t *testing.T) {
		ui, out := newCapturedSimpleUI()

		err := ui.DisplayReport(m.RunReport{Command: "token"}, true)
		require.NoError(t, err)

		assert.Contains(t, out.String(), "proposed (dry run, nothing written)")
	})

	t.Run("unresolved and skipped enumerated", func(t *testing.T) {
		ui, out := newCapturedSimpleUI()

		err := ui.DisplayReport(m.RunReport{
			Command: "remap",
			Unresolved: []m.AuditEntry{
				{File: "seed.sql", Line: 3, Symbol: "Mystery", Status: m.StatusUnresolved, Reason: "no mapping for role FundType"},
			},
			Skipped: []m.AuditEntry{
				{File: "broken.sql", Line: 1, Symbol: "t", Status: m.StatusSkipped, Reason: "unbalanced span"},
			},
		}, false)
		require.NoError(t, err)

		text := out.String()
		assert.Contains(t, text, "1 unresolved site(s) need manual review")
		assert.Contains(t, text, "Mystery")
		assert.Contains(t, text, "no mapping for role FundType")
		assert.Contains(t, text, "1 skipped site(s)")
		assert.Contains(t, text, "broken.sql")
	})

	t.Run("clean run prints no site tables", func(t *testing.T) {
		ui, out := newCapturedSimpleUI()

		require.NoError(t, ui.DisplayReport(m.RunReport{Command: "token", FilesScanned: 1}, false))

		text := out.String()
		assert.NotContains(t, text, "unresolved")
		assert.NotContains(t, text, "skipped")
	})
}
