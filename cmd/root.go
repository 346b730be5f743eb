// Package cmd provides the root command and CLI setup for resew.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/resew-dev/resew/internal/adapter"
	"github.com/resew-dev/resew/internal/controller"
	"github.com/resew-dev/resew/internal/domain"
	m "github.com/resew-dev/resew/internal/model"
)

var sourceFSAdapter adapter.SourceFSAdapter
var mappingStore adapter.MappingStore
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	mappingStore = adapter.NewLocalMappingStore()
	reportStore = adapter.NewLocalReportStore()
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		mappingStore,
		reportStore,
		ui,
	)
}

var reportsOutputDirFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resew",
		Short: "Structural source and SQL migration tool",
		Long: `Resew rewrites source trees with structure-aware text patching: it
locates call sites, method declarations and INSERT statements, extracts
their balanced parameter and value lists, and applies byte-exact edits
without ever parsing the language.

Supports path patterns:
  - dir/...        recursively scan a directory
  - src tests      scan multiple directories`,
	}
	cmd.PersistentFlags().StringVarP(&reportsOutputDirFlag, "reports", "r",
		".resew-reports", "directory where run reports are written and read")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// normalizeExts ensures every extension filter starts with a dot, so both
// "--ext cs" and "--ext .cs" work.
func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))

	for _, ext := range exts {
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		out = append(out, ext)
	}

	return out
}
