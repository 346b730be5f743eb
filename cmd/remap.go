package cmd

import (
	"github.com/spf13/cobra"

	"github.com/resew-dev/resew/internal/domain"
	m "github.com/resew-dev/resew/internal/model"
)

const remapLongDescription = `Replace symbolic enumerants in SQL INSERT statements with mapped values.

The mapping file is YAML keyed by role:

  roles:
    Fund:
      General: 0
      Restricted: 1

A column whose name (after stripping quotes or brackets) equals a role,
case-insensitively, selects that role's table; the string literal in the
matching position of every VALUES tuple is looked up first by exact
case-insensitive match, then by normalized substring containment. Literals with no mapping are reported as unresolved and
left untouched, as is the rest of their file only when spans fail to
balance. Already numeric positions are skipped, so reruns are safe.`

var remapParallelFlag int
var remapDryRunFlag bool
var remapExcludeFlags []string
var remapExtFlags []string
var remapMappingFlag string

// remapCmd represents the remap command.
var remapCmd = newRemapCmd()

func newRemapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remap [paths...]",
		Short: "Substitute mapped enumerant literals in SQL INSERT statements",
		Long:  remapLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Remap(domain.RemapArgs{
				ListArgs: domain.ListArgs{
					Paths:   parsePaths(args),
					Exclude: remapExcludeFlags,
					Exts:    normalizeExts(remapExtFlags),
				},
				MappingFile: m.Path(remapMappingFlag),
				DryRun:      remapDryRunFlag,
				Threads:     remapParallelFlag,
				Reports:     m.Path(reportsOutputDirFlag),
			})
		},
	}
	cmd.Flags().IntVarP(&remapParallelFlag, "parallel", "p", 1, "number of parallel workers")
	cmd.Flags().BoolVarP(&remapDryRunFlag, "dry-run", "n", false, "report what would change without writing any file")
	cmd.Flags().StringArrayVarP(&remapExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringArrayVarP(&remapExtFlags, "ext", "e", []string{".sql"}, "file extensions to scan (can be repeated)")
	cmd.Flags().StringVarP(&remapMappingFlag, "mapping", "m", "", "YAML mapping file (required)")
	_ = cmd.MarkFlagRequired("mapping")

	return cmd
}

func init() {
	rootCmd.AddCommand(remapCmd)
}
