package cmd

import (
	"github.com/spf13/cobra"

	"github.com/resew-dev/resew/internal/domain"
)

const listLongDescription = `List source files and the rewrite candidates found in each.

A candidate is either an async method declaration that could take the
cancellation parameter or a VALUES tuple of an INSERT statement. Nothing
is rewritten; this is the scan phase on its own.`

var listExcludeFlags []string
var listExtFlags []string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List source files and rewrite candidate counts",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(domain.ListArgs{
				Paths:   parsePaths(args),
				Exclude: listExcludeFlags,
				Exts:    normalizeExts(listExtFlags),
			})
		},
	}
	cmd.Flags().StringArrayVarP(&listExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringArrayVarP(&listExtFlags, "ext", "e", []string{".cs", ".sql"}, "file extensions to scan (can be repeated)")

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
