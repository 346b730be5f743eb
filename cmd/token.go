package cmd

import (
	"github.com/spf13/cobra"

	"github.com/resew-dev/resew/internal/domain"
	m "github.com/resew-dev/resew/internal/model"
	"github.com/resew-dev/resew/internal/rewrite"
)

const tokenLongDescription = `Propagate a cancellation parameter through a source tree.

The run has two phases. First, every async method declaration (selected
by return type) gains the parameter unless its parameter list already
mentions the marker type; the names of all such methods, including ones
migrated on an earlier run, are collected across every file. Second,
call sites of those methods gain the matching argument unless the
argument list already carries it or one of the handle hints.

Each changed file is backed up to <file>.bak before being overwritten.
A second run over an already migrated tree changes nothing.`

var tokenParallelFlag int
var tokenDryRunFlag bool
var tokenExcludeFlags []string
var tokenExtFlags []string
var tokenReturnTypeFlags []string
var tokenMarkerFlags []string
var tokenHintFlags []string
var tokenParamFlag string
var tokenArgFlag string

// tokenCmd represents the token command.
var tokenCmd = newTokenCmd()

func newTokenCmd() *cobra.Command {
	defaults := rewrite.DefaultParamOptions()

	cmd := &cobra.Command{
		Use:   "token [paths...]",
		Short: "Propagate a cancellation parameter through declarations and call sites",
		Long:  tokenLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Token(domain.TokenArgs{
				ListArgs: domain.ListArgs{
					Paths:   parsePaths(args),
					Exclude: tokenExcludeFlags,
					Exts:    normalizeExts(tokenExtFlags),
				},
				Options: rewrite.ParamOptions{
					ReturnTypes: tokenReturnTypeFlags,
					MarkerTypes: tokenMarkerFlags,
					HandleHints: tokenHintFlags,
					ParamText:   tokenParamFlag,
					ArgText:     tokenArgFlag,
				},
				DryRun:  tokenDryRunFlag,
				Threads: tokenParallelFlag,
				Reports: m.Path(reportsOutputDirFlag),
			})
		},
	}
	cmd.Flags().IntVarP(&tokenParallelFlag, "parallel", "p", 1, "number of parallel workers")
	cmd.Flags().BoolVarP(&tokenDryRunFlag, "dry-run", "n", false, "report what would change without writing any file")
	cmd.Flags().StringArrayVarP(&tokenExcludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	cmd.Flags().StringArrayVarP(&tokenExtFlags, "ext", "e", []string{".cs"}, "file extensions to scan (can be repeated)")
	cmd.Flags().StringArrayVar(&tokenReturnTypeFlags, "return-type", defaults.ReturnTypes, "return types that select a declaration (can be repeated)")
	cmd.Flags().StringArrayVar(&tokenMarkerFlags, "marker", defaults.MarkerTypes, "parameter types that mark a declaration as already migrated (can be repeated)")
	cmd.Flags().StringArrayVar(&tokenHintFlags, "hint", defaults.HandleHints, "argument substrings that mark a call site as already migrated (can be repeated)")
	cmd.Flags().StringVar(&tokenParamFlag, "param", defaults.ParamText, "parameter text appended to declarations")
	cmd.Flags().StringVar(&tokenArgFlag, "arg", defaults.ArgText, "argument text appended to call sites")

	return cmd
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
