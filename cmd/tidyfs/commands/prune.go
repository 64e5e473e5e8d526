package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/tidyfs/pkg/prune"
	"github.com/walteh/tidyfs/pkg/runlog"
)

// NewPruneCmd creates the prune command
func NewPruneCmd() *cobra.Command {
	var (
		path    string
		logPath string
		protect []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove empty directories, deepest first",
		Long: `Prune deletes every empty directory under the root, processing the
deepest directories first so parents emptied by the pass are removed
in the same run. The root itself goes last, only if it has become
empty. Inaccessible directories are logged and kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			log, err := runlog.Open(ctx, runlog.Options{Tool: "prune", Path: logPath})
			if err != nil {
				return err
			}
			defer log.Close()

			result, err := prune.Run(ctx, prune.Options{
				Root:    path,
				Protect: protect,
				DryRun:  dryRun,
				Log:     log,
			})
			if err != nil {
				return err
			}

			if len(result.Failed) > 0 {
				pterm.Warning.Printfln("removed %d, kept %d, failed %d",
					len(result.Removed), result.Kept, len(result.Failed))
			} else {
				pterm.Success.Printfln("removed %d, kept %d", len(result.Removed), result.Kept)
			}
			pterm.Info.Printfln("run log: %s", log.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "root directory to prune under")
	cmd.Flags().StringVar(&logPath, "log-path", "", "run log path (default: temp dir, timestamped)")
	cmd.Flags().StringArrayVar(&protect, "protect", nil, "glob (relative to root) never deleted, repeatable")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "log would-be deletions without removing anything")
	cmd.MarkFlagRequired("path")

	return cmd
}
