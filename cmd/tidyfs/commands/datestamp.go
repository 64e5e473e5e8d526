package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/tidyfs/pkg/fsrename"
	"github.com/walteh/tidyfs/pkg/metadata"
	"github.com/walteh/tidyfs/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// NewDatestampCmd creates the datestamp command
func NewDatestampCmd() *cobra.Command {
	var (
		path    string
		match   string
		logPath string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "datestamp",
		Short: "Rename files to their date-taken timestamp",
		Long: `Datestamp renames each file to yyyy-MM-dd_HHmmss plus its original
extension. The timestamp comes from the shell "Date taken" property
where the platform provides one; otherwise the file's last-write time
is used. Name collisions get a numeric suffix; nothing is overwritten.

Every decision is written to a run log colocated with the target.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			info, err := os.Stat(path)
			if err != nil {
				return errors.Errorf("target path: %w", err)
			}
			logDir := path
			if !info.IsDir() {
				logDir = filepath.Dir(path)
			}

			log, err := runlog.Open(ctx, runlog.Options{Tool: "datestamp", Path: logPath, Dir: logDir})
			if err != nil {
				return err
			}
			defer log.Close()

			result, err := fsrename.Datestamp(ctx, fsrename.DatestampOptions{
				Path:     path,
				Match:    match,
				DryRun:   dryRun,
				Provider: metadata.Default(),
				Log:      log,
			})
			if err != nil {
				return err
			}

			printWalkSummary(result, log.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "file or directory to rename")
	cmd.Flags().StringVar(&match, "match", "", "only rename base names matching this glob")
	cmd.Flags().StringVar(&logPath, "log-path", "", "run log path (default: next to the target)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "log decisions without renaming")
	cmd.MarkFlagRequired("path")

	return cmd
}
