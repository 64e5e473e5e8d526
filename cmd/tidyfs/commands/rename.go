package commands

import (
	"regexp"

	"github.com/spf13/cobra"
	"github.com/walteh/tidyfs/pkg/fsrename"
	"github.com/walteh/tidyfs/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// NewRenameCmd creates the rename command
func NewRenameCmd() *cobra.Command {
	var (
		path        string
		pattern     string
		replacement string
		match       string
		logPath     string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Batch rename files by regex substitution",
		Long: `Rename applies a regex substitution to each file's base name. The
default turns runs of whitespace into a single hyphen. A substitution
that leaves the name unchanged is a reported no-op; changed names go
through collision resolution and never overwrite anything.`,
		Example: `  # "My Photo.jpg" -> "My-Photo.jpg"
  tidyfs rename --path D:\Photos

  # strip _v<N> suffixes from drafts
  tidyfs rename --path . --pattern "_v\d+" --replacement ""`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			re, err := regexp.Compile(pattern)
			if err != nil {
				return errors.Errorf("compiling pattern: %w", err)
			}

			log, err := runlog.Open(ctx, runlog.Options{Tool: "rename", Path: logPath})
			if err != nil {
				return err
			}
			defer log.Close()

			result, err := fsrename.Pattern(ctx, fsrename.PatternOptions{
				Path:        path,
				Pattern:     re,
				Replacement: replacement,
				Match:       match,
				DryRun:      dryRun,
				Log:         log,
			})
			if err != nil {
				return err
			}

			printWalkSummary(result, log.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "file or directory to rename")
	cmd.Flags().StringVar(&pattern, "pattern", `\s+`, "regex applied to each base name")
	cmd.Flags().StringVar(&replacement, "replacement", "-", "replacement text")
	cmd.Flags().StringVar(&match, "match", "", "only rename base names matching this glob")
	cmd.Flags().StringVar(&logPath, "log-path", "", "run log path (default: temp dir, timestamped)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "log decisions without renaming")
	cmd.MarkFlagRequired("path")

	return cmd
}
