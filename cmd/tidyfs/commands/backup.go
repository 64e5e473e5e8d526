package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/tidyfs/pkg/backup"
	"github.com/walteh/tidyfs/pkg/config"
	"github.com/walteh/tidyfs/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// NewBackupCmd creates the backup command
func NewBackupCmd() *cobra.Command {
	var (
		source       string
		destination  string
		excludeFiles []string
		excludeDirs  []string
		logPath      string
		retries      int
		retryWait    int
		configFile   string
		profileName  string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Bulk copy a directory tree with robocopy",
		Long: `Backup copies a directory tree with robocopy: recursive including
empty directories, attributes/timestamps/ACLs/owner preserved (audit
data excluded), bounded retry, output teed to console and run log.

A profile from .tidyfs.yaml or .tidyfs.hcl can supply the job;
explicit flags override profile values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			job := backup.Job{
				Source:       source,
				Destination:  destination,
				ExcludeFiles: excludeFiles,
				ExcludeDirs:  excludeDirs,
				Retries:      retries,
				RetryWait:    retryWait,
			}

			if profileName != "" {
				cfg, err := config.Load(ctx, configFile)
				if err != nil {
					return errors.Errorf("loading config: %w", err)
				}
				profile, err := cfg.Profile(profileName)
				if err != nil {
					return err
				}
				job = mergeProfile(cmd, job, profile)
				if logPath == "" {
					logPath = profile.LogPath
				}
			}

			log, err := runlog.Open(ctx, runlog.Options{Tool: "backup", Path: logPath})
			if err != nil {
				return err
			}
			defer log.Close()

			if err := backup.Run(ctx, backup.Options{Job: job, Log: log}); err != nil {
				return err
			}

			pterm.Success.Printfln("backup of %s finished", job.Source)
			pterm.Info.Printfln("run log: %s", log.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "source path, must exist")
	cmd.Flags().StringVar(&destination, "destination", "", "destination path, created if absent")
	cmd.Flags().StringArrayVar(&excludeFiles, "exclude-files", nil, "file pattern to exclude, repeatable")
	cmd.Flags().StringArrayVar(&excludeDirs, "exclude-dirs", nil, "directory pattern to exclude, repeatable")
	cmd.Flags().StringVar(&logPath, "log-path", "", "run log path (default: temp dir, timestamped)")
	cmd.Flags().IntVar(&retries, "retries", 0, "robocopy retry count per file (default 2)")
	cmd.Flags().IntVar(&retryWait, "retry-wait", 0, "seconds between robocopy retries (default 5)")
	cmd.Flags().StringVar(&configFile, "config", ".tidyfs.yaml", "config file with backup profiles")
	cmd.Flags().StringVar(&profileName, "profile", "", "profile name to load from the config file")

	return cmd
}

// mergeProfile fills job fields from a profile; flags the operator set
// explicitly win.
func mergeProfile(cmd *cobra.Command, job backup.Job, profile config.Profile) backup.Job {
	if !cmd.Flags().Changed("source") {
		job.Source = profile.Source
	}
	if !cmd.Flags().Changed("destination") {
		job.Destination = profile.Destination
	}
	if !cmd.Flags().Changed("exclude-files") {
		job.ExcludeFiles = profile.ExcludeFiles
	}
	if !cmd.Flags().Changed("exclude-dirs") {
		job.ExcludeDirs = profile.ExcludeDirs
	}
	if !cmd.Flags().Changed("retries") {
		job.Retries = profile.Retries
	}
	if !cmd.Flags().Changed("retry-wait") {
		job.RetryWait = profile.RetryWait
	}
	return job
}
