package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tidyfs/cmd/tidyfs/commands"
)

var debug bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "tidyfs",
		Short: "File-system housekeeping tools for Windows operators",
		Long: `tidyfs bundles four single-pass housekeeping tools: bulk backup
through robocopy, timestamp-based renaming from shell metadata,
empty-directory pruning, and pattern-based batch renaming.

Each subcommand performs one pass of file-system mutation, writes a
timestamped run log, and exits.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(
		commands.NewBackupCmd(),
		commands.NewDatestampCmd(),
		commands.NewPruneCmd(),
		commands.NewRenameCmd(),
	)

	cobra.OnInitialize(func() {
		level := zerolog.InfoLevel
		if debug {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
	})

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
