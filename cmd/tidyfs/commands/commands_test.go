package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tidyfs/cmd/tidyfs/commands"
)

// 🧪 runCmd executes a subcommand with args under a test logger
func runCmd(t *testing.T, cmd *cobra.Command, args []string) error {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// 🧪 TestRenameCmd tests the rename subcommand end to end
func TestRenameCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "My Photo.jpg"), []byte("x"), 0644))

	err := runCmd(t, commands.NewRenameCmd(), []string{
		"--path", dir,
		"--log-path", filepath.Join(t.TempDir(), "run.log"),
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "My-Photo.jpg"))
	assert.NoError(t, err)
}

// 🧪 TestRenameCmdBadPattern tests regex validation
func TestRenameCmdBadPattern(t *testing.T) {
	err := runCmd(t, commands.NewRenameCmd(), []string{
		"--path", t.TempDir(),
		"--pattern", "(",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compiling pattern")
}

// 🧪 TestPruneCmd tests the prune subcommand end to end
func TestPruneCmd(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0755))

	err := runCmd(t, commands.NewPruneCmd(), []string{
		"--path", root,
		"--log-path", filepath.Join(t.TempDir(), "run.log"),
	})
	require.NoError(t, err)

	_, err = os.Stat(root)
	assert.True(t, os.IsNotExist(err))
}

// 🧪 TestDatestampCmdMissingPath tests the precondition failure
func TestDatestampCmdMissingPath(t *testing.T) {
	err := runCmd(t, commands.NewDatestampCmd(), []string{
		"--path", filepath.Join(t.TempDir(), "nope"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target path")
}

// 🧪 TestBackupCmdMissingSource tests fail-fast before any mutation
func TestBackupCmdMissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "dst")
	err := runCmd(t, commands.NewBackupCmd(), []string{
		"--source", filepath.Join(t.TempDir(), "missing"),
		"--destination", dst,
		"--log-path", filepath.Join(t.TempDir(), "run.log"),
	})
	require.Error(t, err)

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}
