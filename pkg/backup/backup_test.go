// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backup_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tidyfs/pkg/backup"
	"github.com/walteh/tidyfs/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// 🎭 fakeRunner records the invocation and returns a canned exit code
type fakeRunner struct {
	name   string
	args   []string
	code   int
	err    error
	output string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args []string, out io.Writer) (int, error) {
	f.name = name
	f.args = args
	if f.output != "" {
		fmt.Fprint(out, f.output)
	}
	return f.code, f.err
}

// 🧪 newTestEnv builds a run log and a populated source directory
func newTestEnv(t *testing.T) (context.Context, *runlog.Log, string, string) {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	l, err := runlog.Open(ctx, runlog.Options{
		Tool:    "backup",
		Dir:     t.TempDir(),
		Console: &bytes.Buffer{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "file.txt"), []byte("x"), 0644))
	dst := filepath.Join(t.TempDir(), "dst")
	return ctx, l, src, dst
}

// 🧪 TestArgVector tests the exact robocopy argument vector
func TestArgVector(t *testing.T) {
	job := backup.Job{
		Source:       `D:\Photos`,
		Destination:  `\\nas\backup\photos`,
		ExcludeFiles: []string{"*.tmp", "Thumbs.db"},
		ExcludeDirs:  []string{"$RECYCLE.BIN"},
		Retries:      3,
		RetryWait:    10,
		LogPath:      `C:\temp\run.log`,
	}

	assert.Equal(t, []string{
		`D:\Photos`,
		`\\nas\backup\photos`,
		"/E",
		"/COPY:DATSO",
		"/DCOPY:DAT",
		"/R:3",
		"/W:10",
		"/TEE",
		`/LOG+:C:\temp\run.log`,
		"/XF", "*.tmp",
		"/XF", "Thumbs.db",
		"/XD", "$RECYCLE.BIN",
	}, job.Args())
}

// 🧪 TestArgVectorDefaults tests the default retry settings
func TestArgVectorDefaults(t *testing.T) {
	job := backup.Job{Source: "a", Destination: "b"}
	args := job.Args()
	assert.Contains(t, args, "/R:2")
	assert.Contains(t, args, "/W:5")
	assert.NotContains(t, args, "/XF")
}

// 🧪 TestExitCodePolicy tests the success bound
func TestExitCodePolicy(t *testing.T) {
	for _, code := range []int{0, 1, 3, 7} {
		assert.True(t, backup.Succeeded(code), "code %d", code)
	}
	for _, code := range []int{8, 9, 16, -1} {
		assert.False(t, backup.Succeeded(code), "code %d", code)
	}
}

// 🧪 TestRunSuccess tests a passing invocation end to end
func TestRunSuccess(t *testing.T) {
	ctx, log, src, dst := newTestEnv(t)
	runner := &fakeRunner{code: 1, output: "copied 1 file\n"}

	err := backup.Run(ctx, backup.Options{
		Job:     backup.Job{Source: src, Destination: dst},
		Runner:  runner,
		Log:     log,
		Console: &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Equal(t, "robocopy", runner.name)
	assert.Equal(t, src, runner.args[0])
	assert.Equal(t, dst, runner.args[1])

	// destination directory is created before the invocation
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// 🧪 TestRunDefaultsLogPath tests that the run log path feeds /LOG+
func TestRunDefaultsLogPath(t *testing.T) {
	ctx, log, src, dst := newTestEnv(t)
	runner := &fakeRunner{code: 0}

	err := backup.Run(ctx, backup.Options{
		Job:     backup.Job{Source: src, Destination: dst},
		Runner:  runner,
		Log:     log,
		Console: &bytes.Buffer{},
	})
	require.NoError(t, err)
	assert.Contains(t, runner.args, "/LOG+:"+log.Path())
}

// 🧪 TestRunHardFailure tests that error-range exit codes surface
func TestRunHardFailure(t *testing.T) {
	ctx, log, src, dst := newTestEnv(t)
	runner := &fakeRunner{code: 16}

	err := backup.Run(ctx, backup.Options{
		Job:     backup.Job{Source: src, Destination: dst},
		Runner:  runner,
		Log:     log,
		Console: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit code 16")
}

// 🧪 TestRunMissingSource tests fail-fast with no destination created
func TestRunMissingSource(t *testing.T) {
	ctx, log, _, dst := newTestEnv(t)
	runner := &fakeRunner{}

	err := backup.Run(ctx, backup.Options{
		Job: backup.Job{
			Source:      filepath.Join(t.TempDir(), "missing"),
			Destination: dst,
		},
		Runner:  runner,
		Log:     log,
		Console: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source path")

	assert.Nil(t, runner.args, "copy utility must not run")
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "destination must not be created")
}

// 🧪 TestRunSpawnFailure tests a missing copy utility
func TestRunSpawnFailure(t *testing.T) {
	ctx, log, src, dst := newTestEnv(t)
	runner := &fakeRunner{code: -1, err: errors.New("executable not found")}

	err := backup.Run(ctx, backup.Options{
		Job:     backup.Job{Source: src, Destination: dst},
		Runner:  runner,
		Log:     log,
		Console: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running robocopy")
}

// 🧪 TestRunBadExclusionPattern tests glob validation before any mutation
func TestRunBadExclusionPattern(t *testing.T) {
	ctx, log, src, dst := newTestEnv(t)

	err := backup.Run(ctx, backup.Options{
		Job: backup.Job{
			Source:       src,
			Destination:  dst,
			ExcludeFiles: []string{"[unclosed"},
		},
		Runner:  &fakeRunner{},
		Log:     log,
		Console: &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid exclusion pattern")

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}

// 🧪 TestDescribeExit tests the meaning-bit rendering
func TestDescribeExit(t *testing.T) {
	assert.Equal(t, "no files copied, no failures", backup.DescribeExit(0))
	assert.Equal(t, "files copied", backup.DescribeExit(1))
	assert.Contains(t, backup.DescribeExit(9), "copy failures")
	assert.Contains(t, backup.DescribeExit(16), "fatal error")
}
