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

package backup

import (
	"context"
	"io"
	"os/exec"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes an external command, streaming its output to out
// and capturing the exit code. Spawn failures are errors; a nonzero
// exit is not, the code carries the meaning.
type Runner interface {
	Run(ctx context.Context, name string, args []string, out io.Writer) (int, error)
}

// ⚙️ ExecRunner is the real Runner backed by os/exec
type ExecRunner struct{}

// 🏃 Run implements Runner. Stdout and stderr are pumped concurrently
// so neither pipe can stall the process.
func (ExecRunner) Run(ctx context.Context, name string, args []string, out io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, errors.Errorf("opening stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, errors.Errorf("opening stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return -1, errors.Errorf("starting %s: %w", name, err)
	}

	g := &errgroup.Group{}
	g.Go(func() error {
		_, err := io.Copy(out, stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(out, stderr)
		return err
	})
	pumpErr := g.Wait()

	err = cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.Errorf("waiting for %s: %w", name, err)
	}
	if pumpErr != nil {
		return -1, errors.Errorf("streaming %s output: %w", name, pumpErr)
	}
	return 0, nil
}
