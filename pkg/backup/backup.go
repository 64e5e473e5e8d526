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
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/tidyfs/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// command is the copy utility invoked; its exit-code contract is the
// one interpreted by Succeeded.
const command = "robocopy"

// 🔧 Options configures one backup run
type Options struct {
	Job     Job
	Runner  Runner      // nil means ExecRunner
	Log     *runlog.Log // run log, required
	Console io.Writer   // subprocess output mirror; nil means os.Stdout
}

// 💾 Run validates, prepares, and executes one robocopy invocation.
// The source must exist before anything is mutated; the destination
// directory is created if absent. Exit codes below the failure bound
// are success; anything higher is a hard failure carrying the code.
func Run(ctx context.Context, opts Options) error {
	logger := zerolog.Ctx(ctx)

	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	job := opts.Job
	if job.Source == "" || job.Destination == "" {
		return errors.New("source and destination are required")
	}
	for _, pattern := range append(append([]string{}, job.ExcludeFiles...), job.ExcludeDirs...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid exclusion pattern %q", pattern)
		}
	}

	if _, err := os.Stat(job.Source); err != nil {
		return errors.Errorf("source path: %w", err)
	}
	if err := os.MkdirAll(job.Destination, 0755); err != nil {
		return errors.Errorf("creating destination %s: %w", job.Destination, err)
	}

	if job.LogPath == "" {
		job.LogPath = opts.Log.Path()
	}

	args := job.Args()
	opts.Log.Infof("%s %s", command, strings.Join(args, " "))
	logger.Debug().Strs("args", args).Msg("invoking copy utility")

	code, err := runner.Run(ctx, command, args, console)
	if err != nil {
		opts.Log.Errorf("%s did not run: %v", command, err)
		return errors.Errorf("running %s: %w", command, err)
	}

	if !Succeeded(code) {
		opts.Log.Errorf("%s failed with exit code %d (%s)", command, code, DescribeExit(code))
		return errors.Errorf("%s failed with exit code %d (%s)", command, code, DescribeExit(code))
	}

	opts.Log.Changef("%s finished with exit code %d (%s)", command, code, DescribeExit(code))
	return nil
}
