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

// Package backup wraps robocopy for bulk copying with retry. The copy
// engine itself is never reimplemented; this package builds the
// argument vector, runs the process, and interprets its exit code.
package backup

import (
	"fmt"
	"strings"
)

const (
	// robocopy exit codes are bit flags; 8 and above signal failures
	successBound = 8

	defaultRetries   = 2
	defaultRetryWait = 5
)

// 📦 Job describes one robocopy invocation
type Job struct {
	Source       string   // must exist before the run
	Destination  string   // created if absent
	ExcludeFiles []string // /XF, one flag pair per pattern, passed verbatim
	ExcludeDirs  []string // /XD, one flag pair per pattern, passed verbatim
	Retries      int      // /R, 0 means default
	RetryWait    int      // /W seconds, 0 means default
	LogPath      string   // /LOG+ target; robocopy appends to it itself
}

// 🔧 Args builds the robocopy argument vector: recursive copy
// including empty directories, data/attributes/timestamps/security/
// owner preservation (no audit info, so no SeSecurityPrivilege),
// bounded retry, console tee plus append-mode log.
func (j *Job) Args() []string {
	retries := j.Retries
	if retries == 0 {
		retries = defaultRetries
	}
	wait := j.RetryWait
	if wait == 0 {
		wait = defaultRetryWait
	}

	args := []string{
		j.Source,
		j.Destination,
		"/E",
		"/COPY:DATSO",
		"/DCOPY:DAT",
		fmt.Sprintf("/R:%d", retries),
		fmt.Sprintf("/W:%d", wait),
		"/TEE",
	}
	if j.LogPath != "" {
		args = append(args, "/LOG+:"+j.LogPath)
	}
	for _, pattern := range j.ExcludeFiles {
		args = append(args, "/XF", pattern)
	}
	for _, pattern := range j.ExcludeDirs {
		args = append(args, "/XD", pattern)
	}
	return args
}

// 🎯 Succeeded reports whether a robocopy exit code is in the
// success/no-error range.
func Succeeded(code int) bool {
	return code >= 0 && code < successBound
}

// 📝 DescribeExit renders a robocopy exit code's meaning bits
func DescribeExit(code int) string {
	if code == 0 {
		return "no files copied, no failures"
	}
	var parts []string
	if code&1 != 0 {
		parts = append(parts, "files copied")
	}
	if code&2 != 0 {
		parts = append(parts, "extra entries in destination")
	}
	if code&4 != 0 {
		parts = append(parts, "mismatched entries")
	}
	if code&8 != 0 {
		parts = append(parts, "copy failures")
	}
	if code&16 != 0 {
		parts = append(parts, "fatal error")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("code %d", code)
	}
	return strings.Join(parts, ", ")
}
