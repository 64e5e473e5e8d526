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

// Package prune removes empty directories, deepest first, so a parent
// emptied by its children's deletion is caught in the same pass.
package prune

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/tidyfs/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures a prune pass
type Options struct {
	Root    string      // root directory to prune under
	Protect []string    // doublestar globs (relative to root) never deleted
	DryRun  bool        // log would-be deletions, perform none
	Log     *runlog.Log // run log, required
}

// 📊 Result summarizes one prune pass
type Result struct {
	Removed []string // directories deleted (root included if it went)
	Failed  []string // directories that could not be deleted or read
	Kept    int      // non-empty or protected directories left alone
}

// 🧹 Run performs one prune pass. Inaccessible directories are logged
// and skipped; the pass always continues. The root itself is only
// eligible after every descendant has been resolved.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, errors.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("root path %s is not a directory", opts.Root)
	}

	for _, pattern := range opts.Protect {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid protect pattern %q", pattern)
		}
	}

	result := &Result{}

	// Collect every descendant directory. Walk errors keep the pass
	// alive: the unreadable subtree is reported and skipped.
	var dirs []string
	err = filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			opts.Log.Errorf("cannot read %s: %v", path, err)
			result.Failed = append(result.Failed, path)
			return nil
		}
		if d.IsDir() && path != opts.Root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", opts.Root, err)
	}

	// Deepest first: a directory is never evaluated before all of its
	// descendants.
	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})

	removed := make(map[string]bool)
	for _, dir := range dirs {
		pruneOne(opts, result, removed, dir)
	}

	// The root goes last, only if the pass emptied it.
	pruneOne(opts, result, removed, opts.Root)

	logger.Info().
		Int("removed", len(result.Removed)).
		Int("failed", len(result.Failed)).
		Int("kept", result.Kept).
		Msg("prune pass complete")
	return result, nil
}

// depth counts path separators after cleaning
func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}

// 🧹 pruneOne evaluates and possibly deletes a single directory
func pruneOne(opts Options, result *Result, removed map[string]bool, dir string) {
	if isProtected(opts, dir) {
		opts.Log.Skipf("%s: protected", dir)
		result.Kept++
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		opts.Log.Errorf("cannot read %s: %v", dir, err)
		result.Failed = append(result.Failed, dir)
		return
	}

	remaining := 0
	for _, entry := range entries {
		if !removed[filepath.Join(dir, entry.Name())] {
			remaining++
		}
	}
	if remaining > 0 {
		result.Kept++
		return
	}

	if opts.DryRun {
		opts.Log.Changef("would remove empty directory %s", dir)
		removed[dir] = true
		result.Removed = append(result.Removed, dir)
		return
	}

	if err := os.Remove(dir); err != nil {
		opts.Log.Errorf("cannot remove %s: %v", dir, err)
		result.Failed = append(result.Failed, dir)
		return
	}

	opts.Log.Changef("removed empty directory %s", dir)
	removed[dir] = true
	result.Removed = append(result.Removed, dir)
}

// 🛡️ isProtected reports whether dir matches a protect glob
func isProtected(opts Options, dir string) bool {
	rel, err := filepath.Rel(opts.Root, dir)
	if err != nil || rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range opts.Protect {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
