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

package fsrename

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/tidyfs/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 PatternOptions configures a pattern-rename walk
type PatternOptions struct {
	Path        string         // file or directory to process
	Pattern     *regexp.Regexp // substitution pattern, required
	Replacement string         // replacement text
	Match       string         // doublestar glob on base names, empty matches all
	DryRun      bool           // log decisions, mutate nothing
	Log         *runlog.Log    // run log, required
}

// ✏️ Pattern applies a regex substitution to every matched base name.
// A substitution that leaves the name unchanged is reported as a no-op
// and touches nothing. Changed names go through collision resolution.
func Pattern(ctx context.Context, opts PatternOptions) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if opts.Pattern == nil {
		return nil, errors.New("substitution pattern is required")
	}

	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, errors.Errorf("target path: %w", err)
	}

	if opts.Match != "" {
		if !doublestar.ValidatePattern(opts.Match) {
			return nil, errors.Errorf("invalid match pattern %q", opts.Match)
		}
	}

	resolver := NewResolver()
	result := &Result{}

	if !info.IsDir() {
		substituteOne(opts, resolver, result, opts.Path)
		return result, nil
	}

	err = filepath.WalkDir(opts.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			opts.Log.Errorf("cannot read %s: %v", path, err)
			result.Failed++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		substituteOne(opts, resolver, result, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", opts.Path, err)
	}

	logger.Info().
		Int("renamed", result.Renamed).
		Int("unchanged", result.Unchanged).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("pattern walk complete")
	return result, nil
}

// ✏️ substituteOne processes a single file
func substituteOne(opts PatternOptions, resolver *Resolver, result *Result, path string) {
	base := filepath.Base(path)

	// the run log may live inside the target directory
	if filepath.Clean(path) == filepath.Clean(opts.Log.Path()) {
		result.Skipped++
		return
	}

	if opts.Match != "" {
		if ok, _ := doublestar.Match(opts.Match, base); !ok {
			result.Skipped++
			return
		}
	}

	newName := opts.Pattern.ReplaceAllString(base, opts.Replacement)
	if newName == base {
		resolver.Claim(path)
		opts.Log.Skipf("%s: no change", base)
		result.Unchanged++
		return
	}
	if newName == "" {
		opts.Log.Errorf("%s: substitution yields an empty name", base)
		result.Failed++
		return
	}

	dir := filepath.Dir(path)
	stem, ext := SplitExt(newName)
	finalName, err := resolver.Resolve(dir, stem, ext)
	if err != nil {
		opts.Log.Errorf("%s: resolving destination: %v", base, err)
		result.Failed++
		return
	}

	if opts.DryRun {
		opts.Log.Changef("%s -> %s [dry-run]", base, finalName)
		result.Renamed++
		return
	}

	if err := os.Rename(path, filepath.Join(dir, finalName)); err != nil {
		opts.Log.Errorf("%s: rename failed: %v", base, err)
		result.Failed++
		return
	}

	opts.Log.Changef("%s -> %s", base, finalName)
	result.Renamed++
}
