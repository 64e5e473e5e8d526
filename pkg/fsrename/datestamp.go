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

	"code.cloudfoundry.org/bytefmt"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/tidyfs/pkg/metadata"
	"github.com/walteh/tidyfs/pkg/runlog"
	"github.com/walteh/tidyfs/pkg/timestamp"
	"gitlab.com/tozd/go/errors"
)

// 📊 Result summarizes one rename walk
type Result struct {
	Renamed   int // files renamed
	Unchanged int // files already bearing their final name
	Skipped   int // files excluded by the match glob
	Failed    int // per-file failures, logged and left in place
}

// 🔧 DatestampOptions configures a datestamp walk
type DatestampOptions struct {
	Path     string            // file or directory to process
	Match    string            // doublestar glob on base names, empty matches all
	DryRun   bool              // log decisions, mutate nothing
	Provider metadata.Provider // shell metadata source
	Log      *runlog.Log       // run log, required
}

// 🕐 Datestamp renames every matched file to its resolved timestamp,
// yyyy-MM-dd_HHmmss plus the original extension, with collision
// suffixes. Per-file failures are logged and skipped.
func Datestamp(ctx context.Context, opts DatestampOptions) (*Result, error) {
	logger := zerolog.Ctx(ctx)

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
		stampOne(ctx, opts, resolver, result, opts.Path, info)
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
		fi, err := d.Info()
		if err != nil {
			opts.Log.Errorf("cannot stat %s: %v", path, err)
			result.Failed++
			return nil
		}
		stampOne(ctx, opts, resolver, result, path, fi)
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
		Msg("datestamp walk complete")
	return result, nil
}

// 🕐 stampOne processes a single file. Failures are logged, never fatal.
func stampOne(ctx context.Context, opts DatestampOptions, resolver *Resolver, result *Result, path string, info fs.FileInfo) {
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

	resolved := timestamp.Resolve(ctx, opts.Provider, path, info)
	if resolved.Raw != "" {
		opts.Log.Infof("%s: date-taken %q (%s)", base, resolved.Raw, resolved.Source)
	} else {
		opts.Log.Infof("%s: using %s time %s", base, resolved.Source, resolved.Time.Format(timestamp.NameLayout))
	}

	stem := resolved.Time.Format(timestamp.NameLayout)
	_, ext := SplitExt(base)

	if base == stem+ext {
		resolver.Claim(path)
		opts.Log.Skipf("%s: already named for its timestamp", base)
		result.Unchanged++
		return
	}

	dir := filepath.Dir(path)
	newBase, err := resolver.Resolve(dir, stem, ext)
	if err != nil {
		opts.Log.Errorf("%s: resolving destination: %v", base, err)
		result.Failed++
		return
	}

	if opts.DryRun {
		opts.Log.Changef("%s -> %s (%s) [dry-run]", base, newBase, bytefmt.ByteSize(uint64(info.Size())))
		result.Renamed++
		return
	}

	if err := os.Rename(path, filepath.Join(dir, newBase)); err != nil {
		opts.Log.Errorf("%s: rename failed: %v", base, err)
		result.Failed++
		return
	}

	opts.Log.Changef("%s -> %s (%s)", base, newBase, bytefmt.ByteSize(uint64(info.Size())))
	result.Renamed++
}
