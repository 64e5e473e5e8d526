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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔒 Resolver hands out collision-free destination names. A name is
// free only if no filesystem entry exists at it AND it has not been
// claimed earlier in the same run, so two sources can never resolve to
// the same destination.
type Resolver struct {
	claimed map[string]bool
}

// 🏭 NewResolver creates a Resolver with an empty reservation set
func NewResolver() *Resolver {
	return &Resolver{claimed: make(map[string]bool)}
}

// claimKey normalizes a path for the reservation set. Windows paths
// are case-insensitive.
func claimKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

// 🎯 Resolve returns the base name to use for stem+ext inside dir:
// stem.ext when free, otherwise stem_k.ext for the smallest k >= 1
// that is free. The returned name is claimed for the rest of the run.
// Existing entries are never overwritten.
func (r *Resolver) Resolve(dir, stem, ext string) (string, error) {
	for k := 0; ; k++ {
		name := stem + ext
		if k > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, k, ext)
		}

		full := filepath.Join(dir, name)
		if r.claimed[claimKey(full)] {
			continue
		}

		_, err := os.Lstat(full)
		if err == nil {
			continue
		}
		if !os.IsNotExist(err) {
			return "", errors.Errorf("checking candidate %s: %w", full, err)
		}

		r.claimed[claimKey(full)] = true
		return name, nil
	}
}

// 📌 Claim reserves an existing name so later candidates cannot take
// it, used when a file already bears its final name.
func (r *Resolver) Claim(path string) {
	r.claimed[claimKey(path)] = true
}

// ✂️ SplitExt splits a base name into stem and extension. The
// extension keeps its leading dot and original case.
func SplitExt(base string) (stem, ext string) {
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

// TODO(dr.methodical): 🧪 Add tests for candidates near the 260-char MAX_PATH limit
