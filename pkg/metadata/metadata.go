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

// Package metadata abstracts the operating system's shell metadata
// store. The only property the suite cares about is "Date taken";
// reading it is delegated to the shell, never parsed out of the file
// in process.
package metadata

import "context"

// 🔌 Provider reads shell metadata properties for a file
type Provider interface {
	// 📷 DateTaken returns the raw "Date taken" property string for
	// path. ok is false when the property is absent. The raw value may
	// contain invisible directional runes; callers are expected to
	// clean it before parsing.
	DateTaken(ctx context.Context, path string) (raw string, ok bool, err error)
}

// 🚫 Noop is a Provider for platforms without a shell metadata store.
// It always reports the property absent, so callers exercise the
// last-write-time fallback uniformly.
type Noop struct{}

// 📷 DateTaken implements Provider
func (Noop) DateTaken(ctx context.Context, path string) (string, bool, error) {
	return "", false, nil
}

// 🏭 Default returns the best Provider for the current platform: the
// shell-backed one on windows, Noop everywhere else.
func Default() Provider {
	return newPlatformProvider()
}
