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

package timestamp

import (
	"context"
	"io/fs"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/tidyfs/pkg/metadata"
	"gitlab.com/tozd/go/errors"
)

// 🕐 NameLayout is the layout of a datestamped file name (without extension)
const NameLayout = "2006-01-02_150405"

// 🗺️ layouts are tried in order; the first that parses wins. Explorer
// emits M/d/yyyy h:mm tt for the "Date taken" property, cameras and
// other tooling produce EXIF colons or ISO-ish strings.
var layouts = []string{
	"1/2/2006 3:04 PM",
	"01/02/2006 03:04 PM",
	"2006:01:02 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// 🗺️ invisible holds the Unicode directional/format runes Explorer
// embeds in property strings. They are stripped before parsing.
var invisible = map[rune]bool{
	'\u200e': true, // LEFT-TO-RIGHT MARK
	'\u200f': true, // RIGHT-TO-LEFT MARK
	'\u202a': true, // LEFT-TO-RIGHT EMBEDDING
	'\u202b': true, // RIGHT-TO-LEFT EMBEDDING
	'\u202c': true, // POP DIRECTIONAL FORMATTING
	'\u202d': true, // LEFT-TO-RIGHT OVERRIDE
	'\u202e': true, // RIGHT-TO-LEFT OVERRIDE
	'\u2066': true, // LEFT-TO-RIGHT ISOLATE
	'\u2067': true, // RIGHT-TO-LEFT ISOLATE
	'\u2068': true, // FIRST STRONG ISOLATE
	'\u2069': true, // POP DIRECTIONAL ISOLATE
}

// 📊 Source identifies where a resolved timestamp came from
type Source int

const (
	SourceMetadata Source = iota // parsed from the shell date-taken property
	SourceModTime                // fell back to the file's last-write time
)

// String returns a string representation of Source
func (s Source) String() string {
	if s == SourceMetadata {
		return "date-taken"
	}
	return "last-write"
}

// 📄 Resolved is the outcome of timestamp resolution for one file
type Resolved struct {
	Time   time.Time // the usable timestamp, always set
	Source Source    // which link of the fallback chain produced it
	Raw    string    // raw property value, empty if absent
	Layout string    // layout that parsed Raw, empty on fallback
}

// 🧹 Clean strips the invisible directional runes and surrounding
// whitespace from a raw property string.
func Clean(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if invisible[r] {
			return -1
		}
		return r
	}, raw)
	return strings.TrimSpace(cleaned)
}

// 📝 Parse parses a raw date-taken property value, trying each known
// layout in order. Returns the matched layout alongside the time.
func Parse(raw string) (time.Time, string, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return time.Time{}, "", errors.New("empty date-taken value")
	}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, cleaned, time.Local); err == nil {
			return ts, layout, nil
		}
	}
	return time.Time{}, "", errors.Errorf("no known layout matches %q", cleaned)
}

// 🎯 Resolve produces a usable timestamp for a file. It is total: a
// missing, malformed, or erroring date-taken property falls back to
// the file's last-write time. Every decision is logged.
func Resolve(ctx context.Context, provider metadata.Provider, path string, info fs.FileInfo) Resolved {
	logger := zerolog.Ctx(ctx)

	raw, ok, err := provider.DateTaken(ctx, path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("date-taken read failed, falling back to last-write time")
		return Resolved{Time: info.ModTime(), Source: SourceModTime}
	}
	if !ok {
		logger.Debug().Str("path", path).Msg("no date-taken property, falling back to last-write time")
		return Resolved{Time: info.ModTime(), Source: SourceModTime}
	}

	ts, layout, err := Parse(raw)
	if err != nil {
		logger.Debug().Str("path", path).Str("raw", raw).Err(err).Msg("unparseable date-taken value, falling back to last-write time")
		return Resolved{Time: info.ModTime(), Source: SourceModTime, Raw: raw}
	}

	logger.Debug().Str("path", path).Str("raw", raw).Str("layout", layout).Msg("parsed date-taken property")
	return Resolved{Time: ts, Source: SourceMetadata, Raw: raw, Layout: layout}
}
