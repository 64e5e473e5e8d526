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

package fsrename_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tidyfs/pkg/fsrename"
)

// 🧪 touch creates an empty file
func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

// 🧪 TestResolveFreeName tests that an unclaimed, nonexistent name is used as-is
func TestResolveFreeName(t *testing.T) {
	dir := t.TempDir()
	r := fsrename.NewResolver()

	name, err := r.Resolve(dir, "2024-03-05_142210", ".JPG")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05_142210.JPG", name)
}

// 🧪 TestResolveSmallestSuffix tests that the smallest free k wins
func TestResolveSmallestSuffix(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "photo.jpg"))
	touch(t, filepath.Join(dir, "photo_1.jpg"))
	touch(t, filepath.Join(dir, "photo_3.jpg"))

	r := fsrename.NewResolver()
	name, err := r.Resolve(dir, "photo", ".jpg")
	require.NoError(t, err)
	assert.Equal(t, "photo_2.jpg", name)
}

// 🧪 TestResolveReservations tests that names claimed in the same run
// are never handed out twice, even before anything exists on disk
func TestResolveReservations(t *testing.T) {
	dir := t.TempDir()
	r := fsrename.NewResolver()

	first, err := r.Resolve(dir, "stamp", ".png")
	require.NoError(t, err)
	second, err := r.Resolve(dir, "stamp", ".png")
	require.NoError(t, err)
	third, err := r.Resolve(dir, "stamp", ".png")
	require.NoError(t, err)

	assert.Equal(t, "stamp.png", first)
	assert.Equal(t, "stamp_1.png", second)
	assert.Equal(t, "stamp_2.png", third)
}

// 🧪 TestResolveClaimedExisting tests Claim blocking a name case-insensitively
func TestResolveClaimedExisting(t *testing.T) {
	dir := t.TempDir()
	r := fsrename.NewResolver()
	r.Claim(filepath.Join(dir, "REPORT.TXT"))

	name, err := r.Resolve(dir, "report", ".txt")
	require.NoError(t, err)
	assert.Equal(t, "report_1.txt", name)
}

// 🧪 TestSplitExt tests stem/extension splitting
func TestSplitExt(t *testing.T) {
	tests := []struct {
		base, stem, ext string
	}{
		{"IMG_0001.JPG", "IMG_0001", ".JPG"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"noext", "noext", ""},
		{".hidden", "", ".hidden"},
	}
	for _, tt := range tests {
		stem, ext := fsrename.SplitExt(tt.base)
		assert.Equal(t, tt.stem, stem, tt.base)
		assert.Equal(t, tt.ext, ext, tt.base)
	}
}
