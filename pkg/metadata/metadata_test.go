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

package metadata_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tidyfs/pkg/metadata"
)

// 🧪 TestNoopAlwaysAbsent tests that Noop reports the property absent
// without error, so callers exercise the fallback path
func TestNoopAlwaysAbsent(t *testing.T) {
	raw, ok, err := metadata.Noop{}.DateTaken(context.Background(), "anything.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, raw)
}

// 🧪 TestDefaultProvider tests that every platform gets a provider
func TestDefaultProvider(t *testing.T) {
	assert.NotNil(t, metadata.Default())
}
