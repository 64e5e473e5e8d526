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

//go:build windows

package metadata

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"gitlab.com/tozd/go/errors"
)

// dateTakenColumn is the Shell details column for "Date taken". Stable
// since Vista.
const dateTakenColumn = 12

// 🪟 Shell reads properties through the Shell.Application automation
// object, the same store Explorer's details pane shows.
type Shell struct{}

func newPlatformProvider() Provider {
	return Shell{}
}

// 📷 DateTaken implements Provider. The returned string is exactly
// what the shell renders, including embedded directional marks.
func (Shell) DateTaken(ctx context.Context, path string) (string, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, errors.Errorf("resolving path: %w", err)
	}

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		oleErr, isOle := err.(*ole.OleError)
		// S_FALSE means COM was already initialized on this thread
		if !isOle || oleErr.Code() != uintptr(1) {
			return "", false, errors.Errorf("initializing COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("Shell.Application")
	if err != nil {
		return "", false, errors.Errorf("creating Shell.Application: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", false, errors.Errorf("querying IDispatch: %w", err)
	}
	defer shell.Release()

	folderVar, err := oleutil.CallMethod(shell, "NameSpace", filepath.Dir(abs))
	if err != nil {
		return "", false, errors.Errorf("opening namespace %s: %w", filepath.Dir(abs), err)
	}
	folder := folderVar.ToIDispatch()
	if folder == nil {
		return "", false, errors.Errorf("namespace %s not found", filepath.Dir(abs))
	}
	defer folder.Release()

	itemVar, err := oleutil.CallMethod(folder, "ParseName", filepath.Base(abs))
	if err != nil {
		return "", false, errors.Errorf("parsing name %s: %w", filepath.Base(abs), err)
	}
	item := itemVar.ToIDispatch()
	if item == nil {
		return "", false, errors.Errorf("item %s not found in namespace", filepath.Base(abs))
	}
	defer item.Release()

	detailVar, err := oleutil.CallMethod(folder, "GetDetailsOf", item, dateTakenColumn)
	if err != nil {
		return "", false, errors.Errorf("reading date-taken detail: %w", err)
	}

	raw := detailVar.ToString()
	if strings.TrimSpace(raw) == "" {
		return "", false, nil
	}
	return raw, true, nil
}
