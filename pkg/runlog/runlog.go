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

package runlog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🕐 lineStamp is the timestamp layout used for every log line
const lineStamp = "2006-01-02 15:04:05"

// 🕐 fileStamp is the timestamp layout used in default log file names
const fileStamp = "20060102_150405"

// 🎨 Event classes, each with its own console symbol and color
type EventClass int

const (
	EventInfo   EventClass = iota
	EventChange            // a mutation was performed (rename, delete, copy)
	EventSkip              // an item was examined and left alone
	EventError             // a per-item failure, run continues
)

// 📝 Log is a run-scoped log writer. One is opened per tool invocation,
// owned exclusively by that run, and closed on every exit path. Every
// event goes to three sinks: the log file, the console, and zerolog.
type Log struct {
	path    string
	file    *os.File
	console io.Writer
	zlog    zerolog.Logger
	mu      sync.Mutex
	now     func() time.Time
}

// 🏭 Options configures a run log
type Options struct {
	Tool    string    // tool name, used in the default file name
	Path    string    // explicit log file path; empty means default
	Dir     string    // directory for the default file; empty means os.TempDir()
	Console io.Writer // console sink; nil means os.Stdout
}

// 🎯 DefaultPath computes the default log file location for a tool:
// <dir>/tidyfs_<tool>_<yyyyMMdd_HHmmss>.log
func DefaultPath(dir, tool string, start time.Time) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("tidyfs_%s_%s.log", tool, start.Format(fileStamp)))
}

// 🏭 Open opens the run log, creating the file (append mode) at the
// configured or default path.
func Open(ctx context.Context, opts Options) (*Log, error) {
	now := time.Now()
	path := opts.Path
	if path == "" {
		path = DefaultPath(opts.Dir, opts.Tool, now)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Errorf("opening run log %s: %w", path, err)
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	return &Log{
		path:    path,
		file:    f,
		console: console,
		zlog:    *zerolog.Ctx(ctx),
		now:     time.Now,
	}, nil
}

// 📍 Path returns the log file location
func (l *Log) Path() string {
	return l.path
}

// 📝 Event records one event: a line in the file, a colored line on the
// console, and a structured zerolog event.
func (l *Log) Event(class EventClass, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.file, "[%s] %s\n", l.now().Format(lineStamp), msg)

	var symbol string
	var attr color.Attribute
	switch class {
	case EventChange:
		symbol = "✓"
		attr = color.FgGreen
	case EventSkip:
		symbol = "-"
		attr = color.FgYellow
	case EventError:
		symbol = "✗"
		attr = color.FgRed
	default:
		symbol = "•"
		attr = color.FgCyan
	}
	fmt.Fprintf(l.console, "%s %s\n", color.New(attr).Sprint(symbol), msg)

	switch class {
	case EventError:
		l.zlog.Warn().Msg(msg)
	default:
		l.zlog.Info().Msg(msg)
	}
}

// 📝 Eventf records a formatted event
func (l *Log) Eventf(class EventClass, format string, args ...interface{}) {
	l.Event(class, fmt.Sprintf(format, args...))
}

// 📝 Infof records an informational event
func (l *Log) Infof(format string, args ...interface{}) {
	l.Eventf(EventInfo, format, args...)
}

// 📝 Changef records a mutation event
func (l *Log) Changef(format string, args ...interface{}) {
	l.Eventf(EventChange, format, args...)
}

// 📝 Skipf records a skip event
func (l *Log) Skipf(format string, args ...interface{}) {
	l.Eventf(EventSkip, format, args...)
}

// 📝 Errorf records a per-item failure event
func (l *Log) Errorf(format string, args ...interface{}) {
	l.Eventf(EventError, format, args...)
}

// ✍️ Writer returns an io.Writer that appends raw output to the log
// file only, used to capture subprocess output alongside /TEE console
// streaming.
func (l *Log) Writer() io.Writer {
	return rawWriter{l}
}

type rawWriter struct{ l *Log }

func (w rawWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.file.Write(p)
}

// 🔒 Close flushes and closes the log file
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.file.Sync(); err != nil {
		l.file.Close()
		return errors.Errorf("flushing run log: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return errors.Errorf("closing run log: %w", err)
	}
	return nil
}
