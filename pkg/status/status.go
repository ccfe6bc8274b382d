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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrSourceUnavailable is returned when the target cannot be read as text
	ErrSourceUnavailable = errors.Base("source unavailable")

	// ErrDestinationUnwritable is returned when the result cannot be persisted
	ErrDestinationUnwritable = errors.Base("destination unwritable")
)

// 📊 FileStatus represents what a patch did (or would do) to a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusModified             // content was rewritten
	StatusUnchanged            // nothing matched, or the result equals the source
	StatusPending              // content would change, but nothing was written
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusPending:
		return "pending"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains metadata about a patched file
type FileInfo struct {
	Path         string     // Path to the file, relative to the base directory when possible
	Status       FileStatus // Current status
	Size         int64      // File size in bytes after the patch
	Replacements int        // Number of replaced spans
	Checksum     string     // Content hash after the patch
	Error        error      // Any error associated with this file
}

// 💾 FileManager reads and writes whole text files and records what
// happened to them
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, content []byte) error
	TrackFile(ctx context.Context, info FileInfo)
}

var _ FileManager = (*Manager)(nil)

// 🔧 Manager implements FileManager rooted at a base directory and tracks file status
type Manager struct {
	baseDir string // Base directory for relative paths

	mu    sync.RWMutex
	files map[string]FileInfo
}

// 🏭 New creates a new status manager
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
		files:   make(map[string]FileInfo),
	}
}

// Path returns the absolute path for a given path
func (m *Manager) Path(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ReadFile returns the full contents of path. The content must be UTF-8 text.
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	absPath := m.Path(path)
	zerolog.Ctx(ctx).Debug().Str("path", absPath).Msg("reading source")

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &FileError{Kind: ErrSourceUnavailable, Op: "read", Path: path, Err: unwrapPathError(err)}
	}
	if !utf8.Valid(content) {
		return nil, &FileError{Kind: ErrSourceUnavailable, Op: "read", Path: path, Err: errors.New("not valid UTF-8 text")}
	}
	return content, nil
}

// WriteFile overwrites path with content. An existing file keeps its mode.
func (m *Manager) WriteFile(ctx context.Context, path string, content []byte) error {
	absPath := m.Path(path)
	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("bytes", len(content)).Msg("writing destination")

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(absPath); err == nil {
		if info.IsDir() {
			return &FileError{Kind: ErrDestinationUnwritable, Op: "write", Path: path, Err: errors.New("is a directory")}
		}
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(absPath, content, mode); err != nil {
		return &FileError{Kind: ErrDestinationUnwritable, Op: "write", Path: path, Err: unwrapPathError(err)}
	}
	return nil
}

// FileExists reports whether path exists
func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.Path(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// TrackFile records the outcome for a file
func (m *Manager) TrackFile(ctx context.Context, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[info.Path] = info
	zerolog.Ctx(ctx).Debug().
		Str("path", info.Path).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg("tracked file")
}

// GetFileInfo returns the recorded outcome for path
func (m *Manager) GetFileInfo(ctx context.Context, path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return info, nil
}

// 🚫 FileError reports a failed read or write at the file boundary.
//
// errors.Is matches both Kind and the underlying cause.
type FileError struct {
	Kind error  // ErrSourceUnavailable or ErrDestinationUnwritable
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Kind.Error() + ": " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// unwrapPathError drops the *fs.PathError layer, whose path FileError already carries
func unwrapPathError(err error) error {
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return perr.Err
	}
	return err
}
