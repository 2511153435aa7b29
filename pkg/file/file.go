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

package file

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

const (
	// LockExtension replaces the manifest extension to form the lock artifact path.
	LockExtension = ".lock"
)

// 📁 File wraps a filesystem path
type File struct {
	path string
}

// 🏭 New creates a handle for path. No I/O happens here.
func New(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) BaseName() string {
	return filepath.Base(f.path)
}

func (f *File) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// 🔒 LockFile returns the sibling lock artifact: composer.json -> composer.lock
func (f *File) LockFile() *File {
	return New(SwapExtension(f.path, LockExtension))
}

// 🚩 FlagFile returns the marker for a mode: composer.json -> composer.json.DEV
func (f *File) FlagFile(marker string) *File {
	return New(f.path + "." + strings.ToUpper(marker))
}

// SwapExtension replaces the extension of path with ext.
// A path without an extension simply gets ext appended.
func SwapExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// ModifiedTime returns the modification time, false when the file is missing.
func (f *File) ModifiedTime() (time.Time, bool) {
	info, err := os.Stat(f.path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (f *File) RequireModifiedTime() (time.Time, error) {
	t, ok := f.ModifiedTime()
	if !ok {
		return time.Time{}, NewError(KindTimestampUnavailable, f.path, errors.New("cannot get modified date, file does not exist"))
	}
	return t, nil
}

// 🗑️ Delete removes the file, doing nothing when it is already gone
func (f *File) Delete() error {
	if !f.Exists() {
		return nil
	}
	if err := os.Remove(f.path); err != nil {
		return NewError(KindDelete, f.path, err)
	}
	return nil
}

// 📋 CopyTo replaces target with a byte copy of this file
func (f *File) CopyTo(target *File) error {
	if err := target.Delete(); err != nil {
		return NewError(KindCopy, target.path, err)
	}
	if err := copyFile(f.path, target.path); err != nil {
		return NewError(KindCopy, f.path+" -> "+target.path, err)
	}
	return nil
}

// TryCopyTo copies only when both this file and target exist.
func (f *File) TryCopyTo(target *File) error {
	if f.Exists() && target.Exists() {
		return f.CopyTo(target)
	}
	return nil
}

// Content reads the raw bytes of the file.
func (f *File) Content() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, NewError(KindRead, f.path, err)
	}
	return data, nil
}

// WriteContent replaces the file with data.
func (f *File) WriteContent(data []byte) error {
	if err := writeFileAtomic(f.path, data); err != nil {
		return NewError(KindWrite, f.path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}

	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}

// writeFileAtomic writes to a temp sibling and renames it over path.
func writeFileAtomic(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
