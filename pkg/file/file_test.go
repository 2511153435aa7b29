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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedPaths(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantLock string
		wantDev  string
	}{
		{
			name:     "main_manifest",
			path:     "/project/composer.json",
			wantLock: "/project/composer.lock",
			wantDev:  "/project/composer.json.DEV",
		},
		{
			name:     "prod_backup",
			path:     "/project/composer/composer-prod.json",
			wantLock: "/project/composer/composer-prod.lock",
			wantDev:  "/project/composer/composer-prod.json.DEV",
		},
		{
			name:     "dotted_name",
			path:     "config/app.v2.json",
			wantLock: "config/app.v2.lock",
			wantDev:  "config/app.v2.json.DEV",
		},
		{
			name:     "no_extension",
			path:     "composer",
			wantLock: "composer.lock",
			wantDev:  "composer.DEV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.path)
			assert.Equal(t, tt.wantLock, f.LockFile().Path())
			assert.Equal(t, tt.wantDev, f.FlagFile("dev").Path())
		})
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing_file_is_a_no_op", func(t *testing.T) {
		assert.NoError(t, New(filepath.Join(dir, "missing.json")).Delete())
	})

	t.Run("removes_file", func(t *testing.T) {
		path := filepath.Join(dir, "composer.lock")
		require.NoError(t, os.WriteFile(path, []byte("PROD"), 0644))

		f := New(path)
		require.NoError(t, f.Delete())
		assert.False(t, f.Exists())
	})

	t.Run("failure_is_classified", func(t *testing.T) {
		path := filepath.Join(dir, "not-empty")
		require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0755))

		err := New(path).Delete()
		require.Error(t, err)
		assert.Equal(t, KindDelete, KindOf(err))
		assert.Equal(t, 182106, CodeOf(err))
	})
}

func TestCopyTo(t *testing.T) {
	dir := t.TempDir()
	src := New(filepath.Join(dir, "composer.lock"))
	require.NoError(t, os.WriteFile(src.Path(), []byte("PROD"), 0644))

	t.Run("creates_parent_directories", func(t *testing.T) {
		dst := New(filepath.Join(dir, "composer", "composer-prod.lock"))
		require.NoError(t, src.CopyTo(dst))

		data, err := dst.Content()
		require.NoError(t, err)
		assert.Equal(t, "PROD", string(data))
	})

	t.Run("overwrites_existing_target", func(t *testing.T) {
		dst := New(filepath.Join(dir, "existing.lock"))
		require.NoError(t, os.WriteFile(dst.Path(), []byte("a much longer DEV lock content"), 0644))

		require.NoError(t, src.CopyTo(dst))

		data, err := dst.Content()
		require.NoError(t, err)
		assert.Equal(t, "PROD", string(data))
	})

	t.Run("missing_source", func(t *testing.T) {
		err := New(filepath.Join(dir, "nope.lock")).CopyTo(New(filepath.Join(dir, "target.lock")))
		require.Error(t, err)
		assert.Equal(t, KindCopy, KindOf(err))
	})

	t.Run("try_copy_needs_both_files", func(t *testing.T) {
		dst := New(filepath.Join(dir, "absent.lock"))
		require.NoError(t, src.TryCopyTo(dst))
		assert.False(t, dst.Exists(), "TryCopyTo should not create the target")

		require.NoError(t, os.WriteFile(dst.Path(), []byte("old"), 0644))
		require.NoError(t, src.TryCopyTo(dst))

		data, err := dst.Content()
		require.NoError(t, err)
		assert.Equal(t, "PROD", string(data))
	})
}

func TestModifiedTime(t *testing.T) {
	dir := t.TempDir()
	f := New(filepath.Join(dir, "composer.json"))

	_, ok := f.ModifiedTime()
	assert.False(t, ok)

	_, err := f.RequireModifiedTime()
	require.Error(t, err)
	assert.Equal(t, KindTimestampUnavailable, KindOf(err))

	require.NoError(t, os.WriteFile(f.Path(), []byte("{}"), 0644))
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(f.Path(), when, when))

	got, err := f.RequireModifiedTime()
	require.NoError(t, err)
	assert.True(t, when.Equal(got), "got %s", got)
}

func TestContent(t *testing.T) {
	dir := t.TempDir()
	f := New(filepath.Join(dir, "nested", "composer.json.DEV"))

	_, err := f.Content()
	require.Error(t, err)
	assert.Equal(t, KindRead, KindOf(err))

	require.NoError(t, f.WriteContent([]byte("DEV")))
	data, err := f.Content()
	require.NoError(t, err)
	assert.Equal(t, "DEV", string(data))
	assert.NoFileExists(t, f.Path()+".tmp")
}
