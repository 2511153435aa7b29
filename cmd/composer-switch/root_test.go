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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/composer-switch/pkg/file"
)

func setupProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "composer"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"), []byte(`{
    "name": "acme/app",
    "repositories": []
}
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.lock"), []byte("PROD"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer", "dev-config.json"), []byte(`{
    "local-repositories": [
        {"package-name": "acme/lib", "path": "../acme-lib"}
    ]
}
`), 0644))

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestSwitchCommands(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, "dev", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Switching to DEV composer config")
	assert.Contains(t, out, "ADD | [acme/lib]")
	assert.FileExists(t, filepath.Join(dir, "composer", "composer-prod.json"))
	assert.FileExists(t, filepath.Join(dir, "composer", "dev-config.status"))

	out, err = run(t, "status", "--dir", dir, "--files")
	require.NoError(t, err)
	assert.Contains(t, out, "DEV")
	assert.Contains(t, out, "composer-prod.json")
	assert.Contains(t, out, "missing", "the main lock was dropped")

	out, err = run(t, "diff", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "+++ composer.json")
	assert.Contains(t, out, "../acme-lib")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.lock"), []byte("DEV"), 0644))

	out, err = run(t, "switch", "prod", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Switched to PROD mode.")

	out, err = run(t, "diff", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "matches the production backup")
}

func TestQuietStillPrintsAdvisories(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "composer.lock")))

	out, err := run(t, "prod", "--dir", dir, "--quiet")
	require.NoError(t, err)
	assert.NotContains(t, out, "Switching to PROD")
	assert.Contains(t, out, "composer install")
}

func TestSwitchErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     func(dir string) []string
		prepare  func(t *testing.T, dir string)
		wantKind file.Kind
	}{
		{
			name:     "unknown_mode",
			args:     func(dir string) []string { return []string{"switch", "staging", "--dir", dir} },
			wantKind: file.KindInvalidMode,
		},
		{
			name: "missing_dev_config",
			args: func(dir string) []string { return []string{"dev", "--dir", dir} },
			prepare: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "composer", "dev-config.json")))
			},
			wantKind: file.KindDevFileMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupProject(t)
			if tt.prepare != nil {
				tt.prepare(t, dir)
			}

			_, err := run(t, tt.args(dir)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, file.KindOf(err))

			var buf bytes.Buffer
			reportError(context.Background(), &buf, err)
			assert.Contains(t, buf.String(), "error #")
		})
	}
}

func TestDiscoveredConfig(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.Rename(
		filepath.Join(dir, "composer", "dev-config.json"),
		filepath.Join(dir, "local.json"),
	))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".composer-switch.yaml"), []byte("dev: local.json\n"), 0644))

	_, err := run(t, "dev", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "local.status"))
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "composer-switch version info")
}
