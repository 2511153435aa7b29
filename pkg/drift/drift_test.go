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

package drift

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/composer-switch/pkg/file"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name        string
		from        *string
		to          *string
		wantEqual   bool
		wantMissing [2]bool
		wantLines   []string
	}{
		{
			name:      "identical_files",
			from:      ptr("{\n    \"name\": \"acme/app\"\n}\n"),
			to:        ptr("{\n    \"name\": \"acme/app\"\n}\n"),
			wantEqual: true,
		},
		{
			name: "changed_line",
			from: ptr("{\n    \"php\": \">=7.4\"\n}\n"),
			to:   ptr("{\n    \"php\": \">=8.1\"\n}\n"),
			wantLines: []string{
				"--- composer.json",
				"+++ composer-prod.json",
				"-    \"php\": \">=7.4\"",
				"+    \"php\": \">=8.1\"",
			},
		},
		{
			name:        "missing_backup",
			from:        ptr("{}\n"),
			to:          nil,
			wantMissing: [2]bool{false, true},
			wantLines:   []string{"-{}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			from := filepath.Join(dir, "composer.json")
			to := filepath.Join(dir, "composer-prod.json")
			if tt.from != nil {
				require.NoError(t, os.WriteFile(from, []byte(*tt.from), 0644))
			}
			if tt.to != nil {
				require.NoError(t, os.WriteFile(to, []byte(*tt.to), 0644))
			}

			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			report, err := Compare(ctx, file.New(from), file.New(to), 0)
			require.NoError(t, err)

			assert.Equal(t, tt.wantEqual, report.Equal())
			assert.Equal(t, tt.wantMissing[0], report.FromMissing)
			assert.Equal(t, tt.wantMissing[1], report.ToMissing)
			for _, line := range tt.wantLines {
				assert.Contains(t, report.Diff, line)
			}
		})
	}
}

func ptr(s string) *string {
	return &s
}
