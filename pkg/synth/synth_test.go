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

package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/composer-switch/pkg/document"
	"github.com/walteh/composer-switch/pkg/file"
)

func mustDecode(t *testing.T, data string) *document.Map {
	t.Helper()
	doc, err := document.Decode([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name        string
		prod        string
		dev         string
		wantEvents  []Event
		wantRepos   []string // urls in order
		wantRequire map[string]string
	}{
		{
			name: "adds_to_empty_repositories",
			prod: `{"name": "acme/app", "repositories": []}`,
			dev:  `{"local-repositories": [{"package-name": "acme/lib", "path": "/path/acme-lib"}]}`,
			wantEvents: []Event{
				{Action: ActionAdd, Package: "acme/lib", Path: "/path/acme-lib", Index: 0},
			},
			wantRepos:   []string{"/path/acme-lib"},
			wantRequire: map[string]string{"acme/lib": "*"},
		},
		{
			name: "underscore_matches_hyphenated_url",
			prod: `{
				"require": {"mistralys/application-utils_core": "^2.0"},
				"repositories": [
					{"type": "vcs", "url": "https://github.com/acme/other"},
					{"type": "vcs", "url": "https://github.com/mistralys/application-utils-core"}
				]
			}`,
			dev: `{"local-repositories": [{"package-name": "mistralys/application-utils_core", "path": "/local/x"}]}`,
			wantEvents: []Event{
				{Action: ActionUpdate, Package: "mistralys/application-utils_core", Path: "/local/x", Index: 1},
			},
			wantRepos:   []string{"https://github.com/acme/other", "/local/x"},
			wantRequire: map[string]string{"mistralys/application-utils_core": "*"},
		},
		{
			name: "case_insensitive_match",
			prod: `{"repositories": [{"type": "vcs", "url": "https://github.com/Acme/Lib.git"}]}`,
			dev:  `{"local-repositories": [{"package-name": "acme/lib", "path": "../lib"}]}`,
			wantEvents: []Event{
				{Action: ActionUpdate, Package: "acme/lib", Path: "../lib", Index: 0},
			},
			wantRepos:   []string{"../lib"},
			wantRequire: map[string]string{"acme/lib": "*"},
		},
		{
			name: "first_match_wins_and_new_entries_append_in_order",
			prod: `{"repositories": [
				{"type": "vcs", "url": "https://example.com/acme/lib"},
				{"type": "vcs", "url": "https://mirror.example.com/acme/lib"}
			]}`,
			dev: `{"local-repositories": [
				{"package-name": "acme/lib", "path": "/a"},
				{"package-name": "acme/b", "path": "/b"},
				{"package-name": "acme/c", "path": "/c"}
			]}`,
			wantEvents: []Event{
				{Action: ActionUpdate, Package: "acme/lib", Path: "/a", Index: 0},
				{Action: ActionAdd, Package: "acme/b", Path: "/b", Index: 2},
				{Action: ActionAdd, Package: "acme/c", Path: "/c", Index: 3},
			},
			wantRepos:   []string{"/a", "https://mirror.example.com/acme/lib", "/b", "/c"},
			wantRequire: map[string]string{"acme/lib": "*", "acme/b": "*", "acme/c": "*"},
		},
		{
			name: "missing_repositories_and_require",
			prod: `{"name": "acme/app"}`,
			dev:  `{"local-repositories": [{"package-name": "acme/lib", "path": "/p"}]}`,
			wantEvents: []Event{
				{Action: ActionAdd, Package: "acme/lib", Path: "/p", Index: 0},
			},
			wantRepos:   []string{"/p"},
			wantRequire: map[string]string{"acme/lib": "*"},
		},
		{
			name: "repositories_of_wrong_type",
			prod: `{"repositories": {"packagist.org": false}}`,
			dev:  `{"local-repositories": [{"package-name": "acme/lib", "path": "/p"}]}`,
			wantEvents: []Event{
				{Action: ActionAdd, Package: "acme/lib", Path: "/p", Index: 0},
			},
			wantRepos:   []string{"/p"},
			wantRequire: map[string]string{"acme/lib": "*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prod := mustDecode(t, tt.prod)
			dev := mustDecode(t, tt.dev)

			res, err := Synthesize(prod, dev)
			require.NoError(t, err)

			assert.Equal(t, tt.wantEvents, res.Events)

			repos, ok := res.Document.GetSlice(KeyRepositories)
			require.True(t, ok)
			urls := make([]string, 0, len(repos))
			for _, r := range repos {
				m, ok := r.(*document.Map)
				require.True(t, ok)
				url, _ := m.GetString("url")
				urls = append(urls, url)
			}
			assert.Equal(t, tt.wantRepos, urls)

			requires, ok := res.Document.GetMap(KeyRequire)
			require.True(t, ok)
			for name, constraint := range tt.wantRequire {
				got, _ := requires.GetString(name)
				assert.Equal(t, constraint, got, "constraint for %s", name)
			}
		})
	}
}

func TestSynthesizePathRepositoryShape(t *testing.T) {
	res, err := Synthesize(
		mustDecode(t, `{"repositories": []}`),
		mustDecode(t, `{"local-repositories": [{"package-name": "acme/lib", "path": "/path/acme-lib"}]}`),
	)
	require.NoError(t, err)

	out, err := document.Encode(res.Document)
	require.NoError(t, err)

	assert.Equal(t, `{
    "repositories": [
        {
            "type": "path",
            "url": "/path/acme-lib",
            "options": {
                "symlink": true
            }
        }
    ],
    "require": {
        "acme/lib": "*"
    }
}
`, string(out))
}

func TestSynthesizeDoesNotModifyInputs(t *testing.T) {
	prodJSON := `{
    "require": {
        "acme/lib": "^1.0"
    },
    "repositories": [
        {
            "type": "vcs",
            "url": "https://github.com/acme/lib"
        }
    ]
}
`
	devJSON := `{"local-repositories": [{"package-name": "acme/lib", "path": "/p"}]}`

	prod := mustDecode(t, prodJSON)
	dev := mustDecode(t, devJSON)
	prodBefore := prod.Clone()
	devBefore := dev.Clone()

	_, err := Synthesize(prod, dev)
	require.NoError(t, err)

	assert.True(t, prod.Equal(prodBefore), "prod manifest must not change")
	assert.True(t, dev.Equal(devBefore), "dev descriptor must not change")

	out, err := document.Encode(prod)
	require.NoError(t, err)
	assert.Equal(t, prodJSON, string(out))
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	prod := mustDecode(t, `{"name": "acme/app", "repositories": [{"type": "vcs", "url": "https://x/acme/lib"}]}`)
	dev := mustDecode(t, `{"local-repositories": [{"package-name": "acme/lib", "path": "/a"}, {"package-name": "acme/new", "path": "/b"}]}`)

	first, err := Synthesize(prod, dev)
	require.NoError(t, err)
	second, err := Synthesize(prod, dev)
	require.NoError(t, err)

	assert.True(t, first.Document.Equal(second.Document))
	assert.Equal(t, first.Events, second.Events)
}

func TestParseDescriptorErrors(t *testing.T) {
	tests := []struct {
		name        string
		dev         string
		errContains string
	}{
		{name: "missing_key", dev: `{}`, errContains: "does not contain"},
		{name: "not_a_list", dev: `{"local-repositories": {"acme/lib": "/p"}}`, errContains: "must be a list"},
		{name: "empty_list", dev: `{"local-repositories": []}`, errContains: "any local repositories"},
		{name: "entry_not_object", dev: `{"local-repositories": ["acme/lib"]}`, errContains: "local-repositories[0] must be an object"},
		{name: "missing_path", dev: `{"local-repositories": [{"package-name": "acme/lib"}]}`, errContains: `"path" is missing`},
		{name: "empty_name", dev: `{"local-repositories": [{"package-name": " ", "path": "/p"}]}`, errContains: `"package-name" must not be empty`},
		{name: "path_not_string", dev: `{"local-repositories": [{"package-name": "acme/lib", "path": 3}]}`, errContains: `"path" must be a string`},
		{
			name:        "second_entry_invalid",
			dev:         `{"local-repositories": [{"package-name": "acme/lib", "path": "/p"}, {"path": "/q"}]}`,
			errContains: "local-repositories[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptor(mustDecode(t, tt.dev))
			require.Error(t, err)
			assert.Equal(t, file.KindStructure, file.KindOf(err))
			assert.Equal(t, 182111, file.CodeOf(err))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestParseDescriptor(t *testing.T) {
	repos, err := ParseDescriptor(mustDecode(t, `{
		"local-repositories": [
			{"package-name": "acme/lib", "path": "../lib", "comment": "ignored"},
			{"package-name": "acme/tool", "path": "/opt/tool"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, []LocalRepository{
		{PackageName: "acme/lib", Path: "../lib"},
		{PackageName: "acme/tool", Path: "/opt/tool"},
	}, repos)
}
