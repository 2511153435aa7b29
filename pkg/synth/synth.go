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

// Package synth builds a development manifest from a production manifest
// and a list of local path repositories.
package synth

import (
	"strings"

	"github.com/walteh/composer-switch/pkg/document"
	"github.com/walteh/composer-switch/pkg/file"
	"gitlab.com/tozd/go/errors"
)

// Manifest and descriptor keys.
const (
	KeyRequire      = "require"
	KeyRepositories = "repositories"
	KeyLocalRepos   = "local-repositories"
	KeyPackageName  = "package-name"
	KeyPath         = "path"

	// AnyVersion lets the local path win over any version constraint.
	AnyVersion = "*"

	PathRepositoryType = "path"
)

const (
	repositoryTypeKey    = "type"
	repositoryURLKey     = "url"
	repositoryOptionsKey = "options"
	symlinkOption        = "symlink"
)

// 🎬 Action is what happened to a repository entry
type Action string

const (
	ActionAdd    Action = "ADD"
	ActionUpdate Action = "UPDATE"
)

// 📣 Event describes one repository entry change
type Event struct {
	Action  Action
	Package string
	Path    string
	Index   int // position in the repositories sequence
}

// 📦 LocalRepository is one entry of the development descriptor
type LocalRepository struct {
	PackageName string
	Path        string
}

// 🧾 Result is the synthesized manifest plus what changed
type Result struct {
	Document *document.Map
	Events   []Event
}

// ParseDescriptor validates the development descriptor and returns its
// local repositories in declared order.
func ParseDescriptor(dev *document.Map) ([]LocalRepository, error) {
	raw, ok := dev.Get(KeyLocalRepos)
	if !ok {
		return nil, structureErrorf("the dev config does not contain %q", KeyLocalRepos)
	}

	entries, ok := raw.([]any)
	if !ok {
		return nil, structureErrorf("%q must be a list", KeyLocalRepos)
	}
	if len(entries) == 0 {
		return nil, structureErrorf("the dev config does not contain any local repositories")
	}

	repos := make([]LocalRepository, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(*document.Map)
		if !ok || m == nil {
			return nil, structureErrorf("%s[%d] must be an object", KeyLocalRepos, i)
		}

		name, err := requiredString(m, KeyPackageName)
		if err != nil {
			return nil, errors.Errorf("%s[%d]: %w", KeyLocalRepos, i, err)
		}
		path, err := requiredString(m, KeyPath)
		if err != nil {
			return nil, errors.Errorf("%s[%d]: %w", KeyLocalRepos, i, err)
		}

		repos = append(repos, LocalRepository{PackageName: name, Path: path})
	}

	return repos, nil
}

func requiredString(m *document.Map, key string) (string, error) {
	raw, ok := m.Get(key)
	if !ok {
		return "", structureErrorf("%q is missing", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", structureErrorf("%q must be a string", key)
	}
	if strings.TrimSpace(s) == "" {
		return "", structureErrorf("%q must not be empty", key)
	}
	return s, nil
}

func structureErrorf(format string, args ...any) error {
	return file.NewError(file.KindStructure, "", errors.Errorf(format, args...))
}

// 🧪 Synthesize returns a copy of prod with every local repository required
// at any version and registered as a symlinked path repository.
// Neither input is modified.
func Synthesize(prod, dev *document.Map) (*Result, error) {
	repos, err := ParseDescriptor(dev)
	if err != nil {
		return nil, err
	}

	doc := prod.Clone()
	if doc == nil {
		doc = document.New()
	}

	require, ok := doc.GetMap(KeyRequire)
	if !ok {
		require = document.New()
	}

	repositories, ok := doc.GetSlice(KeyRepositories)
	if !ok {
		repositories = []any{}
	}

	events := make([]Event, 0, len(repos))
	for _, repo := range repos {
		require.Set(repo.PackageName, AnyVersion)

		entry := PathRepository(repo.Path)

		if idx := findRepository(repositories, repo.PackageName); idx >= 0 {
			repositories[idx] = entry
			events = append(events, Event{Action: ActionUpdate, Package: repo.PackageName, Path: repo.Path, Index: idx})
			continue
		}

		repositories = append(repositories, entry)
		events = append(events, Event{Action: ActionAdd, Package: repo.PackageName, Path: repo.Path, Index: len(repositories) - 1})
	}

	doc.Set(KeyRequire, require)
	doc.Set(KeyRepositories, repositories)

	return &Result{Document: doc, Events: events}, nil
}

// PathRepository builds a composer path repository entry.
func PathRepository(path string) *document.Map {
	return document.New().
		Set(repositoryTypeKey, PathRepositoryType).
		Set(repositoryURLKey, path).
		Set(repositoryOptionsKey, document.New().Set(symlinkOption, true))
}

// findRepository returns the index of the first repository whose url
// mentions the package, or -1.
//
// Package names and repository slugs may differ in separator, so the
// name is also tried with underscores turned into hyphens. This is a
// plain substring match and can hit an unrelated repository whose url
// happens to contain the name.
func findRepository(repositories []any, packageName string) int {
	needles := []string{strings.ToLower(packageName)}
	if hyphenated := strings.ReplaceAll(needles[0], "_", "-"); hyphenated != needles[0] {
		needles = append(needles, hyphenated)
	}

	for i, raw := range repositories {
		m, ok := raw.(*document.Map)
		if !ok {
			continue
		}
		url, ok := m.GetString(repositoryURLKey)
		if !ok {
			continue
		}
		url = strings.ToLower(url)
		for _, needle := range needles {
			if strings.Contains(url, needle) {
				return i
			}
		}
	}

	return -1
}
