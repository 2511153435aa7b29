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

// Package drift shows how the live manifest differs from its production backup.
package drift

import (
	"context"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"github.com/walteh/composer-switch/pkg/file"
	"gitlab.com/tozd/go/errors"
)

// DefaultContext is the number of unchanged lines around each hunk.
const DefaultContext = 3

// 📊 Report is a unified diff between two files
type Report struct {
	From        string
	To          string
	FromMissing bool
	ToMissing   bool
	Diff        string // empty when both sides match
}

// Equal reports whether both sides have the same content.
func (r *Report) Equal() bool {
	return r.Diff == ""
}

// 🔍 Compare diffs from against to. A missing side counts as empty.
func Compare(ctx context.Context, from, to *file.File, contextLines int) (*Report, error) {
	if contextLines <= 0 {
		contextLines = DefaultContext
	}

	report := &Report{From: from.Path(), To: to.Path()}

	a, missing, err := readSide(from)
	if err != nil {
		return nil, err
	}
	report.FromMissing = missing

	b, missing, err := readSide(to)
	if err != nil {
		return nil, err
	}
	report.ToMissing = missing

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: from.BaseName(),
		ToFile:   to.BaseName(),
		Context:  contextLines,
	})
	if err != nil {
		return nil, errors.Errorf("building diff: %w", err)
	}
	report.Diff = diff

	zerolog.Ctx(ctx).Debug().
		Str("from", report.From).
		Str("to", report.To).
		Bool("equal", report.Equal()).
		Msg("compared files")

	return report, nil
}

func readSide(f *file.File) (string, bool, error) {
	if !f.Exists() {
		return "", true, nil
	}
	data, err := f.Content()
	if err != nil {
		return "", false, err
	}
	return string(data), false, nil
}
