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

package switcher

import (
	"fmt"
	"strings"

	"github.com/walteh/composer-switch/pkg/log"
)

// 📒 journal records the mutating steps of a single switch call
type journal struct {
	applied []string
}

func describe(op log.FileOperation) string {
	if op.Source != "" {
		return fmt.Sprintf("%s %s %s <- %s", op.Action, op.Kind, op.Target, op.Source)
	}
	return fmt.Sprintf("%s %s %s", op.Action, op.Kind, op.Target)
}

func (j *journal) record(step string) {
	j.applied = append(j.applied, step)
}

func (j *journal) snapshot() []string {
	out := make([]string, len(j.applied))
	copy(out, j.applied)
	return out
}

// ❌ AbortError is returned when a switch stops part way through.
// Steps in Applied were not rolled back and the status record still
// names the previous mode.
type AbortError struct {
	Step    string
	Applied []string
	Err     error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("switch aborted at %q: %v", e.Step, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// RecoveryHint tells the user what is left on disk.
func (e *AbortError) RecoveryHint() string {
	if len(e.Applied) == 0 {
		return "no files were changed, fix the problem and run the switch again"
	}

	var b strings.Builder
	b.WriteString("the status record was not updated, but these steps were already applied:\n")
	for _, step := range e.Applied {
		b.WriteString("  - ")
		b.WriteString(step)
		b.WriteString("\n")
	}
	b.WriteString("fix the problem and run the switch again, or restore the files from the production backup")
	return b.String()
}
