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
	"strings"

	"github.com/walteh/composer-switch/pkg/file"
	"gitlab.com/tozd/go/errors"
)

// 🔀 Mode is the configuration a project is currently switched to
type Mode int

const (
	ModeInitial Mode = iota // no switch has happened yet
	ModeDev                 // local path repositories
	ModeProd                // registry dependencies
)

func (m Mode) String() string {
	switch m {
	case ModeDev:
		return "dev"
	case ModeProd:
		return "prod"
	default:
		return "initial"
	}
}

// Marker is the upper-case name written to flag files and headers.
func (m Mode) Marker() string {
	return strings.ToUpper(m.String())
}

// ParseMode accepts "dev" or "prod" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	default:
		return ModeInitial, file.NewError(file.KindInvalidMode, "", errors.Errorf("unknown mode %q, expected dev or prod", s))
	}
}
