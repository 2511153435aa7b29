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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent    = 4  // spaces to indent file entries
	labelWidth    = 12 // width for the file label
	nameWidth     = 28 // width for the file name
	checksumWidth = 12 // shown prefix of the checksum
)

// 🎯 FormatFileInfo formats one inspected file for display
func FormatFileInfo(info FileInfo) string {
	var prefix, detail string
	if info.Exists {
		prefix = color.GreenString("✓")
		sum := info.Checksum
		if len(sum) > checksumWidth {
			sum = sum[:checksumWidth]
		}
		detail = fmt.Sprintf("%s %8d bytes  %s",
			color.HiBlackString(sum),
			info.Size,
			info.ModTime.Format(DateLayout))
	} else {
		prefix = color.RedString("✗")
		detail = color.HiBlackString("missing")
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		fmt.Sprintf("%-*s", labelWidth, info.Label),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(info.Path)),
		detail,
	)
}

// FormatMode renders a mode with its color.
func FormatMode(m Mode) string {
	switch m {
	case ModeDev:
		return color.YellowString(m.Marker())
	case ModeProd:
		return color.GreenString(m.Marker())
	default:
		return color.HiBlackString("none (no switch yet)")
	}
}
