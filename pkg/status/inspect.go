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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏷️ Tracked is a labelled path to inspect
type Tracked struct {
	Label string
	Path  string
}

// 📄 FileInfo contains metadata about a tracked file
type FileInfo struct {
	Label    string
	Path     string
	Exists   bool
	Size     int64
	ModTime  time.Time
	Checksum string // SHA-256 of the content, empty when missing
}

// 🔍 Inspect stats and hashes every tracked file. Results keep the input order.
func Inspect(ctx context.Context, tracked []Tracked) ([]FileInfo, error) {
	infos := make([]FileInfo, len(tracked))

	g, ctx := errgroup.WithContext(ctx)
	for i, t := range tracked {
		g.Go(func() error {
			info, err := inspectFile(ctx, t)
			if err != nil {
				return errors.Errorf("inspecting %s: %w", t.Label, err)
			}
			infos[i] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return infos, nil
}

func inspectFile(ctx context.Context, t Tracked) (FileInfo, error) {
	info := FileInfo{Label: t.Label, Path: t.Path}

	if err := ctx.Err(); err != nil {
		return info, err
	}

	stat, err := os.Stat(t.Path)
	if os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", t.Path).Msg("tracked file missing")
		return info, nil
	}
	if err != nil {
		return info, errors.Errorf("checking file existence: %w", err)
	}

	content, err := os.ReadFile(t.Path)
	if err != nil {
		return info, errors.Errorf("reading file: %w", err)
	}

	info.Exists = true
	info.Size = stat.Size()
	info.ModTime = stat.ModTime()
	info.Checksum = calculateChecksum(content)

	return info, nil
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
