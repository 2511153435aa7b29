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
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/composer-switch/pkg/document"
	"github.com/walteh/composer-switch/pkg/file"
	"gitlab.com/tozd/go/errors"
)

// Record keys, as written to disk.
const (
	KeyMode     = "mode"
	KeyDate     = "date"
	KeyMainFile = "mainFile"
	KeyProdFile = "prodFile"
	KeyDevFile  = "devFile"
)

const (
	// Extension replaces the dev descriptor extension to form the status path.
	Extension = ".status"

	// DateLayout is the human-readable timestamp stored in the record.
	DateLayout = "2006-01-02 15:04:05"
)

// 📦 FileSet names the three manifests a switch works on
type FileSet struct {
	Main string
	Prod string
	Dev  string
}

// 📊 Record is the persisted switch status
type Record struct {
	Mode     Mode
	Date     string
	MainFile string
	ProdFile string
	DevFile  string
}

// Time parses Date in the local time zone.
func (r Record) Time() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, r.Date, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// 💾 Store persists the status record next to the dev descriptor
type Store struct {
	file *file.ConfigFile
	now  func() time.Time
}

// PathFor derives the status path from the dev descriptor path:
// composer/dev-config.json -> composer/dev-config.status
func PathFor(devPath string) string {
	return file.SwapExtension(devPath, Extension)
}

// 🏭 NewStore creates a store for the record at path
func NewStore(path string) *Store {
	return &Store{
		file: file.NewConfigFile(path),
		now:  time.Now,
	}
}

func (s *Store) Path() string {
	return s.file.Path()
}

func (s *Store) Exists() bool {
	return s.file.Exists()
}

// 📖 Load reads the record. A missing or blank file is an empty record.
func (s *Store) Load(ctx context.Context) (Record, error) {
	doc, err := s.file.LoadOptional(ctx)
	if err != nil {
		return Record{}, errors.Errorf("loading status: %w", err)
	}

	var rec Record
	rec.Date, _ = doc.GetString(KeyDate)
	rec.MainFile, _ = doc.GetString(KeyMainFile)
	rec.ProdFile, _ = doc.GetString(KeyProdFile)
	rec.DevFile, _ = doc.GetString(KeyDevFile)

	if raw, ok := doc.Get(KeyMode); ok && raw != nil {
		str, isString := raw.(string)
		if !isString {
			return Record{}, file.NewError(file.KindSchema, s.Path(), errors.Errorf("%s must be a string", KeyMode))
		}
		// blank means no switch was recorded
		if strings.TrimSpace(str) != "" {
			mode, err := ParseMode(str)
			if err != nil {
				return Record{}, errors.Errorf("status %s: %w", s.Path(), err)
			}
			rec.Mode = mode
		}
	}

	return rec, nil
}

// Mode returns the current mode, ModeInitial when nothing was recorded yet.
func (s *Store) Mode(ctx context.Context) (Mode, error) {
	rec, err := s.Load(ctx)
	if err != nil {
		return ModeInitial, err
	}
	return rec.Mode, nil
}

// ✍️ SaveState overwrites the record with mode, the current time and the tracked paths
func (s *Store) SaveState(ctx context.Context, mode Mode, files FileSet) error {
	if mode == ModeInitial {
		return file.NewError(file.KindInvalidMode, s.Path(), errors.New("cannot record the initial mode"))
	}

	doc := document.New().
		Set(KeyMode, mode.String()).
		Set(KeyDate, s.now().Format(DateLayout)).
		Set(KeyMainFile, files.Main).
		Set(KeyProdFile, files.Prod).
		Set(KeyDevFile, files.Dev)

	zerolog.Ctx(ctx).Debug().Str("mode", mode.String()).Str("path", s.Path()).Msg("saving status")

	if err := s.file.Save(ctx, doc); err != nil {
		return errors.Errorf("saving status: %w", err)
	}

	return nil
}
