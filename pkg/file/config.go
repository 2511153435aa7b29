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

package file

import (
	"bytes"
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/composer-switch/pkg/document"
	"gitlab.com/tozd/go/errors"
)

// ⚙️ ConfigFile is a File holding a JSON document
type ConfigFile struct {
	*File
}

func NewConfigFile(path string) *ConfigFile {
	return &ConfigFile{File: New(path)}
}

// 📖 Load reads and decodes the document
func (c *ConfigFile) Load(ctx context.Context) (*document.Map, error) {
	zerolog.Ctx(ctx).Debug().Str("path", c.path).Msg("loading document")

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, NewError(KindRead, c.path, err)
	}

	return c.decode(data)
}

// LoadOptional is Load, except a missing or blank file yields an empty document.
func (c *ConfigFile) LoadOptional(ctx context.Context) (*document.Map, error) {
	if !c.Exists() {
		zerolog.Ctx(ctx).Debug().Str("path", c.path).Msg("document does not exist, using empty")
		return document.New(), nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, NewError(KindRead, c.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return document.New(), nil
	}

	return c.decode(data)
}

func (c *ConfigFile) decode(data []byte) (*document.Map, error) {
	doc, err := document.Decode(data)
	if err != nil {
		if errors.Is(err, document.ErrNotMapping) {
			return nil, NewError(KindSchema, c.path, err)
		}
		return nil, NewError(KindDecode, c.path, err)
	}
	return doc, nil
}

// 💾 Save encodes the document and replaces the file atomically
func (c *ConfigFile) Save(ctx context.Context, doc *document.Map) error {
	zerolog.Ctx(ctx).Debug().Str("path", c.path).Int("keys", doc.Len()).Msg("saving document")

	data, err := document.Encode(doc)
	if err != nil {
		return NewError(KindEncode, c.path, err)
	}

	if err := writeFileAtomic(c.path, data); err != nil {
		return NewError(KindWrite, c.path, err)
	}

	return nil
}
