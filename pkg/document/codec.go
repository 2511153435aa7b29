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

package document

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
	"gitlab.com/tozd/go/errors"
)

// indent matches the layout composer itself writes.
const indent = "    "

var (
	// ErrNotMapping is returned when valid JSON does not hold an object at the top level.
	ErrNotMapping = errors.New("top-level value is not a mapping")

	// ErrUnsupportedValue is returned when a map holds a value the encoder cannot write.
	ErrUnsupportedValue = errors.New("unsupported value type")
)

// 📖 Decode parses a JSON object, keeping key order and number literals
func Decode(data []byte) (*Map, error) {
	in := &jlexer.Lexer{Data: data}

	if in.IsNull() || !in.IsDelim('{') {
		// parse anyway so malformed input is reported as a decode error
		decodeValue(in)
		in.Consumed()
		if err := in.Error(); err != nil {
			return nil, errors.Errorf("decoding JSON: %w", err)
		}
		return nil, errors.WithStack(ErrNotMapping)
	}

	m := decodeMap(in)
	in.Consumed()
	if err := in.Error(); err != nil {
		return nil, errors.Errorf("decoding JSON: %w", err)
	}
	return m, nil
}

func decodeValue(in *jlexer.Lexer) any {
	switch {
	case in.IsNull():
		in.Skip()
		return nil
	case in.IsDelim('{'):
		return decodeMap(in)
	case in.IsDelim('['):
		return decodeSlice(in)
	}

	raw := bytes.TrimSpace(in.Raw())
	if len(raw) == 0 {
		return nil
	}

	switch raw[0] {
	case '"':
		sub := &jlexer.Lexer{Data: raw}
		s := sub.String()
		if err := sub.Error(); err != nil {
			in.AddError(err)
		}
		checkUTF8(in, s)
		return s
	case 't', 'f':
		switch string(raw) {
		case "true":
			return true
		case "false":
			return false
		}
		in.AddError(errors.Errorf("invalid literal %q", raw))
		return nil
	default:
		// json.Valid rejects what the lexer lets through, such as leading zeros
		if !json.Valid(raw) || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
			in.AddError(errors.Errorf("invalid number %q", raw))
		}
		return json.Number(string(raw))
	}
}

// checkUTF8 fails decoding on strings the encoder could not write back unchanged
func checkUTF8(in *jlexer.Lexer, s string) {
	if !utf8.ValidString(s) {
		in.AddError(errors.Errorf("invalid UTF-8 in string %q", s))
	}
}

func decodeMap(in *jlexer.Lexer) *Map {
	m := New()
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.String()
		checkUTF8(in, key)
		in.WantColon()
		m.Set(key, decodeValue(in))
		in.WantComma()
	}
	in.Delim('}')
	return m
}

func decodeSlice(in *jlexer.Lexer) []any {
	out := []any{}
	in.Delim('[')
	for !in.IsDelim(']') {
		out = append(out, decodeValue(in))
		in.WantComma()
	}
	in.Delim(']')
	return out
}

// 📝 Encode writes the map as indented JSON followed by a newline
func Encode(m *Map) ([]byte, error) {
	w := &jwriter.Writer{NoEscapeHTML: true}
	if err := writeMap(w, m); err != nil {
		return nil, err
	}

	compact, err := w.BuildBytes()
	if err != nil {
		return nil, errors.Errorf("building JSON: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", indent); err != nil {
		return nil, errors.Errorf("indenting JSON: %w", err)
	}
	out.WriteByte('\n')

	return out.Bytes(), nil
}

func writeMap(w *jwriter.Writer, m *Map) error {
	w.RawByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(k)
		w.RawByte(':')
		v, _ := m.Get(k)
		if err := writeValue(w, v); err != nil {
			return errors.Errorf("key %q: %w", k, err)
		}
	}
	w.RawByte('}')
	return nil
}

func writeValue(w *jwriter.Writer, v any) error {
	switch t := v.(type) {
	case nil:
		w.RawString("null")
	case string:
		w.String(t)
	case bool:
		w.Bool(t)
	case json.Number:
		if t == "" {
			return errors.Errorf("empty number: %w", ErrUnsupportedValue)
		}
		w.RawString(t.String())
	case int:
		w.Int(t)
	case int64:
		w.Int64(t)
	case float64:
		w.Float64(t)
	case *Map:
		if t == nil {
			w.RawString("null")
			return nil
		}
		return writeMap(w, t)
	case []any:
		w.RawByte('[')
		for i, item := range t {
			if i > 0 {
				w.RawByte(',')
			}
			if err := writeValue(w, item); err != nil {
				return errors.Errorf("index %d: %w", i, err)
			}
		}
		w.RawByte(']')
	default:
		return errors.Errorf("%T: %w", v, ErrUnsupportedValue)
	}
	return nil
}
