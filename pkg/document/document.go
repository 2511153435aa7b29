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

// Package document holds the ordered JSON mapping used for composer manifests.
//
// Values stored in a Map are one of: string, json.Number, bool, nil,
// *Map or []any. Key order is the order of first insertion.
package document

import (
	"encoding/json"
)

// 📄 Map is a JSON object that remembers the order of its keys
type Map struct {
	keys   []string
	values map[string]any
}

// 🏭 New creates an empty map
func New() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// ✏️ Set stores a value. Existing keys keep their position, new keys go last.
func (m *Map) Set(key string, value any) *Map {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

func (m *Map) Delete(key string) {
	if !m.Has(key) {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// GetString returns the value at key if it is a string.
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetMap returns the value at key if it is a nested map.
func (m *Map) GetMap(key string) (*Map, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	mm, ok := v.(*Map)
	return mm, ok && mm != nil
}

// GetSlice returns the value at key if it is a sequence.
func (m *Map) GetSlice(key string) ([]any, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// 🧬 Clone returns a deep copy of the map
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := &Map{
		keys:   make([]string, len(m.keys)),
		values: make(map[string]any, len(m.values)),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		// strings, numbers, bools and nil are immutable
		return v
	}
}

// Equal reports whether both maps hold the same keys, order and values.
// A nil map equals an empty one.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	if m == nil || other == nil {
		return true
	}
	for i, k := range m.keys {
		if other.keys[i] != k {
			return false
		}
		if !valueEqual(m.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch ta := a.(type) {
	case *Map:
		tb, ok := b.(*Map)
		return ok && ta.Equal(tb)
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !valueEqual(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case json.Number:
		tb, ok := b.(json.Number)
		return ok && ta == tb
	default:
		return a == b
	}
}
