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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind classifies a failure. Every kind carries a stable numeric code.
type Kind int

const (
	KindUnknown Kind = iota
	KindDevFileMissing
	KindDecode
	KindSchema
	KindEncode
	KindWrite
	KindDelete
	KindCopy
	KindRead
	KindTimestampUnavailable
	KindInvalidMode
	KindStructure
)

// codeBase is added to the kind to form the public error code.
const codeBase = 182100

// Code returns the stable numeric code, 0 for KindUnknown.
func (k Kind) Code() int {
	if k == KindUnknown {
		return 0
	}
	return codeBase + int(k)
}

func (k Kind) String() string {
	switch k {
	case KindDevFileMissing:
		return "dev file missing"
	case KindDecode:
		return "decode error"
	case KindSchema:
		return "schema error"
	case KindEncode:
		return "encode error"
	case KindWrite:
		return "write error"
	case KindDelete:
		return "delete error"
	case KindCopy:
		return "copy error"
	case KindRead:
		return "read error"
	case KindTimestampUnavailable:
		return "timestamp unavailable"
	case KindInvalidMode:
		return "invalid mode"
	case KindStructure:
		return "structure error"
	default:
		return "unknown error"
	}
}

// ❌ Error is a classified failure about a single path
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s (#%d)", e.Kind, e.Kind.Code())
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a classified error with a stack trace attached.
func NewError(kind Kind, path string, err error) error {
	return errors.WithStack(&Error{Kind: kind, Path: path, Err: err})
}

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// CodeOf returns the numeric code of the first classified error in the chain.
func CodeOf(err error) int {
	return KindOf(err).Code()
}
