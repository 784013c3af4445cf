// Copyright 2024 The Axiograph Authors.
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

// Package axpd implements the .axpd binary snapshot codec: a
// length-prefixed, tagged-block encoding of a pathdb.PathDB that is
// bijective with the in-memory model and deterministic for content
// addressing.
package axpd

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrBadMagic is returned when the 4-byte header does not match the
	// expected magic.
	ErrBadMagic = errors.NewKind("axpd: bad magic %q")
	// ErrUnsupportedVersion is returned for a version byte this reader
	// does not know how to decode.
	ErrUnsupportedVersion = errors.NewKind("axpd: unsupported version %d")
	// ErrTruncated is returned when the byte stream ends before a
	// declared block or field is fully present.
	ErrTruncated = errors.NewKind("axpd: truncated input at offset %d")
	// ErrBadLength is returned when a requested read length is negative;
	// a length prefix longer than the remaining input is reported as
	// ErrTruncated.
	ErrBadLength = errors.NewKind("axpd: bad length %d at offset %d")
	// ErrUnknownEntityReference is returned when a relation or
	// equivalence block references an entity id the entity block never
	// declared.
	ErrUnknownEntityReference = errors.NewKind("axpd: relation/equivalence references unknown entity %d")
)
