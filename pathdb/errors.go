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

package pathdb

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrUnknownID is returned by Interner.Lookup for an id outside the
	// dense allocated range.
	ErrUnknownID = errors.NewKind("pathdb: unknown interned id %d")

	// ErrUnknownEntity is returned when a relation or equivalence
	// references an entity id that does not exist in the store.
	ErrUnknownEntity = errors.NewKind("pathdb: unknown entity %d")

	// ErrInvalidConfidence is returned when a relation's confidence falls
	// outside [0, Precision].
	ErrInvalidConfidence = errors.NewKind("pathdb: confidence %d out of range [0, %d]")

	// ErrUnknownType reports a type name that was never declared as an
	// object or subtype. SubtypeClosure does not return it: it takes an
	// interned id and yields at least that id itself.
	ErrUnknownType = errors.NewKind("pathdb: unknown type %q")
)
