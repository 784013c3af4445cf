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

// Package plane implements the snapshot plane: an append-only,
// content-addressed directory store (accepted plane + PathDB WAL overlay)
// with promote/commit/build/sync operations and role-gated admin
// mutations.
package plane

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrNotFound is returned when a snapshot id, module, or blob digest
	// does not resolve to anything on disk.
	ErrNotFound = errors.NewKind("plane: not found: %s")
	// ErrAmbiguousPrefix is returned when a snapshot id prefix matches more
	// than one snapshot.
	ErrAmbiguousPrefix = errors.NewKind("plane: ambiguous snapshot prefix %q matches %v")
	// ErrInvalidModule is returned when promote is given text that fails to
	// parse as a .axi module.
	ErrInvalidModule = errors.NewKind("plane: invalid module: %s")
	// ErrNotMaster is returned when a write operation is attempted by a
	// non-master role or without a valid bearer token.
	ErrNotMaster = errors.NewKind("plane: write operation requires master role: %s")
	// ErrLocked is returned when the HEAD file's exclusive lock is already
	// held by another writer.
	ErrLocked = errors.NewKind("plane: HEAD is locked by a concurrent writer: %s")
	// ErrCannotRebuild is returned when pathdb-build --rebuild is asked to
	// rebuild an accepted snapshot that does not resolve to exactly one
	// module — axi.Import's single-schema, single-instance contract is the
	// natural boundary of what one PathDB snapshot can be built from.
	ErrCannotRebuild = errors.NewKind("plane: cannot rebuild snapshot %q: %s")
)
