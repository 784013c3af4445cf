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

// Package axql implements the AxQL query IR, its text parser, the RPQ
// regex-to-NFA compiler, the conjunctive-query planner and executor, and
// witness generation for certificate emission.
package axql

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrParse covers malformed query text.
	ErrParse = errors.NewKind("axql: parse error at %s: %s")

	// ErrUnknownType is returned when a Type atom names a type never
	// interned in the snapshot.
	ErrUnknownType = errors.NewKind("axql: unknown type %q")

	// ErrUnknownRelation is returned when a Path atom's regex references a
	// rel-type label never interned in the snapshot.
	ErrUnknownRelation = errors.NewKind("axql: unknown relation %q")

	// ErrBindingCycle is returned when atom ordering cannot make progress
	// because every remaining atom depends on an unbound variable that no
	// other atom can bind first.
	ErrBindingCycle = errors.NewKind("axql: binding cycle among variables %v")

	// ErrPlanCostExceeded reports a query whose traversal cost exceeds its
	// max_hops bound. The executor does not return it: guided traversal
	// stops expanding a path once it reaches max_hops, and the paths found
	// up to that depth are the result.
	ErrPlanCostExceeded = errors.NewKind("axql: plan cost exceeded (max_hops=%d)")
)
