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

package axql

import "github.com/josephjohncox/axiograph-sub002/pathdb"

// TypeWitness records that entity's type lies in the subtype closure of
// TypeName (possibly entity's own declared type).
type TypeWitness struct {
	Entity   pathdb.EntityID
	TypeName string
}

// AttrWitness records a stored attribute equality.
type AttrWitness struct {
	Entity pathdb.EntityID
	Key    string
	Value  string
}

// StepWitness is one edge of a path witness chain.
type StepWitness struct {
	Src, Dst   pathdb.EntityID
	Rel        string
	Confidence pathdb.VProb
	AxiFactID  string
}

// PathWitness is either reflexive (left == right, zero steps) or a chain
// of StepWitness entries whose label sequence the RPQ's NFA accepts.
// Regex carries the RPQ's surface syntax so a witness can be independently
// re-checked for language membership without the original Query IR.
type PathWitness struct {
	Reflexive bool
	Entity    pathdb.EntityID // valid iff Reflexive
	Steps     []StepWitness
	Regex     string
}

// AtomWitness is the per-atom witness attached to one result row; exactly
// one of its fields is populated, mirroring the Atom sum type.
type AtomWitness struct {
	Type *TypeWitness
	Attr *AttrWitness
	Path *PathWitness
}

// Row is one query result: a binding of every selected variable to an
// entity id, plus the witnesses justifying every atom in the disjunct that
// produced it.
type Row struct {
	Bindings map[string]pathdb.EntityID
	Witness  []AtomWitness
}

// Result is the full (possibly truncated) output of executing a Query.
type Result struct {
	Rows      []Row
	Truncated bool
}
