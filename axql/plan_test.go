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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

func TestPlanDisjunctOrdersTypeAtomBeforeDependentPathAtom(t *testing.T) {
	db := pathdb.New()
	agent := db.Interner.InternString("Agent")
	a := db.AddEntity(agent, nil)
	b := db.AddEntity(agent, nil)
	rel := db.Interner.InternString("knows")
	_, err := db.AddRelation(rel, a, b, pathdb.Certain, nil)
	require.NoError(t, err)

	d := Disjunct{Atoms: []Atom{
		PathAtom{Left: Var("x"), Right: Var("y"), Regex: Rel("knows")},
		TypeAtom{Term: Var("x"), TypeName: "Agent"},
	}}

	plan, err := planDisjunct(d, db, nil)
	require.NoError(t, err)
	require.Len(t, plan, 2)
	_, isType := plan[0].Atom.(TypeAtom)
	assert.True(t, isType, "type atom must be scheduled first since the path atom's left term starts unbound")
}

func TestPlanDisjunctRejectsUnanchorableRightOnlyPathAtom(t *testing.T) {
	db := pathdb.New()
	d := Disjunct{Atoms: []Atom{
		PathAtom{Left: Var("x"), Right: Var("y"), Regex: Rel("knows")},
	}}
	_, err := planDisjunct(d, db, nil)
	assert.True(t, ErrBindingCycle.Is(err), "a path atom whose left term can never be bound must report a binding cycle, not silently traverse backward")
}

func TestPlanDisjunctAnchoredPathAtomIsCheap(t *testing.T) {
	db := pathdb.New()
	d := Disjunct{Atoms: []Atom{
		PathAtom{Left: Const("acme"), Right: Const("bob"), Regex: Rel("knows")},
	}}
	plan, err := planDisjunct(d, db, nil)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, 1, plan[0].Cost)
}
