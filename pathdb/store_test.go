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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallSnapshot builds the S1 fixture from spec.md §8: three Thing
// entities named a, b, c and two relations.
func smallSnapshot(t *testing.T) *PathDB {
	t.Helper()
	db := New()
	thingType := db.Interner.InternString("Thing")
	nameKey := db.Interner.InternString("name")

	a := db.AddEntity(thingType, map[uint32]uint32{nameKey: db.Interner.InternString("a")})
	b := db.AddEntity(thingType, map[uint32]uint32{nameKey: db.Interner.InternString("b")})
	c := db.AddEntity(thingType, map[uint32]uint32{nameKey: db.Interner.InternString("c")})

	r1 := db.Interner.InternString("r1")
	r2 := db.Interner.InternString("r2")

	_, err := db.AddRelation(r1, a, b, MustVProb(900_000), nil)
	require.NoError(t, err)
	_, err = db.AddRelation(r2, b, c, MustVProb(800_000), nil)
	require.NoError(t, err)

	return db
}

func TestAddEntityAlwaysSucceeds(t *testing.T) {
	db := New()
	typeID := db.Interner.InternString("Thing")
	id := db.AddEntity(typeID, nil)
	assert.Equal(t, EntityID(0), id)
	assert.NotNil(t, db.Entity(id))
}

func TestAddRelationValidatesEndpoints(t *testing.T) {
	db := New()
	typeID := db.Interner.InternString("Thing")
	a := db.AddEntity(typeID, nil)
	relType := db.Interner.InternString("r1")

	_, err := db.AddRelation(relType, a, EntityID(99), Certain, nil)
	require.Error(t, err)
	require.True(t, ErrUnknownEntity.Is(err))
}

func TestAddRelationValidatesConfidence(t *testing.T) {
	db := New()
	typeID := db.Interner.InternString("Thing")
	a := db.AddEntity(typeID, nil)
	b := db.AddEntity(typeID, nil)
	relType := db.Interner.InternString("r1")

	_, err := db.AddRelation(relType, a, b, VProb{numerator: Precision + 1}, nil)
	require.Error(t, err)
	require.True(t, ErrInvalidConfidence.Is(err))
}

func TestIterOrderIsInsertionOrder(t *testing.T) {
	db := smallSnapshot(t)
	thingType := db.Interner.InternString("Thing")

	ids := db.IterEntitiesOfType(thingType)
	require.Len(t, ids, 3)
	assert.Equal(t, []EntityID{0, 1, 2}, ids)
}

func TestReadsOnMissingIDsNeverPanic(t *testing.T) {
	db := New()
	assert.Nil(t, db.Entity(EntityID(123)))
	assert.Nil(t, db.Relation(RelationID(123)))
	assert.Empty(t, db.IterOut(EntityID(123)))
	assert.Empty(t, db.IterIn(EntityID(123)))
	assert.Empty(t, db.IterEntitiesOfType(999))
}

func TestAddEquivalenceIdempotent(t *testing.T) {
	db := New()
	typeID := db.Interner.InternString("Thing")
	a := db.AddEntity(typeID, nil)
	b := db.AddEntity(typeID, nil)
	kind := db.Interner.InternString("same_as")

	require.NoError(t, db.AddEquivalence(a, b, kind))
	require.NoError(t, db.AddEquivalence(b, a, kind))

	assert.Len(t, db.Equivalences(), 1)
}

func TestSubtypeClosureReflexiveTransitive(t *testing.T) {
	db := New()
	agent := db.Interner.InternString("Agent")
	firm := db.Interner.InternString("Firm")
	llc := db.Interner.InternString("LLC")

	db.AddSubtype(firm, agent)
	db.AddSubtype(llc, firm)

	closure := db.SubtypeClosure(agent)
	assert.True(t, closure[agent])
	assert.True(t, closure[firm])
	assert.True(t, closure[llc])
}

func TestSubtypeClosureIgnoresCycles(t *testing.T) {
	db := New()
	x := db.Interner.InternString("X")
	y := db.Interner.InternString("Y")
	db.AddSubtype(y, x)
	db.AddSubtype(x, y)

	closure := db.SubtypeClosure(x)
	assert.True(t, closure[x])
	assert.True(t, closure[y])
}

func TestRelTypeBitmapTracksRelationIDs(t *testing.T) {
	db := smallSnapshot(t)
	r1 := db.Interner.InternString("r1")

	bm := db.RelTypeBitmap(r1)
	require.NotNil(t, bm)
	assert.True(t, bm.Test(0))
	assert.False(t, bm.Test(1))
}
