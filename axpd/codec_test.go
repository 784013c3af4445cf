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

package axpd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// buildS1 constructs the spec.md §8 S1 fixture: entities {0:Thing/name=a,
// 1:Thing/name=b, 2:Thing/name=c} and relations {(0,r1,1,0.9), (1,r2,2,0.8)}.
func buildS1(t *testing.T) *pathdb.PathDB {
	t.Helper()
	db := pathdb.New()
	thing := db.Interner.InternString("Thing")
	nameKey := db.Interner.InternString("name")

	a := db.AddEntity(thing, map[uint32]uint32{nameKey: db.Interner.InternString("a")})
	b := db.AddEntity(thing, map[uint32]uint32{nameKey: db.Interner.InternString("b")})
	c := db.AddEntity(thing, map[uint32]uint32{nameKey: db.Interner.InternString("c")})

	r1 := db.Interner.InternString("r1")
	r2 := db.Interner.InternString("r2")

	_, err := db.AddRelation(r1, a, b, pathdb.MustVProb(900_000), nil)
	require.NoError(t, err)
	_, err = db.AddRelation(r2, b, c, pathdb.MustVProb(800_000), nil)
	require.NoError(t, err)

	return db
}

func TestWriteReadRoundTrip(t *testing.T) {
	db := buildS1(t)

	encoded, err := Write(db)
	require.NoError(t, err)

	decoded, err := Read(encoded)
	require.NoError(t, err)

	assert.Equal(t, db.EntityCount(), decoded.EntityCount())
	assert.Equal(t, db.RelationCount(), decoded.RelationCount())

	for i := 0; i < db.EntityCount(); i++ {
		want := db.Entity(pathdb.EntityID(i))
		got := decoded.Entity(pathdb.EntityID(i))
		assert.Equal(t, want.TypeID, got.TypeID)
		assert.Equal(t, want.Attrs, got.Attrs)
	}

	for i := 0; i < db.RelationCount(); i++ {
		want := db.Relation(pathdb.RelationID(i))
		got := decoded.Relation(pathdb.RelationID(i))
		assert.Equal(t, want.RelType, got.RelType)
		assert.Equal(t, want.Src, got.Src)
		assert.Equal(t, want.Dst, got.Dst)
		assert.Equal(t, want.Confidence.Numerator(), got.Confidence.Numerator())
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	db := buildS1(t)

	first, err := Write(db)
	require.NoError(t, err)

	decoded, err := Read(first)
	require.NoError(t, err)

	second, err := Write(decoded)
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-writing a round-tripped snapshot must be byte-identical")
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := Read([]byte("nope"))
	require.Error(t, err)
	require.True(t, ErrBadMagic.Is(err))
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	data := append(append([]byte{}, Magic[:]...), 99)
	_, err := Read(data)
	require.Error(t, err)
	require.True(t, ErrUnsupportedVersion.Is(err))
}

func TestReadRejectsTruncated(t *testing.T) {
	db := buildS1(t)
	encoded, err := Write(db)
	require.NoError(t, err)

	_, err = Read(encoded[:len(encoded)-3])
	require.Error(t, err)
}
