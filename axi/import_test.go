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

package axi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// agentFirmModule reproduces spec.md §8 S2: subtype Firm < Agent, with an
// entity named Acme of type Firm connected to Bob by "knows".
const agentFirmModule = `schema Core {
  object Agent
  object Firm
  subtype Firm < Agent
  relation knows(a: Agent, b: Agent)
}
instance CoreV1 of Core {
  Agent = { Bob }
  Firm = { Acme }
  knows = { (a=Acme, b=Bob) }
}
`

func TestImportBinaryRelationAndSubtype(t *testing.T) {
	m, err := Parse(agentFirmModule)
	require.NoError(t, err)

	db, names, err := Import(m)
	require.NoError(t, err)

	acme, ok := names["Acme"]
	require.True(t, ok)
	bob, ok := names["Bob"]
	require.True(t, ok)

	firmID, ok := db.Interner.Find("Firm")
	require.True(t, ok)
	agentID, ok := db.Interner.Find("Agent")
	require.True(t, ok)

	closure := db.SubtypeClosure(agentID)
	assert.True(t, closure[firmID])

	out := db.IterOut(acme)
	require.Len(t, out, 1)
	rel := db.Relation(out[0])
	assert.Equal(t, bob, rel.Dst)
}

func TestImportReifiesNonBinaryRelation(t *testing.T) {
	src := `schema S {
  object O
  relation triple(a: O, b: O, c: O)
}
instance I of S {
  O = { x, y, z }
  triple = { (a=x, b=y, c=z) }
}
`
	m, err := Parse(src)
	require.NoError(t, err)

	db, names, err := Import(m)
	require.NoError(t, err)

	x := names["x"]
	out := db.IterOut(x)
	assert.Empty(t, out, "x is only ever a field value here, not a fact entity")
	assert.Equal(t, 4, db.EntityCount(), "3 objects + 1 reified fact entity")
}
