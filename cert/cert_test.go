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

package cert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephjohncox/axiograph-sub002/axql"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	names := map[string]pathdb.EntityID{"Acme": 0}
	res := &axql.Result{Rows: []axql.Row{{
		Bindings: map[string]pathdb.EntityID{"x": 0},
		Witness:  []axql.AtomWitness{{Type: &axql.TypeWitness{Entity: 0, TypeName: "Agent"}}},
	}}}

	env, err := EmitQueryResultV3([]string{"x"}, res, names, "fnv1a64:deadbeef")
	require.NoError(t, err)
	assert.Equal(t, KindQueryResultV3, env.Kind)
	require.NotNil(t, env.Anchor)
	assert.Equal(t, "fnv1a64:deadbeef", env.Anchor.AxiDigestV1)

	var proof QueryResultProof
	require.NoError(t, env.Decode(&proof))
	require.Len(t, proof.Rows, 1)
	assert.Equal(t, "Acme", proof.Rows[0].Bindings["x"])
	assert.False(t, proof.Truncated)
}

func TestEmitResolutionEnvelope(t *testing.T) {
	env, err := EmitResolutionEnvelope(pathdb.MustVProb(900_000), pathdb.MustVProb(500_000), pathdb.MustVProb(100_000))
	require.NoError(t, err)

	var proof ResolutionProof
	require.NoError(t, env.Decode(&proof))
	assert.Equal(t, pathdb.DecisionAccept, proof.Decision)
}
