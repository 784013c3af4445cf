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

const sampleModule = `schema Core {
  object Agent
  object Firm
  subtype Firm < Agent
  relation knows(a: Agent, b: Agent)
}
theory CoreTheory on Core {
  constraint key knows(a)
  constraint functional knows.a -> knows.b
  rewrite swap { vars: X, Y, R; lhs: step(X, R, Y); rhs: inv(step(Y, R, X)); direction: forward }
}
instance CoreV1 of Core {
  Agent = { a0, a1 }
  knows = { (a=a0, b=a1) }
}
`

func TestParseSampleModule(t *testing.T) {
	m, err := Parse(sampleModule)
	require.NoError(t, err)
	require.Len(t, m.Schemas, 1)
	require.Len(t, m.Theories, 1)
	require.Len(t, m.Instances, 1)

	s := m.Schemas[0]
	assert.Equal(t, "Core", s.Name)
	assert.Equal(t, []string{"Agent", "Firm"}, s.Objects)
	require.Len(t, s.Subtypes, 1)
	assert.Equal(t, SubtypeDecl{Sub: "Firm", Super: "Agent"}, s.Subtypes[0])
	require.Len(t, s.Relations, 1)
	assert.Equal(t, "knows", s.Relations[0].Name)
	assert.Equal(t, []string{"a", "b"}, s.Relations[0].FieldOrder())

	th := m.Theories[0]
	assert.Equal(t, "CoreTheory", th.Name)
	assert.Equal(t, "Core", th.On)
	require.Len(t, th.KeyConstraints, 1)
	require.Len(t, th.FunctionalConstraints, 1)
	require.Len(t, th.Rewrites, 1)
	assert.Equal(t, "swap", th.Rewrites[0].Name)

	inst := m.Instances[0]
	assert.Equal(t, []string{"a0", "a1"}, inst.Objects["Agent"])
	require.Len(t, inst.Relations["knows"], 1)
}

func TestRenderParseRoundTrip(t *testing.T) {
	m, err := Parse(sampleModule)
	require.NoError(t, err)

	rendered := Render(m)
	m2, err := Parse(rendered)
	require.NoError(t, err)

	assert.Equal(t, Render(m2), rendered)
}

func TestDigestStableUnderWhitespaceChanges(t *testing.T) {
	compact := `schema S { object O relation r(a: O) }`
	spaced := "schema S {\n  object O\n  relation r(a: O)\n}\n"

	d1, err := Digest(compact)
	require.NoError(t, err)
	d2, err := Digest(spaced)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestParseRejectsSyntaxError(t *testing.T) {
	_, err := Parse("schema S { object }")
	require.Error(t, err)
	assert.True(t, ErrSyntax.Is(err))
}

func TestDigestPrefixed(t *testing.T) {
	d, err := Digest(`schema S { object O }`)
	require.NoError(t, err)
	assert.Regexp(t, `^fnv1a64:[0-9a-f]{16}$`, d)
}
