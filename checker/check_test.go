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

package checker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/axql"
	"github.com/josephjohncox/axiograph-sub002/cert"
	"github.com/josephjohncox/axiograph-sub002/pathalg"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// chainModule reproduces spec.md §8 S3: a three-node chain A -r1-> B
// -r1-> C over object type Node.
const chainModule = `schema Chain {
  object Node
  relation r1(a: Node, b: Node)
}
instance ChainV1 of Chain {
  Node = { A, B, C }
  r1 = { (a=A, b=B), (a=B, b=C) }
}
`

func mustParse(t *testing.T, src string) *axi.Module {
	t.Helper()
	m, err := axi.Parse(src)
	require.NoError(t, err)
	return m
}

func TestCheckReachabilityHappyPath(t *testing.T) {
	m := mustParse(t, chainModule)
	digest := axi.ModuleDigest(m)
	db, names, err := axi.Import(m)
	require.NoError(t, err)

	relAB, _ := findEdge(db, names["A"], names["B"], "r1")
	relBC, _ := findEdge(db, names["B"], names["C"], "r1")

	proof := cert.ReachabilityProof{
		Src: "A", Dst: "C",
		Steps: []cert.ReachabilityStep{
			{Src: "A", Dst: "B", Rel: "r1", ConfFP: relAB.Confidence.Numerator(), AxiFactID: axi.RelationFactID(relAB, "r1")},
			{Src: "B", Dst: "C", Rel: "r1", ConfFP: relBC.Confidence.Numerator(), AxiFactID: axi.RelationFactID(relBC, "r1")},
		},
	}
	proof.ComposedConfFP = cert.ComposedConfidence(proof.Steps).Numerator()

	env, err := cert.Encode(cert.KindReachabilityV2, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, "%v", results[0].Err)
}

func TestCheckReachabilityRejectsMutatedConfidence(t *testing.T) {
	m := mustParse(t, chainModule)
	digest := axi.ModuleDigest(m)
	db, names, err := axi.Import(m)
	require.NoError(t, err)

	relAB, _ := findEdge(db, names["A"], names["B"], "r1")
	relBC, _ := findEdge(db, names["B"], names["C"], "r1")

	proof := cert.ReachabilityProof{
		Src: "A", Dst: "C",
		Steps: []cert.ReachabilityStep{
			{Src: "A", Dst: "B", Rel: "r1", ConfFP: relAB.Confidence.Numerator(), AxiFactID: axi.RelationFactID(relAB, "r1")},
			{Src: "B", Dst: "C", Rel: "r1", ConfFP: relBC.Confidence.Numerator() - 1, AxiFactID: axi.RelationFactID(relBC, "r1")},
		},
		ComposedConfFP: relAB.Confidence.Numerator(),
	}

	env, err := cert.Encode(cert.KindReachabilityV2, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.True(t, ErrSemanticMismatch.Is(results[0].Err))
}

// TestCheckAnchorMissingSkipsVerification reproduces spec.md §8 S5: an
// anchored certificate referencing a digest no loaded module matches fails
// with AnchorMissing without the checker ever inspecting a row.
func TestCheckAnchorMissingSkipsVerification(t *testing.T) {
	m := mustParse(t, chainModule)

	env, err := cert.Encode(cert.KindReachabilityV2, &cert.Anchor{AxiDigestV1: "fnv1a64:0000000000000000"}, cert.ReachabilityProof{Src: "A", Dst: "C"})
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.True(t, ErrAnchorMissing.Is(results[0].Err))
}

func TestCheckQueryResultV3HappyPath(t *testing.T) {
	m := mustParse(t, chainModule)
	digest := axi.ModuleDigest(m)
	db, names, err := axi.Import(m)
	require.NoError(t, err)

	ex := axql.NewExecutor(db, map[string]pathdb.EntityID{"A": names["A"]})
	q := &axql.Query{
		Vars: []string{"y"},
		Disjuncts: []axql.Disjunct{{Atoms: []axql.Atom{
			axql.PathAtom{Left: axql.Const("A"), Right: axql.Var("y"), Regex: axql.Star(axql.Rel("r1"))},
		}}},
	}
	res, err := ex.Execute(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)

	env, err := cert.EmitQueryResultV3(q.Vars, res, names, digest)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, "%v", results[0].Err)
}

func TestCheckQueryResultV3RejectsTamperedRegex(t *testing.T) {
	m := mustParse(t, chainModule)
	digest := axi.ModuleDigest(m)
	db, names, err := axi.Import(m)
	require.NoError(t, err)

	ex := axql.NewExecutor(db, map[string]pathdb.EntityID{"A": names["A"]})
	q := &axql.Query{
		Vars: []string{"y"},
		Disjuncts: []axql.Disjunct{{Atoms: []axql.Atom{
			axql.PathAtom{Left: axql.Const("A"), Right: axql.Var("y"), Regex: axql.Star(axql.Rel("r1"))},
		}}},
	}
	res, err := ex.Execute(context.Background(), q)
	require.NoError(t, err)

	for i, row := range res.Rows {
		for j, w := range row.Witness {
			if w.Path != nil && len(w.Path.Steps) == 2 {
				res.Rows[i].Witness[j].Path.Regex = "r2*"
			}
		}
	}

	env, err := cert.EmitQueryResultV3(q.Vars, res, names, digest)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.True(t, ErrSemanticMismatch.Is(results[0].Err))
}

// TestCheckRewriteDerivationV3ReplaysAnchoredRule reproduces spec.md §8 S4
// with an axi-anchored rule in play: the derivation replays cleanly and the
// claimed output matches.
func TestCheckRewriteDerivationV3ReplaysAnchoredRule(t *testing.T) {
	src := `schema T {
  object O
  relation r(a: O, b: O)
}
theory Th on T {
  rewrite swap { vars: X, Y; lhs: step(X, r, Y); rhs: inv(step(Y, r, X)); direction: forward }
}
instance TV1 of T {
  O = { a, b }
  r = { (a=a, b=b) }
}
`
	m := mustParse(t, src)
	digest := axi.ModuleDigest(m)

	ruleRef := "axi:" + digest + ":Th:swap"
	input := pathalg.Step("a", "r", "b")
	output := pathalg.Inv(pathalg.Step("b", "r", "a"))

	proof := cert.EmitRewriteDerivation(input, output, []pathalg.Step{{Rule: ruleRef}})
	env, err := cert.Encode(cert.KindRewriteDerivationV3, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, "%v", results[0].Err)
}

// TestCheckRewriteDerivationV3RejectsMutatedEndpoints reproduces spec.md
// §8 S4's negative case: a derivation claiming an output with different
// endpoints than the input is rejected as a semantic mismatch.
func TestCheckRewriteDerivationV3RejectsMutatedEndpoints(t *testing.T) {
	input := pathalg.Trans(pathalg.Refl("a"), pathalg.Step("a", "r", "b"))
	claimedOutput := pathalg.Step("x", "r", "y") // endpoints don't match input at all

	proof := cert.EmitRewriteDerivation(input, claimedOutput, []pathalg.Step{
		{Position: nil, Rule: pathalg.BuiltinRef(pathalg.TagIDLeft)},
	})

	m := mustParse(t, chainModule)
	digest := axi.ModuleDigest(m)
	env, err := cert.Encode(cert.KindRewriteDerivationV3, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.True(t, ErrSemanticMismatch.Is(results[0].Err))
}

func TestCheckResolution(t *testing.T) {
	proof := cert.EmitResolution(pathdb.MustVProb(900_000), pathdb.MustVProb(500_000), pathdb.MustVProb(100_000))
	env, err := cert.Encode(cert.KindResolutionV2, nil, proof)
	require.NoError(t, err)

	results, err := Check(nil, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, "%v", results[0].Err)
}

func TestCheckResolutionRejectsWrongDecision(t *testing.T) {
	proof := cert.EmitResolution(pathdb.MustVProb(900_000), pathdb.MustVProb(500_000), pathdb.MustVProb(100_000))
	proof.Decision = pathdb.DecisionReject

	env, err := cert.Encode(cert.KindResolutionV2, nil, proof)
	require.NoError(t, err)

	results, err := Check(nil, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.True(t, ErrSemanticMismatch.Is(results[0].Err))
}

func TestCheckAxiWellTyped(t *testing.T) {
	m := mustParse(t, chainModule)
	digest := axi.ModuleDigest(m)
	proof := cert.EmitAxiWellTyped(m)

	env, err := cert.Encode(cert.KindAxiWellTypedV1, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, "%v", results[0].Err)
}

func TestCheckAxiConstraintsOk(t *testing.T) {
	src := `schema T {
  object O
  relation r(a: O, b: O)
}
theory Th on T {
  constraint key r(a)
}
instance TV1 of T {
  O = { a, b, c }
  r = { (a=a, b=b), (a=c, b=b) }
}
`
	m := mustParse(t, src)
	digest := axi.ModuleDigest(m)
	proof := cert.EmitAxiConstraintsOk(1, 0, 2)

	env, err := cert.Encode(cert.KindAxiConstraintsOkV1, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, "%v", results[0].Err)
}

func TestCheckAxiConstraintsOkRejectsViolatedKey(t *testing.T) {
	src := `schema T {
  object O
  relation r(a: O, b: O)
}
theory Th on T {
  constraint key r(a)
}
instance TV1 of T {
  O = { a, b, c }
  r = { (a=a, b=b), (a=a, b=c) }
}
`
	m := mustParse(t, src)
	digest := axi.ModuleDigest(m)
	proof := cert.EmitAxiConstraintsOk(1, 0, 2)

	env, err := cert.Encode(cert.KindAxiConstraintsOkV1, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.True(t, ErrSemanticMismatch.Is(results[0].Err))
}

func TestCheckDeltaF(t *testing.T) {
	src := `schema Family {
  object Person
  relation parent(child: Person, mother: Person)
}
schema Ancestry {
  object Person
  relation grandparent(descendant: Person, ancestor: Person)
}
instance FamilyV1 of Family {
  Person = { a, b, c }
  parent = { (child=a, mother=b), (child=b, mother=c) }
}
`
	m := mustParse(t, src)
	digest := axi.ModuleDigest(m)

	proof := cert.DeltaFProof{
		SourceSchema: "Family",
		TargetSchema: "Ancestry",
		ObjectImage:  map[string]string{"Person": "Person"},
		ArrowImage:   map[string][]string{"grandparent": {"parent", "parent"}},
		Result:       map[string][][2]string{"grandparent": {{"a", "c"}}},
	}

	env, err := cert.Encode(cert.KindDeltaFV1, &cert.Anchor{AxiDigestV1: digest}, proof)
	require.NoError(t, err)

	results, err := Check([]*axi.Module{m}, []*cert.Envelope{env})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, "%v", results[0].Err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode([]Result{{OK: true}, {OK: true}}))
	assert.Equal(t, 1, ExitCode([]Result{{OK: true}, {OK: false}}))
}
