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
	"fmt"
	"strings"

	"github.com/josephjohncox/axiograph-sub002/cert"
	"github.com/josephjohncox/axiograph-sub002/pathalg"
)

// checkNormalizePathV2 re-normalizes the claimed input via the free
// groupoid's normal form and requires it to structurally equal the claimed
// normalized expression. When a derivation is attached, it must also
// replay (builtins only — normalize_path_v2 carries no anchor) from input
// to the same normal form.
func checkNormalizePathV2(proof *cert.NormalizePathProof) error {
	input, err := cert.FromPathExprJSON(proof.Input)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	claimed, err := cert.FromPathExprJSON(proof.Normalized)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}

	got := pathalg.Normalize(input)
	if !pathalg.Equal(got, claimed) {
		return ErrSemanticMismatch.New(fmt.Sprintf("recomputed normal form %s does not match claimed %s", got.String(), claimed.String()))
	}

	if len(proof.Derivation) > 0 {
		steps := cert.FromStepsJSON(proof.Derivation)
		if err := requireNoAnchoredRule(steps); err != nil {
			return err
		}
		replayed, err := pathalg.Replay(input, steps, pathalg.NewRegistry[string]())
		if err != nil {
			return ErrSemanticMismatch.New(err.Error())
		}
		if !pathalg.Equal(replayed, claimed) {
			return ErrSemanticMismatch.New(fmt.Sprintf("replayed derivation yields %s, claimed normal form is %s", replayed.String(), claimed.String()))
		}
	}
	return nil
}

// checkRewriteDerivationV2 replays a derivation using only the builtin
// rules — rewrite_derivation_v2 carries no anchor, so any axi-anchored
// rule reference is rejected outright rather than trusted unverified.
func checkRewriteDerivationV2(proof *cert.RewriteDerivationProof) error {
	input, err := cert.FromPathExprJSON(proof.Input)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	claimedOutput, err := cert.FromPathExprJSON(proof.Output)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	steps := cert.FromStepsJSON(proof.Derivation)
	if err := requireNoAnchoredRule(steps); err != nil {
		return err
	}

	replayed, err := pathalg.Replay(input, steps, pathalg.NewRegistry[string]())
	if err != nil {
		return ErrSemanticMismatch.New(err.Error())
	}
	if !pathalg.Equal(replayed, claimedOutput) {
		return ErrSemanticMismatch.New(fmt.Sprintf("replayed derivation yields %s, claimed output is %s", replayed.String(), claimedOutput.String()))
	}
	return nil
}

// checkPathEquivV2 requires each side's derivation (when present) to
// replay to the claimed common normal form, and both sides' normal forms
// under pathalg.Normalize to agree with it — path_equiv_v2 carries no
// anchor, so only builtin rules are trusted.
func checkPathEquivV2(proof *cert.PathEquivProof) error {
	left, err := cert.FromPathExprJSON(proof.Left)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	right, err := cert.FromPathExprJSON(proof.Right)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	normalized, err := cert.FromPathExprJSON(proof.Normalized)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}

	if !pathalg.Equal(pathalg.Normalize(left), normalized) {
		return ErrSemanticMismatch.New("left side's normal form does not match claimed normalized expression")
	}
	if !pathalg.Equal(pathalg.Normalize(right), normalized) {
		return ErrSemanticMismatch.New("right side's normal form does not match claimed normalized expression")
	}

	if err := replayDerivationTo(left, proof.LeftDerivation, normalized); err != nil {
		return err
	}
	if err := replayDerivationTo(right, proof.RightDerivation, normalized); err != nil {
		return err
	}
	return nil
}

func replayDerivationTo(input *pathalg.Expr[string], derivation []cert.DerivationStepJSON, want *pathalg.Expr[string]) error {
	if len(derivation) == 0 {
		return nil
	}
	steps := cert.FromStepsJSON(derivation)
	if err := requireNoAnchoredRule(steps); err != nil {
		return err
	}
	got, err := pathalg.Replay(input, steps, pathalg.NewRegistry[string]())
	if err != nil {
		return ErrSemanticMismatch.New(err.Error())
	}
	if !pathalg.Equal(got, want) {
		return ErrSemanticMismatch.New(fmt.Sprintf("replayed derivation yields %s, expected %s", got.String(), want.String()))
	}
	return nil
}

func requireNoAnchoredRule(steps []pathalg.Step) error {
	for _, st := range steps {
		if strings.HasPrefix(st.Rule, "axi:") {
			return ErrAnchorMissing.New(fmt.Sprintf("rule %q requires an anchor, none was supplied", st.Rule))
		}
	}
	return nil
}
