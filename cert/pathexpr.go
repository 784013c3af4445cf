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
	"fmt"

	"github.com/josephjohncox/axiograph-sub002/pathalg"
)

// PathExprJSON is the wire shape of a pathalg.Expr[string]: a recursive
// {type: reflexive|step|trans|inv, ...} object, per spec.md §6's
// certificate envelope contract.
type PathExprJSON struct {
	Type        string        `json:"type"`
	Obj         string        `json:"obj,omitempty"`
	Rel         string        `json:"rel,omitempty"`
	Dst         string        `json:"dst,omitempty"`
	Left        *PathExprJSON `json:"left,omitempty"`
	Right       *PathExprJSON `json:"right,omitempty"`
	Inner       *PathExprJSON `json:"inner,omitempty"`
}

// ToPathExprJSON renders e in the wire shape.
func ToPathExprJSON(e *pathalg.Expr[string]) *PathExprJSON {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case pathalg.KindRefl:
		return &PathExprJSON{Type: "reflexive", Obj: e.Obj}
	case pathalg.KindStep:
		return &PathExprJSON{Type: "step", Obj: e.Obj, Rel: e.Rel, Dst: e.Dst}
	case pathalg.KindTrans:
		return &PathExprJSON{Type: "trans", Left: ToPathExprJSON(e.Left), Right: ToPathExprJSON(e.Right)}
	case pathalg.KindInv:
		return &PathExprJSON{Type: "inv", Inner: ToPathExprJSON(e.Inner)}
	}
	panic(fmt.Sprintf("cert: unhandled path expr kind %v", e.Kind))
}

// FromPathExprJSON parses the wire shape back into a pathalg.Expr[string],
// for checker-side replay.
func FromPathExprJSON(j *PathExprJSON) (*pathalg.Expr[string], error) {
	if j == nil {
		return nil, ErrMalformedProof.New("nil path expression")
	}
	switch j.Type {
	case "reflexive":
		return pathalg.Refl(j.Obj), nil
	case "step":
		return pathalg.Step(j.Obj, j.Rel, j.Dst), nil
	case "trans":
		left, err := FromPathExprJSON(j.Left)
		if err != nil {
			return nil, err
		}
		right, err := FromPathExprJSON(j.Right)
		if err != nil {
			return nil, err
		}
		return pathalg.Trans(left, right), nil
	case "inv":
		inner, err := FromPathExprJSON(j.Inner)
		if err != nil {
			return nil, err
		}
		return pathalg.Inv(inner), nil
	}
	return nil, ErrMalformedProof.New(fmt.Sprintf("unknown path expression type %q", j.Type))
}

// DerivationStepJSON is the wire shape of a pathalg.Step.
type DerivationStepJSON struct {
	Position []int  `json:"position"`
	Rule     string `json:"rule"`
}

// NormalizePathProof is the proof payload for normalize_path_v2: the input
// expression, its free-groupoid normal form, and optionally the explicit
// derivation connecting them.
type NormalizePathProof struct {
	Input      *PathExprJSON        `json:"input"`
	Normalized *PathExprJSON        `json:"normalized"`
	Derivation []DerivationStepJSON `json:"derivation,omitempty"`
}

// RewriteDerivationProof is the proof payload for rewrite_derivation_v2/v3:
// an input expression, the claimed output, and the derivation connecting
// them.
type RewriteDerivationProof struct {
	Input      *PathExprJSON        `json:"input"`
	Output     *PathExprJSON        `json:"output"`
	Derivation []DerivationStepJSON `json:"derivation"`
}

// PathEquivProof is the proof payload for path_equiv_v2: two expressions
// claimed to share a normal form, with optional derivations justifying
// each side's reduction to it.
type PathEquivProof struct {
	Left                *PathExprJSON        `json:"left"`
	Right               *PathExprJSON        `json:"right"`
	Normalized          *PathExprJSON        `json:"normalized"`
	LeftDerivation  []DerivationStepJSON `json:"left_derivation,omitempty"`
	RightDerivation []DerivationStepJSON `json:"right_derivation,omitempty"`
}

func toStepsJSON(steps []pathalg.Step) []DerivationStepJSON {
	out := make([]DerivationStepJSON, len(steps))
	for i, s := range steps {
		out[i] = DerivationStepJSON{Position: []int(s.Position), Rule: s.Rule}
	}
	return out
}

// FromStepsJSON converts a derivation's wire shape back into pathalg.Step
// values, for checker-side replay.
func FromStepsJSON(steps []DerivationStepJSON) []pathalg.Step {
	out := make([]pathalg.Step, len(steps))
	for i, s := range steps {
		out[i] = pathalg.Step{Position: pathalg.Position(s.Position), Rule: s.Rule}
	}
	return out
}

// EmitNormalizePath normalizes input and records the result. It never
// invents a derivation: callers that tracked one while normalizing should
// set Derivation separately.
func EmitNormalizePath(input *pathalg.Expr[string]) NormalizePathProof {
	return NormalizePathProof{
		Input:      ToPathExprJSON(input),
		Normalized: ToPathExprJSON(pathalg.Normalize(input)),
	}
}

// EmitRewriteDerivation records a derivation already applied via
// pathalg.Replay, pairing it with its input and resulting output.
func EmitRewriteDerivation(input, output *pathalg.Expr[string], steps []pathalg.Step) RewriteDerivationProof {
	return RewriteDerivationProof{
		Input:      ToPathExprJSON(input),
		Output:     ToPathExprJSON(output),
		Derivation: toStepsJSON(steps),
	}
}
