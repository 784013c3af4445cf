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

	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/cert"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// checkReachability re-verifies an anchored reachability_v2 certificate:
// every step's (src, rel, dst, confidence) must equal the values the
// snapshot's relation_info extraction carries for its relation_id, the
// chain must be continuous, and the composed fixed-point confidence must
// match the claimed one.
func checkReachability(idx *anchorIndex, proof *cert.ReachabilityProof) error {
	if idx.DB == nil {
		return ErrInputShape.New("anchor is not a single-schema, single-instance module")
	}

	cursor := proof.Src
	for i, step := range proof.Steps {
		if step.Reflexive {
			if step.Src != cursor || step.Dst != cursor {
				return ErrWitnessBroken.New(fmt.Sprintf("step %d: reflexive step endpoints disagree (src=%s dst=%s cursor=%s)", i, step.Src, step.Dst, cursor))
			}
			continue
		}
		if step.Src != cursor {
			return ErrWitnessBroken.New(fmt.Sprintf("step %d: chain discontinuity, expected src=%s got %s", i, cursor, step.Src))
		}

		srcID, ok := idx.resolveEntity(step.Src)
		if !ok {
			return ErrWitnessBroken.New(fmt.Sprintf("step %d: unknown entity %q", i, step.Src))
		}
		dstID, ok := idx.resolveEntity(step.Dst)
		if !ok {
			return ErrWitnessBroken.New(fmt.Sprintf("step %d: unknown entity %q", i, step.Dst))
		}

		rel, ok := findEdge(idx.DB, srcID, dstID, step.Rel)
		if !ok {
			return ErrWitnessBroken.New(fmt.Sprintf("step %d: no %s edge %s -> %s in snapshot", i, step.Rel, step.Src, step.Dst))
		}
		if rel.Confidence.Numerator() != step.ConfFP {
			return ErrSemanticMismatch.New(fmt.Sprintf("step %d: claimed conf_fp=%d, snapshot has %d", i, step.ConfFP, rel.Confidence.Numerator()))
		}
		if step.AxiFactID != "" {
			want := axi.RelationFactID(rel, step.Rel)
			if step.AxiFactID != want {
				return ErrWitnessBroken.New(fmt.Sprintf("step %d: axi_fact_id %s does not match snapshot-derived %s", i, step.AxiFactID, want))
			}
		}

		cursor = step.Dst
	}

	if cursor != proof.Dst {
		return ErrSemanticMismatch.New(fmt.Sprintf("chain ends at %s, claimed dst is %s", cursor, proof.Dst))
	}

	composed := cert.ComposedConfidence(proof.Steps)
	if composed.Numerator() != proof.ComposedConfFP {
		return ErrSemanticMismatch.New(fmt.Sprintf("recomputed composed_conf_fp=%d, claimed %d", composed.Numerator(), proof.ComposedConfFP))
	}
	return nil
}

func findEdge(db *pathdb.PathDB, src, dst pathdb.EntityID, relLabel string) (*pathdb.Relation, bool) {
	relID, ok := db.Interner.Find(relLabel)
	if !ok {
		return nil, false
	}
	for _, rid := range db.IterOut(src) {
		rel := db.Relation(rid)
		if rel != nil && rel.RelType == relID && rel.Dst == dst {
			return rel, true
		}
	}
	return nil, false
}
