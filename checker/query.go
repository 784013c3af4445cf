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
	"github.com/josephjohncox/axiograph-sub002/axql"
	"github.com/josephjohncox/axiograph-sub002/cert"
)

// checkQueryResultV3 re-verifies every row of an anchored query_result_v3
// certificate: each atom witness must hold against the anchor's snapshot —
// name-based subtype closure for Type atoms, stored-attribute equality for
// Attr atoms, and for Path atoms both edge/confidence/fact-id equality per
// step and NFA acceptance of the step label sequence against the witness's
// own carried RPQ surface syntax.
func checkQueryResultV3(idx *anchorIndex, proof *cert.QueryResultProof) error {
	if idx.DB == nil {
		return ErrInputShape.New("anchor is not a single-schema, single-instance module")
	}

	for i, row := range proof.Rows {
		for j, w := range row.Witness {
			if err := checkAtomWitness(idx, w); err != nil {
				return ErrSemanticMismatch.New(fmt.Sprintf("row %d atom %d: %s", i, j, err.Error()))
			}
		}
	}
	return nil
}

func checkAtomWitness(idx *anchorIndex, w cert.AtomWitnessJSON) error {
	switch {
	case w.Type != nil:
		return checkTypeWitness(idx, w.Type)
	case w.Attr != nil:
		return checkAttrWitness(idx, w.Attr)
	case w.Path != nil:
		return checkPathWitness(idx, w.Path)
	}
	return fmt.Errorf("empty atom witness")
}

func checkTypeWitness(idx *anchorIndex, w *cert.TypeWitnessJSON) error {
	entID, ok := idx.resolveEntity(w.Entity)
	if !ok {
		return fmt.Errorf("unknown entity %q", w.Entity)
	}
	typeID, ok := idx.DB.Interner.Find(w.TypeName)
	if !ok {
		return fmt.Errorf("unknown type %q", w.TypeName)
	}
	ent := idx.DB.Entity(entID)
	if ent == nil {
		return fmt.Errorf("entity %q not in snapshot", w.Entity)
	}
	closure := idx.DB.SubtypeClosure(typeID)
	if !closure[ent.TypeID] {
		return fmt.Errorf("entity %q's type is not in the subtype closure of %q", w.Entity, w.TypeName)
	}
	return nil
}

func checkAttrWitness(idx *anchorIndex, w *cert.AttrWitnessJSON) error {
	entID, ok := idx.resolveEntity(w.Entity)
	if !ok {
		return fmt.Errorf("unknown entity %q", w.Entity)
	}
	ent := idx.DB.Entity(entID)
	if ent == nil {
		return fmt.Errorf("entity %q not in snapshot", w.Entity)
	}
	keyID, ok := idx.DB.Interner.Find(w.Key)
	if !ok {
		return fmt.Errorf("unknown attribute key %q", w.Key)
	}
	valID, ok := ent.Attrs[keyID]
	if !ok {
		return fmt.Errorf("entity %q has no attribute %q", w.Entity, w.Key)
	}
	if idx.DB.Interner.LookupString(valID) != w.Value {
		return fmt.Errorf("entity %q attribute %q does not equal %q in snapshot", w.Entity, w.Key, w.Value)
	}
	return nil
}

func checkPathWitness(idx *anchorIndex, w *cert.PathWitnessJSON) error {
	regex, err := axql.ParseRegex(w.Regex)
	if err != nil {
		return fmt.Errorf("malformed regex %q: %w", w.Regex, err)
	}
	nfa := axql.Compile(regex)

	if w.Reflexive {
		if _, ok := idx.resolveEntity(w.Entity); !ok {
			return fmt.Errorf("unknown entity %q", w.Entity)
		}
		if !nfa.Accepts(nil) {
			return fmt.Errorf("regex %q does not accept the empty label list for a reflexive witness", w.Regex)
		}
		return nil
	}

	labels := make([]string, len(w.Steps))
	for i, step := range w.Steps {
		labels[i] = step.Rel
	}
	if !nfa.Accepts(labels) {
		return fmt.Errorf("regex %q rejects step label list %v", w.Regex, labels)
	}

	for i, step := range w.Steps {
		srcID, ok := idx.resolveEntity(step.Src)
		if !ok {
			return fmt.Errorf("step %d: unknown entity %q", i, step.Src)
		}
		dstID, ok := idx.resolveEntity(step.Dst)
		if !ok {
			return fmt.Errorf("step %d: unknown entity %q", i, step.Dst)
		}
		if i > 0 && step.Src != w.Steps[i-1].Dst {
			return fmt.Errorf("step %d: chain discontinuity", i)
		}
		rel, ok := findEdge(idx.DB, srcID, dstID, step.Rel)
		if !ok {
			return fmt.Errorf("step %d: no %s edge %s -> %s in snapshot", i, step.Rel, step.Src, step.Dst)
		}
		if rel.Confidence.Numerator() != step.ConfFP {
			return fmt.Errorf("step %d: claimed conf_fp=%d, snapshot has %d", i, step.ConfFP, rel.Confidence.Numerator())
		}
		want := axi.RelationFactID(rel, step.Rel)
		if step.AxiFactID != want {
			return fmt.Errorf("step %d: axi_fact_id %s does not match snapshot-derived %s", i, step.AxiFactID, want)
		}
	}
	return nil
}
