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

package axql

import "github.com/josephjohncox/axiograph-sub002/pathdb"

// planStep is one scheduled atom together with the estimated row count it
// will contribute, for diagnostics.
type planStep struct {
	Atom Atom
	Cost int
}

// planDisjunct orders a disjunct's atoms so that each atom, once reached,
// can be evaluated: AttrEq atoms need their term and Path atoms their left
// term already anchored (bound by an earlier atom or a literal constant),
// while Type atoms are always ready because they can enumerate their type's
// entities — the standard "most selective atom first, then propagate
// bindings" conjunctive plan. names supplies the constant-term registry
// (see Executor).
func planDisjunct(d Disjunct, db *pathdb.PathDB, names map[string]pathdb.EntityID) ([]planStep, error) {
	remaining := append([]Atom(nil), d.Atoms...)
	bound := map[string]bool{}

	isAnchored := func(t Term) bool {
		if !t.IsVar {
			return true
		}
		return bound[t.Name]
	}

	var ordered []planStep
	for len(remaining) > 0 {
		bestIdx := -1
		bestCost := -1
		for i, a := range remaining {
			ready, cost := readiness(a, db, isAnchored)
			if !ready {
				continue
			}
			if bestIdx == -1 || cost < bestCost {
				bestIdx, bestCost = i, cost
			}
		}
		if bestIdx == -1 {
			var stuck []string
			for _, a := range remaining {
				stuck = append(stuck, a.Vars()...)
			}
			return nil, ErrBindingCycle.New(stuck)
		}

		chosen := remaining[bestIdx]
		ordered = append(ordered, planStep{Atom: chosen, Cost: bestCost})
		for _, v := range chosen.Vars() {
			bound[v] = true
		}
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return ordered, nil
}

// readiness reports whether atom can be scheduled given the currently
// anchored terms, and an estimated output cardinality used to prefer the
// cheapest ready atom.
func readiness(a Atom, db *pathdb.PathDB, isAnchored func(Term) bool) (ready bool, cost int) {
	switch atom := a.(type) {
	case TypeAtom:
		if isAnchored(atom.Term) {
			return true, 1
		}
		typeID, ok := db.Interner.Find(atom.TypeName)
		if !ok {
			return true, 0 // ErrUnknownType surfaces when the executor resolves it
		}
		total := 0
		for sub := range db.SubtypeClosure(typeID) {
			total += len(db.IterEntitiesOfType(sub))
		}
		return true, total
	case AttrEqAtom:
		if isAnchored(atom.Term) {
			return true, 1
		}
		return false, 0
	case PathAtom:
		// Traversal is guided BFS forward from a known source only; the
		// executor never walks a reversed automaton, so a path atom is
		// schedulable only once its left term is anchored.
		leftOK, rightOK := isAnchored(atom.Left), isAnchored(atom.Right)
		if !leftOK {
			return false, 0
		}
		cost := 0
		for _, label := range atom.Regex.Labels() {
			if id, ok := db.Interner.Find(label); ok {
				if bm := db.RelTypeBitmap(id); bm != nil {
					cost += int(bm.Count())
				}
			}
		}
		if leftOK && rightOK {
			cost = 1 // verifying a fixed pair is cheap regardless of fan-out
		}
		return true, cost
	}
	return false, 0
}
