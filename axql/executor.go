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

import (
	"context"
	"sort"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// Executor runs Query IR against a PathDB. Names resolves Const terms to
// entity ids; it is typically the registry returned by axi.Import.
type Executor struct {
	DB    *pathdb.PathDB
	Names map[string]pathdb.EntityID
}

// NewExecutor builds an Executor bound to db, resolving constant query
// terms through names.
func NewExecutor(db *pathdb.PathDB, names map[string]pathdb.EntityID) *Executor {
	return &Executor{DB: db, Names: names}
}

// candidate is one way to extend a partial row binding by a single atom.
type candidate struct {
	bind    map[string]pathdb.EntityID // new bindings introduced, if any
	witness AtomWitness
}

type rowState struct {
	bindings map[string]pathdb.EntityID
	witness  []AtomWitness
}

// Execute validates, plans, and runs q, merging rows across disjuncts,
// deduplicating by binding tuple, and applying Options.Limit.
func (e *Executor) Execute(ctx context.Context, q *Query) (*Result, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "axql.Execute")
	defer span.Finish()

	if err := e.validate(q); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var rows []Row
	truncated := false

	for i, d := range q.Disjuncts {
		dSpan, _ := opentracing.StartSpanFromContext(ctx, "axql.disjunct")
		dSpan.SetTag("index", i)

		states, err := e.runDisjunct(d, q.Options)
		dSpan.Finish()
		if err != nil {
			return nil, err
		}

		for _, st := range states {
			key := bindingKey(q.Vars, st.bindings)
			if seen[key] {
				continue
			}
			seen[key] = true
			rows = append(rows, Row{Bindings: st.bindings, Witness: st.witness})
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rowLess(q.Vars, rows[i], rows[j]) })

	if q.Options.Limit > 0 && len(rows) > q.Options.Limit {
		rows = rows[:q.Options.Limit]
		truncated = true
	}

	return &Result{Rows: rows, Truncated: truncated}, nil
}

// validate rejects queries referencing types or relations never interned
// in the snapshot, before any execution work happens.
func (e *Executor) validate(q *Query) error {
	for _, d := range q.Disjuncts {
		for _, a := range d.Atoms {
			switch atom := a.(type) {
			case TypeAtom:
				if _, ok := e.DB.Interner.Find(atom.TypeName); !ok {
					return ErrUnknownType.New(atom.TypeName)
				}
			case PathAtom:
				for _, label := range atom.Regex.Labels() {
					if _, ok := e.DB.Interner.Find(label); !ok {
						return ErrUnknownRelation.New(label)
					}
				}
			}
		}
	}
	return nil
}

func (e *Executor) runDisjunct(d Disjunct, opts Options) ([]rowState, error) {
	plan, err := planDisjunct(d, e.DB, e.Names)
	if err != nil {
		return nil, err
	}

	frontier := []rowState{{bindings: map[string]pathdb.EntityID{}, witness: nil}}
	for _, step := range plan {
		var next []rowState
		for _, st := range frontier {
			cands, err := e.evaluate(step.Atom, st.bindings, opts)
			if err != nil {
				return nil, err
			}
			for _, c := range cands {
				merged := make(map[string]pathdb.EntityID, len(st.bindings)+len(c.bind))
				for k, v := range st.bindings {
					merged[k] = v
				}
				for k, v := range c.bind {
					merged[k] = v
				}
				wit := append(append([]AtomWitness(nil), st.witness...), c.witness)
				next = append(next, rowState{bindings: merged, witness: wit})
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return frontier, nil
}

func (e *Executor) resolveTerm(t Term, bindings map[string]pathdb.EntityID) (pathdb.EntityID, bool) {
	if t.IsVar {
		id, ok := bindings[t.Name]
		return id, ok
	}
	id, ok := e.Names[t.Name]
	return id, ok
}

func (e *Executor) evaluate(a Atom, bindings map[string]pathdb.EntityID, opts Options) ([]candidate, error) {
	switch atom := a.(type) {
	case TypeAtom:
		return e.evalType(atom, bindings)
	case AttrEqAtom:
		return e.evalAttrEq(atom, bindings)
	case PathAtom:
		return e.evalPath(atom, bindings, opts)
	}
	return nil, nil
}

func (e *Executor) evalType(atom TypeAtom, bindings map[string]pathdb.EntityID) ([]candidate, error) {
	typeID, ok := e.DB.Interner.Find(atom.TypeName)
	if !ok {
		return nil, ErrUnknownType.New(atom.TypeName)
	}
	closure := e.DB.SubtypeClosure(typeID)

	if eid, anchored := e.resolveTerm(atom.Term, bindings); anchored {
		ent := e.DB.Entity(eid)
		if ent == nil || !closure[ent.TypeID] {
			return nil, nil
		}
		return []candidate{{witness: AtomWitness{Type: &TypeWitness{Entity: eid, TypeName: atom.TypeName}}}}, nil
	}

	var out []candidate
	for sub := range closure {
		for _, eid := range e.DB.IterEntitiesOfType(sub) {
			out = append(out, candidate{
				bind:    map[string]pathdb.EntityID{atom.Term.Name: eid},
				witness: AtomWitness{Type: &TypeWitness{Entity: eid, TypeName: atom.TypeName}},
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].bind[atom.Term.Name] < out[j].bind[atom.Term.Name]
	})
	return out, nil
}

func (e *Executor) evalAttrEq(atom AttrEqAtom, bindings map[string]pathdb.EntityID) ([]candidate, error) {
	eid, anchored := e.resolveTerm(atom.Term, bindings)
	if !anchored {
		return nil, ErrBindingCycle.New([]string{atom.Term.Name})
	}
	ent := e.DB.Entity(eid)
	if ent == nil {
		return nil, nil
	}
	keyID, ok := e.DB.Interner.Find(atom.Key)
	if !ok {
		return nil, nil
	}
	valID, ok := ent.Attrs[keyID]
	if !ok {
		return nil, nil
	}
	if e.DB.Interner.LookupString(valID) != atom.Value {
		return nil, nil
	}
	return []candidate{{witness: AtomWitness{Attr: &AttrWitness{Entity: eid, Key: atom.Key, Value: atom.Value}}}}, nil
}

type pathFrame struct {
	entity pathdb.EntityID
	states []int
	steps  []StepWitness
	hops   int
}

func (e *Executor) evalPath(atom PathAtom, bindings map[string]pathdb.EntityID, opts Options) ([]candidate, error) {
	leftID, ok := e.resolveTerm(atom.Left, bindings)
	if !ok {
		return nil, ErrBindingCycle.New([]string{atom.Left.Name})
	}
	rightID, rightAnchored := e.resolveTerm(atom.Right, bindings)

	nfa := Compile(atom.Regex)
	maxHops := opts.MaxHops
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}

	emit := func(dst pathdb.EntityID, steps []StepWitness) []candidate {
		wit := AtomWitness{Path: &PathWitness{Reflexive: len(steps) == 0, Entity: leftID, Steps: steps, Regex: atom.Regex.String()}}
		if rightAnchored {
			if dst != rightID {
				return nil
			}
			return []candidate{{witness: wit}}
		}
		return []candidate{{bind: map[string]pathdb.EntityID{atom.Right.Name: dst}, witness: wit}}
	}

	var out []candidate
	if nfa.Accepting(nfa.Start()) {
		out = append(out, emit(leftID, nil)...)
	}

	visited := map[pathdb.EntityID]bool{leftID: true}
	queue := []pathFrame{{entity: leftID, states: nfa.Start(), hops: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hops >= maxHops {
			continue
		}
		for _, rid := range e.DB.IterOut(cur.entity) {
			rel := e.DB.Relation(rid)
			if rel == nil {
				continue
			}
			if rel.Confidence.Compare(opts.MinConfidence) < 0 {
				continue
			}
			label := e.DB.Interner.LookupString(rel.RelType)
			next := nfa.Step(cur.states, label)
			if next == nil {
				continue
			}
			if visited[rel.Dst] {
				continue
			}
			visited[rel.Dst] = true

			steps := append(append([]StepWitness(nil), cur.steps...), StepWitness{
				Src: cur.entity, Dst: rel.Dst, Rel: label,
				Confidence: rel.Confidence,
				AxiFactID:  axi.RelationFactID(rel, label),
			})

			if nfa.Accepting(next) {
				out = append(out, emit(rel.Dst, steps)...)
			}
			queue = append(queue, pathFrame{entity: rel.Dst, states: next, steps: steps, hops: cur.hops + 1})
		}
	}

	return out, nil
}

func bindingKey(vars []string, bindings map[string]pathdb.EntityID) string {
	key := make([]byte, 0, 8*len(vars))
	for _, v := range vars {
		id := bindings[v]
		key = append(key, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	}
	return string(key)
}

func rowLess(vars []string, a, b Row) bool {
	for _, v := range vars {
		ai, bi := a.Bindings[v], b.Bindings[v]
		if ai != bi {
			return ai < bi
		}
	}
	return false
}
