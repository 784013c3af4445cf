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

package pathalg

// Atom is one flattened step, possibly inverted, in a free-groupoid normal
// form chain.
type Atom[L comparable] struct {
	Step     *Expr[L] // always Kind == KindStep
	Inverted bool
}

// source/target of an atom account for inversion.
func (a Atom[L]) source() L {
	if a.Inverted {
		return a.Step.Dst
	}
	return a.Step.Obj
}

func (a Atom[L]) target() L {
	if a.Inverted {
		return a.Step.Obj
	}
	return a.Step.Dst
}

func (a Atom[L]) inverse() Atom[L] {
	return Atom[L]{Step: a.Step, Inverted: !a.Inverted}
}

// isInverseOf reports whether a is the exact inverse of b: the same
// underlying step, opposite orientation.
func (a Atom[L]) isInverseOf(b Atom[L]) bool {
	return a.Inverted != b.Inverted &&
		a.Step.Obj == b.Step.Obj && a.Step.Rel == b.Step.Rel && a.Step.Dst == b.Step.Dst
}

// Flatten reduces an expression to an ordered list of atoms (step or
// inv(step)), pushing inversion through trans and inv per the free
// groupoid laws: inv(trans(p,q)) = trans(inv(q), inv(p)), inv(inv(p)) = p.
// refl nodes contribute no atoms; the start object is recovered separately
// via Source when the atom list is empty.
func Flatten[L comparable](e *Expr[L]) []Atom[L] {
	return flatten(e, false)
}

func flatten[L comparable](e *Expr[L], inverted bool) []Atom[L] {
	switch e.Kind {
	case KindRefl:
		return nil
	case KindStep:
		return []Atom[L]{{Step: e, Inverted: inverted}}
	case KindInv:
		return flatten(e.Inner, !inverted)
	case KindTrans:
		left := flatten(e.Left, inverted)
		right := flatten(e.Right, inverted)
		if inverted {
			// inv(trans(p,q)) = trans(inv(q), inv(p))
			return append(right, left...)
		}
		return append(left, right...)
	}
	panic("pathalg: unhandled kind in flatten")
}

// cancelAdjacentInverses repeatedly removes adjacent atom pairs that are
// exact inverses of each other, to a fixed point.
func cancelAdjacentInverses[L comparable](atoms []Atom[L]) []Atom[L] {
	changed := true
	for changed {
		changed = false
		out := make([]Atom[L], 0, len(atoms))
		for _, a := range atoms {
			if n := len(out); n > 0 && out[n-1].isInverseOf(a) {
				out = out[:n-1]
				changed = true
				continue
			}
			out = append(out, a)
		}
		atoms = out
	}
	return atoms
}

// rebuild reconstructs a right-associated trans chain from an atom list,
// falling back to refl(start) when the list is empty.
func rebuild[L comparable](start L, atoms []Atom[L]) *Expr[L] {
	if len(atoms) == 0 {
		return Refl(start)
	}
	steps := make([]*Expr[L], len(atoms))
	for i, a := range atoms {
		if a.Inverted {
			steps[i] = Inv(a.Step)
		} else {
			steps[i] = a.Step
		}
	}
	expr := steps[len(steps)-1]
	for i := len(steps) - 2; i >= 0; i-- {
		expr = Trans(steps[i], expr)
	}
	return expr
}

// Normalize computes the free-groupoid normal form of e: flatten, cancel
// adjacent inverse pairs to a fixed point, rebuild a right-associated
// trans chain (or refl(start) if the reduction is empty). Normalize is
// deterministic and idempotent.
func Normalize[L comparable](e *Expr[L]) *Expr[L] {
	start := e.Source()
	atoms := Flatten(e)
	atoms = cancelAdjacentInverses(atoms)
	return rebuild(start, atoms)
}
