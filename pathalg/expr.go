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

// Package pathalg implements the free-groupoid path algebra: path
// expressions, normalization to free-groupoid normal form, and replayable
// rule/position rewrite derivations. Expr is generalized over the label
// type L so the same algebra serves the engine's id-based path expressions
// and the certificate surface's name-based ones (spec.md §3).
package pathalg

import "fmt"

// Kind tags the closed sum of path expression shapes.
type Kind int

const (
	// KindRefl is refl(a): the identity path at object a.
	KindRefl Kind = iota
	// KindStep is step(src, relType, dst): one labeled atomic edge.
	KindStep
	// KindTrans is trans(p, q): sequential composition.
	KindTrans
	// KindInv is inv(p): path reversal.
	KindInv
)

func (k Kind) String() string {
	switch k {
	case KindRefl:
		return "reflexive"
	case KindStep:
		return "step"
	case KindTrans:
		return "trans"
	case KindInv:
		return "inv"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Expr is a path expression over object/label type L: atoms step(src, rel,
// dst), refl(a), trans(p, q), inv(p). It is a closed sum type; callers
// switch exhaustively on Kind rather than type-asserting subclasses.
type Expr[L comparable] struct {
	Kind Kind

	// KindRefl, KindStep
	Obj L // refl's object, or step's src when Kind == KindStep

	// KindStep only
	Rel L
	Dst L

	// KindTrans only
	Left, Right *Expr[L]

	// KindInv only
	Inner *Expr[L]
}

// Refl returns refl(a).
func Refl[L comparable](a L) *Expr[L] {
	return &Expr[L]{Kind: KindRefl, Obj: a}
}

// Step returns step(src, rel, dst).
func Step[L comparable](src, rel, dst L) *Expr[L] {
	return &Expr[L]{Kind: KindStep, Obj: src, Rel: rel, Dst: dst}
}

// Trans returns trans(p, q).
func Trans[L comparable](p, q *Expr[L]) *Expr[L] {
	return &Expr[L]{Kind: KindTrans, Left: p, Right: q}
}

// Inv returns inv(p).
func Inv[L comparable](p *Expr[L]) *Expr[L] {
	return &Expr[L]{Kind: KindInv, Inner: p}
}

// Source returns the start object of the path.
func (e *Expr[L]) Source() L {
	switch e.Kind {
	case KindRefl:
		return e.Obj
	case KindStep:
		return e.Obj
	case KindTrans:
		return e.Left.Source()
	case KindInv:
		return e.Inner.Target()
	}
	panic(fmt.Sprintf("pathalg: unhandled kind %v", e.Kind))
}

// Target returns the end object of the path.
func (e *Expr[L]) Target() L {
	switch e.Kind {
	case KindRefl:
		return e.Obj
	case KindStep:
		return e.Dst
	case KindTrans:
		return e.Right.Target()
	case KindInv:
		return e.Inner.Source()
	}
	panic(fmt.Sprintf("pathalg: unhandled kind %v", e.Kind))
}

// Equal performs a structural comparison of two expressions.
func Equal[L comparable](a, b *Expr[L]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindRefl:
		return a.Obj == b.Obj
	case KindStep:
		return a.Obj == b.Obj && a.Rel == b.Rel && a.Dst == b.Dst
	case KindTrans:
		return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case KindInv:
		return Equal(a.Inner, b.Inner)
	}
	return false
}

// String renders e in functional notation (refl(a), step(a,r,b),
// trans(p,q), inv(p)), for debugging.
func (e *Expr[L]) String() string {
	switch e.Kind {
	case KindRefl:
		return fmt.Sprintf("refl(%v)", e.Obj)
	case KindStep:
		return fmt.Sprintf("step(%v,%v,%v)", e.Obj, e.Rel, e.Dst)
	case KindTrans:
		return fmt.Sprintf("trans(%s,%s)", e.Left.String(), e.Right.String())
	case KindInv:
		return fmt.Sprintf("inv(%s)", e.Inner.String())
	}
	return "?"
}
