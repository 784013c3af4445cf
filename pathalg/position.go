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

import "gopkg.in/src-d/go-errors.v1"

// Position addresses a subexpression by a sequence of child indices:
// 0 = trans.left, 1 = trans.right, 2 = inv.path. The empty position
// addresses the whole expression.
type Position []int

const (
	childTransLeft  = 0
	childTransRight = 1
	childInvPath    = 2
)

// ErrBadPosition is returned by Walk/Substitute when a position does not
// address a real child at some step of the walk.
var ErrBadPosition = errors.NewKind("pathalg: position %v does not address a subexpression")

// Walk returns the subexpression of e at pos.
func Walk[L comparable](e *Expr[L], pos Position) (*Expr[L], error) {
	if len(pos) == 0 {
		return e, nil
	}
	idx, rest := pos[0], pos[1:]
	switch {
	case e.Kind == KindTrans && idx == childTransLeft:
		return Walk(e.Left, rest)
	case e.Kind == KindTrans && idx == childTransRight:
		return Walk(e.Right, rest)
	case e.Kind == KindInv && idx == childInvPath:
		return Walk(e.Inner, rest)
	default:
		return nil, ErrBadPosition.New(pos)
	}
}

// Substitute returns a copy of e with the subexpression at pos replaced by
// replacement. The original tree is left untouched (expressions are
// treated as immutable values).
func Substitute[L comparable](e *Expr[L], pos Position, replacement *Expr[L]) (*Expr[L], error) {
	if len(pos) == 0 {
		return replacement, nil
	}
	idx, rest := pos[0], pos[1:]
	switch {
	case e.Kind == KindTrans && idx == childTransLeft:
		newLeft, err := Substitute(e.Left, rest, replacement)
		if err != nil {
			return nil, err
		}
		return Trans(newLeft, e.Right), nil
	case e.Kind == KindTrans && idx == childTransRight:
		newRight, err := Substitute(e.Right, rest, replacement)
		if err != nil {
			return nil, err
		}
		return Trans(e.Left, newRight), nil
	case e.Kind == KindInv && idx == childInvPath:
		newInner, err := Substitute(e.Inner, rest, replacement)
		if err != nil {
			return nil, err
		}
		return Inv(newInner), nil
	default:
		return nil, ErrBadPosition.New(pos)
	}
}
