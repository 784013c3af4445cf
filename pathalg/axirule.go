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

import (
	"fmt"
	"sync"
)

// Direction constrains which side of an axi rewrite rule may be matched:
// forward matches lhs and rewrites to rhs, backward the reverse,
// bidirectional either.
type Direction string

const (
	DirectionForward       Direction = "forward"
	DirectionBackward      Direction = "backward"
	DirectionBidirectional Direction = "bidirectional"
)

// AxiRule is a rewrite rule declared in a canonical .axi theory block:
// "rewrite name: vars: ...; lhs: ...; rhs: ...; [direction: ...]". Matching
// is capture-based over the declared path- and entity-metavariables
// (Vars); names not in Vars must match literally.
//
// AxiRule implements Rule[string] so it can be dropped into a Registry
// alongside the builtins. Match records the bindings of its most recent
// successful call so the following Apply call can use them; callers must
// call Match immediately followed by Apply for the same subexpression, as
// Replay does, and must not interleave calls to the same AxiRule from
// multiple goroutines.
type AxiRule struct {
	ModuleDigest string
	Theory       string
	RuleName     string
	Vars         []string
	LHS, RHS     *Expr[string]
	Dir          Direction

	mu           sync.Mutex
	lastBindings map[string]string
	matchedRHS   bool
}

// RuleRef returns the stable reference "axi:<module_digest>:<theory>:<name>"
// recorded in derivation steps.
func (r *AxiRule) RuleRef() string {
	return fmt.Sprintf("axi:%s:%s:%s", r.ModuleDigest, r.Theory, r.RuleName)
}

// Name implements Rule.
func (r *AxiRule) Name() string { return r.RuleRef() }

func (r *AxiRule) isVar(label string) bool {
	for _, v := range r.Vars {
		if v == label {
			return true
		}
	}
	return false
}

// Match implements Rule: it tries to unify e against lhs (for forward/
// bidirectional) and rhs (for backward/bidirectional), recording whichever
// side matched.
func (r *AxiRule) Match(e *Expr[string]) bool {
	if r.Dir == DirectionForward || r.Dir == DirectionBidirectional {
		bindings := map[string]string{}
		if matchExpr(r.LHS, e, r.isVar, bindings) {
			r.mu.Lock()
			r.lastBindings, r.matchedRHS = bindings, false
			r.mu.Unlock()
			return true
		}
	}
	if r.Dir == DirectionBackward || r.Dir == DirectionBidirectional {
		bindings := map[string]string{}
		if matchExpr(r.RHS, e, r.isVar, bindings) {
			r.mu.Lock()
			r.lastBindings, r.matchedRHS = bindings, true
			r.mu.Unlock()
			return true
		}
	}
	return false
}

// Apply implements Rule: substitutes the bindings captured by the most
// recent Match call into the opposite side of the rule.
func (r *AxiRule) Apply(e *Expr[string]) *Expr[string] {
	r.mu.Lock()
	bindings, matchedRHS := r.lastBindings, r.matchedRHS
	r.mu.Unlock()

	if matchedRHS {
		return substituteVars(r.LHS, bindings)
	}
	return substituteVars(r.RHS, bindings)
}

// matchExpr unifies pattern against target, recording metavariable
// bindings. A metavariable must bind consistently across all occurrences.
func matchExpr(pattern, target *Expr[string], isVar func(string) bool, bindings map[string]string) bool {
	if pattern.Kind != target.Kind {
		return false
	}
	switch pattern.Kind {
	case KindRefl:
		return bindLabel(pattern.Obj, target.Obj, isVar, bindings)
	case KindStep:
		return bindLabel(pattern.Obj, target.Obj, isVar, bindings) &&
			bindLabel(pattern.Rel, target.Rel, isVar, bindings) &&
			bindLabel(pattern.Dst, target.Dst, isVar, bindings)
	case KindTrans:
		return matchExpr(pattern.Left, target.Left, isVar, bindings) &&
			matchExpr(pattern.Right, target.Right, isVar, bindings)
	case KindInv:
		return matchExpr(pattern.Inner, target.Inner, isVar, bindings)
	}
	return false
}

func bindLabel(pat, val string, isVar func(string) bool, bindings map[string]string) bool {
	if !isVar(pat) {
		return pat == val
	}
	if existing, ok := bindings[pat]; ok {
		return existing == val
	}
	bindings[pat] = val
	return true
}

// substituteVars rebuilds expr with every metavariable occurrence replaced
// by its bound value. Labels absent from bindings are left unchanged
// (literal labels).
func substituteVars(expr *Expr[string], bindings map[string]string) *Expr[string] {
	resolve := func(l string) string {
		if v, ok := bindings[l]; ok {
			return v
		}
		return l
	}
	switch expr.Kind {
	case KindRefl:
		return Refl(resolve(expr.Obj))
	case KindStep:
		return Step(resolve(expr.Obj), resolve(expr.Rel), resolve(expr.Dst))
	case KindTrans:
		return Trans(substituteVars(expr.Left, bindings), substituteVars(expr.Right, bindings))
	case KindInv:
		return Inv(substituteVars(expr.Inner, bindings))
	}
	panic("pathalg: unhandled kind in substituteVars")
}
