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

// Step is one derivation step: apply the rule referenced by Rule at
// Position.
type Step struct {
	Position Position
	Rule     string // "builtin:<tag>" or "axi:<module_digest>:<theory>:<name>"
}

var (
	// ErrUnknownRule is returned by Replay for a rule reference the
	// registry cannot resolve.
	ErrUnknownRule = errors.NewKind("pathalg: unknown rule reference %q")
	// ErrRuleDoesNotApply is returned when a rule's precondition fails to
	// match the subexpression at the step's position.
	ErrRuleDoesNotApply = errors.NewKind("pathalg: rule %q does not match at position %v")
	// ErrEndpointsChanged is returned when replaying a step would change
	// the overall expression's source or target.
	ErrEndpointsChanged = errors.NewKind("pathalg: step %q at %v changes endpoints")
)

// Registry resolves a rule reference to a Rule implementation. Registry
// instances combine BuiltinRules with any axi-anchored rules active for
// the certificate's anchor.
type Registry[L comparable] map[string]Rule[L]

// NewRegistry returns a Registry seeded with the builtin rules.
func NewRegistry[L comparable]() Registry[L] {
	reg := Registry[L]{}
	for ref, rule := range BuiltinRules[L]() {
		reg[ref] = rule
	}
	return reg
}

// Replay re-applies each step in order, starting from input, and returns
// the final expression. A step is rejected if its rule reference is
// unknown, its precondition does not match the addressed subexpression, or
// applying it changes the overall expression's endpoints.
func Replay[L comparable](input *Expr[L], steps []Step, registry Registry[L]) (*Expr[L], error) {
	srcWant, dstWant := input.Source(), input.Target()
	cur := input

	for _, st := range steps {
		rule, ok := registry[st.Rule]
		if !ok {
			return nil, ErrUnknownRule.New(st.Rule)
		}

		sub, err := Walk(cur, st.Position)
		if err != nil {
			return nil, err
		}
		if !rule.Match(sub) {
			return nil, ErrRuleDoesNotApply.New(st.Rule, st.Position)
		}

		replacement := rule.Apply(sub)
		next, err := Substitute(cur, st.Position, replacement)
		if err != nil {
			return nil, err
		}

		if next.Source() != srcWant || next.Target() != dstWant {
			return nil, ErrEndpointsChanged.New(st.Rule, st.Position)
		}

		cur = next
	}

	return cur, nil
}
