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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxiRuleForwardMatchAndApply(t *testing.T) {
	// rewrite swap_ends: vars: X, Y, R; lhs: step(X, R, Y); rhs: inv(step(Y, R, X))
	rule := &AxiRule{
		ModuleDigest: "fnv1a64:deadbeef00000000",
		Theory:       "T",
		RuleName:     "swap_ends",
		Vars:         []string{"X", "Y", "R"},
		LHS:          Step("X", "R", "Y"),
		RHS:          Inv(Step("Y", "R", "X")),
		Dir:          DirectionForward,
	}

	target := Step("a", "r1", "b")
	require.True(t, rule.Match(target))

	got := rule.Apply(target)
	assert.True(t, Equal(got, Inv(Step("b", "r1", "a"))))
}

func TestAxiRuleRefRendering(t *testing.T) {
	rule := &AxiRule{ModuleDigest: "fnv1a64:abc", Theory: "T", RuleName: "r1"}
	assert.Equal(t, "axi:fnv1a64:abc:T:r1", rule.RuleRef())
}

func TestAxiRuleBidirectional(t *testing.T) {
	rule := &AxiRule{
		RuleName: "comm",
		Vars:     []string{"X"},
		LHS:      Refl("X"),
		RHS:      Refl("X"),
		Dir:      DirectionBidirectional,
	}
	require.True(t, rule.Match(Refl("z")))
	got := rule.Apply(Refl("z"))
	assert.True(t, Equal(got, Refl("z")))
}

func TestAxiRuleRegistryReplay(t *testing.T) {
	registry := NewRegistry[string]()
	rule := &AxiRule{
		ModuleDigest: "fnv1a64:x",
		Theory:       "T",
		RuleName:     "loop",
		Vars:         []string{"X"},
		LHS:          Refl("X"),
		RHS:          Refl("X"),
		Dir:          DirectionForward,
	}
	registry[rule.RuleRef()] = rule

	input := Refl("a")
	got, err := Replay(input, []Step{{Rule: rule.RuleRef()}}, registry)
	require.NoError(t, err)
	assert.True(t, Equal(got, Refl("a")))
}
