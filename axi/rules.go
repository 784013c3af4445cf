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

package axi

import "github.com/josephjohncox/axiograph-sub002/pathalg"

// AxiRule builds the pathalg.AxiRule runtime representation of a theory's
// declared rewrite, anchored to moduleDigest so its RuleRef is stable
// across re-renders of the same content.
func (th *Theory) AxiRule(moduleDigest string, rw RewriteDecl) *pathalg.AxiRule {
	return &pathalg.AxiRule{
		ModuleDigest: moduleDigest,
		Theory:       th.Name,
		RuleName:     rw.Name,
		Vars:         rw.Vars,
		LHS:          rw.LHS,
		RHS:          rw.RHS,
		Dir:          rw.Direction,
	}
}

// RuleRegistry builds a pathalg.Registry[string] containing every rewrite
// declared by th, keyed by its "axi:<digest>:<theory>:<name>" reference,
// seeded with the shared builtins.
func (th *Theory) RuleRegistry(moduleDigest string) pathalg.Registry[string] {
	reg := pathalg.NewRegistry[string]()
	for _, rw := range th.Rewrites {
		r := th.AxiRule(moduleDigest, rw)
		reg[r.RuleRef()] = r
	}
	return reg
}
