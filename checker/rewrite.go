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
	"strings"

	"github.com/josephjohncox/axiograph-sub002/cert"
	"github.com/josephjohncox/axiograph-sub002/pathalg"
)

// checkRewriteDerivationV3 replays a derivation using the builtin rules
// plus any axi-anchored rules declared in idx's theories, and requires the
// replayed output to structurally equal the claimed output.
func checkRewriteDerivationV3(idx *anchorIndex, proof *cert.RewriteDerivationProof) error {
	input, err := cert.FromPathExprJSON(proof.Input)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	claimedOutput, err := cert.FromPathExprJSON(proof.Output)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}

	registry, err := buildRegistry(idx, proof.Derivation)
	if err != nil {
		return err
	}

	steps := cert.FromStepsJSON(proof.Derivation)
	replayed, err := pathalg.Replay(input, steps, registry)
	if err != nil {
		return ErrSemanticMismatch.New(err.Error())
	}
	if !pathalg.Equal(replayed, claimedOutput) {
		return ErrSemanticMismatch.New(fmt.Sprintf("replayed derivation yields %s, claimed output is %s", replayed.String(), claimedOutput.String()))
	}
	return nil
}

// buildRegistry unions every theory's rule registry (each already seeded
// with the shared builtins) and rejects any axi-anchored step reference
// whose embedded module digest does not match idx's own — a rule anchored
// to a different module is never trusted, even if idx happens to declare a
// rule of the same name.
func buildRegistry(idx *anchorIndex, steps []cert.DerivationStepJSON) (pathalg.Registry[string], error) {
	reg := pathalg.NewRegistry[string]()
	for _, th := range idx.Module.Theories {
		for ref, rule := range th.RuleRegistry(idx.Digest) {
			reg[ref] = rule
		}
	}

	for _, st := range steps {
		if !strings.HasPrefix(st.Rule, "axi:") {
			continue
		}
		parts := strings.SplitN(st.Rule, ":", 4)
		if len(parts) != 4 {
			return nil, ErrInputShape.New(fmt.Sprintf("malformed axi rule reference %q", st.Rule))
		}
		digest := parts[1]
		if digest != idx.Digest {
			return nil, ErrAnchorMissing.New(digest)
		}
		if _, ok := reg[st.Rule]; !ok {
			return nil, ErrSemanticMismatch.New(fmt.Sprintf("anchor declares no rewrite matching %q", st.Rule))
		}
	}

	return reg, nil
}
