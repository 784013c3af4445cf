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

package cert

import "github.com/josephjohncox/axiograph-sub002/pathdb"

// ReachabilityStep is either a reflexive step (src == dst, no edge) or one
// traversed edge. AxiFactID is populated for the anchored variant only.
type ReachabilityStep struct {
	Reflexive  bool         `json:"reflexive"`
	Src        string       `json:"src"`
	Dst        string       `json:"dst"`
	Rel        string       `json:"rel,omitempty"`
	ConfFP     int64        `json:"conf_fp"`
	RelationID string       `json:"relation_id,omitempty"`
	AxiFactID  string       `json:"axi_fact_id,omitempty"`
}

// ReachabilityProof is a linear chain of steps from Src to Dst, together
// with the composed fixed-point confidence of the whole chain.
type ReachabilityProof struct {
	Src           string              `json:"src"`
	Dst           string              `json:"dst"`
	Steps         []ReachabilityStep  `json:"steps"`
	ComposedConfFP int64              `json:"composed_conf_fp"`
}

// ComposedConfidence recomputes the fixed-point confidence of a step chain
// by taking the fixed-point product across steps; reflexive steps
// contribute no factor. This is the same recomputation the checker
// performs independently from the claimed ComposedConfFP.
func ComposedConfidence(steps []ReachabilityStep) pathdb.VProb {
	acc := pathdb.Certain
	for _, s := range steps {
		if s.Reflexive {
			continue
		}
		v, err := pathdb.NewVProb(s.ConfFP)
		if err != nil {
			return pathdb.Impossible
		}
		acc = acc.Mul(v)
	}
	return acc
}
