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

	"github.com/josephjohncox/axiograph-sub002/cert"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// checkResolution re-runs pathdb.Resolve over the claimed fixed-point
// numerators and requires the claimed decision to match. Unlike every
// other kind, resolution_v2 carries no anchor reference — the decision
// procedure is pure arithmetic over the three numerators it ships.
func checkResolution(proof *cert.ResolutionProof) error {
	first, err := pathdb.NewVProb(proof.FirstConfFP)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	second, err := pathdb.NewVProb(proof.SecondConfFP)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}
	threshold, err := pathdb.NewVProb(proof.ThresholdFP)
	if err != nil {
		return ErrInputShape.New(err.Error())
	}

	got := pathdb.Resolve(first, second, threshold)
	if got != proof.Decision {
		return ErrSemanticMismatch.New(fmt.Sprintf("recomputed decision %q, claimed %q", got, proof.Decision))
	}
	return nil
}
