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

// ResolutionProof records a conflict-resolution decision between two
// competing confidences, and the margin threshold applied.
type ResolutionProof struct {
	FirstConfFP  int64          `json:"first_conf_fp"`
	SecondConfFP int64          `json:"second_conf_fp"`
	ThresholdFP  int64          `json:"threshold_fp"`
	Decision     pathdb.Decision `json:"decision"`
}

// EmitResolution builds a ResolutionProof by running the same decision
// procedure the checker will replay.
func EmitResolution(first, second, threshold pathdb.VProb) ResolutionProof {
	return ResolutionProof{
		FirstConfFP:  first.Numerator(),
		SecondConfFP: second.Numerator(),
		ThresholdFP:  threshold.Numerator(),
		Decision:     pathdb.Resolve(first, second, threshold),
	}
}
