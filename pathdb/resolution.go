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

package pathdb

// Decision is the outcome of conflict resolution between two competing
// confidences, backing the resolution_v2 certificate kind (spec.md §4.8).
type Decision string

const (
	// DecisionAccept means the first confidence clears the second by at
	// least the threshold margin.
	DecisionAccept Decision = "accept"
	// DecisionReject means the second confidence clears the first by at
	// least the threshold margin.
	DecisionReject Decision = "reject"
	// DecisionAmbiguous means neither confidence clears the other by the
	// threshold margin; closed-world assumptions are rejected, so this is
	// a first-class outcome, not an error.
	DecisionAmbiguous Decision = "ambiguous"
)

// Resolve decides between two competing confidences given a margin
// threshold. It is total and deterministic so the checker can recompute it
// from the three numerators alone.
func Resolve(first, second, threshold VProb) Decision {
	switch {
	case first.numerator-second.numerator >= threshold.numerator:
		return DecisionAccept
	case second.numerator-first.numerator >= threshold.numerator:
		return DecisionReject
	default:
		return DecisionAmbiguous
	}
}
