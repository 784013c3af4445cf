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

// DeltaFProof is the proof payload for delta_f_v1: a functorial data
// migration pulling an instance of Source back along a schema morphism
// into an instance of Target. The morphism itself (object and arrow
// images) is carried so the checker can recompute the pullback without
// consulting anything outside the certificate and its anchor.
type DeltaFProof struct {
	SourceSchema string              `json:"source_schema"`
	TargetSchema string              `json:"target_schema"`
	ObjectImage  map[string]string   `json:"object_image"`
	ArrowImage   map[string][]string `json:"arrow_image"`
	// Result is the pulled-back instance, rendered as relation name ->
	// ordered list of rows, each row the pair of its first and second
	// field values, name-based throughout.
	Result map[string][][2]string `json:"result"`
}
