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

import (
	"github.com/josephjohncox/axiograph-sub002/axql"
	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// EmitQueryResultV3 wraps EmitQueryResult's named proof in an anchored
// envelope, the variant the checker always re-verifies against its anchor
// (query_result_v1/v2 have no mandatory anchor; the checker verifies their
// witnesses only when one is attached).
func EmitQueryResultV3(vars []string, res *axql.Result, names map[string]pathdb.EntityID, axiDigest string) (*Envelope, error) {
	proof := EmitQueryResult(vars, res, names)
	return Encode(KindQueryResultV3, &Anchor{AxiDigestV1: axiDigest}, proof)
}

// EmitResolutionEnvelope wraps a resolution decision in an unanchored
// envelope: resolution_v2 is recomputed from the three numerators alone
// and needs no textual anchor.
func EmitResolutionEnvelope(first, second, threshold pathdb.VProb) (*Envelope, error) {
	return Encode(KindResolutionV2, nil, EmitResolution(first, second, threshold))
}
