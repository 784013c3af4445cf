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

// Package cert implements the certificate envelope and its per-kind proof
// payloads, plus an emitter that collects witnesses during a single
// execution pass rather than re-running the underlying computation.
package cert

import "encoding/json"

// Kind names a certificate's proof payload shape. Kinds are a closed sum
// type at the protocol level; the checker dispatches on this string, never
// on the payload's Go type.
type Kind string

const (
	KindReachabilityV2       Kind = "reachability_v2"
	KindResolutionV2         Kind = "resolution_v2"
	KindNormalizePathV2      Kind = "normalize_path_v2"
	KindRewriteDerivationV2  Kind = "rewrite_derivation_v2"
	KindRewriteDerivationV3  Kind = "rewrite_derivation_v3"
	KindPathEquivV2          Kind = "path_equiv_v2"
	KindAxiWellTypedV1       Kind = "axi_well_typed_v1"
	KindAxiConstraintsOkV1   Kind = "axi_constraints_ok_v1"
	KindQueryResultV1        Kind = "query_result_v1"
	KindQueryResultV2        Kind = "query_result_v2"
	KindQueryResultV3        Kind = "query_result_v3"
	KindDeltaFV1             Kind = "delta_f_v1"
)

// EnvelopeVersion is the current envelope schema version.
const EnvelopeVersion = 1

// Anchor ties a certificate to a specific canonical textual module by its
// FNV1a-64 digest. Only kinds whose checker procedure requires re-reading
// the anchor (query_result_v3, rewrite_derivation_v3, reachability
// anchored, axi_*_v1, delta_f_v1) need one.
type Anchor struct {
	AxiDigestV1 string `json:"axi_digest_v1"`
}

// Envelope is the outermost certificate object: version, kind, the
// kind-specific proof payload, and an optional anchor.
type Envelope struct {
	Version int             `json:"version"`
	Kind    Kind            `json:"kind"`
	Proof   json.RawMessage `json:"proof"`
	Anchor  *Anchor         `json:"anchor,omitempty"`
}

// Encode marshals proof into the envelope's Proof field.
func Encode(kind Kind, anchor *Anchor, proof any) (*Envelope, error) {
	raw, err := json.Marshal(proof)
	if err != nil {
		return nil, err
	}
	return &Envelope{Version: EnvelopeVersion, Kind: kind, Proof: raw, Anchor: anchor}, nil
}

// Decode unmarshals e.Proof into out, a pointer to the kind-specific proof
// struct the caller expects for e.Kind.
func (e *Envelope) Decode(out any) error {
	return json.Unmarshal(e.Proof, out)
}
