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

	"github.com/josephjohncox/axiograph-sub002/axi"
	"github.com/josephjohncox/axiograph-sub002/cert"
)

// anchoredKinds requires a resolvable Anchor before its payload is even
// decoded — resolution_v2 and the unanchored path-algebra kinds are
// deliberately absent.
var anchoredKinds = map[cert.Kind]bool{
	cert.KindReachabilityV2:      true,
	cert.KindRewriteDerivationV3: true,
	cert.KindAxiWellTypedV1:      true,
	cert.KindAxiConstraintsOkV1:  true,
	cert.KindQueryResultV3:       true,
	cert.KindDeltaFV1:            true,
}

// Check re-verifies every certificate in certs against anchors, returning
// one Result per certificate in order. Anchors are indexed once up front
// and reused across every certificate referencing them.
func Check(anchors []*axi.Module, certs []*cert.Envelope) ([]Result, error) {
	indexes, err := buildAnchorIndexes(anchors)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(certs))
	for i, env := range certs {
		results[i] = checkOne(indexes, env)
	}
	return results, nil
}

func checkOne(indexes map[string]*anchorIndex, env *cert.Envelope) Result {
	var idx *anchorIndex
	switch {
	case anchoredKinds[env.Kind]:
		if env.Anchor == nil {
			return failure(env.Kind, ErrAnchorMissing.New("<no anchor attached>"))
		}
		var ok bool
		idx, ok = indexes[env.Anchor.AxiDigestV1]
		if !ok {
			return failure(env.Kind, ErrAnchorMissing.New(env.Anchor.AxiDigestV1))
		}
	case env.Anchor != nil:
		// Anchor optional for this kind, but verify against it when one
		// was supplied rather than silently ignoring it.
		var ok bool
		idx, ok = indexes[env.Anchor.AxiDigestV1]
		if !ok {
			return failure(env.Kind, ErrAnchorMissing.New(env.Anchor.AxiDigestV1))
		}
	}

	err := dispatch(idx, env)
	if err != nil {
		return failure(env.Kind, err)
	}
	return Result{Kind: env.Kind, OK: true, Summary: fmt.Sprintf("%s verified", env.Kind)}
}

func dispatch(idx *anchorIndex, env *cert.Envelope) error {
	switch env.Kind {
	case cert.KindReachabilityV2:
		var proof cert.ReachabilityProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkReachability(idx, &proof)

	case cert.KindResolutionV2:
		var proof cert.ResolutionProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkResolution(&proof)

	case cert.KindNormalizePathV2:
		var proof cert.NormalizePathProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkNormalizePathV2(&proof)

	case cert.KindRewriteDerivationV2:
		var proof cert.RewriteDerivationProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkRewriteDerivationV2(&proof)

	case cert.KindRewriteDerivationV3:
		var proof cert.RewriteDerivationProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkRewriteDerivationV3(idx, &proof)

	case cert.KindPathEquivV2:
		var proof cert.PathEquivProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkPathEquivV2(&proof)

	case cert.KindAxiWellTypedV1:
		var proof cert.AxiWellTypedProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkAxiWellTyped(idx, &proof)

	case cert.KindAxiConstraintsOkV1:
		var proof cert.AxiConstraintsOkProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkAxiConstraintsOk(idx, &proof)

	case cert.KindQueryResultV1, cert.KindQueryResultV2:
		// v1/v2 carry witnesses but no mandatory anchor. With an anchor
		// attached they go through the v3 witness verification; without
		// one the payload is only decoded and no witness is checked.
		var proof cert.QueryResultProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		if idx == nil {
			return nil
		}
		return checkQueryResultV3(idx, &proof)

	case cert.KindQueryResultV3:
		var proof cert.QueryResultProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkQueryResultV3(idx, &proof)

	case cert.KindDeltaFV1:
		var proof cert.DeltaFProof
		if err := env.Decode(&proof); err != nil {
			return ErrInputShape.New(err.Error())
		}
		return checkDeltaF(idx, &proof)
	}
	return ErrInputShape.New(fmt.Sprintf("unrecognized certificate kind %q", env.Kind))
}

func failure(kind cert.Kind, err error) Result {
	return Result{Kind: kind, OK: false, Err: err}
}
