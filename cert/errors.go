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

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrMalformedProof is returned when a proof payload cannot be decoded
	// into the shape its kind requires.
	ErrMalformedProof = errors.NewKind("cert: malformed proof: %s")

	// ErrUnsupportedKind reports a Kind this build does not know how to
	// construct. Encode and Decode do not validate the Kind and never
	// return it.
	ErrUnsupportedKind = errors.NewKind("cert: unsupported kind %q")
)
