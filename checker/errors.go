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

// Package checker implements the trusted checker: decidable, terminating
// re-verification of certificate envelopes against their anchors.
package checker

import errors "gopkg.in/src-d/go-errors.v1"

// The seven error kinds of spec.md §7. Each is a go-errors.v1 Kind so
// callers can classify a failure with Is without string matching.
var (
	ErrInputShape      = errors.NewKind("checker: malformed input: %s")
	ErrAnchorMissing   = errors.NewKind("checker: no anchor loaded for digest %q")
	ErrSemanticMismatch = errors.NewKind("checker: semantic mismatch: %s")
	ErrWitnessBroken   = errors.NewKind("checker: broken witness: %s")
	ErrPolicyViolation = errors.NewKind("checker: policy violation: %s")
	ErrResourceLimit   = errors.NewKind("checker: resource limit exceeded: %s")
	ErrIOFailure       = errors.NewKind("checker: I/O failure: %s")
)
