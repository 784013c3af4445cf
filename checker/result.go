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

import "github.com/josephjohncox/axiograph-sub002/cert"

// Result is the outcome of checking one certificate: its kind, whether it
// verified, a one-line summary for successful checks, and the error for
// failed ones.
type Result struct {
	Kind    cert.Kind
	OK      bool
	Summary string
	Err     error
}

// ExitCode maps a batch of Results to the checker's process exit code: 0
// if every certificate verified, 1 if any failed verification. Usage
// errors (malformed CLI args, unreadable files) are the caller's own exit
// code 2 and never flow through Results.
func ExitCode(results []Result) int {
	for _, r := range results {
		if !r.OK {
			return 1
		}
	}
	return 0
}
