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

package axi

import "github.com/josephjohncox/axiograph-sub002/internal/digest"

// ModuleDigest returns the content address of m: render it to canonical
// text and hash that text. Because Render always produces the same bytes
// for structurally equal modules, ModuleDigest is stable across
// parse/render round trips.
func ModuleDigest(m *Module) string {
	return digest.Hex(Render(m))
}

// Digest normalizes arbitrary (but syntactically valid) .axi source text
// by parsing and re-rendering it before hashing, so that two textually
// different but structurally identical inputs (differing only in
// whitespace or declaration spacing) produce the same digest.
func Digest(src string) (string, error) {
	m, err := Parse(src)
	if err != nil {
		return "", err
	}
	return ModuleDigest(m), nil
}
