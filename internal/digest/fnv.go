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

// Package digest centralizes the FNV1a-64 content-addressing scheme used
// across pathdb fact ids, .axi digests, and snapshot/accepted-plane ids, so
// every content-address in the system is computed the same way.
package digest

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Sum64 returns the raw FNV1a-64 sum of s.
func Sum64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Hex returns the "fnv1a64:<16 hex digits>" rendering used throughout
// certificate envelopes and fact ids.
func Hex(s string) string {
	return fmt.Sprintf("fnv1a64:%016x", Sum64(s))
}

// OrderedSet returns the Hex digest over the lexicographically sorted,
// newline-joined set of items, used for accepted-plane snapshot ids (the
// digest of the ordered set of "name=digest" module pairs) and similar
// set-of-strings content addresses. Duplicate items are folded.
func OrderedSet(items []string) string {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	sorted := make([]string, 0, len(set))
	for it := range set {
		sorted = append(sorted, it)
	}
	sort.Strings(sorted)

	joined := ""
	for i, it := range sorted {
		if i > 0 {
			joined += "\n"
		}
		joined += it
	}
	return Hex(joined)
}
