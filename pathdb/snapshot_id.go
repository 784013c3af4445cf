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

import (
	"strconv"
	"strings"

	"github.com/josephjohncox/axiograph-sub002/internal/digest"
)

// SnapshotID computes a PathDB snapshot id by folding the accepted-plane
// snapshot id it extends together with the ordered list of WAL op
// references applied on top of it (spec invariant: "snapshot id =
// content"). Two PathDBs built from the same accepted snapshot and the
// same WAL op sequence always receive the same id, independent of how the
// ops were internally materialized.
func SnapshotID(acceptedSnapshotID string, walOps []string) string {
	parts := make([]string, 0, len(walOps)+1)
	parts = append(parts, "accepted:"+acceptedSnapshotID)
	for i, op := range walOps {
		parts = append(parts, "op:"+strconv.Itoa(i)+":"+op)
	}
	return digest.Hex(strings.Join(parts, "\x1f"))
}
