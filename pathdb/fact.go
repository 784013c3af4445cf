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
	"strings"
	"sort"

	"github.com/josephjohncox/axiograph-sub002/internal/digest"
)

// FieldValue is one (field name, value entity name) pair of a reified
// tuple, in schema-declared field order before sorting.
type FieldValue struct {
	Field string
	Value string
}

// FactID computes the canonical, deterministic id of a reified tuple: the
// FNV1a-64 digest over "module|schema|instance|relation|(field,value)*" in
// schema-declared field order. Reorderings of fields that preserve the
// schema-declared order yield the same input, and since the caller is
// required to pass fields already in that order, any permutation a caller
// accidentally supplies is first restored to canonical order here so the
// id is a pure function of the field set, not of call-site ordering.
func FactID(module, schema, instance, relation string, fields []FieldValue, order []string) string {
	sorted := canonicalOrder(fields, order)

	var b strings.Builder
	b.WriteString(module)
	b.WriteByte('|')
	b.WriteString(schema)
	b.WriteByte('|')
	b.WriteString(instance)
	b.WriteByte('|')
	b.WriteString(relation)
	for _, fv := range sorted {
		b.WriteByte('|')
		b.WriteString(fv.Field)
		b.WriteByte('=')
		b.WriteString(fv.Value)
	}
	return digest.Hex(b.String())
}

// canonicalOrder reorders fields to match the schema-declared field order.
// If order is nil, fields are sorted lexicographically by field name as a
// fallback that is still a pure function of the field set.
func canonicalOrder(fields []FieldValue, order []string) []FieldValue {
	if order == nil {
		out := make([]FieldValue, len(fields))
		copy(out, fields)
		sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
		return out
	}

	byField := make(map[string]FieldValue, len(fields))
	for _, fv := range fields {
		byField[fv.Field] = fv
	}

	out := make([]FieldValue, 0, len(order))
	for _, f := range order {
		if fv, ok := byField[f]; ok {
			out = append(out, fv)
		}
	}
	return out
}
