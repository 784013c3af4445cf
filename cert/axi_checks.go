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

import "github.com/josephjohncox/axiograph-sub002/axi"

// AxiWellTypedProof summarizes a module's well-typedness: every relation
// row assigns a value to every declared field, and no field is assigned
// twice, expressed as counts the checker can recompute from the parsed
// module AST alone.
type AxiWellTypedProof struct {
	SchemaCount      int `json:"schema_count"`
	ObjectCount      int `json:"object_count"`
	RelationRowCount int `json:"relation_row_count"`
}

// AxiConstraintsOkProof summarizes that a module's theory constraints
// (key, functional) hold over its instance, as counts of constraints
// checked and rows scanned.
type AxiConstraintsOkProof struct {
	KeyConstraintsChecked        int `json:"key_constraints_checked"`
	FunctionalConstraintsChecked int `json:"functional_constraints_checked"`
	RowsScanned                  int `json:"rows_scanned"`
}

// EmitAxiWellTyped summarizes m's shape into an AxiWellTypedProof. It does
// not itself decide well-typedness — that judgment, and the counts' cross
// check, belongs to the checker, which recomputes both independently of
// whatever a prover claims here.
func EmitAxiWellTyped(m *axi.Module) AxiWellTypedProof {
	objectCount := 0
	for _, s := range m.Schemas {
		objectCount += len(s.Objects)
	}
	rowCount := 0
	for _, inst := range m.Instances {
		for _, rows := range inst.Relations {
			rowCount += len(rows)
		}
	}
	return AxiWellTypedProof{
		SchemaCount:      len(m.Schemas),
		ObjectCount:      objectCount,
		RelationRowCount: rowCount,
	}
}

// EmitAxiConstraintsOk summarizes the constraint-checking scope of m's
// theories. checked and scanned are supplied by the caller, which already
// ran the checks while building the module (e.g. during import).
func EmitAxiConstraintsOk(keyChecked, funcChecked, rowsScanned int) AxiConstraintsOkProof {
	return AxiConstraintsOkProof{
		KeyConstraintsChecked:        keyChecked,
		FunctionalConstraintsChecked: funcChecked,
		RowsScanned:                  rowsScanned,
	}
}
