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

// checkAxiWellTyped recomputes well-typedness directly from idx.Module:
// every relation row must assign a value to every field its schema
// declares, exactly once each, and the claimed shape counts must match
// what the anchor actually contains.
func checkAxiWellTyped(idx *anchorIndex, proof *cert.AxiWellTypedProof) error {
	for _, schema := range idx.Module.Schemas {
		decls := make(map[string]axi.RelationDecl, len(schema.Relations))
		for _, r := range schema.Relations {
			decls[r.Name] = r
		}
		for _, inst := range idx.Module.Instances {
			if inst.Of != schema.Name {
				continue
			}
			for relName, rows := range inst.Relations {
				decl, ok := decls[relName]
				if !ok {
					return ErrSemanticMismatch.New(fmt.Sprintf("instance %q assigns undeclared relation %q", inst.Name, relName))
				}
				wantFields := make(map[string]bool, len(decl.Fields))
				for _, f := range decl.Fields {
					wantFields[f.Name] = true
				}
				for i, row := range rows {
					seen := make(map[string]bool, len(row.Fields))
					for _, fv := range row.Fields {
						if !wantFields[fv.Field] {
							return ErrSemanticMismatch.New(fmt.Sprintf("%s row %d: field %q not declared on relation %q", relName, i, fv.Field, relName))
						}
						if seen[fv.Field] {
							return ErrSemanticMismatch.New(fmt.Sprintf("%s row %d: field %q assigned twice", relName, i, fv.Field))
						}
						seen[fv.Field] = true
					}
					if len(seen) != len(wantFields) {
						return ErrSemanticMismatch.New(fmt.Sprintf("%s row %d: assigns %d of %d declared fields", relName, i, len(seen), len(wantFields)))
					}
				}
			}
		}
	}

	got := cert.EmitAxiWellTyped(idx.Module)
	if got != *proof {
		return ErrSemanticMismatch.New(fmt.Sprintf("recomputed shape %+v does not match claimed %+v", got, *proof))
	}
	return nil
}

// checkAxiConstraintsOk re-verifies every key and functional constraint
// declared by idx.Module's theories over their instances, and requires the
// claimed scope counts to match what was actually scanned.
func checkAxiConstraintsOk(idx *anchorIndex, proof *cert.AxiConstraintsOkProof) error {
	instancesOf := func(schemaName string) []*axi.Instance {
		var out []*axi.Instance
		for _, inst := range idx.Module.Instances {
			if inst.Of == schemaName {
				out = append(out, inst)
			}
		}
		return out
	}

	rowsScanned := 0
	for _, th := range idx.Module.Theories {
		for _, inst := range instancesOf(th.On) {
			for _, kc := range th.KeyConstraints {
				rows := inst.Relations[kc.Relation]
				seen := map[string]int{}
				for i, row := range rows {
					rowsScanned++
					val, ok := fieldValue(row, kc.Field)
					if !ok {
						return ErrSemanticMismatch.New(fmt.Sprintf("instance %q relation %q row %d: no value for key field %q", inst.Name, kc.Relation, i, kc.Field))
					}
					if prev, dup := seen[val]; dup {
						return ErrSemanticMismatch.New(fmt.Sprintf("instance %q relation %q: key constraint on %q violated by rows %d and %d (value %q)", inst.Name, kc.Relation, kc.Field, prev, i, val))
					}
					seen[val] = i
				}
			}
			for _, fc := range th.FunctionalConstraints {
				rows := inst.Relations[fc.Relation]
				seen := map[string]string{}
				for i, row := range rows {
					rowsScanned++
					from, ok := fieldValue(row, fc.FromField)
					if !ok {
						return ErrSemanticMismatch.New(fmt.Sprintf("instance %q relation %q row %d: no value for field %q", inst.Name, fc.Relation, i, fc.FromField))
					}
					to, ok := fieldValue(row, fc.ToField)
					if !ok {
						return ErrSemanticMismatch.New(fmt.Sprintf("instance %q relation %q row %d: no value for field %q", inst.Name, fc.Relation, i, fc.ToField))
					}
					if prevTo, dup := seen[from]; dup && prevTo != to {
						return ErrSemanticMismatch.New(fmt.Sprintf("instance %q relation %q: functional constraint %s->%s violated at row %d (%s=%q maps to both %q and %q)", inst.Name, fc.Relation, fc.FromField, fc.ToField, i, fc.FromField, from, prevTo, to))
					}
					seen[from] = to
				}
			}
		}
	}

	keyChecked, funcChecked := 0, 0
	for _, th := range idx.Module.Theories {
		keyChecked += len(th.KeyConstraints)
		funcChecked += len(th.FunctionalConstraints)
	}
	got := cert.EmitAxiConstraintsOk(keyChecked, funcChecked, rowsScanned)
	if got != *proof {
		return ErrSemanticMismatch.New(fmt.Sprintf("recomputed scope %+v does not match claimed %+v", got, *proof))
	}
	return nil
}

func fieldValue(row axi.RelationRow, field string) (string, bool) {
	for _, fv := range row.Fields {
		if fv.Field == field {
			return fv.Value, true
		}
	}
	return "", false
}
