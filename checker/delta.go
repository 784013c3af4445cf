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

// checkDeltaF reconstructs the schema morphism a delta_f_v1 certificate
// claims, recomputes axi.DeltaF over the anchor's own source instance, and
// requires the result to structurally equal the claimed one.
func checkDeltaF(idx *anchorIndex, proof *cert.DeltaFProof) error {
	source := findSchema(idx.Module, proof.SourceSchema)
	if source == nil {
		return ErrInputShape.New(fmt.Sprintf("anchor declares no schema %q", proof.SourceSchema))
	}
	target := findSchema(idx.Module, proof.TargetSchema)
	if target == nil {
		return ErrInputShape.New(fmt.Sprintf("anchor declares no schema %q", proof.TargetSchema))
	}

	srcInst := findInstanceOf(idx.Module, proof.SourceSchema)
	if srcInst == nil {
		return ErrInputShape.New(fmt.Sprintf("anchor declares no instance of %q", proof.SourceSchema))
	}

	morphism := &axi.SchemaMorphism{
		Source:  source,
		Target:  target,
		Objects: proof.ObjectImage,
		Arrows:  proof.ArrowImage,
	}

	got, err := axi.DeltaF(morphism, srcInst)
	if err != nil {
		return ErrSemanticMismatch.New(err.Error())
	}

	gotResult := deltaResultJSON(got)
	if !deltaResultEqual(gotResult, proof.Result) {
		return ErrSemanticMismatch.New(fmt.Sprintf("recomputed pullback %v does not match claimed %v", gotResult, proof.Result))
	}
	return nil
}

func findSchema(m *axi.Module, name string) *axi.Schema {
	for _, s := range m.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func findInstanceOf(m *axi.Module, schemaName string) *axi.Instance {
	for _, inst := range m.Instances {
		if inst.Of == schemaName {
			return inst
		}
	}
	return nil
}

func deltaResultJSON(inst *axi.Instance) map[string][][2]string {
	out := make(map[string][][2]string, len(inst.Relations))
	for relName, rows := range inst.Relations {
		pairs := make([][2]string, 0, len(rows))
		for _, row := range rows {
			var a, b string
			if len(row.Fields) > 0 {
				a = row.Fields[0].Value
			}
			if len(row.Fields) > 1 {
				b = row.Fields[1].Value
			}
			pairs = append(pairs, [2]string{a, b})
		}
		out[relName] = pairs
	}
	return out
}

func deltaResultEqual(got, want map[string][][2]string) bool {
	if len(got) != len(want) {
		return false
	}
	for rel, gotRows := range got {
		wantRows, ok := want[rel]
		if !ok || len(gotRows) != len(wantRows) {
			return false
		}
		for i := range gotRows {
			if gotRows[i] != wantRows[i] {
				return false
			}
		}
	}
	return true
}
