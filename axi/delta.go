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

import "sort"

// SchemaMorphism maps a target schema into a source schema: every target
// object type is sent to a source object type (Objects), and every target
// relation is sent to a composable path of source binary relations
// (Arrows). DeltaF pulls an instance of Source back along this morphism to
// produce an instance of Target — the functorial data migration of
// spec.md's delta_f_v1 certificate kind.
type SchemaMorphism struct {
	Source, Target *Schema
	Objects        map[string]string   // target object type -> source object type
	Arrows         map[string][]string // target relation name -> path of source relation names
}

// DeltaF computes Δ_F(src): for each target object type, its members are
// the source instance's members of the image object type; for each target
// relation, its rows are the relational composition of the source
// relations along the arrow image's path, renamed to the target relation's
// declared field names. Every relation on the path, and every target
// relation, must be binary (exactly two fields) — composition is join
// along shared endpoints.
func DeltaF(m *SchemaMorphism, src *Instance) (*Instance, error) {
	out := &Instance{
		Name:      src.Name + "_deltaF",
		Of:        m.Target.Name,
		Objects:   map[string][]string{},
		Relations: map[string][]RelationRow{},
	}

	for _, objType := range m.Target.Objects {
		srcType, ok := m.Objects[objType]
		if !ok {
			return nil, ErrUnknownSchema.New(objType)
		}
		out.Objects[objType] = append([]string(nil), src.Objects[srcType]...)
		out.ObjectOrder = append(out.ObjectOrder, objType)
	}

	srcRelDecls := make(map[string]RelationDecl, len(m.Source.Relations))
	for _, r := range m.Source.Relations {
		srcRelDecls[r.Name] = r
	}

	for _, rel := range m.Target.Relations {
		if len(rel.Fields) != 2 {
			return nil, ErrUnknownField.New(rel.Name, "delta_f requires binary target relations")
		}
		path, ok := m.Arrows[rel.Name]
		if !ok || len(path) == 0 {
			return nil, ErrUnknownRelation.New(rel.Name, m.Target.Name)
		}

		pairs, err := composePath(path, srcRelDecls, src)
		if err != nil {
			return nil, err
		}

		rows := make([]RelationRow, 0, len(pairs))
		for _, p := range pairs {
			rows = append(rows, RelationRow{Fields: []pathdbFieldValue{
				{Field: rel.Fields[0].Name, Value: p[0]},
				{Field: rel.Fields[1].Name, Value: p[1]},
			}})
		}
		out.Relations[rel.Name] = rows
		out.RelationOrder = append(out.RelationOrder, rel.Name)
	}

	return out, nil
}

// composePath joins the binary source relations named by path end to end,
// returning the resulting set of (start, end) pairs, deduplicated and
// sorted for determinism.
func composePath(path []string, decls map[string]RelationDecl, src *Instance) ([][2]string, error) {
	first, err := binaryPairs(path[0], decls, src)
	if err != nil {
		return nil, err
	}
	acc := first
	for _, name := range path[1:] {
		next, err := binaryPairs(name, decls, src)
		if err != nil {
			return nil, err
		}
		byStart := map[string][]string{}
		for _, p := range next {
			byStart[p[0]] = append(byStart[p[0]], p[1])
		}
		var joined [][2]string
		for _, p := range acc {
			for _, end := range byStart[p[1]] {
				joined = append(joined, [2]string{p[0], end})
			}
		}
		acc = joined
	}

	seen := map[[2]string]bool{}
	var out [][2]string
	for _, p := range acc {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out, nil
}

func binaryPairs(relName string, decls map[string]RelationDecl, src *Instance) ([][2]string, error) {
	decl, ok := decls[relName]
	if !ok || len(decl.Fields) != 2 {
		return nil, ErrUnknownRelation.New(relName, "<delta_f arrow path>")
	}
	rows := src.Relations[relName]
	out := make([][2]string, 0, len(rows))
	for _, row := range rows {
		byField := rowByField(row)
		out = append(out, [2]string{byField[decl.Fields[0].Name], byField[decl.Fields[1].Name]})
	}
	return out, nil
}
