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

import "github.com/josephjohncox/axiograph-sub002/pathdb"

// Import materializes a single-schema, single-instance module into a fresh
// PathDB, returning the store and a registry mapping every declared object
// name to the entity id it was assigned. Binary relations (exactly two
// declared fields) become direct PathDB edges labeled by the relation
// name, so RPQ path atoms can traverse them without indirection. Relations
// of any other arity are reified: one fact entity per row, carrying an
// axi_fact_id attribute, connected to each field's value entity by an edge
// labeled with the field name — the per-field-edge reification invariant
// of the data model.
func Import(m *Module) (*pathdb.PathDB, map[string]pathdb.EntityID, error) {
	if len(m.Schemas) != 1 {
		return nil, nil, ErrUnknownSchema.New("<module with != 1 schema>")
	}
	if len(m.Instances) != 1 {
		return nil, nil, ErrUnknownSchema.New("<module with != 1 instance>")
	}
	schema := m.Schemas[0]
	inst := m.Instances[0]
	if inst.Of != schema.Name {
		return nil, nil, ErrUnknownSchema.New(inst.Of)
	}

	db := pathdb.New()
	names := map[string]pathdb.EntityID{}

	for _, objType := range inst.ObjectOrder {
		typeID := db.Interner.InternString(objType)
		for _, member := range inst.Objects[objType] {
			if _, exists := names[member]; exists {
				continue
			}
			names[member] = db.AddEntity(typeID, nil)
		}
	}

	for _, st := range schema.Subtypes {
		db.AddSubtype(db.Interner.InternString(st.Sub), db.Interner.InternString(st.Super))
	}

	relDecls := make(map[string]RelationDecl, len(schema.Relations))
	for _, r := range schema.Relations {
		relDecls[r.Name] = r
	}

	for _, relName := range inst.RelationOrder {
		decl, ok := relDecls[relName]
		if !ok {
			return nil, nil, ErrUnknownRelation.New(relName, schema.Name)
		}
		rows := inst.Relations[relName]

		if len(decl.Fields) == 2 {
			relTypeID := db.Interner.InternString(relName)
			for _, row := range rows {
				byField := rowByField(row)
				src, ok := names[byField[decl.Fields[0].Name]]
				if !ok {
					return nil, nil, ErrUnknownField.New(decl.Fields[0].Name, relName)
				}
				dst, ok := names[byField[decl.Fields[1].Name]]
				if !ok {
					return nil, nil, ErrUnknownField.New(decl.Fields[1].Name, relName)
				}
				if _, err := db.AddRelation(relTypeID, src, dst, pathdb.Certain, nil); err != nil {
					return nil, nil, err
				}
			}
			continue
		}

		factTypeID := db.Interner.InternString(relName)
		order := decl.FieldOrder()
		for _, row := range rows {
			byField := rowByField(row)
			fields := make([]pathdb.FieldValue, 0, len(row.Fields))
			for _, fv := range row.Fields {
				fields = append(fields, pathdb.FieldValue{Field: fv.Field, Value: fv.Value})
			}
			factID := pathdb.FactID("", schema.Name, inst.Name, relName, fields, order)

			attrs := map[uint32]uint32{
				db.Interner.InternString("axi_fact_id"): db.Interner.InternString(factID),
			}
			factEntity := db.AddEntity(factTypeID, attrs)

			for _, fd := range decl.Fields {
				val, ok := byField[fd.Name]
				if !ok {
					return nil, nil, ErrUnknownField.New(fd.Name, relName)
				}
				target, ok := names[val]
				if !ok {
					return nil, nil, ErrUnknownField.New(val, relName)
				}
				fieldRelType := db.Interner.InternString(fd.Name)
				if _, err := db.AddRelation(fieldRelType, factEntity, target, pathdb.Certain, nil); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	return db, names, nil
}

func rowByField(row RelationRow) map[string]string {
	out := make(map[string]string, len(row.Fields))
	for _, fv := range row.Fields {
		out[fv.Field] = fv.Value
	}
	return out
}
