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

import (
	"fmt"
	"sort"

	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// SnapshotV1 is the fixed instance name every exported snapshot is given.
const SnapshotV1 = "SnapshotV1"

// relFieldOrder is ExportSchema's "rel" relation field order, used both by
// ExportSnapshot and by RelationFactID so the two stay in lockstep.
var relFieldOrder = []string{"id", "type", "src", "dst", "confidence"}

// PathDBExportV1 is the canonical schema name every exported snapshot
// conforms to: a fixed set of relations describing entities, their
// attributes, relation edges, and equivalences, sufficient to reconstruct
// a pathdb.PathDB from an .axi module.
const PathDBExportV1 = "PathDBExportV1"

// ExportSchema returns the fixed PathDBExportV1 schema declaration shared
// by every exported snapshot.
func ExportSchema() *Schema {
	return &Schema{
		Name:    PathDBExportV1,
		Objects: []string{"Entity"},
		Relations: []RelationDecl{
			{Name: "entity", Fields: []FieldDecl{{Name: "id", Type: "String"}, {Name: "type", Type: "String"}}},
			{Name: "attr", Fields: []FieldDecl{{Name: "entity", Type: "String"}, {Name: "key", Type: "String"}, {Name: "value", Type: "String"}}},
			{Name: "rel", Fields: []FieldDecl{
				{Name: "id", Type: "String"}, {Name: "type", Type: "String"},
				{Name: "src", Type: "String"}, {Name: "dst", Type: "String"},
				{Name: "confidence", Type: "String"},
			}},
			{Name: "equiv", Fields: []FieldDecl{{Name: "a", Type: "String"}, {Name: "b", Type: "String"}, {Name: "kind", Type: "String"}}},
		},
	}
}

// RelationFactID computes the canonical fact id of relation r as it
// appears in r's owning PathDB's textual export — the same id an anchored
// axql path witness's AxiFactID must carry for checker re-verification to
// succeed.
func RelationFactID(r *pathdb.Relation, relTypeName string) string {
	fields := []pathdb.FieldValue{
		{Field: "id", Value: RelationName(r.ID)},
		{Field: "type", Value: relTypeName},
		{Field: "src", Value: EntityName(r.Src)},
		{Field: "dst", Value: EntityName(r.Dst)},
		{Field: "confidence", Value: r.Confidence.String()},
	}
	return pathdb.FactID("", PathDBExportV1, SnapshotV1, "rel", fields, relFieldOrder)
}

// EntityName returns the exported-instance object name for an entity id,
// e.g. e42. axql's witness generation uses the same convention so that
// axi_fact_id references resolve against the textual export.
func EntityName(id pathdb.EntityID) string { return fmt.Sprintf("e%d", id) }

// RelationName returns the exported-instance tuple name for a relation id.
func RelationName(id pathdb.RelationID) string { return fmt.Sprintf("r%d", id) }

// ExportSnapshot renders db's full content — entities, attributes,
// relations, and equivalences — as a SnapshotV1 instance of
// PathDBExportV1. Interned ids are resolved to their original strings so
// the exported module is self-contained text.
func ExportSnapshot(db *pathdb.PathDB) *Module {
	inst := &Instance{
		Name:      SnapshotV1,
		Of:        PathDBExportV1,
		Objects:   map[string][]string{},
		Relations: map[string][]RelationRow{},
	}

	n := db.EntityCount()
	objects := make([]string, 0, n)
	entityRows := make([]RelationRow, 0, n)
	var attrRows []RelationRow

	for i := 0; i < n; i++ {
		e := db.Entity(pathdb.EntityID(i))
		if e == nil {
			continue
		}
		name := EntityName(e.ID)
		objects = append(objects, name)
		entityRows = append(entityRows, RelationRow{Fields: []pathdbFieldValue{
			{Field: "id", Value: name},
			{Field: "type", Value: db.Interner.LookupString(e.TypeID)},
		}})

		keys := make([]uint32, 0, len(e.Attrs))
		for k := range e.Attrs {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			attrRows = append(attrRows, RelationRow{Fields: []pathdbFieldValue{
				{Field: "entity", Value: name},
				{Field: "key", Value: db.Interner.LookupString(k)},
				{Field: "value", Value: db.Interner.LookupString(e.Attrs[k])},
			}})
		}
	}

	relCount := db.RelationCount()
	relRows := make([]RelationRow, 0, relCount)
	for i := 0; i < relCount; i++ {
		r := db.Relation(pathdb.RelationID(i))
		if r == nil {
			continue
		}
		relRows = append(relRows, RelationRow{Fields: []pathdbFieldValue{
			{Field: "id", Value: RelationName(r.ID)},
			{Field: "type", Value: db.Interner.LookupString(r.RelType)},
			{Field: "src", Value: EntityName(r.Src)},
			{Field: "dst", Value: EntityName(r.Dst)},
			{Field: "confidence", Value: r.Confidence.String()},
		}})
	}

	var equivRows []RelationRow
	for _, eq := range db.Equivalences() {
		equivRows = append(equivRows, RelationRow{Fields: []pathdbFieldValue{
			{Field: "a", Value: EntityName(eq.A)},
			{Field: "b", Value: EntityName(eq.B)},
			{Field: "kind", Value: db.Interner.LookupString(eq.Kind)},
		}})
	}

	inst.Objects["Entity"] = objects
	inst.ObjectOrder = []string{"Entity"}
	inst.Relations["entity"] = entityRows
	inst.Relations["attr"] = attrRows
	inst.Relations["rel"] = relRows
	inst.Relations["equiv"] = equivRows
	inst.RelationOrder = []string{"entity", "attr", "rel", "equiv"}

	return &Module{
		Schemas:   []*Schema{ExportSchema()},
		Instances: []*Instance{inst},
	}
}
