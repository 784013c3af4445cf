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

// Package axi implements the canonical textual codec: the .axi v1 module
// grammar (schema/theory/instance), a recursive-descent parser, a
// deterministic renderer, and the FNV1a-64 digest that anchors
// certificates to a specific textual input.
package axi

import "github.com/josephjohncox/axiograph-sub002/pathalg"

// Module is the root AST node: zero or more schemas, theories over those
// schemas, and instances of those schemas.
type Module struct {
	Schemas   []*Schema
	Theories  []*Theory
	Instances []*Instance
}

// Schema declares objects, subtype edges, and relation signatures.
type Schema struct {
	Name      string
	Objects   []string
	Subtypes  []SubtypeDecl
	Relations []RelationDecl
}

// SubtypeDecl is "subtype Sub < Super".
type SubtypeDecl struct {
	Sub, Super string
}

// RelationDecl is "relation Name(f1: T1, ...)".
type RelationDecl struct {
	Name   string
	Fields []FieldDecl
}

// FieldDecl is one declared field of a relation signature, in declaration
// order — this order is the canonical field order used by fact ids.
type FieldDecl struct {
	Name string
	Type string
}

// FieldOrder returns the declared field names in order, for use with
// pathdb.FactID.
func (r RelationDecl) FieldOrder() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Name
	}
	return out
}

// Theory declares constraints and rewrite rules over a named schema.
type Theory struct {
	Name string
	On   string

	KeyConstraints        []KeyConstraint
	FunctionalConstraints []FunctionalConstraint
	Rewrites              []RewriteDecl
}

// KeyConstraint is "constraint key R(f)".
type KeyConstraint struct {
	Relation string
	Field    string
}

// FunctionalConstraint is "constraint functional R.a -> R.b".
type FunctionalConstraint struct {
	Relation   string
	FromField  string
	ToField    string
}

// RewriteDecl is a theory-declared rewrite rule, parsed into a name-based
// path expression pair over pathalg.Expr[string].
type RewriteDecl struct {
	Name      string
	Vars      []string
	LHS, RHS  *pathalg.Expr[string]
	Direction pathalg.Direction
}

// Instance assigns concrete values to a schema's objects and relations.
type Instance struct {
	Name string
	Of   string

	// Objects maps a declared object type name to its member entity
	// names, e.g. "Entity" -> ["e0", "e1", "e2"].
	Objects map[string][]string
	// ObjectOrder preserves the declaration order of Objects' keys for
	// deterministic rendering.
	ObjectOrder []string

	// Relations maps a declared relation name to its rows.
	Relations map[string][]RelationRow
	// RelationOrder preserves the declaration order of Relations' keys.
	RelationOrder []string
}

// RelationRow is one tuple of a relation assignment: field name -> value
// name, plus the declared field order for canonical rendering.
type RelationRow struct {
	Fields []pathdbFieldValue
}

type pathdbFieldValue struct {
	Field string
	Value string
}
