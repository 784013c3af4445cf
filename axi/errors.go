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

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrSyntax wraps a lexer/parser failure with source position context.
	ErrSyntax = errors.NewKind("axi: syntax error at %s: %s")

	// ErrUnknownSchema is returned when a theory or instance references a
	// schema name that was never declared in the module.
	ErrUnknownSchema = errors.NewKind("axi: unknown schema %q")

	// ErrUnknownRelation is returned when an instance or constraint
	// references a relation not declared on its schema.
	ErrUnknownRelation = errors.NewKind("axi: unknown relation %q on schema %q")

	// ErrUnknownField is returned when a row assignment references a field
	// not declared on the relation.
	ErrUnknownField = errors.NewKind("axi: unknown field %q on relation %q")

	// ErrDuplicateName is returned when a schema, theory, or instance name
	// is declared twice in the same module.
	ErrDuplicateName = errors.NewKind("axi: duplicate declaration of %q")
)
