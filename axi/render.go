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
	"strings"

	"github.com/josephjohncox/axiograph-sub002/pathalg"
)

// Render serializes m into canonical .axi v1 text. Render is deterministic:
// two structurally equal modules always render to byte-identical text, and
// the declaration order recorded on Module/Instance is preserved verbatim
// rather than being re-sorted — canonical means stable, not alphabetized.
func Render(m *Module) string {
	var b strings.Builder
	for _, s := range m.Schemas {
		renderSchema(&b, s)
	}
	for _, th := range m.Theories {
		renderTheory(&b, th)
	}
	for _, inst := range m.Instances {
		renderInstance(&b, inst)
	}
	return b.String()
}

func renderSchema(b *strings.Builder, s *Schema) {
	fmt.Fprintf(b, "schema %s {\n", s.Name)
	for _, o := range s.Objects {
		fmt.Fprintf(b, "  object %s\n", o)
	}
	for _, st := range s.Subtypes {
		fmt.Fprintf(b, "  subtype %s < %s\n", st.Sub, st.Super)
	}
	for _, r := range s.Relations {
		fmt.Fprintf(b, "  relation %s(", r.Name)
		for i, f := range r.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s: %s", f.Name, f.Type)
		}
		b.WriteString(")\n")
	}
	b.WriteString("}\n")
}

func renderTheory(b *strings.Builder, th *Theory) {
	fmt.Fprintf(b, "theory %s on %s {\n", th.Name, th.On)
	for _, k := range th.KeyConstraints {
		fmt.Fprintf(b, "  constraint key %s(%s)\n", k.Relation, k.Field)
	}
	for _, f := range th.FunctionalConstraints {
		fmt.Fprintf(b, "  constraint functional %s.%s -> %s.%s\n", f.Relation, f.FromField, f.Relation, f.ToField)
	}
	for _, rw := range th.Rewrites {
		fmt.Fprintf(b, "  rewrite %s { vars: %s; lhs: %s; rhs: %s; direction: %s }\n",
			rw.Name, strings.Join(rw.Vars, ", "), renderPathExpr(rw.LHS), renderPathExpr(rw.RHS), rw.Direction)
	}
	b.WriteString("}\n")
}

func renderPathExpr(e *pathalg.Expr[string]) string {
	switch e.Kind {
	case pathalg.KindRefl:
		return fmt.Sprintf("refl(%s)", e.Obj)
	case pathalg.KindStep:
		return fmt.Sprintf("step(%s, %s, %s)", e.Obj, e.Rel, e.Dst)
	case pathalg.KindTrans:
		return fmt.Sprintf("trans(%s, %s)", renderPathExpr(e.Left), renderPathExpr(e.Right))
	case pathalg.KindInv:
		return fmt.Sprintf("inv(%s)", renderPathExpr(e.Inner))
	}
	return "<invalid>"
}

func renderInstance(b *strings.Builder, inst *Instance) {
	fmt.Fprintf(b, "instance %s of %s {\n", inst.Name, inst.Of)
	for _, name := range inst.ObjectOrder {
		fmt.Fprintf(b, "  %s = { %s }\n", name, strings.Join(inst.Objects[name], ", "))
	}
	for _, name := range inst.RelationOrder {
		rows := inst.Relations[name]
		parts := make([]string, len(rows))
		for i, row := range rows {
			fields := make([]string, len(row.Fields))
			for j, fv := range row.Fields {
				fields[j] = fmt.Sprintf("%s=%s", fv.Field, fv.Value)
			}
			parts[i] = fmt.Sprintf("(%s)", strings.Join(fields, ", "))
		}
		fmt.Fprintf(b, "  %s = { %s }\n", name, strings.Join(parts, ", "))
	}
	b.WriteString("}\n")
}
