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

	"github.com/josephjohncox/axiograph-sub002/pathalg"
)

// parser is a hand-written recursive-descent parser for the .axi v1
// grammar:
//
//	module   := {schema | theory | instance}
//	schema   := "schema" ident "{" {object | subtype | relation} "}"
//	object   := "object" ident
//	subtype  := "subtype" ident "<" ident
//	relation := "relation" ident "(" [field {"," field}] ")"
//	field    := ident ":" ident
//	theory   := "theory" ident "on" ident "{" {constraint | rewrite} "}"
//	rewrite  := "rewrite" ident "{" "vars" ":" ident {"," ident} ";"
//	              "lhs" ":" pathexpr ";" "rhs" ":" pathexpr
//	              [";" "direction" ":" ident] "}"
//	pathexpr := "refl" "(" ident ")"
//	          | "step" "(" ident "," ident "," ident ")"
//	          | "trans" "(" pathexpr "," pathexpr ")"
//	          | "inv" "(" pathexpr ")"
//	instance := "instance" ident "of" ident "{" {assignment} "}"
//	assignment := ident "=" "{" [assignval {"," assignval}] "}"
//	assignval := ident | row
//	row      := "(" ident "=" ident {"," ident "=" ident} ")"
type parser struct {
	l *lexer
}

// Parse parses canonical .axi source text into a Module.
func Parse(src string) (*Module, error) {
	p := &parser{l: newLexer(src)}
	m := &Module{}

	for !p.l.atEOF() {
		t, _ := p.l.peek()
		switch t.text {
		case "schema":
			s, err := p.parseSchema()
			if err != nil {
				return nil, err
			}
			m.Schemas = append(m.Schemas, s)
		case "theory":
			th, err := p.parseTheory()
			if err != nil {
				return nil, err
			}
			m.Theories = append(m.Theories, th)
		case "instance":
			inst, err := p.parseInstance()
			if err != nil {
				return nil, err
			}
			m.Instances = append(m.Instances, inst)
		default:
			return nil, p.errAt(t, "expected schema, theory, or instance")
		}
	}
	return m, nil
}

func (p *parser) errAt(t token, msg string) error {
	return ErrSyntax.New(t.pos.String(), msg)
}

func (p *parser) expect(text string) (token, error) {
	t, ok := p.l.next()
	if !ok {
		return token{}, ErrSyntax.New("<eof>", fmt.Sprintf("expected %q", text))
	}
	if t.text != text {
		return token{}, p.errAt(t, fmt.Sprintf("expected %q, got %q", text, t.text))
	}
	return t, nil
}

func (p *parser) ident() (string, error) {
	t, ok := p.l.next()
	if !ok {
		return "", ErrSyntax.New("<eof>", "expected identifier")
	}
	return t.text, nil
}

func (p *parser) peekIs(text string) bool {
	t, ok := p.l.peek()
	return ok && t.text == text
}

func (p *parser) parseSchema() (*Schema, error) {
	if _, err := p.expect("schema"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	s := &Schema{Name: name}
	for !p.peekIs("}") {
		t, ok := p.l.next()
		if !ok {
			return nil, ErrSyntax.New("<eof>", "unterminated schema block")
		}
		switch t.text {
		case "object":
			n, err := p.ident()
			if err != nil {
				return nil, err
			}
			s.Objects = append(s.Objects, n)
		case "subtype":
			sub, err := p.ident()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect("<"); err != nil {
				return nil, err
			}
			super, err := p.ident()
			if err != nil {
				return nil, err
			}
			s.Subtypes = append(s.Subtypes, SubtypeDecl{Sub: sub, Super: super})
		case "relation":
			rel, err := p.parseRelationDecl()
			if err != nil {
				return nil, err
			}
			s.Relations = append(s.Relations, rel)
		default:
			return nil, p.errAt(t, "expected object, subtype, or relation")
		}
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) parseRelationDecl() (RelationDecl, error) {
	name, err := p.ident()
	if err != nil {
		return RelationDecl{}, err
	}
	if _, err := p.expect("("); err != nil {
		return RelationDecl{}, err
	}
	rel := RelationDecl{Name: name}
	for !p.peekIs(")") {
		fname, err := p.ident()
		if err != nil {
			return RelationDecl{}, err
		}
		if _, err := p.expect(":"); err != nil {
			return RelationDecl{}, err
		}
		ftype, err := p.ident()
		if err != nil {
			return RelationDecl{}, err
		}
		rel.Fields = append(rel.Fields, FieldDecl{Name: fname, Type: ftype})
		if p.peekIs(",") {
			p.l.next()
		}
	}
	if _, err := p.expect(")"); err != nil {
		return RelationDecl{}, err
	}
	return rel, nil
}

func (p *parser) parseTheory() (*Theory, error) {
	if _, err := p.expect("theory"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("on"); err != nil {
		return nil, err
	}
	on, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	th := &Theory{Name: name, On: on}
	for !p.peekIs("}") {
		t, ok := p.l.next()
		if !ok {
			return nil, ErrSyntax.New("<eof>", "unterminated theory block")
		}
		switch t.text {
		case "constraint":
			kind, err := p.ident()
			if err != nil {
				return nil, err
			}
			switch kind {
			case "key":
				rel, err := p.ident()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect("("); err != nil {
					return nil, err
				}
				field, err := p.ident()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(")"); err != nil {
					return nil, err
				}
				th.KeyConstraints = append(th.KeyConstraints, KeyConstraint{Relation: rel, Field: field})
			case "functional":
				fromRel, err := p.ident()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect("."); err != nil {
					return nil, err
				}
				fromField, err := p.ident()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect("-"); err != nil {
					return nil, err
				}
				if _, err := p.expect(">"); err != nil {
					return nil, err
				}
				toRel, err := p.ident()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect("."); err != nil {
					return nil, err
				}
				toField, err := p.ident()
				if err != nil {
					return nil, err
				}
				if toRel != fromRel {
					return nil, p.errAt(t, "functional constraint must be within a single relation")
				}
				th.FunctionalConstraints = append(th.FunctionalConstraints, FunctionalConstraint{
					Relation: fromRel, FromField: fromField, ToField: toField,
				})
			default:
				return nil, p.errAt(t, "expected key or functional")
			}
		case "rewrite":
			rw, err := p.parseRewrite()
			if err != nil {
				return nil, err
			}
			th.Rewrites = append(th.Rewrites, rw)
		default:
			return nil, p.errAt(t, "expected constraint or rewrite")
		}
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return th, nil
}

func (p *parser) parseRewrite() (RewriteDecl, error) {
	name, err := p.ident()
	if err != nil {
		return RewriteDecl{}, err
	}
	if _, err := p.expect("{"); err != nil {
		return RewriteDecl{}, err
	}
	rw := RewriteDecl{Name: name, Direction: pathalg.DirectionForward}

	if _, err := p.expect("vars"); err != nil {
		return RewriteDecl{}, err
	}
	if _, err := p.expect(":"); err != nil {
		return RewriteDecl{}, err
	}
	for {
		v, err := p.ident()
		if err != nil {
			return RewriteDecl{}, err
		}
		rw.Vars = append(rw.Vars, v)
		if p.peekIs(",") {
			p.l.next()
			continue
		}
		break
	}
	if _, err := p.expect(";"); err != nil {
		return RewriteDecl{}, err
	}

	if _, err := p.expect("lhs"); err != nil {
		return RewriteDecl{}, err
	}
	if _, err := p.expect(":"); err != nil {
		return RewriteDecl{}, err
	}
	lhs, err := p.parsePathExpr()
	if err != nil {
		return RewriteDecl{}, err
	}
	rw.LHS = lhs
	if _, err := p.expect(";"); err != nil {
		return RewriteDecl{}, err
	}

	if _, err := p.expect("rhs"); err != nil {
		return RewriteDecl{}, err
	}
	if _, err := p.expect(":"); err != nil {
		return RewriteDecl{}, err
	}
	rhs, err := p.parsePathExpr()
	if err != nil {
		return RewriteDecl{}, err
	}
	rw.RHS = rhs

	if p.peekIs(";") {
		p.l.next()
		if _, err := p.expect("direction"); err != nil {
			return RewriteDecl{}, err
		}
		if _, err := p.expect(":"); err != nil {
			return RewriteDecl{}, err
		}
		dir, err := p.ident()
		if err != nil {
			return RewriteDecl{}, err
		}
		rw.Direction = pathalg.Direction(dir)
	}

	if _, err := p.expect("}"); err != nil {
		return RewriteDecl{}, err
	}
	return rw, nil
}

func (p *parser) parsePathExpr() (*pathalg.Expr[string], error) {
	t, ok := p.l.next()
	if !ok {
		return nil, ErrSyntax.New("<eof>", "expected path expression")
	}
	switch t.text {
	case "refl":
		if _, err := p.expect("("); err != nil {
			return nil, err
		}
		obj, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return pathalg.Refl(obj), nil
	case "step":
		if _, err := p.expect("("); err != nil {
			return nil, err
		}
		obj, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
		rel, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
		dst, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return pathalg.Step(obj, rel, dst), nil
	case "trans":
		if _, err := p.expect("("); err != nil {
			return nil, err
		}
		left, err := p.parsePathExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(","); err != nil {
			return nil, err
		}
		right, err := p.parsePathExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return pathalg.Trans(left, right), nil
	case "inv":
		if _, err := p.expect("("); err != nil {
			return nil, err
		}
		inner, err := p.parsePathExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return pathalg.Inv(inner), nil
	}
	return nil, p.errAt(t, "expected refl, step, trans, or inv")
}

func (p *parser) parseInstance() (*Instance, error) {
	if _, err := p.expect("instance"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("of"); err != nil {
		return nil, err
	}
	of, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	inst := &Instance{
		Name:      name,
		Of:        of,
		Objects:   map[string][]string{},
		Relations: map[string][]RelationRow{},
	}
	for !p.peekIs("}") {
		lhsName, err := p.ident()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("="); err != nil {
			return nil, err
		}
		if _, err := p.expect("{"); err != nil {
			return nil, err
		}

		if p.peekIs("(") {
			var rows []RelationRow
			for !p.peekIs("}") {
				row, err := p.parseRow()
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
				if p.peekIs(",") {
					p.l.next()
				}
			}
			inst.Relations[lhsName] = rows
			inst.RelationOrder = append(inst.RelationOrder, lhsName)
		} else {
			var members []string
			for !p.peekIs("}") {
				m, err := p.ident()
				if err != nil {
					return nil, err
				}
				members = append(members, m)
				if p.peekIs(",") {
					p.l.next()
				}
			}
			inst.Objects[lhsName] = members
			inst.ObjectOrder = append(inst.ObjectOrder, lhsName)
		}
		if _, err := p.expect("}"); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return inst, nil
}

func (p *parser) parseRow() (RelationRow, error) {
	if _, err := p.expect("("); err != nil {
		return RelationRow{}, err
	}
	var row RelationRow
	for !p.peekIs(")") {
		field, err := p.ident()
		if err != nil {
			return RelationRow{}, err
		}
		if _, err := p.expect("="); err != nil {
			return RelationRow{}, err
		}
		value, err := p.ident()
		if err != nil {
			return RelationRow{}, err
		}
		row.Fields = append(row.Fields, pathdbFieldValue{Field: field, Value: value})
		if p.peekIs(",") {
			p.l.next()
		}
	}
	if _, err := p.expect(")"); err != nil {
		return RelationRow{}, err
	}
	return row, nil
}
