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

package axql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/josephjohncox/axiograph-sub002/pathdb"
)

// Parse parses AxQL surface syntax into a Query:
//
//	query    := "select" varlist "where" disjunct {"or" disjunct} {option}
//	varlist  := var {"," var}
//	disjunct := atom {"," atom}
//	atom     := term "is" ident               // TypeAtom
//	          | term "." ident "=" ident       // AttrEqAtom
//	          | term "path" "[" regex "]" term // PathAtom, regex per ParseRegex
//	term     := var | ident
//	var      := "?" ident
//	option   := "limit" int | "max_hops" int | "min_confidence" decimal
//
// This is the engine's own concrete surface syntax for the abstract query
// IR described in spec.md §4.6; it is not mandated by the spec, which
// fixes only the IR shape.
func Parse(src string) (*Query, error) {
	p := &qParser{src: src}
	return p.parseQuery()
}

type qParser struct {
	src string
	pos int
}

func (p *qParser) errorf(format string, args ...interface{}) error {
	return ErrParse.New(fmt.Sprintf("offset %d", p.pos), fmt.Sprintf(format, args...))
}

func (p *qParser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.pos++
			continue
		}
		break
	}
}

func (p *qParser) atEOF() bool {
	p.skipSpace()
	return p.pos >= len(p.src)
}

func (p *qParser) peekByte() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *qParser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected identifier")
	}
	return p.src[start:p.pos], nil
}

func (p *qParser) keyword(word string) error {
	id, err := p.ident()
	if err != nil {
		return err
	}
	if !strings.EqualFold(id, word) {
		return p.errorf("expected %q, got %q", word, id)
	}
	return nil
}

func (p *qParser) literal(lit string) error {
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], lit) {
		return p.errorf("expected %q", lit)
	}
	p.pos += len(lit)
	return nil
}

func (p *qParser) tryLiteral(lit string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], lit) {
		p.pos += len(lit)
		return true
	}
	return false
}

func (p *qParser) term() (Term, error) {
	if p.tryLiteral("?") {
		name, err := p.ident()
		if err != nil {
			return Term{}, err
		}
		return Var(name), nil
	}
	name, err := p.ident()
	if err != nil {
		return Term{}, err
	}
	return Const(name), nil
}

func (p *qParser) parseQuery() (*Query, error) {
	if err := p.keyword("select"); err != nil {
		return nil, err
	}
	q := &Query{}

	for {
		if err := p.literal("?"); err != nil {
			return nil, err
		}
		v, err := p.ident()
		if err != nil {
			return nil, err
		}
		q.Vars = append(q.Vars, v)
		if p.tryLiteral(",") {
			continue
		}
		break
	}

	if err := p.keyword("where"); err != nil {
		return nil, err
	}

	for {
		d, err := p.parseDisjunct()
		if err != nil {
			return nil, err
		}
		q.Disjuncts = append(q.Disjuncts, d)

		save := p.pos
		if id, err := p.ident(); err == nil && strings.EqualFold(id, "or") {
			continue
		}
		p.pos = save
		break
	}

	for !p.atEOF() {
		save := p.pos
		id, err := p.ident()
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(id) {
		case "limit":
			n, err := p.integer()
			if err != nil {
				return nil, err
			}
			q.Options.Limit = n
		case "max_hops":
			n, err := p.integer()
			if err != nil {
				return nil, err
			}
			q.Options.MaxHops = n
		case "min_confidence":
			f, err := p.decimal()
			if err != nil {
				return nil, err
			}
			v, err := pathdb.NewVProb(int64(f * float64(pathdb.Precision)))
			if err != nil {
				return nil, err
			}
			q.Options.MinConfidence = v
		default:
			p.pos = save
			return nil, p.errorf("unexpected trailing token %q", id)
		}
	}

	return q, nil
}

func (p *qParser) parseDisjunct() (Disjunct, error) {
	var d Disjunct
	for {
		a, err := p.parseAtom()
		if err != nil {
			return Disjunct{}, err
		}
		d.Atoms = append(d.Atoms, a)
		if p.tryLiteral(",") {
			continue
		}
		break
	}
	return d, nil
}

func (p *qParser) parseAtom() (Atom, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}

	if p.tryLiteral(".") {
		key, err := p.ident()
		if err != nil {
			return nil, err
		}
		if err := p.literal("="); err != nil {
			return nil, err
		}
		value, err := p.ident()
		if err != nil {
			return nil, err
		}
		return AttrEqAtom{Term: left, Key: key, Value: value}, nil
	}

	save := p.pos
	id, err := p.ident()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(id) {
	case "is":
		typeName, err := p.ident()
		if err != nil {
			return nil, err
		}
		return TypeAtom{Term: left, TypeName: typeName}, nil
	case "path":
		if err := p.literal("["); err != nil {
			return nil, err
		}
		start := p.pos
		depth := 1
		for p.pos < len(p.src) && depth > 0 {
			switch p.src[p.pos] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					continue
				}
			}
			p.pos++
		}
		if depth != 0 {
			return nil, p.errorf("unterminated path regex")
		}
		raw := p.src[start:p.pos]
		p.pos++ // consume ']'

		regex, err := ParseRegex(raw)
		if err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		return PathAtom{Left: left, Regex: regex, Right: right}, nil
	}
	p.pos = save
	return nil, p.errorf("expected 'is', 'path', or '.' after term")
}

func (p *qParser) integer() (int, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected integer")
	}
	return strconv.Atoi(p.src[start:p.pos])
}

func (p *qParser) decimal() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && (p.src[p.pos] == '.' || (p.src[p.pos] >= '0' && p.src[p.pos] <= '9')) {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected decimal number")
	}
	return strconv.ParseFloat(p.src[start:p.pos], 64)
}
