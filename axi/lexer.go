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
	"strings"
	"text/scanner"
)

// token is a single lexical unit: an identifier/keyword, an integer or
// decimal literal, or a single-character punctuator ('{', '}', '(', ')',
// ':', ',', '.', '<', '=', ';').
type token struct {
	text string
	pos  scanner.Position
}

// lexer tokenizes .axi source text using text/scanner, which already
// handles identifiers, integers, and comment skipping the way Go source
// does — the DSL deliberately reuses Go's own lexical conventions instead
// of inventing new ones.
type lexer struct {
	s    scanner.Scanner
	toks []token
	pos  int
}

func newLexer(src string) *lexer {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanComments | scanner.SkipComments
	s.Whitespace = 1<<'\t' | 1<<'\n' | 1<<'\r' | 1<<' '

	l := &lexer{}
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		l.toks = append(l.toks, token{text: s.TokenText(), pos: s.Position})
	}
	l.s = s
	return l
}

func (l *lexer) peek() (token, bool) {
	if l.pos >= len(l.toks) {
		return token{}, false
	}
	return l.toks[l.pos], true
}

func (l *lexer) next() (token, bool) {
	t, ok := l.peek()
	if ok {
		l.pos++
	}
	return t, ok
}

func (l *lexer) atEOF() bool {
	return l.pos >= len(l.toks)
}
