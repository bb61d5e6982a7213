/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package modal

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ParseError describes a syntax error with a byte offset into the input.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg) }

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokNot    // ~
	tokAnd    // &
	tokOr     // |
	tokImpl   // ->
	tokIff    // <->
	tokBox    // []
	tokDia    // <>
	tokLParen // (
	tokRParen // )
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type lexer struct {
	input string
	pos   int
}

func (lx *lexer) next() (token, error) {
	for lx.pos < len(lx.input) && unicode.IsSpace(rune(lx.input[lx.pos])) {
		lx.pos++
	}
	start := lx.pos
	if lx.pos >= len(lx.input) {
		return token{kind: tokEOF, pos: start}, nil
	}
	rest := lx.input[lx.pos:]
	switch {
	case strings.HasPrefix(rest, "<->"):
		lx.pos += 3
		return token{kind: tokIff, text: "<->", pos: start}, nil
	case strings.HasPrefix(rest, "->"):
		lx.pos += 2
		return token{kind: tokImpl, text: "->", pos: start}, nil
	case strings.HasPrefix(rest, "[]"):
		lx.pos += 2
		return token{kind: tokBox, text: "[]", pos: start}, nil
	case strings.HasPrefix(rest, "<>"):
		lx.pos += 2
		return token{kind: tokDia, text: "<>", pos: start}, nil
	}
	c := rest[0]
	switch c {
	case '~':
		lx.pos++
		return token{kind: tokNot, text: "~", pos: start}, nil
	case '&':
		lx.pos++
		return token{kind: tokAnd, text: "&", pos: start}, nil
	case '|':
		lx.pos++
		return token{kind: tokOr, text: "|", pos: start}, nil
	case '(':
		lx.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case ')':
		lx.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	}
	if isIdentStart(c) {
		end := lx.pos
		for end < len(lx.input) && isIdentPart(lx.input[end]) {
			end++
		}
		text := lx.input[lx.pos:end]
		lx.pos = end
		return token{kind: tokIdent, text: text, pos: start}, nil
	}
	return token{}, &ParseError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", c)}
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '_'
}

type parser struct {
	lx  lexer
	cur token
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

// Parse parses text into a Formula. Failures are reported as *ParseError.
func Parse(text string) (Formula, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Pos: 0, Msg: "empty formula"}
	}
	p := &parser{lx: lexer{input: text}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	f, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, &ParseError{Pos: p.cur.pos, Msg: fmt.Sprintf("unexpected %q", p.cur.text)}
	}
	return f, nil
}

func (p *parser) parseIff() (Formula, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokIff {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		left = Iff{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseImplies() (Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokImpl {
		if err := p.advance(); err != nil {
			return nil, err
		}
		// right-associative: a -> b -> c is a -> (b -> c)
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return Implies{Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseOr() (Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Formula, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Formula, error) {
	switch p.cur.kind {
	case tokNot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{Operand: f}, nil
	case tokBox:
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Box{Operand: f}, nil
	case tokDia:
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Diamond{Operand: f}, nil
	case tokIdent:
		a := Atom{Name: p.cur.text}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return a, nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, &ParseError{Pos: p.cur.pos, Msg: "expected ')'"}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return f, nil
	case tokEOF:
		return nil, &ParseError{Pos: p.cur.pos, Msg: "unexpected end of formula"}
	default:
		return nil, &ParseError{Pos: p.cur.pos, Msg: fmt.Sprintf("unexpected %q", p.cur.text)}
	}
}

var reIdent = regexp.MustCompile(`[A-Za-z][A-Za-z0-9_]*`)

// Variables extracts the identifier-like tokens of text in order of first
// appearance, without duplicates. It works on raw text so callers can reject
// unknown variables before attempting a full parse.
func Variables(text string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, name := range reIdent.FindAllString(text, -1) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// displayRewrites maps ASCII operator spellings to their typeset forms.
// Longest spellings first so "<->" is not split into "<" + "->".
var displayRewrites = []struct{ ascii, pretty string }{
	{"<->", "↔"}, // ↔
	{"->", "→"},  // →
	{"<>", "◇"},  // ◇
	{"[]", "□"},  // □
	{"~", "¬"},   // ¬
	{"&", "∧"},   // ∧
	{"|", "∨"},   // ∨
}

// DisplayForm returns a typeset rendition of the raw formula text with
// unicode connectives. It does not require the text to parse.
func DisplayForm(text string) string {
	out := strings.TrimSpace(text)
	for _, r := range displayRewrites {
		out = strings.ReplaceAll(out, r.ascii, r.pretty)
	}
	return out
}
