package main

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"github.com/govalues/factorial"
)

var errInvalidExpr = errors.New("invalid expression")

// termKind is the kind of a term in an expression.
type termKind int

const (
	termInt  termKind = iota // n
	termFact                 // n!
	termPerm                 // P(n, k)
	termComb                 // C(n, k)
)

// term is a single operand of an expression together with the operator
// that precedes it.
type term struct {
	kind        termKind
	left, right int
	div         bool
}

func (t term) String() string {
	var s string
	switch t.kind {
	case termFact:
		s = fmt.Sprintf("%v!", t.left)
	case termPerm:
		s = fmt.Sprintf("P(%v,%v)", t.left, t.right)
	case termComb:
		s = fmt.Sprintf("C(%v,%v)", t.left, t.right)
	default:
		s = strconv.Itoa(t.left)
	}
	if t.div {
		return "/" + s
	}
	return "*" + s
}

// parseExpr parses an expression such as "5!/5! * 7!/6! * C(5,2)/P(9,2)".
//
//	expr    ::= operand { ('*' | '/') operand }
//	operand ::= int '!' | ('C' | 'P') '(' int ',' int ')' | int
func parseExpr(s string) ([]term, error) {
	p := &parser{src: s}
	var terms []term
	div := false
	for {
		t, err := p.operand()
		if err != nil {
			return nil, err
		}
		t.div = div
		terms = append(terms, t)

		p.skipSpace()
		if p.eof() {
			return terms, nil
		}
		switch c := p.next(); c {
		case '*':
			div = false
		case '/':
			div = true
		default:
			return nil, p.errorf("unexpected %q, want '*' or '/'", c)
		}
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("position %v: %v: %w", p.pos, fmt.Sprintf(format, args...), errInvalidExpr)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() byte {
	c := p.peek()
	p.pos++
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.peek())) {
		p.pos++
	}
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.eof() {
		return p.errorf("unexpected end, want %q", c)
	}
	if got := p.peek(); got != c {
		return p.errorf("unexpected %q, want %q", got, c)
	}
	p.pos++
	return nil
}

func (p *parser) integer() (int, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	if start == p.pos {
		if p.eof() {
			return 0, p.errorf("unexpected end, want integer")
		}
		return 0, p.errorf("unexpected %q, want integer", p.peek())
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("%v", err)
	}
	return n, nil
}

func (p *parser) operand() (term, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == 'C' || c == 'c' || c == 'P' || c == 'p':
		p.pos++
		kind := termPerm
		if c == 'C' || c == 'c' {
			kind = termComb
		}
		if err := p.expect('('); err != nil {
			return term{}, err
		}
		left, err := p.integer()
		if err != nil {
			return term{}, err
		}
		if err := p.expect(','); err != nil {
			return term{}, err
		}
		right, err := p.integer()
		if err != nil {
			return term{}, err
		}
		if err := p.expect(')'); err != nil {
			return term{}, err
		}
		return term{kind: kind, left: left, right: right}, nil
	default:
		start := p.pos
		n, err := p.integer()
		if err != nil {
			return term{}, err
		}
		p.skipSpace()
		if p.peek() == '!' {
			p.pos++
			return term{kind: termFact, left: n, right: n}, nil
		}
		if n == 0 {
			p.pos = start
			return term{}, p.errorf("operand must be positive")
		}
		return term{kind: termInt, left: n, right: 1}, nil
	}
}

// apply records terms in product p.
func apply[F factorial.Float](p *factorial.Product[F], terms []term) error {
	for _, t := range terms {
		var err error
		switch {
		case t.kind == termComb && t.div:
			err = p.DivComb(t.left, t.right)
		case t.kind == termComb:
			err = p.MulComb(t.left, t.right)
		case t.div:
			err = p.DivPerm(t.left, t.right)
		default:
			err = p.MulPerm(t.left, t.right)
		}
		if err != nil {
			return fmt.Errorf("applying %v: %w", t, err)
		}
	}
	return nil
}
