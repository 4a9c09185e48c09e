package main

import (
	"fmt"

	"github.com/govalues/factorial"
)

// result is an evaluated expression.
type result struct {
	Value     float64
	Precision int
	Factors   string
	Decimal   string // empty if the value does not fit into a decimal
}

func (r result) String() string {
	return formatFloat(r.Value, r.Precision)
}

// evaluate records terms in a new product of the given precision
// and evaluates it.
func evaluate(terms []term, precision int) (result, error) {
	if precision == 32 {
		return evaluateAs(factorial.New[float32](), terms, precision)
	}
	return evaluateAs(factorial.New[float64](), terms, precision)
}

func evaluateAs[F factorial.Float](p *factorial.Product[F], terms []term, precision int) (result, error) {
	if err := apply(p, terms); err != nil {
		return result{}, err
	}
	v, err := p.Value()
	if err != nil {
		return result{}, fmt.Errorf("evaluating: %w", err)
	}
	r := result{
		Value:     float64(v),
		Precision: precision,
		Factors:   p.String(),
	}
	if d, err := p.Decimal(); err == nil {
		r.Decimal = d.String()
	}
	return r, nil
}

// evaluateExpr parses and evaluates expression s.
func evaluateExpr(s string, precision int) (result, error) {
	terms, err := parseExpr(s)
	if err != nil {
		return result{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	r, err := evaluate(terms, precision)
	if err != nil {
		return result{}, fmt.Errorf("%q: %w", s, err)
	}
	return r, nil
}
