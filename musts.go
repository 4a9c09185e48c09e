package factorial

import "fmt"

// MustMulFact is like [Product.MulFact] but panics if n is invalid.
// It returns p to allow chaining.
func (p *Product[F]) MustMulFact(n int) *Product[F] {
	if err := p.MulFact(n); err != nil {
		panic(fmt.Sprintf("MustMulFact(%v) failed: %v", n, err))
	}
	return p
}

// MustDivFact is like [Product.DivFact] but panics if n is invalid.
// It returns p to allow chaining.
func (p *Product[F]) MustDivFact(n int) *Product[F] {
	if err := p.DivFact(n); err != nil {
		panic(fmt.Sprintf("MustDivFact(%v) failed: %v", n, err))
	}
	return p
}

// MustMulPerm is like [Product.MulPerm] but panics if the range is invalid.
// It returns p to allow chaining.
func (p *Product[F]) MustMulPerm(left, right int) *Product[F] {
	if err := p.MulPerm(left, right); err != nil {
		panic(fmt.Sprintf("MustMulPerm(%v, %v) failed: %v", left, right, err))
	}
	return p
}

// MustDivPerm is like [Product.DivPerm] but panics if the range is invalid.
// It returns p to allow chaining.
func (p *Product[F]) MustDivPerm(left, right int) *Product[F] {
	if err := p.DivPerm(left, right); err != nil {
		panic(fmt.Sprintf("MustDivPerm(%v, %v) failed: %v", left, right, err))
	}
	return p
}

// MustMulComb is like [Product.MulComb] but panics if the range is invalid.
// It returns p to allow chaining.
func (p *Product[F]) MustMulComb(left, right int) *Product[F] {
	if err := p.MulComb(left, right); err != nil {
		panic(fmt.Sprintf("MustMulComb(%v, %v) failed: %v", left, right, err))
	}
	return p
}

// MustDivComb is like [Product.DivComb] but panics if the range is invalid.
// It returns p to allow chaining.
func (p *Product[F]) MustDivComb(left, right int) *Product[F] {
	if err := p.DivComb(left, right); err != nil {
		panic(fmt.Sprintf("MustDivComb(%v, %v) failed: %v", left, right, err))
	}
	return p
}

// MustValue is like [Product.Value] but panics if computing error.
func (p *Product[F]) MustValue() F {
	v, err := p.Value()
	if err != nil {
		panic(fmt.Sprintf("MustValue() failed: %v", err))
	}
	return v
}
