package factorial

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/govalues/decimal"
)

// Factor is a prime raised to a nonzero power.
type Factor struct {
	Prime int
	Power int
}

// String implements the [fmt.Stringer] interface.
func (f Factor) String() string {
	if f.Power == 1 {
		return fmt.Sprintf("%v", f.Prime)
	}
	return fmt.Sprintf("%v^%v", f.Prime, f.Power)
}

// ratio returns the numerator and the denominator of the product.
// Both are computed from accumulated exponents, pending events are ignored.
func (p *Product[F]) ratio() (num, den accum) {
	num, den = newAccum(), newAccum()
	for i, e := range p.sieve.exps {
		q := fint(p.sieve.primes[i])
		switch {
		case e > 0:
			num.mulPow(q, e)
		case e < 0:
			den.mulPow(q, -e)
		}
	}
	return num, den
}

// mantissa returns the number of significant bits of type F.
func mantissa[F Float]() int {
	var f F = 1 << 24
	if f+1 == f {
		return 24
	}
	return 53
}

// float divides the numerator by the denominator.
// This is the only place where rounding happens.
func (p *Product[F]) float() F {
	num, den := p.ratio()

	// Fast path
	n, nok := num.fint()
	d, dok := den.fint()
	if nok && dok {
		mant := mantissa[F]()
		if n.fits(mant) && d.fits(mant) {
			if mant == 24 {
				return F(float32(n) / float32(d))
			}
			return F(float64(n) / float64(d))
		}
	}

	// Slow path
	r := num.bint().rat(den.bint())
	if mantissa[F]() == 24 {
		f, _ := r.Float32()
		return F(f)
	}
	f, _ := r.Float64()
	return F(f)
}

// Rat returns the exact value of the product as a fraction in lowest terms.
//
// Rat returns an error in the same cases as [Product.Value].
func (p *Product[F]) Rat() (*big.Rat, error) {
	if err := p.settle(); err != nil {
		return nil, err
	}
	num, den := p.ratio()
	return num.bint().rat(den.bint()), nil
}

// Decimal returns the product rounded to [decimal.MaxScale] digits after
// the decimal point, or fewer if the integer part needs more digits.
//
// Decimal returns an error in the same cases as [Product.Value], and if
// the integer part of the product has more than [decimal.MaxPrec] digits.
func (p *Product[F]) Decimal() (decimal.Decimal, error) {
	if err := p.settle(); err != nil {
		return decimal.Decimal{}, err
	}
	num, den := p.ratio()

	// Fast path
	n, nok := num.fint()
	d, dok := den.fint()
	if nok && dok && n <= math.MaxInt64 && d <= math.MaxInt64 {
		x, err := decimal.New(int64(n), 0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		y, err := decimal.New(int64(d), 0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		z, err := x.Quo(y)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("computing [%v / %v]: %w", x, y, err)
		}
		return z.Trim(0), nil
	}

	// Slow path
	z, err := decimal.Parse(quoString(num.bint(), den.bint()))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting %v: %w", num.bint().rat(den.bint()), err)
	}
	return z.Trim(0), nil
}

// quoString returns x / y rounded to [decimal.MaxScale] digits after the
// decimal point, or fewer if the integer part needs more digits.
// The result is rounded using "half to even" rule, and [decimal.Parse]
// can only drop trailing zeros from it.
func quoString(x, y *bint) string {
	z := getBint()
	defer putBint(z)
	z.quo(x, y)
	scale := min(max(decimal.MaxPrec-z.prec(), 0), decimal.MaxScale)
	z.lsh(x, scale)
	z.quoHalfEven(z, y)
	s := z.string()
	if scale == 0 {
		return s
	}
	if len(s) <= scale {
		s = strings.Repeat("0", scale-len(s)+1) + s
	}
	return s[:len(s)-scale] + "." + s[len(s)-scale:]
}

// Factors returns the prime factorization of the product.
// Primes are sorted in ascending order and have nonzero powers.
// Negative powers belong to the denominator.
//
// Factors returns an error in the same cases as [Product.Value].
func (p *Product[F]) Factors() ([]Factor, error) {
	if err := p.settle(); err != nil {
		return nil, err
	}
	var factors []Factor
	for i, e := range p.sieve.exps {
		if e != 0 {
			factors = append(factors, Factor{Prime: p.sieve.primes[i], Power: e})
		}
	}
	return factors, nil
}

// String implements the [fmt.Stringer] interface and returns the prime
// factorization of the product, for example "2^-3 * 7".
// String evaluates pending operations.
func (p *Product[F]) String() string {
	factors, err := p.Factors()
	if err != nil {
		return fmt.Sprintf("%%!(%v)", err)
	}
	if len(factors) == 0 {
		return "1"
	}
	terms := make([]string, len(factors))
	for i, f := range factors {
		terms[i] = f.String()
	}
	return strings.Join(terms, " * ")
}
