package factorial

import (
	"math"
	"math/big"
	"math/bits"
	"sync"
)

// fint (Fast INTeger) is a wrapper around uint64.
type fint uint64

// maxFint is a maximum value of fint.
const maxFint = math.MaxUint64

// mul calculates x * y and checks overflow.
func (x fint) mul(y fint) (z fint, ok bool) {
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	if hi != 0 {
		return 0, false
	}
	return fint(lo), true
}

// pow calculates x^y and checks overflow.
func (x fint) pow(y int) (z fint, ok bool) {
	z = 1
	for y > 0 {
		if y&1 == 1 {
			z, ok = z.mul(x)
			if !ok {
				return 0, false
			}
		}
		y >>= 1
		if y > 0 {
			x, ok = x.mul(x)
			if !ok {
				return 0, false
			}
		}
	}
	return z, true
}

// fits returns true if x can be represented exactly by a floating-point
// number with a mantissa of the given number of bits.
func (x fint) fits(mant int) bool {
	return bits.Len64(uint64(x)) <= mant
}

// bint (Big INTeger) is a wrapper around big.Int.
type bint big.Int

func (z *bint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *bint) string() string {
	return (*big.Int)(z).String()
}

func (z *bint) setBint(x *bint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

func (z *bint) setInt64(x int64) {
	(*big.Int)(z).SetInt64(x)
}

func (z *bint) setFint(x fint) {
	(*big.Int)(z).SetUint64(uint64(x))
}

// inc calculates z = x + 1.
func (z *bint) inc(x *bint) {
	y := getBint()
	defer putBint(y)
	y.setInt64(1)
	(*big.Int)(z).Add((*big.Int)(x), (*big.Int)(y))
}

// dbl (Double) calculates z = x * 2.
func (z *bint) dbl(x *bint) {
	(*big.Int)(z).Lsh((*big.Int)(x), 1)
}

// mul calculates z = x * y.
func (z *bint) mul(x, y *bint) {
	// Copying x, y to prevent heap allocations.
	if z == x {
		b := getBint()
		defer putBint(b)
		b.setBint(x)
		x = b
	}
	if z == y {
		b := getBint()
		defer putBint(b)
		b.setBint(y)
		y = b
	}
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// exp calculates z = x^y.
// If y is negative, the result is unpredictable.
func (z *bint) exp(x, y *bint) {
	(*big.Int)(z).Exp((*big.Int)(x), (*big.Int)(y), nil)
}

// mulPow calculates z = z * base^power.
// If power is negative, the result is unpredictable.
func (z *bint) mulPow(base fint, power int) {
	x := getBint()
	defer putBint(x)
	x.setFint(base)
	y := getBint()
	defer putBint(y)
	y.setInt64(int64(power))
	x.exp(x, y)
	z.mul(z, x)
}

// pow10 calculates z = 10^power.
// If power is negative, the result is unpredictable.
func (z *bint) pow10(power int) {
	x := getBint()
	defer putBint(x)
	x.setInt64(10)
	y := getBint()
	defer putBint(y)
	y.setInt64(int64(power))
	z.exp(x, y)
}

// lsh (Left Shift) calculates z = x * 10^shift.
func (z *bint) lsh(x *bint, shift int) {
	y := getBint()
	defer putBint(y)
	y.pow10(shift)
	z.mul(x, y)
}

// quo calculates z = ⌊x / y⌋.
func (z *bint) quo(x, y *bint) {
	// Passing r to prevent heap allocations.
	r := getBint()
	defer putBint(r)
	z.quoRem(x, y, r)
}

// quoRem calculates z = ⌊x / y⌋, r = x - y * z.
func (z *bint) quoRem(x, y, r *bint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

// quoHalfEven calculates z = round(x / y) and rounds result using
// "half to even" rule.
// If x is negative or y is not positive, the result is unpredictable.
func (z *bint) quoHalfEven(x, y *bint) {
	r := getBint()
	defer putBint(r)
	z.quoRem(x, y, r)
	r.dbl(r) // r = r * 2
	switch y.cmp(r) {
	case -1:
		z.inc(z) // z = z + 1
	case 0:
		// half-to-even
		if z.isOdd() {
			z.inc(z) // z = z + 1
		}
	}
}

func (z *bint) isOdd() bool {
	return (*big.Int)(z).Bit(0) != 0
}

// prec returns length of z in decimal digits.
// prec assumes that 0 has no digits.
// If z is negative, the result is unpredictable.
func (z *bint) prec() int {
	if z.sign() == 0 {
		return 0
	}
	return len(z.string())
}

// rat returns a new big.Rat equal to z / d.
func (z *bint) rat(d *bint) *big.Rat {
	return new(big.Rat).SetFrac((*big.Int)(z), (*big.Int)(d))
}

// bpool is a cache of reusable *big.Int instances.
var bpool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *bint {
	return bpool.Get().(*bint)
}

// putBint returns the *big.Int into the pool.
func putBint(b *bint) {
	bpool.Put(b)
}

// accum is a product of prime powers.
// It starts in uint64 arithmetic and switches to big.Int arithmetic
// after the first overflow.
type accum struct {
	small fint
	big   *bint
}

func newAccum() accum {
	return accum{small: 1}
}

// mulPow calculates a = a * p^e.
func (a *accum) mulPow(p fint, e int) {
	if a.big == nil {
		if f, ok := p.pow(e); ok {
			if z, ok := a.small.mul(f); ok {
				a.small = z
				return
			}
		}
		a.big = (*bint)(new(big.Int))
		a.big.setFint(a.small)
	}
	a.big.mulPow(p, e)
}

// bint returns the product as a big integer.
func (a *accum) bint() *bint {
	if a.big != nil {
		return a.big
	}
	z := (*bint)(new(big.Int))
	z.setFint(a.small)
	return z
}

// fint returns the product as uint64, if it did not overflow.
func (a *accum) fint() (fint, bool) {
	if a.big != nil {
		return 0, false
	}
	return a.small, true
}
