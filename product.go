package factorial

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Float is a constraint for the floating-point types a [Product] can be
// evaluated to.
type Float interface {
	~float32 | ~float64
}

// Product is an accumulator of factorials, permutations, and combinations.
// The zero value is not usable, use [New] to create a product.
//
// Multiplications and divisions are recorded as ranges of consecutive
// integers and are evaluated lazily by [Product.Value].
// Evaluation folds the pending ranges into exponents of primes.
// These exponents are never reset by evaluation, so operations recorded
// after a call to [Product.Value] are composed with the ones recorded before.
//
// Product is not safe for concurrent use by multiple goroutines.
// Shared use requires external synchronization.
type Product[F Float] struct {
	points map[int]int // pending events: breakpoint -> net delta
	sieve  *sieve      // known primes and their accumulated exponents
	value  F           // cached result
	valid  bool        // indicates whether value is up to date
}

var (
	// ErrInvalidRange is returned when a permutation or a combination has
	// its left argument less than its right argument, or any argument is negative.
	ErrInvalidRange = errors.New("invalid range")
	// ErrEmptyAccumulator is returned when a product is evaluated before
	// any operation has been recorded.
	ErrEmptyAccumulator = errors.New("empty accumulator")
	// ErrFactorizationIncomplete is returned when an integer has a prime
	// factor that is not known to the sieve.
	// It indicates a bug in this package and should not be retried.
	ErrFactorizationIncomplete = errors.New("factorization incomplete")
)

// New returns an empty product.
func New[F Float]() *Product[F] {
	return &Product[F]{
		points: make(map[int]int),
		sieve:  newSieve(),
	}
}

type mode int

const (
	mul mode = iota
	div
)

// perm returns the range of integers [start, end], such that
// P(left, right) = start * (start + 1) * ... * end.
// An empty product is represented by the range [1, 1].
func perm(left, right int) (start, end int, err error) {
	switch {
	case left < 0 || right < 0:
		return 0, 0, fmt.Errorf("P(%v, %v): negative argument: %w", left, right, ErrInvalidRange)
	case left < right:
		return 0, 0, fmt.Errorf("P(%v, %v): left argument is less than right: %w", left, right, ErrInvalidRange)
	case left == math.MaxInt:
		return 0, 0, fmt.Errorf("P(%v, %v): left argument is too large: %w", left, right, ErrInvalidRange)
	case left == 0 || right == 0:
		return 1, 1, nil
	}
	return left - right + 1, left, nil
}

// record adds the range [start, end] to pending events.
// Division is recorded as the additive inverse of multiplication,
// by swapping the breakpoints.
func (p *Product[F]) record(start, end int, m mode) {
	s, e := start, end+1
	if m == div {
		s, e = e, s
	}
	p.points[s]++
	p.points[e]--
	p.valid = false
}

func (p *Product[F]) recordPerm(left, right int, m mode) error {
	start, end, err := perm(left, right)
	if err != nil {
		return err
	}
	p.record(start, end, m)
	return nil
}

func (p *Product[F]) recordComb(left, right int, m mode) error {
	start, end, err := perm(left, right)
	if err != nil {
		return fmt.Errorf("C(%v, %v): %w", left, right, err)
	}
	fstart, fend, err := perm(right, right)
	if err != nil {
		return fmt.Errorf("C(%v, %v): %w", left, right, err)
	}
	inv := div
	if m == div {
		inv = mul
	}
	p.record(start, end, m)
	p.record(fstart, fend, inv)
	return nil
}

// MulFact multiplies the product by n!.
// MulFact returns an error if n is negative.
func (p *Product[F]) MulFact(n int) error {
	return p.recordPerm(n, n, mul)
}

// DivFact divides the product by n!.
// DivFact returns an error if n is negative.
func (p *Product[F]) DivFact(n int) error {
	return p.recordPerm(n, n, div)
}

// MulPerm multiplies the product by the number of permutations
// P(left, right) = left * (left - 1) * ... * (left - right + 1).
// P(left, 0) and P(0, 0) are equal to 1.
//
// MulPerm returns an error if left is less than right or if any
// argument is negative.
// The product is not modified in case of an error.
func (p *Product[F]) MulPerm(left, right int) error {
	return p.recordPerm(left, right, mul)
}

// DivPerm is similar to [Product.MulPerm], but it divides the product
// by P(left, right).
func (p *Product[F]) DivPerm(left, right int) error {
	return p.recordPerm(left, right, div)
}

// MulComb multiplies the product by the number of combinations
// C(left, right) = P(left, right) / right!.
//
// MulComb returns an error if left is less than right or if any
// argument is negative.
// The product is not modified in case of an error.
func (p *Product[F]) MulComb(left, right int) error {
	return p.recordComb(left, right, mul)
}

// DivComb is similar to [Product.MulComb], but it divides the product
// by C(left, right).
func (p *Product[F]) DivComb(left, right int) error {
	return p.recordComb(left, right, div)
}

// Value returns the product rounded to the nearest value of type F.
// Repeated calls without intervening operations return the cached result.
//
// Value returns an error:
//   - if no operation has been recorded, see [ErrEmptyAccumulator].
//   - if the internal factorization failed, see [ErrFactorizationIncomplete].
func (p *Product[F]) Value() (F, error) {
	if err := p.settle(); err != nil {
		return 0, err
	}
	return p.value, nil
}

// Reset removes all recorded operations and accumulated exponents.
// Primes already known to the product are kept for future evaluations.
func (p *Product[F]) Reset() {
	p.points = make(map[int]int)
	p.sieve.reset()
	p.value = 0
	p.valid = false
}

// settle folds pending events into exponents and updates the cached value.
func (p *Product[F]) settle() error {
	if p.valid {
		return nil
	}
	if err := p.reconstruct(); err != nil {
		return err
	}
	p.value = p.float()
	p.valid = true
	return nil
}

// reconstruct sweeps pending breakpoints in ascending order and factorizes
// every integer with a nonzero multiplicity.
// Accumulated exponents are updated only if the whole sweep succeeds.
func (p *Product[F]) reconstruct() error {
	if len(p.points) == 0 {
		return ErrEmptyAccumulator
	}
	keys := make([]int, 0, len(p.points))
	for k := range p.points {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	p.sieve.extend(keys[len(keys)-1])

	deltas := make([]int, len(p.sieve.primes))
	count, number := 0, 0
	for _, k := range keys {
		if count == 0 {
			// Integers before k have zero multiplicity.
			number = k
		} else {
			for ; number < k; number++ {
				if !p.sieve.factorize(number, count, deltas) {
					return fmt.Errorf("factorizing %v: %w", number, ErrFactorizationIncomplete)
				}
			}
		}
		count += p.points[k]
		if !p.sieve.factorize(number, count, deltas) {
			return fmt.Errorf("factorizing %v: %w", number, ErrFactorizationIncomplete)
		}
		number++
	}

	p.sieve.commit(deltas)
	p.points = make(map[int]int)
	return nil
}
