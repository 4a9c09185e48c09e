package factorial

import "slices"

// sieve is an incrementally extensible catalog of primes.
// For every prime it keeps the net exponent accumulated so far.
//
// Invariants:
//
//   - primes is sorted in ascending order and always contains 2.
//   - every integer in [2, max] is in primes if and only if it is prime.
//   - max never decreases.
type sieve struct {
	primes []int // known primes, ascending
	exps   []int // exps[i] is the exponent of primes[i]
	max    int   // largest integer already classified
}

func newSieve() *sieve {
	return &sieve{
		primes: []int{2},
		exps:   []int{0},
		max:    2,
	}
}

// extend classifies every integer in (s.max, n] using trial division
// by already known primes.
func (s *sieve) extend(n int) {
	if n <= s.max {
		return
	}
	for c := s.max; c < n; {
		c++
		if s.isPrime(c) {
			s.primes = append(s.primes, c)
			s.exps = append(s.exps, 0)
		}
	}
	s.max = n
}

// isPrime checks c against known primes.
// All primes up to sqrt(c) must already be known.
func (s *sieve) isPrime(c int) bool {
	for _, p := range s.primes {
		if p > c/p {
			break
		}
		if c%p == 0 {
			return false
		}
	}
	return true
}

// index returns the position of prime p in s.primes.
func (s *sieve) index(p int) (int, bool) {
	if p > s.max {
		return 0, false
	}
	return slices.BinarySearch(s.primes, p)
}

// factorize adds times * e(p) to deltas[i] for every prime p = s.primes[i]
// dividing n, where e(p) is the exponent of p in n.
// deltas must have at least len(s.primes) elements.
// factorize returns false if n has a prime factor above s.max.
func (s *sieve) factorize(n, times int, deltas []int) bool {
	switch {
	case times == 0:
		return true
	case n < 1:
		return false
	}
	for i, p := range s.primes {
		if n == 1 {
			return true
		}
		if p > n/p {
			// The residue has no factors below its square root.
			j, ok := s.index(n)
			if !ok {
				return false
			}
			deltas[j] += times
			return true
		}
		for n%p == 0 {
			n /= p
			deltas[i] += times
		}
	}
	return n == 1
}

// commit adds deltas to the accumulated exponents.
func (s *sieve) commit(deltas []int) {
	for i, d := range deltas {
		s.exps[i] += d
	}
}

// reset sets all accumulated exponents to 0.
// The catalog of primes is kept.
func (s *sieve) reset() {
	clear(s.exps)
}
