/*
Package factorial implements exact evaluation of products and quotients of
factorials, permutations, and combinations, such as

	5! / 5! * 7! / 6! * C(5, 2) / P(9, 2)

Naive evaluation of such expressions either overflows on intermediate
factorials or accumulates rounding errors when factorials are computed in
floating-point arithmetic.
This package avoids both problems by never multiplying the terms directly.

# Representation

[Product] records every operation as a range of consecutive integers:

  - n! is the range [1, n].
  - P(left, right) = left * (left - 1) * ... * (left - right + 1)
    is the range [left - right + 1, left].
  - C(left, right) = P(left, right) / right! is a pair of ranges.

Ranges are stored as a difference array: multiplication by the range
[start, end] adds +1 at breakpoint start and -1 at breakpoint end + 1,
division does the opposite.
The running sum of the deltas at breakpoints not greater than x is the
multiplicity of x, that is, how many times x is multiplied in, net of
divisions.

# Evaluation

Operations are evaluated lazily by [Product.Value]:

 1. Pending breakpoints are swept in ascending order.
    Every integer with a nonzero multiplicity is factorized into primes
    and the multiplicity is added to the exponent of each prime factor.
    Primes are discovered on demand by an incremental trial-division sieve.
 2. The numerator is the product of primes with positive exponents,
    the denominator is the product of primes with negative exponents.
    Both are computed using uint64 arithmetic, which is replaced with
    [big.Int] arithmetic on overflow.
 3. The numerator is divided by the denominator and rounded to the nearest
    float32 or float64.
    This is the only step where rounding happens.

Exponents are kept for the lifetime of a product.
Operations recorded after an evaluation are composed with the operations
recorded before it, use [Product.Reset] to start over.

The exact result is also available as a fraction ([Product.Rat]),
as a decimal ([Product.Decimal]), and as a prime factorization
([Product.Factors]).

# Errors

Operations return an error wrapping [ErrInvalidRange] if the left argument
of a permutation or a combination is less than the right argument, or if
any argument is negative.
Invalid operations are rejected before they modify the product.

Evaluation returns an error wrapping [ErrEmptyAccumulator] if no operation
has been recorded.
[ErrFactorizationIncomplete] indicates a broken internal invariant and is
never expected.

# Concurrency

A [Product] is not safe for concurrent use by multiple goroutines.
Shared use requires external synchronization.

[big.Int]: https://pkg.go.dev/math/big#Int
*/
package factorial
