package factorial

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

// bigFact returns n! rounded to the nearest float64.
func bigFact(n int) float64 {
	x := new(big.Int).MulRange(1, int64(n))
	f, _ := new(big.Rat).SetInt(x).Float64()
	return f
}

func TestNew(t *testing.T) {
	p := New[float64]()
	if len(p.points) != 0 {
		t.Errorf("New() has %v pending events, want 0", len(p.points))
	}
	if p.valid {
		t.Errorf("New() has a cached value")
	}
	if len(p.sieve.primes) != 1 || p.sieve.primes[0] != 2 {
		t.Errorf("New() primes = %v, want [2]", p.sieve.primes)
	}
}

func TestPerm(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			left, right int
			start, end  int
		}{
			{0, 0, 1, 1},
			{5, 0, 1, 1},
			{1, 1, 1, 1},
			{5, 5, 1, 5},
			{5, 2, 4, 5},
			{9, 2, 8, 9},
			{9, 1, 9, 9},
			{100, 3, 98, 100},
		}
		for _, tt := range tests {
			start, end, err := perm(tt.left, tt.right)
			if err != nil {
				t.Errorf("perm(%v, %v) failed: %v", tt.left, tt.right, err)
				continue
			}
			if start != tt.start || end != tt.end {
				t.Errorf("perm(%v, %v) = [%v, %v], want [%v, %v]", tt.left, tt.right, start, end, tt.start, tt.end)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]struct {
			left, right int
		}{
			"left less than right 1": {3, 5},
			"left less than right 2": {0, 1},
			"negative left":          {-1, 0},
			"negative right":         {5, -1},
			"negative both":          {-1, -1},
			"overflow":               {math.MaxInt, 1},
		}
		for name, tt := range tests {
			_, _, err := perm(tt.left, tt.right)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("%v: perm(%v, %v) error = %v, want %v", name, tt.left, tt.right, err, ErrInvalidRange)
			}
		}
	})
}

func TestProduct_Record(t *testing.T) {
	t.Run("mul", func(t *testing.T) {
		p := New[float64]()
		p.record(4, 5, mul)
		if p.points[4] != 1 || p.points[6] != -1 {
			t.Errorf("record(4, 5, mul) points = %v, want map[4:1 6:-1]", p.points)
		}
	})

	t.Run("div", func(t *testing.T) {
		p := New[float64]()
		p.record(4, 5, div)
		if p.points[4] != -1 || p.points[6] != 1 {
			t.Errorf("record(4, 5, div) points = %v, want map[4:-1 6:1]", p.points)
		}
	})

	t.Run("invalidates cache", func(t *testing.T) {
		p := New[float64]()
		p.MustMulFact(3)
		if _, err := p.Value(); err != nil {
			t.Fatalf("Value() failed: %v", err)
		}
		p.record(1, 1, mul)
		if p.valid {
			t.Errorf("record(1, 1, mul) did not invalidate cached value")
		}
	})
}

func TestProduct_Value(t *testing.T) {
	t.Run("reference", func(t *testing.T) {
		p := New[float64]()
		p.MustMulFact(5).MustDivFact(5)
		p.MustMulFact(7).MustDivFact(6)
		p.MustMulComb(5, 2).MustDivPerm(9, 2)
		got, err := p.Value()
		if err != nil {
			t.Fatalf("Value() failed: %v", err)
		}
		want := 7.0 * 10.0 / 72.0
		if got != want {
			t.Errorf("Value() = %v, want %v", got, want)
		}
	})

	t.Run("fact", func(t *testing.T) {
		for n := 0; n <= 170; n++ {
			p := New[float64]()
			p.MustMulFact(n)
			got, err := p.Value()
			if err != nil {
				t.Errorf("MulFact(%v).Value() failed: %v", n, err)
				continue
			}
			want := bigFact(n)
			if got != want {
				t.Errorf("MulFact(%v).Value() = %v, want %v", n, got, want)
			}
		}
	})

	t.Run("fact overflow", func(t *testing.T) {
		p := New[float64]()
		p.MustMulFact(171)
		got, err := p.Value()
		if err != nil {
			t.Fatalf("MulFact(171).Value() failed: %v", err)
		}
		if !math.IsInf(got, 1) {
			t.Errorf("MulFact(171).Value() = %v, want +Inf", got)
		}
	})

	t.Run("fact identity", func(t *testing.T) {
		for n := 0; n <= 200; n++ {
			p := New[float64]()
			p.MustMulFact(n).MustDivFact(n)
			got, err := p.Value()
			if err != nil {
				t.Errorf("MulFact(%v).DivFact(%v).Value() failed: %v", n, n, err)
				continue
			}
			if got != 1 {
				t.Errorf("MulFact(%v).DivFact(%v).Value() = %v, want 1", n, n, got)
			}
		}
	})

	t.Run("empty product", func(t *testing.T) {
		tests := []struct {
			left, right int
		}{
			{0, 0},
			{5, 0},
			{1, 1},
		}
		for _, tt := range tests {
			p := New[float64]()
			p.MustMulPerm(tt.left, tt.right)
			got, err := p.Value()
			if err != nil {
				t.Errorf("MulPerm(%v, %v).Value() failed: %v", tt.left, tt.right, err)
				continue
			}
			if got != 1 {
				t.Errorf("MulPerm(%v, %v).Value() = %v, want 1", tt.left, tt.right, got)
			}
		}
	})

	t.Run("large", func(t *testing.T) {
		tests := []struct {
			ops  func(p *Product[float64])
			want float64
		}{
			{func(p *Product[float64]) { p.MustMulFact(1000).MustDivFact(998) }, 999000},
			{func(p *Product[float64]) { p.MustMulPerm(10000, 2) }, 99990000},
			{func(p *Product[float64]) { p.MustMulFact(500).MustDivPerm(500, 499) }, 1},
			{func(p *Product[float64]) { p.MustDivFact(1000).MustMulFact(1001) }, 1001},
		}
		for i, tt := range tests {
			p := New[float64]()
			tt.ops(p)
			got, err := p.Value()
			if err != nil {
				t.Errorf("case %v: Value() failed: %v", i, err)
				continue
			}
			if got != tt.want {
				t.Errorf("case %v: Value() = %v, want %v", i, got, tt.want)
			}
		}
	})

	t.Run("comb", func(t *testing.T) {
		tests := []struct {
			left, right int
		}{
			{5, 2},
			{10, 0},
			{10, 10},
			{52, 5},
			{100, 50},
			{1000, 500},
		}
		for _, tt := range tests {
			p := New[float64]()
			p.MustMulComb(tt.left, tt.right)
			got, err := p.Value()
			if err != nil {
				t.Errorf("MulComb(%v, %v).Value() failed: %v", tt.left, tt.right, err)
				continue
			}
			b := new(big.Int).Binomial(int64(tt.left), int64(tt.right))
			want, _ := new(big.Rat).SetInt(b).Float64()
			if got != want {
				t.Errorf("MulComb(%v, %v).Value() = %v, want %v", tt.left, tt.right, got, want)
			}
		}
	})

	t.Run("comb equals perm over fact", func(t *testing.T) {
		tests := []struct {
			left, right int
		}{
			{0, 0},
			{5, 2},
			{9, 9},
			{30, 7},
			{200, 100},
		}
		for _, tt := range tests {
			p := New[float64]()
			p.MustMulPerm(tt.left, tt.right).MustDivPerm(tt.right, tt.right)
			q := New[float64]()
			q.MustMulComb(tt.left, tt.right)
			got, want := p.MustValue(), q.MustValue()
			if math.Float64bits(got) != math.Float64bits(want) {
				t.Errorf("MulPerm(%v, %v).DivPerm(%v, %v).Value() = %v, want %v", tt.left, tt.right, tt.right, tt.right, got, want)
			}
		}
	})

	t.Run("div comb", func(t *testing.T) {
		p := New[float64]()
		p.MustMulComb(20, 4).MustDivComb(20, 4)
		if got := p.MustValue(); got != 1 {
			t.Errorf("MulComb(20, 4).DivComb(20, 4).Value() = %v, want 1", got)
		}
		q := New[float64]()
		q.MustDivComb(6, 3)
		if got, want := q.MustValue(), 1.0/20; got != want {
			t.Errorf("DivComb(6, 3).Value() = %v, want %v", got, want)
		}
	})

	t.Run("order independence", func(t *testing.T) {
		ops := []func(p *Product[float64]){
			func(p *Product[float64]) { p.MustMulFact(7) },
			func(p *Product[float64]) { p.MustDivFact(6) },
			func(p *Product[float64]) { p.MustMulComb(5, 2) },
			func(p *Product[float64]) { p.MustDivPerm(9, 2) },
			func(p *Product[float64]) { p.MustMulPerm(12, 4) },
		}
		orders := [][]int{
			{0, 1, 2, 3, 4},
			{4, 3, 2, 1, 0},
			{2, 0, 4, 1, 3},
			{3, 4, 0, 2, 1},
			{1, 3, 0, 4, 2},
		}
		var want float64
		for i, order := range orders {
			p := New[float64]()
			for _, j := range order {
				ops[j](p)
			}
			got := p.MustValue()
			if i == 0 {
				want = got
				continue
			}
			if math.Float64bits(got) != math.Float64bits(want) {
				t.Errorf("order %v: Value() = %v, want %v", order, got, want)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		p := New[float64]()
		p.MustMulComb(100, 37).MustDivFact(13)
		first := p.MustValue()
		if len(p.points) != 0 {
			t.Errorf("Value() left %v pending events, want 0", len(p.points))
		}
		second := p.MustValue()
		if math.Float64bits(first) != math.Float64bits(second) {
			t.Errorf("Value() = %v, then %v", first, second)
		}
	})

	t.Run("accumulate", func(t *testing.T) {
		p := New[float64]()
		p.MustMulFact(5)
		if got := p.MustValue(); got != 120 {
			t.Errorf("MulFact(5).Value() = %v, want 120", got)
		}
		p.MustMulFact(3)
		if got := p.MustValue(); got != 720 {
			t.Errorf("MulFact(5).Value().MulFact(3).Value() = %v, want 720", got)
		}
		p.MustDivPerm(10, 1)
		if got := p.MustValue(); got != 72 {
			t.Errorf("...DivPerm(10, 1).Value() = %v, want 72", got)
		}
	})

	t.Run("float32", func(t *testing.T) {
		p := New[float32]()
		p.MustMulFact(5).MustDivFact(5)
		p.MustMulFact(7).MustDivFact(6)
		p.MustMulComb(5, 2).MustDivPerm(9, 2)
		got, err := p.Value()
		if err != nil {
			t.Fatalf("Value() failed: %v", err)
		}
		want := float32(35) / float32(36)
		if got != want {
			t.Errorf("Value() = %v, want %v", got, want)
		}

		q := New[float32]()
		q.MustMulFact(34)
		want, _ = new(big.Rat).SetInt(new(big.Int).MulRange(1, 34)).Float32()
		if got := q.MustValue(); got != want {
			t.Errorf("MulFact(34).Value() = %v, want %v", got, want)
		}

		r := New[float32]()
		r.MustMulFact(35)
		if got := r.MustValue(); !math.IsInf(float64(got), 1) {
			t.Errorf("MulFact(35).Value() = %v, want +Inf", got)
		}
	})

	t.Run("named float", func(t *testing.T) {
		type probability float64
		p := New[probability]()
		p.MustMulComb(4, 2).MustDivPerm(4, 4)
		if got, want := p.MustValue(), probability(0.25); got != want {
			t.Errorf("Value() = %v, want %v", got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		p := New[float64]()
		_, err := p.Value()
		if !errors.Is(err, ErrEmptyAccumulator) {
			t.Errorf("New().Value() error = %v, want %v", err, ErrEmptyAccumulator)
		}
	})
}

func TestProduct_InvalidRange(t *testing.T) {
	ops := map[string]func(p *Product[float64]) error{
		"MulPerm(3, 5)":  func(p *Product[float64]) error { return p.MulPerm(3, 5) },
		"DivPerm(3, 5)":  func(p *Product[float64]) error { return p.DivPerm(3, 5) },
		"MulComb(3, 5)":  func(p *Product[float64]) error { return p.MulComb(3, 5) },
		"DivComb(3, 5)":  func(p *Product[float64]) error { return p.DivComb(3, 5) },
		"MulFact(-1)":    func(p *Product[float64]) error { return p.MulFact(-1) },
		"DivFact(-1)":    func(p *Product[float64]) error { return p.DivFact(-1) },
		"MulComb(-1, 0)": func(p *Product[float64]) error { return p.MulComb(-1, 0) },
	}

	t.Run("fresh", func(t *testing.T) {
		for name, op := range ops {
			p := New[float64]()
			err := op(p)
			if !errors.Is(err, ErrInvalidRange) {
				t.Errorf("%v error = %v, want %v", name, err, ErrInvalidRange)
				continue
			}
			if len(p.points) != 0 {
				t.Errorf("%v recorded %v events, want 0", name, len(p.points))
			}
			if _, err := p.Value(); !errors.Is(err, ErrEmptyAccumulator) {
				t.Errorf("%v then Value() error = %v, want %v", name, err, ErrEmptyAccumulator)
			}
		}
	})

	t.Run("cached", func(t *testing.T) {
		for name, op := range ops {
			p := New[float64]()
			p.MustMulFact(4)
			before := p.MustValue()
			if err := op(p); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("%v error = %v, want %v", name, err, ErrInvalidRange)
				continue
			}
			if !p.valid {
				t.Errorf("%v invalidated cached value", name)
			}
			if got := p.MustValue(); got != before {
				t.Errorf("%v then Value() = %v, want %v", name, got, before)
			}
		}
	})
}

func TestProduct_Reset(t *testing.T) {
	p := New[float64]()
	p.MustMulFact(10)
	p.MustValue()
	p.MustDivFact(3)
	p.Reset()
	if _, err := p.Value(); !errors.Is(err, ErrEmptyAccumulator) {
		t.Errorf("Reset().Value() error = %v, want %v", err, ErrEmptyAccumulator)
	}
	if p.sieve.max != 11 {
		t.Errorf("Reset() sieve max = %v, want 11", p.sieve.max)
	}
	p.MustMulPerm(6, 2)
	if got := p.MustValue(); got != 30 {
		t.Errorf("Reset().MulPerm(6, 2).Value() = %v, want 30", got)
	}
}

func TestProduct_Reconstruct(t *testing.T) {
	t.Run("exponents", func(t *testing.T) {
		p := New[float64]()
		p.MustMulFact(5).MustDivFact(5)
		p.MustMulFact(7).MustDivFact(6)
		p.MustMulComb(5, 2).MustDivPerm(9, 2)
		if err := p.reconstruct(); err != nil {
			t.Fatalf("reconstruct() failed: %v", err)
		}
		want := map[int]int{2: -2, 3: -2, 5: 1, 7: 1}
		for i, q := range p.sieve.primes {
			if got := p.sieve.exps[i]; got != want[q] {
				t.Errorf("exponent of %v = %v, want %v", q, got, want[q])
			}
		}
		if len(p.points) != 0 {
			t.Errorf("reconstruct() left %v pending events, want 0", len(p.points))
		}
		if p.sieve.max != 10 {
			t.Errorf("reconstruct() sieve max = %v, want 10", p.sieve.max)
		}
	})

	t.Run("incomplete", func(t *testing.T) {
		p := New[float64]()
		p.MustMulFact(3)
		if err := p.reconstruct(); err != nil {
			t.Fatalf("reconstruct() failed: %v", err)
		}
		p.MustMulPerm(5, 1)
		// Shrink the catalog to break the sieve invariant.
		p.sieve.primes = p.sieve.primes[:1]
		p.sieve.exps = p.sieve.exps[:1]
		p.sieve.max = 6
		err := p.reconstruct()
		if !errors.Is(err, ErrFactorizationIncomplete) {
			t.Errorf("reconstruct() error = %v, want %v", err, ErrFactorizationIncomplete)
		}
		if len(p.points) == 0 {
			t.Errorf("failed reconstruct() dropped pending events")
		}
		if p.sieve.exps[0] != 1 {
			t.Errorf("failed reconstruct() changed exponent of 2 to %v, want 1", p.sieve.exps[0])
		}
	})
}
