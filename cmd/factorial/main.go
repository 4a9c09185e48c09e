// Command factorial evaluates products and quotients of factorials,
// permutations, and combinations without overflow.
//
// Usage:
//
//	factorial eval "5!/5! * 7!/6! * C(5,2)/P(9,2)"
//	factorial batch scenarios.yaml
//	factorial demo
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
