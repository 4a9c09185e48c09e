package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

var errMismatch = errors.New("value mismatch")

// batch is a YAML file with scenarios:
//
//	scenarios:
//	  - name: reference
//	    expr: "5!/5! * 7!/6! * C(5,2)/P(9,2)"
//	    want: 0.9722222222222222
type batch struct {
	Scenarios []scenario `yaml:"scenarios"`
}

type scenario struct {
	Name      string   `yaml:"name"`
	Expr      string   `yaml:"expr"`
	Want      *float64 `yaml:"want,omitempty"`
	Tolerance float64  `yaml:"tolerance,omitempty"`
}

func loadBatch(path string) (batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return batch{}, fmt.Errorf("reading batch: %w", err)
	}
	return parseBatch(data)
}

func parseBatch(data []byte) (batch, error) {
	var b batch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return batch{}, fmt.Errorf("parsing batch: %w", err)
	}
	if len(b.Scenarios) == 0 {
		return batch{}, fmt.Errorf("parsing batch: no scenarios")
	}
	for i := range b.Scenarios {
		s := &b.Scenarios[i]
		if s.Expr == "" {
			return batch{}, fmt.Errorf("parsing batch: scenario %v has no expression", i)
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario %v", i+1)
		}
		if s.Tolerance < 0 {
			return batch{}, fmt.Errorf("parsing batch: scenario %q has negative tolerance", s.Name)
		}
	}
	return b, nil
}

// run evaluates the scenario and compares the value with the expected one.
// It returns the formatted value even if the comparison fails.
func (s scenario) run(precision int) (string, error) {
	r, err := evaluateExpr(s.Expr, precision)
	if err != nil {
		return "", err
	}
	got := r.String()
	if s.Want != nil && math.Abs(r.Value-*s.Want) > s.Tolerance {
		return got, fmt.Errorf("want %v: %w", formatFloat(*s.Want, precision), errMismatch)
	}
	return got, nil
}
