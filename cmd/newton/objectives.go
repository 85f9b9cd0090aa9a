package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cvxmin/newton/multivariate"
	"github.com/cvxmin/newton/multivariate/autodiff"
	"github.com/cvxmin/newton/univariate"
)

// parseVector parses a comma-separated list of floats.
func parseVector(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	v := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as a number: %w", p, err)
		}
		v = append(v, f)
	}
	return v, nil
}

// polynomial returns the objective c[0] + c[1]*x + c[2]*x^2 + ...
// evaluated by Horner's rule.
func polynomial(coeffs []float64) univariate.Func {
	return func(x float64) float64 {
		var v float64
		for i := len(coeffs) - 1; i >= 0; i-- {
			v = v*x + coeffs[i]
		}
		return v
	}
}

// builtinObjective returns a named multivariate demonstration objective.
func builtinObjective(name string, center []float64) (multivariate.Objective, error) {
	switch name {
	case "bowl":
		// sum_i (x_i - center_i)^2: one Newton step suffices.
		return func(x []autodiff.Num) autodiff.Num {
			sum := autodiff.Const(0)
			for i := range x {
				c := 0.0
				if i < len(center) {
					c = center[i]
				}
				d := autodiff.Sub(x[i], autodiff.Const(c))
				sum = autodiff.Add(sum, autodiff.Sq(d))
			}
			return sum
		}, nil
	case "sumexp":
		// sum_i exp(x_i) - x_i: smooth, strictly convex, minimum at 0.
		return func(x []autodiff.Num) autodiff.Num {
			sum := autodiff.Const(0)
			for i := range x {
				sum = autodiff.Add(sum, autodiff.Sub(autodiff.Exp(x[i]), x[i]))
			}
			return sum
		}, nil
	case "rosenbrock":
		// Not convex: demonstrates the singular/indefinite abort paths.
		return func(x []autodiff.Num) autodiff.Num {
			sum := autodiff.Const(0)
			for i := 0; i < len(x)-1; i++ {
				t1 := autodiff.Sub(autodiff.Const(1), x[i])
				t2 := autodiff.Sub(x[i+1], autodiff.Sq(x[i]))
				sum = autodiff.Add(sum, autodiff.Add(autodiff.Sq(t1), autodiff.Scale(100, autodiff.Sq(t2))))
			}
			return sum
		}, nil
	}
	return nil, fmt.Errorf("unknown objective %q (want bowl, sumexp or rosenbrock)", name)
}
