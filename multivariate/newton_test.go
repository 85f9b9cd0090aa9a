package multivariate

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/cvxmin/newton/common"
	"github.com/cvxmin/newton/multivariate/autodiff"

	"gonum.org/v1/gonum/floats"
)

// bowl is the shifted sum of squares sum_i (x_i - center_i)^2.
func bowl(center []float64) Objective {
	return func(x []autodiff.Num) autodiff.Num {
		sum := autodiff.Const(0)
		for i := range x {
			d := autodiff.Sub(x[i], autodiff.Const(center[i]))
			sum = autodiff.Add(sum, autodiff.Sq(d))
		}
		return sum
	}
}

func quietSettings() *Settings {
	s := DefaultSettings()
	s.Logger = nil
	return s
}

func TestMinimizeQuadratic(t *testing.T) {
	center := []float64{1, 2}
	result, err := Minimize(bowl(center), []float64{0, 0}, quietSettings())
	if err != nil {
		t.Fatalf("error minimizing: %v", err)
	}
	if result.Status != common.Converged {
		t.Errorf("status: got %v, want %v", result.Status, common.Converged)
	}
	for i := range center {
		if math.Abs(result.X[i]-center[i]) > 1e-4 {
			t.Errorf("location[%d]: got %v, want %v", i, result.X[i], center[i])
		}
	}
	// A quadratic objective with an exact Hessian needs a single Newton
	// step; the second iteration only observes the zero displacement.
	if result.Iterations != 2 {
		t.Errorf("iterations: got %d, want 2", result.Iterations)
	}
	if norm := floats.Norm(result.Grad, 2); norm > 1e-10 {
		t.Errorf("gradient norm at the minimum: got %v, want ~0", norm)
	}
}

func TestMinimizeSingularHessian(t *testing.T) {
	// f(x, y) = (x + y)^2 has a rank-one Hessian with zero determinant.
	fun := func(x []autodiff.Num) autodiff.Num {
		return autodiff.Sq(autodiff.Add(x[0], x[1]))
	}
	x0 := []float64{1, 1}

	result, err := Minimize(fun, x0, quietSettings())
	if err != nil {
		t.Fatalf("error minimizing: %v", err)
	}
	if result.Status != common.Singular {
		t.Errorf("status: got %v, want %v", result.Status, common.Singular)
	}
	if !floats.Equal(result.X, x0) {
		t.Errorf("iterate moved on a singular stop: got %v, want %v", result.X, x0)
	}
	if result.Iterations != 0 {
		t.Errorf("iterations on a first-step singular stop: got %d, want 0", result.Iterations)
	}
}

func TestMinimizeSingularWarning(t *testing.T) {
	fun := func(x []autodiff.Num) autodiff.Num {
		return autodiff.Sq(autodiff.Add(x[0], x[1]))
	}
	var buf bytes.Buffer
	settings := DefaultSettings()
	settings.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	if _, err := Minimize(fun, []float64{1, 1}, settings); err != nil {
		t.Fatalf("error minimizing: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "singular Hessian") {
		t.Errorf("warning output %q missing the singular Hessian message", out)
	}
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("warning output %q not at warning level", out)
	}
}

func TestMinimizeSaddle(t *testing.T) {
	// f(x, y) = x^2 - y^2 has determinant -4; the signed determinant
	// guard catches this saddle.
	fun := func(x []autodiff.Num) autodiff.Num {
		return autodiff.Sub(autodiff.Sq(x[0]), autodiff.Sq(x[1]))
	}
	x0 := []float64{0.5, 0.5}

	result, err := Minimize(fun, x0, quietSettings())
	if err != nil {
		t.Fatalf("error minimizing: %v", err)
	}
	if result.Status != common.Singular {
		t.Errorf("status: got %v, want %v", result.Status, common.Singular)
	}
	if !floats.Equal(result.X, x0) {
		t.Errorf("iterate moved on a singular stop: got %v, want %v", result.X, x0)
	}
}

func TestMinimizeMaxIter(t *testing.T) {
	// Full Newton steps on x^4 contract by a factor of 2/3 per
	// iteration, so a small cap stops the run before the displacement
	// tolerance is met.
	fun := func(x []autodiff.Num) autodiff.Num {
		return autodiff.Sq(autodiff.Sq(x[0]))
	}
	settings := quietSettings()
	settings.MaxIter = 5

	result, err := Minimize(fun, []float64{1}, settings)
	if err != nil {
		t.Fatalf("error minimizing: %v", err)
	}
	if result.Status != common.MaxIterReached {
		t.Errorf("status: got %v, want %v", result.Status, common.MaxIterReached)
	}
	if result.Iterations != settings.MaxIter {
		t.Errorf("iterations: got %d, want exactly %d", result.Iterations, settings.MaxIter)
	}
	want := math.Pow(2.0/3.0, float64(settings.MaxIter))
	if math.Abs(result.X[0]-want) > 1e-12 {
		t.Errorf("iterate after %d capped steps: got %v, want %v", settings.MaxIter, result.X[0], want)
	}
}

func TestMinimizeInvalidArguments(t *testing.T) {
	var calls int
	counting := func(x []autodiff.Num) autodiff.Num {
		calls++
		return autodiff.Sq(x[0])
	}

	for _, test := range []struct {
		name     string
		fun      Objective
		x0       []float64
		settings func() *Settings
	}{
		{name: "nil objective", fun: nil, x0: []float64{1}, settings: quietSettings},
		{name: "empty initial guess", fun: counting, x0: nil, settings: quietSettings},
		{name: "NaN component", fun: counting, x0: []float64{1, math.NaN()}, settings: quietSettings},
		{name: "infinite component", fun: counting, x0: []float64{math.Inf(-1)}, settings: quietSettings},
		{name: "non-positive max iterations", fun: counting, x0: []float64{1}, settings: func() *Settings {
			s := quietSettings()
			s.MaxIter = -1
			return s
		}},
		{name: "non-positive tol", fun: counting, x0: []float64{1}, settings: func() *Settings {
			s := quietSettings()
			s.Tol = 0
			return s
		}},
	} {
		calls = 0
		_, err := Minimize(test.fun, test.x0, test.settings())
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}
		if !errors.Is(err, common.ErrInvalidArgument) {
			t.Errorf("%s: error %v does not wrap ErrInvalidArgument", test.name, err)
		}
		if calls != 0 {
			t.Errorf("%s: objective evaluated %d times before validation failed", test.name, calls)
		}
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	center := []float64{-3, 0.5, 2}
	settings := quietSettings()

	first, err := Minimize(bowl(center), []float64{10, -10, 4}, settings)
	if err != nil {
		t.Fatalf("error minimizing: %v", err)
	}
	second, err := Minimize(bowl(center), first.X, settings)
	if err != nil {
		t.Fatalf("error minimizing from fixed point: %v", err)
	}
	if d := floats.Distance(first.X, second.X, 2); d > settings.Tol {
		t.Errorf("restart from the minimum moved %v, want at most %v", d, settings.Tol)
	}
}
