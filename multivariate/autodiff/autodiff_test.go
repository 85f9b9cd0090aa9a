package autodiff

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// f(x, y) = x^2*y + sin(x)
func curved(x []Num) Num {
	return Add(Mul(Sq(x[0]), x[1]), Sin(x[0]))
}

func TestValue(t *testing.T) {
	x, y := 1.2, 0.7
	got := Value(curved, []float64{x, y})
	want := x*x*y + math.Sin(x)
	if !scalar.EqualWithinAbsOrRel(got, want, 1e-14, 1e-14) {
		t.Errorf("value: got %v, want %v", got, want)
	}
}

func TestGradient(t *testing.T) {
	x, y := 1.2, 0.7
	grad := Gradient(nil, curved, []float64{x, y})
	want := []float64{2*x*y + math.Cos(x), x * x}
	for i := range want {
		if !scalar.EqualWithinAbsOrRel(grad[i], want[i], 1e-14, 1e-14) {
			t.Errorf("gradient[%d]: got %v, want %v", i, grad[i], want[i])
		}
	}
}

func TestHessian(t *testing.T) {
	x, y := 1.2, 0.7
	hess := Hessian(nil, curved, []float64{x, y})
	want := mat.NewSymDense(2, []float64{
		2*y - math.Sin(x), 2 * x,
		2 * x, 0,
	})
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !scalar.EqualWithinAbsOrRel(hess.At(i, j), want.At(i, j), 1e-14, 1e-14) {
				t.Errorf("hessian[%d,%d]: got %v, want %v", i, j, hess.At(i, j), want.At(i, j))
			}
		}
	}
}

func TestGradientTranscendental(t *testing.T) {
	// g(x, y) = exp(x/y): derivatives mix Div, Exp and the chain rule
	// through both seed directions.
	g := func(x []Num) Num { return Exp(Div(x[0], x[1])) }
	x, y := 0.8, 2.0
	e := math.Exp(x / y)

	grad := Gradient(nil, g, []float64{x, y})
	want := []float64{e / y, -x * e / (y * y)}
	for i := range want {
		if !scalar.EqualWithinAbsOrRel(grad[i], want[i], 1e-13, 1e-13) {
			t.Errorf("gradient[%d]: got %v, want %v", i, grad[i], want[i])
		}
	}

	hess := Hessian(nil, g, []float64{x, y})
	hxy := -e * (y + x) / (y * y * y)
	want2 := mat.NewSymDense(2, []float64{
		e / (y * y), hxy,
		hxy, e * (2*x*y + x*x) / (y * y * y * y),
	})
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if !scalar.EqualWithinAbsOrRel(hess.At(i, j), want2.At(i, j), 1e-13, 1e-13) {
				t.Errorf("hessian[%d,%d]: got %v, want %v", i, j, hess.At(i, j), want2.At(i, j))
			}
		}
	}
}

func TestGradientReusesDst(t *testing.T) {
	dst := make([]float64, 2)
	got := Gradient(dst, curved, []float64{1, 1})
	if &got[0] != &dst[0] {
		t.Error("gradient did not fill the provided slice")
	}
}
