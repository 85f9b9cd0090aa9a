package multivariate

import (
	"github.com/cvxmin/newton/multivariate/autodiff"

	"gonum.org/v1/gonum/mat"
)

// AD computes exact derivatives by tracing the objective with hyper-dual
// numbers. It carries no state and is safe for concurrent use.
type AD struct{}

// Derivs implements Deriver. The gradient takes one traced evaluation per
// dimension and the Hessian one per entry of its upper triangle.
func (AD) Derivs(fun Objective, x []float64, grad []float64, hess *mat.SymDense) (nFunEvals int) {
	autodiff.Gradient(grad, autodiff.Func(fun), x)
	autodiff.Hessian(hess, autodiff.Func(fun), x)
	n := len(x)
	return n + n*(n+1)/2
}
