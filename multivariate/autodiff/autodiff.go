// Package autodiff computes exact gradients and Hessians of scalar
// functions of a vector argument by forward-mode automatic
// differentiation over hyper-dual numbers.
//
// Objectives are written in terms of Num and the arithmetic in this
// package, so every elementary operation carries first- and second-order
// sensitivities with respect to two seed directions. Seeding the
// directions along coordinate pairs recovers any gradient or Hessian
// entry exactly, with no finite-difference truncation error.
package autodiff

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

// Num is the traced scalar type. Real holds the value; the remaining
// components hold the sensitivities along the two active seed directions.
type Num = hyperdual.Number

// Func is a scalar function of a vector argument expressed over traced
// scalars. It must be pure: the derivative of anything the trace cannot
// see is silently zero.
type Func func(x []Num) Num

// Const lifts a plain value into a traced scalar with zero sensitivities.
func Const(v float64) Num {
	return Num{Real: v}
}

// Arithmetic on traced scalars, re-exported so objectives only need this
// package.

func Add(x, y Num) Num { return hyperdual.Add(x, y) }

func Sub(x, y Num) Num { return hyperdual.Sub(x, y) }

func Mul(x, y Num) Num { return hyperdual.Mul(x, y) }

func Div(x, y Num) Num { return hyperdual.Mul(x, hyperdual.Inv(y)) }

func Neg(x Num) Num { return hyperdual.Scale(-1, x) }

func Scale(f float64, x Num) Num { return hyperdual.Scale(f, x) }

func Sq(x Num) Num { return hyperdual.Mul(x, x) }

func PowReal(x Num, p float64) Num { return hyperdual.PowReal(x, p) }

func Sqrt(x Num) Num { return hyperdual.Sqrt(x) }

func Exp(x Num) Num { return hyperdual.Exp(x) }

func Log(x Num) Num { return hyperdual.Log(x) }

func Sin(x Num) Num { return hyperdual.Sin(x) }

func Cos(x Num) Num { return hyperdual.Cos(x) }

// Value evaluates f at x with all sensitivities seeded to zero.
func Value(f Func, x []float64) float64 {
	return f(lift(x)).Real
}

// Gradient stores the exact gradient of f at x into dst and returns it.
// If dst is nil a new slice is allocated; otherwise its length must match
// x. One traced evaluation is made per dimension.
func Gradient(dst []float64, f Func, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	if len(dst) != len(x) {
		panic("autodiff: slice length mismatch")
	}
	nums := lift(x)
	for i := range x {
		nums[i].E1mag = 1
		dst[i] = f(nums).E1mag
		nums[i].E1mag = 0
	}
	return dst
}

// Hessian stores the exact Hessian of f at x into dst and returns it.
// If dst is nil a new matrix is allocated; otherwise its order must match
// the length of x. Entry (i,j) comes from one traced evaluation seeded
// along coordinates i and j, so n(n+1)/2 evaluations are made in total.
func Hessian(dst *mat.SymDense, f Func, x []float64) *mat.SymDense {
	n := len(x)
	if dst == nil {
		dst = mat.NewSymDense(n, nil)
	}
	if dst.SymmetricDim() != n {
		panic("autodiff: matrix dimension mismatch")
	}
	nums := lift(x)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			nums[i].E1mag = 1
			nums[j].E2mag = 1
			dst.SetSym(i, j, f(nums).E1E2mag)
			nums[i].E1mag = 0
			nums[j].E2mag = 0
		}
	}
	return dst
}

func lift(x []float64) []Num {
	nums := make([]Num, len(x))
	for i, v := range x {
		nums[i].Real = v
	}
	return nums
}
