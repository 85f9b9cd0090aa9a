package multivariate

import (
	"math"

	"github.com/cvxmin/newton/common"
	"github.com/cvxmin/newton/multivariate/autodiff"
	"github.com/cvxmin/newton/write"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Objective is a scalar function of a vector argument, written over
// traced scalars so the differentiation engine can follow it. Evaluating
// at a plain point seeds all sensitivities to zero.
type Objective func(x []autodiff.Num) autodiff.Num

// Deriver produces first- and second-order local information for an
// objective at a point: the gradient into grad and the Hessian into hess.
// nFunEvals is the number of objective evaluations consumed.
type Deriver interface {
	Derivs(fun Objective, x []float64, grad []float64, hess *mat.SymDense) (nFunEvals int)
}

// Settings contains the settings for multivariate minimization.
type Settings struct {
	*common.RunSettings
	Tol float64 // Convergence threshold on the Euclidean iterate displacement
}

// DefaultSettings returns the default settings for multivariate
// minimization.
func DefaultSettings() *Settings {
	return &Settings{
		RunSettings: common.DefaultRunSettings(),
		Tol:         1e-5,
	}
}

// Result is the outcome of a multivariate minimization. X is returned on
// every exit path; only Status distinguishes a converged run from an
// aborted one. Grad holds the gradient at the last point where
// derivatives were computed, so callers can re-validate convergence
// independently of Status.
type Result struct {
	*common.RunResult
	X    []float64 // Final iterate
	Obj  float64   // Objective value at X
	Grad []float64 // Gradient at the last derivative evaluation
}

// Helper is a helper struct for optimizers, the multivariate counterpart
// of univariate.Helper.
type Helper struct {
	*common.Counters
	toler common.DisplacementToler

	locCurr  []float64
	objCurr  float64
	gradCurr []float64
}

// NewHelper creates a new Helper and adds itself to the trace data adders.
func NewHelper() *Helper {
	h := &Helper{
		Counters: common.NewCounters(),
	}
	h.AddDataAdder(h)
	return h
}

func (h *Helper) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "Obj", Value: h.objCurr})
	v = append(v, &write.Value{Heading: "GradNorm", Value: floats.Norm(h.gradCurr, 2)})
	return v
}

func (h *Helper) Init(s *Settings, initLoc []float64, initObj float64) {
	h.Counters.Init(s.RunSettings)
	h.toler.Init(s.Tol)

	h.locCurr = append(h.locCurr[:0], initLoc...)
	h.objCurr = initObj
	h.gradCurr = h.gradCurr[:0]
	for range initLoc {
		h.gradCurr = append(h.gradCurr, math.NaN())
	}
}

func (h *Helper) Iterate(loc []float64, obj float64, grad []float64, displacement float64, nFunEvals int) {
	h.locCurr = append(h.locCurr[:0], loc...)
	h.objCurr = obj
	h.gradCurr = append(h.gradCurr[:0], grad...)

	h.toler.Add(displacement)
	h.Counters.Iterate(nFunEvals)
}

// Status checks the resource caps before the displacement tolerance; see
// univariate.Helper.Status for the ordering rationale.
func (h *Helper) Status() common.Status {
	if status := h.Counters.Status(); status != common.Continue {
		return status
	}
	if h.toler.Converged() {
		return common.Converged
	}
	return common.Continue
}

func (h *Helper) Result(status common.Status) *Result {
	loc := make([]float64, len(h.locCurr))
	copy(loc, h.locCurr)
	grad := make([]float64, len(h.gradCurr))
	copy(grad, h.gradCurr)
	return &Result{
		RunResult: h.Counters.Result(status),
		X:         loc,
		Obj:       h.objCurr,
		Grad:      grad,
	}
}
