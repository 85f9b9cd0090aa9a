package univariate

import (
	"math"

	"github.com/cvxmin/newton/common"
	"github.com/cvxmin/newton/write"
)

// Objective is a scalar function of a scalar argument. The solver probes
// it at arbitrary points; panics raised by the objective propagate to the
// caller untouched.
type Objective interface {
	Obj(x float64) float64
}

// Func adapts an ordinary function to the Objective interface.
type Func func(x float64) float64

func (f Func) Obj(x float64) float64 { return f(x) }

// Deriver produces first- and second-order local information about an
// objective at a point. nFunEvals is the number of objective evaluations
// consumed.
type Deriver interface {
	Derivs(fun Objective, x float64) (first, second float64, nFunEvals int)
}

// Settings contains the settings for univariate minimization.
type Settings struct {
	*common.RunSettings
	Eps   float64 // Perturbation used by the forward-difference Deriver
	Tol   float64 // Convergence threshold on the iterate displacement
	Alpha float64 // Armijo sufficient-decrease parameter
	Beta  float64 // Backtracking shrink factor, in (0,1)
}

// DefaultSettings returns the default settings for univariate
// minimization.
func DefaultSettings() *Settings {
	return &Settings{
		RunSettings: common.DefaultRunSettings(),
		Eps:         1e-5,
		Tol:         1e-5,
		Alpha:       0.25,
		Beta:        0.5,
	}
}

// Result is the outcome of a univariate minimization. X is returned on
// every exit path; only Status distinguishes a converged run from an
// aborted one.
type Result struct {
	*common.RunResult
	X   float64 // Final iterate
	Obj float64 // Objective value at X
}

// Helper is a helper struct for optimizers. Not intended for use by
// callers of the minimization functions, but exported to aid others who
// are building optimization algorithms.
//
// Implementers should call Init at the beginning of a run, Iterate at the
// end of every iteration, and Status to check the termination conditions.
type Helper struct {
	*common.Counters
	toler common.DisplacementToler

	locCurr    float64
	objCurr    float64
	firstCurr  float64
	secondCurr float64
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
	v = append(v, &write.Value{Heading: "X", Value: h.locCurr})
	v = append(v, &write.Value{Heading: "Obj", Value: h.objCurr})
	v = append(v, &write.Value{Heading: "D1", Value: h.firstCurr})
	v = append(v, &write.Value{Heading: "D2", Value: h.secondCurr})
	return v
}

func (h *Helper) Init(s *Settings, initLoc, initObj float64) {
	h.Counters.Init(s.RunSettings)
	h.toler.Init(s.Tol)

	h.locCurr = initLoc
	h.objCurr = initObj
	h.firstCurr = math.NaN()
	h.secondCurr = math.NaN()
}

func (h *Helper) Iterate(loc, obj, first, second, displacement float64, nFunEvals int) {
	h.locCurr = loc
	h.objCurr = obj
	h.firstCurr = first
	h.secondCurr = second

	h.toler.Add(displacement)
	h.Counters.Iterate(nFunEvals)
}

// Status checks the resource caps before the displacement tolerance, so
// an iteration that exhausts the cap is reported as capped even when it
// also moved less than Tol.
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
	return &Result{
		RunResult: h.Counters.Result(status),
		X:         h.locCurr,
		Obj:       h.objCurr,
	}
}
