package multivariate

import (
	"errors"
	"fmt"
	"math"

	"github.com/cvxmin/newton/common"
	"github.com/cvxmin/newton/multivariate/autodiff"

	"gonum.org/v1/gonum/mat"
)

// singularDetTol guards the Hessian determinant. The comparison is
// signed: near-zero and negative determinants both stop the run. It is
// not a positive-definiteness test, so an indefinite Hessian whose
// determinant happens to be large and positive passes and the resulting
// step may not descend.
const singularDetTol = 1e-10

// Newton minimizes a convex objective by taking full Newton steps: each
// iteration solves hessian*step = -gradient and advances by the whole
// step, with no line search.
type Newton struct {
	Deriver Deriver // Source of gradients and Hessians

	fun    Objective
	x      []float64
	obj    float64
	grad   []float64
	hess   *mat.SymDense
	step   *mat.VecDense
	rhs    *mat.VecDense
	status common.Status
}

func (n *Newton) Init(fun Objective, initLoc []float64, initObj float64) error {
	if n.Deriver == nil {
		return errors.New("newton: nil deriver")
	}
	dim := len(initLoc)
	n.fun = fun
	n.x = append(n.x[:0], initLoc...)
	n.obj = initObj
	n.grad = make([]float64, dim)
	n.hess = mat.NewSymDense(dim, nil)
	n.step = mat.NewVecDense(dim, nil)
	n.rhs = mat.NewVecDense(dim, nil)
	n.status = common.Continue
	return nil
}

// Status reports a singular-Hessian stop found during Iterate.
func (n *Newton) Status() common.Status {
	return n.status
}

// Iterate performs one full Newton step. On a singular-Hessian stop the
// returned location is the unchanged current iterate.
func (n *Newton) Iterate() (loc []float64, obj float64, grad []float64, displacement float64, nFunEvals int, err error) {
	nFunEvals = n.Deriver.Derivs(n.fun, n.x, n.grad, n.hess)

	var lu mat.LU
	lu.Factorize(n.hess)
	if lu.Det() < singularDetTol {
		n.status = common.Singular
		return n.x, n.obj, n.grad, 0, nFunEvals, nil
	}

	for i, g := range n.grad {
		n.rhs.SetVec(i, -g)
	}
	if err := lu.SolveVecTo(n.step, false, n.rhs); err != nil {
		return nil, 0, nil, 0, nFunEvals, fmt.Errorf("solving the Newton system: %w", err)
	}

	for i := range n.x {
		n.x[i] += n.step.AtVec(i)
	}
	n.obj = autodiff.Value(autodiff.Func(n.fun), n.x)
	nFunEvals++

	return n.x, n.obj, n.grad, mat.Norm(n.step, 2), nFunEvals, nil
}

func (n *Newton) Result() {}

// Optimizer is a multivariate minimization algorithm driven one iteration
// at a time.
type Optimizer interface {
	Init(fun Objective, initLoc []float64, initObj float64) error
	Status() common.Status
	Iterate() (loc []float64, obj float64, grad []float64, displacement float64, nFunEvals int, err error)
	// Result does any cleanup needed.
	Result()
}

// Minimize minimizes fun starting from x0 using Newton's method with
// exact derivatives from automatic differentiation. Each iteration takes
// the full Newton step; there is no line search, so far-off starting
// points rely on the objective being globally well-approximated by its
// quadratic model. A nil settings uses DefaultSettings.
//
// Invalid arguments are rejected with an error wrapping
// common.ErrInvalidArgument before the objective is evaluated. A singular
// Hessian and the iteration cap are not errors: the run stops, the
// condition is written to the diagnostic channel, and the current iterate
// is returned with the corresponding Result.Status.
func Minimize(fun Objective, x0 []float64, settings *Settings) (*Result, error) {
	if fun == nil {
		return nil, fmt.Errorf("multivariate: objective must be non-nil: %w", common.ErrInvalidArgument)
	}
	if len(x0) == 0 {
		return nil, fmt.Errorf("multivariate: initial guess must be a non-empty vector: %w", common.ErrInvalidArgument)
	}
	for i, v := range x0 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("multivariate: initial guess component %d must be finite, got %v: %w",
				i, v, common.ErrInvalidArgument)
		}
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	if settings.RunSettings == nil {
		settings.RunSettings = common.DefaultRunSettings()
	}
	if err := settings.RunSettings.Validate(); err != nil {
		return nil, fmt.Errorf("multivariate: %w", err)
	}
	if settings.Tol <= 0 {
		return nil, fmt.Errorf("multivariate: tol must be positive, got %v: %w", settings.Tol, common.ErrInvalidArgument)
	}

	newton := &Newton{Deriver: AD{}}
	return MinimizeWith(fun, x0, settings, newton)
}

// MinimizeWith runs the iteration loop with a caller-supplied optimizer.
// The settings must already be validated; Minimize is the checked entry
// point.
func MinimizeWith(fun Objective, x0 []float64, settings *Settings, optimizer Optimizer) (*Result, error) {
	helper := NewHelper()

	initObj := autodiff.Value(autodiff.Func(fun), x0)
	helper.Init(settings, x0, initObj)
	helper.AddFunEvals(1)

	if err := optimizer.Init(fun, x0, initObj); err != nil {
		return nil, fmt.Errorf("multivariate: initializing optimizer: %w", err)
	}

	var status common.Status
	for {
		loc, obj, grad, displacement, nFunEvals, err := optimizer.Iterate()
		if err != nil {
			return nil, fmt.Errorf("multivariate: iterating optimizer: %w", err)
		}
		if s := optimizer.Status(); s != common.Continue {
			// Degenerate stop: the step was not taken, so only the
			// evaluations are recorded. The gradient is kept so callers
			// can inspect it in the result.
			helper.gradCurr = append(helper.gradCurr[:0], grad...)
			helper.AddFunEvals(nFunEvals)
			status = s
			break
		}
		helper.Iterate(loc, obj, grad, displacement, nFunEvals)
		if s := helper.Status(); s != common.Continue {
			status = s
			break
		}
	}

	warnStatus(settings, helper, status)
	optimizer.Result()
	return helper.Result(status), nil
}

func warnStatus(settings *Settings, helper *Helper, status common.Status) {
	switch status {
	case common.Singular:
		settings.Warn("singular Hessian, cannot proceed with Newton's method")
	case common.MaxIterReached:
		settings.Warn("maximum number of iterations reached",
			"iterations", helper.Iterations())
	case common.MaxFunEvaluations:
		settings.Warn("maximum number of function evaluations reached",
			"evaluations", helper.FunEvals())
	case common.MaxRuntimeElapsed:
		settings.Warn("maximum runtime elapsed")
	}
}
