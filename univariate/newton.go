package univariate

import (
	"errors"
	"fmt"
	"math"

	"github.com/cvxmin/newton/common"
)

// minLineStep is the smallest step scale the backtracking loop will try.
// If the scale falls below it with no candidate passing the Armijo test,
// the step is abandoned and the current iterate is kept. The loop
// otherwise has no cap, and an objective that never satisfies the
// condition would shrink the scale forever.
const minLineStep = 1e-20

// Newton minimizes a convex objective with Newton's method, using a
// Deriver for local curvature and an Armijo backtracking line search for
// step-size control.
//
// A zero second derivative stops the run with a Singular status and a
// negative one with NonConvex; both keep the pre-step iterate.
type Newton struct {
	Deriver Deriver // Source of first and second derivatives
	Alpha   float64 // Armijo sufficient-decrease parameter
	Beta    float64 // Backtracking shrink factor, in (0,1)

	fun    Objective
	x      float64
	obj    float64
	status common.Status
}

func (n *Newton) Init(fun Objective, initLoc, initObj float64) error {
	if n.Deriver == nil {
		return errors.New("newton: nil deriver")
	}
	n.fun = fun
	n.x = initLoc
	n.obj = initObj
	n.status = common.Continue
	return nil
}

// Status reports the degenerate-curvature conditions found during Iterate.
func (n *Newton) Status() common.Status {
	return n.status
}

// Iterate performs one Newton step with backtracking. On a degenerate
// curvature stop the returned location is the unchanged current iterate.
func (n *Newton) Iterate() (loc, obj, first, second, displacement float64, nFunEvals int, err error) {
	first, second, nFunEvals = n.Deriver.Derivs(n.fun, n.x)
	if second == 0 {
		n.status = common.Singular
		return n.x, n.obj, first, second, 0, nFunEvals, nil
	}
	if second < 0 {
		n.status = common.NonConvex
		return n.x, n.obj, first, second, 0, nFunEvals, nil
	}

	dir := -first / second
	xOld := n.x
	fOld := n.obj

	// Backtracking line search: shrink the step scale until the Armijo
	// sufficient-decrease condition holds or the scale floor is hit.
	t := 1.0
	xNew := xOld + t*dir
	fNew := n.fun.Obj(xNew)
	nFunEvals++
	for fNew > fOld+n.Alpha*t*first*dir {
		t *= n.Beta
		if t < minLineStep {
			// No scale satisfied the decrease test; keep the current
			// iterate rather than accept a worse candidate.
			xNew = xOld
			fNew = fOld
			break
		}
		xNew = xOld + t*dir
		fNew = n.fun.Obj(xNew)
		nFunEvals++
	}

	n.x = xNew
	n.obj = fNew
	return xNew, fNew, first, second, math.Abs(xNew - xOld), nFunEvals, nil
}

func (n *Newton) Result() {}

// Optimizer is a univariate minimization algorithm driven one iteration
// at a time.
type Optimizer interface {
	Init(fun Objective, initLoc, initObj float64) error
	Status() common.Status
	Iterate() (loc, obj, first, second, displacement float64, nFunEvals int, err error)
	// Result does any cleanup needed.
	Result()
}

// Minimize minimizes fun starting from x0 using Newton's method with
// forward-difference derivatives and an Armijo backtracking line search.
// A nil settings uses DefaultSettings.
//
// Invalid arguments are rejected with an error wrapping
// common.ErrInvalidArgument before the objective is evaluated. Degenerate
// curvature and the iteration cap are not errors: the run stops, the
// condition is written to the diagnostic channel, and the current iterate
// is returned with the corresponding Result.Status.
func Minimize(fun Objective, x0 float64, settings *Settings) (*Result, error) {
	if fun == nil {
		return nil, fmt.Errorf("univariate: objective must be non-nil: %w", common.ErrInvalidArgument)
	}
	if math.IsNaN(x0) || math.IsInf(x0, 0) {
		return nil, fmt.Errorf("univariate: initial guess must be finite, got %v: %w", x0, common.ErrInvalidArgument)
	}
	if settings == nil {
		settings = DefaultSettings()
	}
	if settings.RunSettings == nil {
		settings.RunSettings = common.DefaultRunSettings()
	}
	if err := settings.RunSettings.Validate(); err != nil {
		return nil, fmt.Errorf("univariate: %w", err)
	}
	if settings.Eps <= 0 {
		return nil, fmt.Errorf("univariate: eps must be positive, got %v: %w", settings.Eps, common.ErrInvalidArgument)
	}
	if settings.Tol <= 0 {
		return nil, fmt.Errorf("univariate: tol must be positive, got %v: %w", settings.Tol, common.ErrInvalidArgument)
	}

	newton := &Newton{
		Deriver: ForwardDifference{Eps: settings.Eps},
		Alpha:   settings.Alpha,
		Beta:    settings.Beta,
	}
	return MinimizeWith(fun, x0, settings, newton)
}

// MinimizeWith runs the iteration loop with a caller-supplied optimizer.
// The settings must already be validated; Minimize is the checked entry
// point.
func MinimizeWith(fun Objective, x0 float64, settings *Settings, optimizer Optimizer) (*Result, error) {
	helper := NewHelper()

	initObj := fun.Obj(x0)
	helper.Init(settings, x0, initObj)
	helper.AddFunEvals(1)

	if err := optimizer.Init(fun, x0, initObj); err != nil {
		return nil, fmt.Errorf("univariate: initializing optimizer: %w", err)
	}

	var status common.Status
	for {
		loc, obj, first, second, displacement, nFunEvals, err := optimizer.Iterate()
		if err != nil {
			return nil, fmt.Errorf("univariate: iterating optimizer: %w", err)
		}
		if s := optimizer.Status(); s != common.Continue {
			// Degenerate stop: the step was not taken, so only the
			// evaluations are recorded.
			helper.AddFunEvals(nFunEvals)
			status = s
			break
		}
		helper.Iterate(loc, obj, first, second, displacement, nFunEvals)
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
		settings.Warn("second derivative is zero, cannot proceed with Newton's method",
			"x", helper.locCurr)
	case common.NonConvex:
		settings.Warn("function is not convex, cannot proceed with Newton's method",
			"x", helper.locCurr)
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
