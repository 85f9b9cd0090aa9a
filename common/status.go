package common

// Statuser is implemented by anything that can report a terminal
// condition of a minimization run.
type Statuser interface {
	Status() Status
}

// CheckStatus checks the status of a variadic number of Statusers and
// returns the first non-Continue result.
func CheckStatus(cs ...Statuser) Status {
	for _, val := range cs {
		c := val.Status()
		if c != Continue {
			return c
		}
	}
	return Continue
}

// Status expresses how (or whether) a minimization run has terminated.
// Zero signifies the run should continue. Positive values indicate
// successful convergence. Negative values indicate the run stopped
// without converging; the iterate returned alongside them is the best
// found so far, not a verified minimum.
type Status int

func (s Status) String() string {
	str, ok := statusStrings[s]
	if !ok {
		return "UnregisteredStatus"
	}
	return str
}

const (
	Continue Status = iota
	// Converged means the iterate displacement dropped below the
	// configured tolerance.
	Converged
)

const (
	_ = iota
	// NonConvex means a negative second derivative was found, so the
	// Newton model is not a descent model at the current iterate.
	NonConvex Status = -1 * iota
	// Singular means the local curvature cannot be inverted: a zero
	// second derivative, or a Hessian determinant below the singularity
	// guard.
	Singular
	MaxIterReached
	MaxFunEvaluations
	MaxRuntimeElapsed
)

var statusStrings map[Status]string

func init() {
	statusStrings = make(map[Status]string)
	statusStrings[Continue] = "Continue"
	statusStrings[Converged] = "Converged"
	statusStrings[NonConvex] = "NonConvex"
	statusStrings[Singular] = "Singular"
	statusStrings[MaxIterReached] = "MaximumIterations"
	statusStrings[MaxFunEvaluations] = "MaximumFunctionEvaluations"
	statusStrings[MaxRuntimeElapsed] = "MaximumRuntimeElapsed"
}

var lastStatus Status = 256

// NewStatus is used to get a unique value for Status to avoid any
// accidental collisions. NewStatus is not thread-safe as it is intended
// to only be used during initialization.
func NewStatus(str string) Status {
	lastStatus++
	statusStrings[lastStatus] = str
	return Status(lastStatus)
}
