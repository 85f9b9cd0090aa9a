package common

import "math"

// DisplacementToler checks the convergence of the iterate displacement
// against an absolute tolerance. The recorded displacement starts at
// +Inf so a freshly initialized toler never reports convergence and the
// first iteration always runs.
type DisplacementToler struct {
	tol    float64
	recent float64
}

func (t *DisplacementToler) Init(tol float64) {
	t.tol = tol
	t.recent = math.Inf(1)
}

// Add records the displacement of the most recent iteration.
func (t *DisplacementToler) Add(displacement float64) {
	t.recent = displacement
}

// Converged reports whether the most recent displacement is within the
// tolerance. A NaN displacement counts as converged, matching a loop
// condition of the form "continue while displacement > tol".
func (t *DisplacementToler) Converged() bool {
	return !(t.recent > t.tol)
}
