package common

import (
	"fmt"
	"time"

	"github.com/cvxmin/newton/write"
)

// RunSettings is the set of options shared by all solvers.
type RunSettings struct {
	MaxIter     int           // Maximum number of major iterations
	MaxFunEvals int           // Maximum number of objective evaluations, -1 for no cap
	MaxRuntime  time.Duration // Maximum elapsed wall-clock time, -1 for no cap
	*write.Settings
}

// DefaultRunSettings returns the shared solver defaults. The iteration
// cap defaults to 100; the evaluation and runtime caps are disabled.
func DefaultRunSettings() *RunSettings {
	return &RunSettings{
		MaxIter:     100,
		MaxFunEvals: -1,
		MaxRuntime:  -1,
		Settings:    write.DefaultSettings(),
	}
}

// Validate checks the shared settings, wrapping ErrInvalidArgument on
// failure.
func (s *RunSettings) Validate() error {
	if s.MaxIter <= 0 {
		return fmt.Errorf("maximum number of iterations must be positive, got %d: %w",
			s.MaxIter, ErrInvalidArgument)
	}
	return nil
}

// RunResult holds the bookkeeping every solver reports.
type RunResult struct {
	Iterations int           // Number of major iterations taken
	FunEvals   int           // Number of objective evaluations consumed
	Runtime    time.Duration // Elapsed wall-clock time
	Status     Status        // How the run ended
}

// Counters tracks the per-invocation bookkeeping of a run: the iteration
// count, objective evaluation count, and elapsed time, checked against
// the caps in RunSettings. State is reset by Init, so a single Counters
// can drive successive runs but not concurrent ones.
type Counters struct {
	iter      int
	funEvals  int
	startTime time.Time

	settings *RunSettings

	*write.Display
}

func NewCounters() *Counters {
	c := &Counters{
		Display: write.NewDisplay(),
	}
	c.AddDataAdder(c)
	return c
}

// Init resets the counters at the start of a run.
func (c *Counters) Init(settings *RunSettings) {
	c.iter = 0
	c.funEvals = 0
	c.startTime = time.Now()
	c.settings = settings
	c.Display.Init(settings.Settings)
}

func (c *Counters) AppendWriteData(v []*write.Value) []*write.Value {
	v = append(v, &write.Value{Heading: "Iter", Value: c.iter})
	v = append(v, &write.Value{Heading: "FnEval", Value: c.funEvals})
	return v
}

// Iterate records one major iteration and its objective evaluations, and
// writes a trace row.
func (c *Counters) Iterate(nFunEvals int) {
	c.iter++
	c.funEvals += nFunEvals
	c.Display.Iterate()
}

// AddFunEvals records objective evaluations that did not complete a major
// iteration, such as those consumed before a degenerate-curvature stop.
func (c *Counters) AddFunEvals(n int) {
	c.funEvals += n
}

func (c *Counters) Iterations() int { return c.iter }

func (c *Counters) FunEvals() int { return c.funEvals }

// Status reports whether a resource cap has been hit. The iteration cap
// is tested first so that a run which hits it is reported as capped even
// if the same iteration also satisfied the displacement tolerance.
func (c *Counters) Status() Status {
	if c.iter >= c.settings.MaxIter {
		return MaxIterReached
	}
	if c.settings.MaxFunEvals > -1 && c.funEvals > c.settings.MaxFunEvals {
		return MaxFunEvaluations
	}
	if c.settings.MaxRuntime > -1 && time.Since(c.startTime) > c.settings.MaxRuntime {
		return MaxRuntimeElapsed
	}
	return Continue
}

// Result returns the bookkeeping for a finished run.
func (c *Counters) Result(status Status) *RunResult {
	return &RunResult{
		Iterations: c.iter,
		FunEvals:   c.funEvals,
		Runtime:    time.Since(c.startTime),
		Status:     status,
	}
}
