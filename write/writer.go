package write

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Settings controls where the solvers send diagnostic output. Diagnostics
// are informational only; they never change the values a solver returns.
type Settings struct {
	// TraceWriters receive an aligned per-iteration table of solver
	// values. Nil disables tracing.
	TraceWriters []io.Writer

	// Logger receives warnings for degenerate terminations (zero or
	// negative curvature, singular Hessian, iteration cap). Nil silences
	// them.
	Logger *slog.Logger
}

// DefaultSettings discards the iteration trace and sends warnings to the
// default slog logger.
func DefaultSettings() *Settings {
	return &Settings{
		TraceWriters: nil,
		Logger:       slog.Default(),
	}
}

// Warn emits a termination diagnostic with slog-style key/value pairs.
func (s *Settings) Warn(msg string, args ...any) {
	if s == nil || s.Logger == nil {
		return
	}
	s.Logger.Warn(msg, args...)
}

// Value is a single heading/value pair in the iteration trace.
type Value struct {
	Value   any
	Heading string
}

// DataAdder is implemented by solver components that contribute columns
// to the iteration trace.
type DataAdder interface {
	AppendWriteData([]*Value) []*Value
}

// headingInterval is the number of rows written between repeats of the
// heading line.
const headingInterval = 30

// Display writes an aligned table of solver values at every iteration.
// Assumption is that headings don't change over a run.
type Display struct {
	rows     []*Value
	headings []string
	values   []string

	maxLengths []int

	sinceHeading int

	writers    []io.Writer
	dataAdders []DataAdder
}

func NewDisplay() *Display {
	return &Display{sinceHeading: headingInterval + 1}
}

// AddDataAdder adds a DataAdder to the list of values to be written.
// This should only be called during initialization.
func (d *Display) AddDataAdder(dataAdders ...DataAdder) {
	d.dataAdders = append(d.dataAdders, dataAdders...)
}

// Init binds the display to the writers for a new run.
func (d *Display) Init(s *Settings) {
	d.writers = nil
	if s != nil {
		d.writers = s.TraceWriters
	}
	d.sinceHeading = headingInterval + 1
}

func (d *Display) accumulateValues() {
	d.rows = d.rows[:0]
	for _, add := range d.dataAdders {
		d.rows = add.AppendWriteData(d.rows)
	}
}

// Iterate writes one row of the iteration trace, repeating the heading
// line every headingInterval rows.
func (d *Display) Iterate() error {
	if len(d.writers) == 0 {
		return nil
	}

	d.accumulateValues()
	d.headings = d.headings[:0]
	d.values = d.values[:0]
	for _, v := range d.rows {
		d.headings = append(d.headings, v.Heading)
		d.values = append(d.values, valueToString(v.Value))
	}

	d.maxLengths = d.maxLengths[:0]
	for i, v := range d.values {
		d.maxLengths = append(d.maxLengths, len(v))
		if len(d.headings[i]) > len(v) {
			d.maxLengths[i] = len(d.headings[i])
		}
	}

	writeHeadings := d.sinceHeading > headingInterval
	if writeHeadings {
		d.sinceHeading = 0
	}
	d.sinceHeading++

	for _, w := range d.writers {
		if writeHeadings {
			if err := writeAlignedStrings(w, d.headings, d.maxLengths); err != nil {
				return err
			}
		}
		if err := writeAlignedStrings(w, d.values, d.maxLengths); err != nil {
			return err
		}
	}
	return nil
}

func writeAlignedStrings(w io.Writer, strs []string, lengths []int) error {
	for i, str := range strs {
		pad := lengths[i] - len(str)
		if pad > 0 {
			str = str + strings.Repeat(" ", pad)
		}
		if _, err := io.WriteString(w, str+"\t"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func valueToString(v any) string {
	switch t := v.(type) {
	case float64:
		return fmt.Sprintf("%e", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
