package main

import (
	"math"
	"testing"
)

func TestParseVector(t *testing.T) {
	v, err := parseVector(" 1, -2.5,3e2 ")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := []float64{1, -2.5, 300}
	if len(v) != len(want) {
		t.Fatalf("length: got %d, want %d", len(v), len(want))
	}
	for i := range want {
		if v[i] != want[i] {
			t.Errorf("v[%d]: got %v, want %v", i, v[i], want[i])
		}
	}

	if _, err := parseVector("1,two,3"); err == nil {
		t.Error("expected an error for a non-numeric component")
	}
}

func TestPolynomial(t *testing.T) {
	// 2 - 3x + x^2
	p := polynomial([]float64{2, -3, 1})
	for _, test := range []struct{ x, want float64 }{
		{0, 2},
		{1, 0},
		{2, 0},
		{-1, 6},
	} {
		if got := p(test.x); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("p(%v): got %v, want %v", test.x, got, test.want)
		}
	}
}

func TestBuiltinObjectiveUnknown(t *testing.T) {
	if _, err := builtinObjective("nope", nil); err == nil {
		t.Error("expected an error for an unknown objective name")
	}
}
