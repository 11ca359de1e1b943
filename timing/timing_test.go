package timing

import (
	"math"
	"testing"

	"github.com/matt-g-everett/cssanim/css"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-4 }

func TestLinear(t *testing.T) {
	for _, x := range []float64{-0.5, 0, 0.3, 1, 1.5} {
		if got := (Linear{}).Value(x); got != x {
			t.Errorf("Linear(%v) = %v", x, got)
		}
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	for _, d := range []css.TimingFunctionData{css.TimingEase, css.TimingEaseIn, css.TimingEaseOut, css.TimingEaseInOut} {
		fn := Make(d)
		if got := fn.Value(0); !near(got, 0) {
			t.Errorf("%s(0) = %v", d, got)
		}
		if got := fn.Value(1); !near(got, 1) {
			t.Errorf("%s(1) = %v", d, got)
		}
	}
}

func TestCubicBezierKnownValues(t *testing.T) {
	tests := []struct {
		data css.TimingFunctionData
		x    float64
		want float64
	}{
		{css.TimingEaseInOut, 0.5, 0.5},
		{css.TimingEase, 0.5, 0.8024},
		{css.TimingEaseIn, 0.5, 0.3153},
		{css.TimingEaseOut, 0.5, 0.6847},
	}
	for _, tt := range tests {
		if got := Make(tt.data).Value(tt.x); !near(got, tt.want) {
			t.Errorf("%s(%v) = %v, want %v", tt.data, tt.x, got, tt.want)
		}
	}
}

func TestCubicBezierMonotonicInput(t *testing.T) {
	fn := NewCubicBezier(0.42, 0, 0.58, 1)
	prev := fn.Value(0)
	for i := 1; i <= 100; i++ {
		v := fn.Value(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("ease-in-out decreased at %v: %v < %v", float64(i)/100, v, prev)
		}
		prev = v
	}
}

func TestCubicBezierExtrapolates(t *testing.T) {
	fn := NewCubicBezier(0.5, 0.5, 0.5, 0.5)
	if got := fn.Value(-1); !near(got, -1) {
		t.Errorf("Value(-1) = %v, want -1", got)
	}
	if got := fn.Value(2); !near(got, 2) {
		t.Errorf("Value(2) = %v, want 2", got)
	}
}

func TestSteps(t *testing.T) {
	tests := []struct {
		steps Steps
		x     float64
		want  float64
	}{
		{Steps{4, css.StepEnd}, 0, 0},
		{Steps{4, css.StepEnd}, 0.24, 0},
		{Steps{4, css.StepEnd}, 0.25, 0.25},
		{Steps{4, css.StepEnd}, 0.99, 0.75},
		{Steps{4, css.StepEnd}, 1, 1},
		{Steps{4, css.StepStart}, 0, 0.25},
		{Steps{4, css.StepStart}, 0.5, 0.75},
		{Steps{4, css.StepStart}, 1, 1},
		{Steps{3, css.StepJumpNone}, 0, 0},
		{Steps{3, css.StepJumpNone}, 0.5, 0.5},
		{Steps{3, css.StepJumpNone}, 1, 1},
		{Steps{3, css.StepJumpBoth}, 0, 0.25},
		{Steps{3, css.StepJumpBoth}, 0.99, 0.75},
		{Steps{3, css.StepJumpBoth}, 1, 1},
	}
	for _, tt := range tests {
		if got := tt.steps.Value(tt.x); !near(got, tt.want) {
			t.Errorf("steps(%d, %s)(%v) = %v, want %v", tt.steps.Count, tt.steps.Position, tt.x, got, tt.want)
		}
	}
}

func TestNamed(t *testing.T) {
	fn := Make(css.TimingFunctionData{Type: css.TimingNamed, Name: "ease-in-out-quad"})
	if got := fn.Value(0.25); !near(got, 0.125) {
		t.Errorf("ease-in-out-quad(0.25) = %v, want 0.125", got)
	}
	if got := fn.Value(1); got != 1 {
		t.Errorf("ease-in-out-quad(1) = %v", got)
	}

	fallback := Make(css.TimingFunctionData{Type: css.TimingNamed, Name: "wobble"})
	if _, ok := fallback.(Linear); !ok {
		t.Errorf("unknown easing gave %T, want Linear", fallback)
	}
}
