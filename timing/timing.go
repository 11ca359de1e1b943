// Package timing evaluates easing functions.
package timing

import (
	"log"
	"math"

	"github.com/fogleman/ease"

	"github.com/matt-g-everett/cssanim/css"
)

// Function maps input progress to output progress. Inputs outside [0, 1]
// are allowed; outputs may leave [0, 1] for overshooting curves.
type Function interface {
	Value(x float64) float64
}

// Linear is the identity easing.
type Linear struct{}

func (Linear) Value(x float64) float64 { return x }

// Steps is a staircase easing.
type Steps struct {
	Count    int
	Position css.StepPosition
}

func (s Steps) Value(x float64) float64 {
	count := s.Count
	if count < 1 {
		count = 1
	}
	jumps := count
	switch s.Position {
	case css.StepJumpNone:
		jumps = count - 1
	case css.StepJumpBoth:
		jumps = count + 1
	}
	if jumps < 1 {
		jumps = 1
	}

	current := math.Floor(x * float64(count))
	if s.Position == css.StepStart || s.Position == css.StepJumpBoth {
		current++
	}
	if x >= 0 && current < 0 {
		current = 0
	}
	if x <= 1 && current > float64(jumps) {
		current = float64(jumps)
	}
	return current / float64(jumps)
}

// Named wraps one of the Penner curves from github.com/fogleman/ease.
type Named struct {
	Name string
	fn   func(float64) float64
}

func (n Named) Value(x float64) float64 {
	if x <= 0 || x >= 1 {
		return x
	}
	return n.fn(x)
}

var namedFuncs = map[string]func(float64) float64{
	"ease-in-quad":        ease.InQuad,
	"ease-out-quad":       ease.OutQuad,
	"ease-in-out-quad":    ease.InOutQuad,
	"ease-in-cubic":       ease.InCubic,
	"ease-out-cubic":      ease.OutCubic,
	"ease-in-out-cubic":   ease.InOutCubic,
	"ease-in-quart":       ease.InQuart,
	"ease-out-quart":      ease.OutQuart,
	"ease-in-out-quart":   ease.InOutQuart,
	"ease-in-quint":       ease.InQuint,
	"ease-out-quint":      ease.OutQuint,
	"ease-in-out-quint":   ease.InOutQuint,
	"ease-in-sine":        ease.InSine,
	"ease-out-sine":       ease.OutSine,
	"ease-in-out-sine":    ease.InOutSine,
	"ease-in-expo":        ease.InExpo,
	"ease-out-expo":       ease.OutExpo,
	"ease-in-out-expo":    ease.InOutExpo,
	"ease-in-circ":        ease.InCirc,
	"ease-out-circ":       ease.OutCirc,
	"ease-in-out-circ":    ease.InOutCirc,
	"ease-in-back":        ease.InBack,
	"ease-out-back":       ease.OutBack,
	"ease-in-out-back":    ease.InOutBack,
	"ease-in-bounce":      ease.InBounce,
	"ease-out-bounce":     ease.OutBounce,
	"ease-in-out-bounce":  ease.InOutBounce,
	"ease-in-elastic":     ease.InElastic,
	"ease-out-elastic":    ease.OutElastic,
	"ease-in-out-elastic": ease.InOutElastic,
}

// Make builds the Function described by d.
func Make(d css.TimingFunctionData) Function {
	switch d.Type {
	case css.TimingCubicBezier:
		return NewCubicBezier(d.X1, d.Y1, d.X2, d.Y2)
	case css.TimingSteps:
		return Steps{Count: d.Steps, Position: d.Position}
	case css.TimingNamed:
		if fn, ok := namedFuncs[d.Name]; ok {
			return Named{Name: d.Name, fn: fn}
		}
		log.Printf("Unknown easing %q, falling back to linear", d.Name)
	}
	return Linear{}
}
