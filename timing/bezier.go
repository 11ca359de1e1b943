package timing

import "math"

const (
	bezierEpsilon    = 1e-7
	newtonIterations = 8
)

// CubicBezier is a CSS cubic-bezier() easing with end points (0,0) and (1,1).
type CubicBezier struct {
	ax, bx, cx float64
	ay, by, cy float64

	startGradient float64
	endGradient   float64
}

// NewCubicBezier creates an instance of CubicBezier from its two control points.
func NewCubicBezier(x1, y1, x2, y2 float64) *CubicBezier {
	b := new(CubicBezier)
	b.cx = 3 * x1
	b.bx = 3*(x2-x1) - b.cx
	b.ax = 1 - b.cx - b.bx
	b.cy = 3 * y1
	b.by = 3*(y2-y1) - b.cy
	b.ay = 1 - b.cy - b.by

	switch {
	case x1 > 0:
		b.startGradient = y1 / x1
	case y1 == 0 && x2 > 0:
		b.startGradient = y2 / x2
	case y1 == 0 && y2 == 0:
		b.startGradient = 1
	}
	switch {
	case x2 < 1:
		b.endGradient = (y2 - 1) / (x2 - 1)
	case y2 == 1 && x1 < 1:
		b.endGradient = (y1 - 1) / (x1 - 1)
	case y2 == 1 && y1 == 1:
		b.endGradient = 1
	}
	return b
}

func (b *CubicBezier) sampleX(t float64) float64 { return ((b.ax*t+b.bx)*t + b.cx) * t }
func (b *CubicBezier) sampleY(t float64) float64 { return ((b.ay*t+b.by)*t + b.cy) * t }
func (b *CubicBezier) sampleDerivativeX(t float64) float64 {
	return (3*b.ax*t+2*b.bx)*t + b.cx
}

// solveX finds the curve parameter whose x equals x, for x in [0, 1].
func (b *CubicBezier) solveX(x float64) float64 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		err := b.sampleX(t) - x
		if math.Abs(err) < bezierEpsilon {
			return t
		}
		d := b.sampleDerivativeX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= err / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for lo < hi {
		v := b.sampleX(t)
		if math.Abs(v-x) < bezierEpsilon {
			return t
		}
		if x > v {
			lo = t
		} else {
			hi = t
		}
		t = (hi-lo)/2 + lo
		if hi-lo < bezierEpsilon {
			break
		}
	}
	return t
}

// Value evaluates the curve. Outside [0, 1] it extrapolates along the end tangents.
func (b *CubicBezier) Value(x float64) float64 {
	if x < 0 {
		return b.startGradient * x
	}
	if x > 1 {
		return 1 + b.endGradient*(x-1)
	}
	return b.sampleY(b.solveX(x))
}
