package transform

import (
	"github.com/matt-g-everett/cssanim/css"
)

// matchingPrefix returns how many leading operations share a primitive and
// can be blended one by one. An identity list matches anything.
func matchingPrefix(from, to Operations) int {
	if from.IsIdentity() {
		return len(to)
	}
	if to.IsIdentity() {
		return len(from)
	}
	n := len(from)
	if len(to) < n {
		n = len(to)
	}
	for i := 0; i < n; i++ {
		if from[i].Type != to[i].Type || from[i].Type == OpMatrix {
			return i
		}
	}
	if len(from) > len(to) {
		return len(from)
	}
	return len(to)
}

// Blend interpolates between two transform lists. Matching leading functions
// blend component-wise, the remainder blends as decomposed matrices. When a
// remainder cannot be decomposed the result switches discretely at 0.5.
func Blend(from, to Operations, progress float64, size Size) (Operations, bool) {
	fromIdentity, toIdentity := from.IsIdentity(), to.IsIdentity()
	if fromIdentity && toIdentity {
		return to, true
	}

	matching := matchingPrefix(from, to)
	fromSize, toSize := len(from), len(to)
	if fromIdentity {
		fromSize = 0
	}
	if toIdentity {
		toSize = 0
	}

	out := make(Operations, 0, matching+1)
	for i := 0; i < matching; i++ {
		var f, t *Operation
		if i < fromSize {
			f = &from[i]
		}
		if i < toSize {
			t = &to[i]
		}
		out = append(out, blendOperation(f, t, progress, size))
	}

	if matching < fromSize || matching < toSize {
		var restFrom, restTo Operations
		if matching < fromSize {
			restFrom = from[matching:]
		}
		if matching < toSize {
			restTo = to[matching:]
		}
		fd, ok := Decompose(restFrom.ToMatrix(size))
		if !ok {
			return discrete(from, to, progress), false
		}
		td, ok := Decompose(restTo.ToMatrix(size))
		if !ok {
			return discrete(from, to, progress), false
		}
		m := Recompose(BlendDecomposed(fd, td, progress))
		out = append(out, Operation{Type: OpMatrix, Source: css.TransformMatrix3d, Scale: [2]float64{1, 1}, Matrix: m})
	}
	return out, true
}

func discrete(from, to Operations, progress float64) Operations {
	if progress < 0.5 {
		return from
	}
	return to
}

func blendOperation(from, to *Operation, progress float64, size Size) Operation {
	var f, t Operation
	switch {
	case from != nil && to != nil:
		f, t = *from, *to
	case from != nil:
		f, t = *from, identityOf(*from)
	default:
		f, t = identityOf(*to), *to
	}

	out := f
	if from == nil {
		out.Source = t.Source
	} else if to != nil && f.Source != t.Source {
		out.Source = css.TransformNone
	}

	switch f.Type {
	case OpTranslate:
		for i := 0; i < 3; i++ {
			out.Translate[i] = blendLength(f.Translate[i], t.Translate[i], progress, axisBase(i, size))
		}
	case OpRotateX, OpRotateY, OpRotateZ:
		out.Angle = lerp(f.Angle, t.Angle, progress)
		if out.Source == css.TransformNone {
			out.Source = css.TransformRotateZ
		}
	case OpScale:
		out.Scale = [2]float64{lerp(f.Scale[0], t.Scale[0], progress), lerp(f.Scale[1], t.Scale[1], progress)}
	case OpSkew:
		out.Skew = [2]float64{lerp(f.Skew[0], t.Skew[0], progress), lerp(f.Skew[1], t.Skew[1], progress)}
	}
	return out
}

func axisBase(axis int, size Size) float64 {
	switch axis {
	case 0:
		return size.Width
	case 1:
		return size.Height
	}
	return 0
}

// blendLength keeps the unit when both ends share it and otherwise resolves
// percentages to pixels.
func blendLength(a, b css.Length, progress, base float64) css.Length {
	if a.Unit == b.Unit {
		return css.Length{Value: lerp(a.Value, b.Value, progress), Unit: a.Unit}
	}
	return css.Px(lerp(a.Resolve(base), b.Resolve(base), progress))
}
