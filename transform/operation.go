// Package transform interpolates CSS transform lists.
package transform

import (
	"github.com/matt-g-everett/cssanim/css"
)

// OpType is the interpolation primitive of a transform function.
type OpType uint8

const (
	OpTranslate OpType = iota
	OpRotateX
	OpRotateY
	OpRotateZ
	OpScale
	OpSkew
	OpMatrix
)

// Size is the border box the percentages of a translation resolve against.
type Size struct {
	Width, Height float64
}

// Operation is a normalised transform function. Source remembers the
// authored function so blends can be written back in the same form.
type Operation struct {
	Type      OpType
	Source    css.TransformType
	Translate [3]css.Length
	Angle     float64
	Scale     [2]float64
	Skew      [2]float64
	Matrix    Matrix44
}

// Operations is a normalised transform list.
type Operations []Operation

// FromCSS normalises a transform list.
func FromCSS(funcs []css.TransformFunc) Operations {
	ops := make(Operations, 0, len(funcs))
	for _, f := range funcs {
		op := Operation{Source: f.Type, Scale: [2]float64{1, 1}}
		zero := css.Px(0)
		switch f.Type {
		case css.TransformTranslate:
			op.Type = OpTranslate
			op.Translate = [3]css.Length{f.Lengths[0], f.Lengths[1], zero}
		case css.TransformTranslateX:
			op.Type = OpTranslate
			op.Translate = [3]css.Length{f.Lengths[0], zero, zero}
		case css.TransformTranslateY:
			op.Type = OpTranslate
			op.Translate = [3]css.Length{zero, f.Lengths[0], zero}
		case css.TransformTranslateZ:
			op.Type = OpTranslate
			op.Translate = [3]css.Length{zero, zero, f.Lengths[0]}
		case css.TransformTranslate3d:
			op.Type = OpTranslate
			op.Translate = f.Lengths
		case css.TransformRotateX:
			op.Type = OpRotateX
			op.Angle = f.Values[0]
		case css.TransformRotateY:
			op.Type = OpRotateY
			op.Angle = f.Values[0]
		case css.TransformRotate, css.TransformRotateZ:
			op.Type = OpRotateZ
			op.Angle = f.Values[0]
		case css.TransformScale:
			op.Type = OpScale
			op.Scale = f.Values
		case css.TransformScaleX:
			op.Type = OpScale
			op.Scale = [2]float64{f.Values[0], 1}
		case css.TransformScaleY:
			op.Type = OpScale
			op.Scale = [2]float64{1, f.Values[0]}
		case css.TransformSkew:
			op.Type = OpSkew
			op.Skew = f.Values
		case css.TransformSkewX:
			op.Type = OpSkew
			op.Skew = [2]float64{f.Values[0], 0}
		case css.TransformSkewY:
			op.Type = OpSkew
			op.Skew = [2]float64{0, f.Values[0]}
		case css.TransformMatrix, css.TransformMatrix3d:
			op.Type = OpMatrix
			op.Matrix = Matrix44(f.Matrix)
		default:
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

// identityOf returns the neutral operation of the given kind.
func identityOf(op Operation) Operation {
	id := Operation{Type: op.Type, Source: op.Source, Scale: [2]float64{1, 1}, Matrix: Identity()}
	id.Translate = [3]css.Length{css.Px(0), css.Px(0), css.Px(0)}
	for i, l := range op.Translate {
		if l.Unit == css.UnitPercent {
			id.Translate[i] = css.Percent(0)
		}
	}
	return id
}

// IsIdentity reports whether the operation leaves geometry unchanged.
func (op Operation) IsIdentity() bool {
	switch op.Type {
	case OpTranslate:
		return op.Translate[0].Value == 0 && op.Translate[1].Value == 0 && op.Translate[2].Value == 0
	case OpRotateX, OpRotateY, OpRotateZ:
		return op.Angle == 0
	case OpScale:
		return op.Scale == [2]float64{1, 1}
	case OpSkew:
		return op.Skew == [2]float64{}
	}
	return op.Matrix.IsIdentity()
}

// IsIdentity reports whether every operation is an identity.
func (ops Operations) IsIdentity() bool {
	for _, op := range ops {
		if !op.IsIdentity() {
			return false
		}
	}
	return true
}

// ToMatrix returns the operation as a matrix, resolving percentages against size.
func (op Operation) ToMatrix(size Size) Matrix44 {
	switch op.Type {
	case OpTranslate:
		return Translate(op.Translate[0].Resolve(size.Width), op.Translate[1].Resolve(size.Height), op.Translate[2].Resolve(0))
	case OpRotateX:
		return RotateX(op.Angle)
	case OpRotateY:
		return RotateY(op.Angle)
	case OpRotateZ:
		return RotateZ(op.Angle)
	case OpScale:
		return Scale(op.Scale[0], op.Scale[1], 1)
	case OpSkew:
		return Skew(op.Skew[0], op.Skew[1])
	}
	return op.Matrix
}

// ToMatrix composes the list left to right.
func (ops Operations) ToMatrix(size Size) Matrix44 {
	m := Identity()
	for _, op := range ops {
		m = m.Mul(op.ToMatrix(size))
	}
	return m
}

// ToCSS writes an operation back as a transform function, keeping the
// authored form when the blended values still fit it.
func (op Operation) ToCSS() css.TransformFunc {
	f := css.TransformFunc{}
	switch op.Type {
	case OpTranslate:
		x, y, z := op.Translate[0], op.Translate[1], op.Translate[2]
		switch {
		case op.Source == css.TransformTranslateX && y.Value == 0 && z.Value == 0:
			f.Type, f.Lengths[0] = css.TransformTranslateX, x
		case op.Source == css.TransformTranslateY && x.Value == 0 && z.Value == 0:
			f.Type, f.Lengths[0] = css.TransformTranslateY, y
		case op.Source == css.TransformTranslateZ && x.Value == 0 && y.Value == 0:
			f.Type, f.Lengths[0] = css.TransformTranslateZ, z
		case op.Source == css.TransformTranslate && z.Value == 0:
			f.Type, f.Lengths = css.TransformTranslate, [3]css.Length{x, y}
		default:
			f.Type, f.Lengths = css.TransformTranslate3d, op.Translate
		}
	case OpRotateX:
		f.Type, f.Values[0] = css.TransformRotateX, op.Angle
	case OpRotateY:
		f.Type, f.Values[0] = css.TransformRotateY, op.Angle
	case OpRotateZ:
		f.Type, f.Values[0] = css.TransformRotateZ, op.Angle
		if op.Source == css.TransformRotate {
			f.Type = css.TransformRotate
		}
	case OpScale:
		switch {
		case op.Source == css.TransformScaleX && op.Scale[1] == 1:
			f.Type, f.Values[0] = css.TransformScaleX, op.Scale[0]
		case op.Source == css.TransformScaleY && op.Scale[0] == 1:
			f.Type, f.Values[0] = css.TransformScaleY, op.Scale[1]
		default:
			f.Type, f.Values = css.TransformScale, op.Scale
		}
	case OpSkew:
		switch {
		case op.Source == css.TransformSkewX && op.Skew[1] == 0:
			f.Type, f.Values[0] = css.TransformSkewX, op.Skew[0]
		case op.Source == css.TransformSkewY && op.Skew[0] == 0:
			f.Type, f.Values[0] = css.TransformSkewY, op.Skew[1]
		default:
			f.Type, f.Values = css.TransformSkew, op.Skew
		}
	default:
		f.Type, f.Matrix = css.TransformMatrix3d, [16]float64(op.Matrix)
	}
	return f
}

// ToCSS writes the list back as a transform value.
func (ops Operations) ToCSS() css.Value {
	funcs := make([]css.TransformFunc, len(ops))
	for i, op := range ops {
		funcs[i] = op.ToCSS()
	}
	return css.TransformValue(funcs...)
}
