package anim

import (
	"github.com/matt-g-everett/cssanim/css"
)

// DefaultValue is the value an empty keyframe falls back to when the element
// has no authored value for the property.
func DefaultValue(id css.PropertyID) css.Value {
	switch id.Family() {
	case css.FamilyLayout:
		return css.LengthValue(css.Auto())
	case css.FamilyOpacity:
		return css.NumberValue(1)
	case css.FamilyColor:
		if id == css.PropertyColor {
			return css.ColorValue(0xff000000)
		}
		return css.ColorValue(0x00000000)
	case css.FamilyFloat:
		return css.NumberValue(1)
	case css.FamilyFilter:
		return css.FilterValue()
	case css.FamilyTransform:
		return defaultTransform()
	}
	return css.Empty()
}

func defaultTransform() css.Value {
	return css.TransformValue(css.TransformFunc{Type: css.TransformRotateZ})
}

// validFor reports whether v has the shape the property's family interpolates.
func validFor(id css.PropertyID, v css.Value) bool {
	switch id.Family() {
	case css.FamilyLayout:
		return v.Kind == css.KindLength
	case css.FamilyOpacity, css.FamilyFloat:
		return v.Kind == css.KindNumber
	case css.FamilyColor:
		return v.Kind == css.KindColor
	case css.FamilyFilter:
		return v.Kind == css.KindFilter
	case css.FamilyTransform:
		return v.Kind == css.KindTransform
	}
	return false
}
