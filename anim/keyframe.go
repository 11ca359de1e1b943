package anim

import (
	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/timing"
	"github.com/matt-g-everett/cssanim/transform"
)

// Keyframe is one stop of a curve. An empty keyframe takes the element's
// current style when it is evaluated.
type Keyframe struct {
	offset float64
	timing timing.Function
	value  css.Value
	empty  bool

	ops      transform.Operations
	opsValid bool
}

// NewKeyframe creates an empty keyframe at offset. fn may be nil.
func NewKeyframe(offset float64, fn timing.Function) *Keyframe {
	return &Keyframe{offset: offset, timing: fn, empty: true}
}

// SetValue assigns the keyframe's value. It refuses values whose shape does
// not match the property.
func (k *Keyframe) SetValue(id css.PropertyID, v css.Value) bool {
	if !validFor(id, v) {
		return false
	}
	k.value = v
	k.empty = false
	k.opsValid = false
	return true
}

func (k *Keyframe) Offset() float64 { return k.offset }
func (k *Keyframe) Value() css.Value { return k.value }
func (k *Keyframe) IsEmpty() bool { return k.empty }
func (k *Keyframe) Timing() timing.Function { return k.timing }

// operations caches the normalised transform list of the keyframe.
func (k *Keyframe) operations(v css.Value) transform.Operations {
	if k.empty {
		return transform.FromCSS(v.Transform)
	}
	if !k.opsValid {
		k.ops = transform.FromCSS(k.value.Transform)
		k.opsValid = true
	}
	return k.ops
}

func (k *Keyframe) invalidate() {
	k.ops = nil
	k.opsValid = false
}
