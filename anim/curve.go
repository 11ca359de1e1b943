package anim

import (
	"math"
	"sort"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/timing"
	"github.com/matt-g-everett/cssanim/transform"
)

// Curve holds the keyframes of one property and evaluates them at a time.
type Curve struct {
	property       css.PropertyID
	keyframes      []*Keyframe
	timing         timing.Function
	scaledDuration time.Duration
	element        Element
}

// NewCurve creates an instance of Curve for property on element.
func NewCurve(property css.PropertyID, element Element) *Curve {
	c := new(Curve)
	c.property = property
	c.element = element
	c.timing = timing.Linear{}
	return c
}

func (c *Curve) Property() css.PropertyID { return c.property }
func (c *Curve) Family() css.Family { return c.property.Family() }
func (c *Curve) Keyframes() []*Keyframe { return c.keyframes }

// AddKeyframe inserts k keeping offsets sorted. Equal offsets keep insertion order.
func (c *Curve) AddKeyframe(k *Keyframe) {
	i := sort.Search(len(c.keyframes), func(i int) bool { return c.keyframes[i].offset > k.offset })
	c.keyframes = append(c.keyframes, nil)
	copy(c.keyframes[i+1:], c.keyframes[i:])
	c.keyframes[i] = k
}

// EnsureFromAndTo adds empty keyframes at 0 and 1 when they are missing.
func (c *Curve) EnsureFromAndTo() {
	if len(c.keyframes) == 0 || c.keyframes[0].offset != 0 {
		c.AddKeyframe(NewKeyframe(0, nil))
	}
	if c.keyframes[len(c.keyframes)-1].offset != 1 {
		c.AddKeyframe(NewKeyframe(1, nil))
	}
}

// SetTimingFunction sets the easing applied to the whole curve.
func (c *Curve) SetTimingFunction(fn timing.Function) {
	if fn == nil {
		fn = timing.Linear{}
	}
	c.timing = fn
}

// SetScaledDuration sets the length of one iteration.
func (c *Curve) SetScaledDuration(d time.Duration) { c.scaledDuration = d }

// Duration is the span between the first and last keyframe.
func (c *Curve) Duration() time.Duration {
	if len(c.keyframes) == 0 {
		return 0
	}
	span := c.keyframes[len(c.keyframes)-1].offset - c.keyframes[0].offset
	return time.Duration(span * float64(c.scaledDuration))
}

// NotifyElementSizeUpdated drops size dependent caches.
func (c *Curve) NotifyElementSizeUpdated() {
	for _, k := range c.keyframes {
		k.invalidate()
	}
}

// transformedTime applies the curve-wide easing to t.
func (c *Curve) transformedTime(t time.Duration) float64 {
	first := c.keyframes[0].offset
	last := c.keyframes[len(c.keyframes)-1].offset
	scaled := float64(c.scaledDuration)
	start := first * scaled
	duration := (last - first) * scaled
	if duration <= 0 {
		return float64(t)
	}
	progress := (float64(t) - start) / duration
	return duration*c.timing.Value(progress) + start
}

// activeKeyframe returns i such that keyframes i and i+1 bracket t.
func (c *Curve) activeKeyframe(t float64) int {
	scaled := float64(c.scaledDuration)
	i := 0
	for ; i < len(c.keyframes)-2; i++ {
		if t < c.keyframes[i+1].offset*scaled {
			break
		}
	}
	return i
}

func (c *Curve) keyframeProgress(t float64, i int) float64 {
	scaled := float64(c.scaledDuration)
	t1 := c.keyframes[i].offset * scaled
	t2 := c.keyframes[i+1].offset * scaled
	progress := 1.0
	if t2 != t1 {
		progress = math.Max(0, math.Min(1, (t-t1)/(t2-t1)))
	}
	if fn := c.keyframes[i].timing; fn != nil {
		progress = fn.Value(progress)
	}
	return progress
}

// resolve returns the value a keyframe stands for.
func (c *Curve) resolve(k *Keyframe) css.Value {
	if !k.empty {
		return k.value
	}
	if c.element != nil {
		if v, ok := c.element.GetElementStyle(c.property); ok && validFor(c.property, v) {
			return v
		}
	}
	return DefaultValue(c.property)
}

// ValueAt evaluates the curve at local time t within one iteration.
func (c *Curve) ValueAt(t time.Duration) css.Value {
	if len(c.keyframes) < 2 {
		return css.Empty()
	}
	tt := c.transformedTime(t)
	i := c.activeKeyframe(tt)
	progress := c.keyframeProgress(tt, i)

	from, to := c.keyframes[i], c.keyframes[i+1]
	a, b := c.resolve(from), c.resolve(to)
	if progress == 0 {
		return a
	}
	if progress == 1 {
		return b
	}

	switch c.Family() {
	case css.FamilyLayout:
		return c.blendLength(a.Length, b.Length, progress)
	case css.FamilyOpacity:
		return css.NumberValue(math.Max(0, math.Min(1, lerp(a.Number, b.Number, progress))))
	case css.FamilyFloat:
		return css.NumberValue(lerp(a.Number, b.Number, progress))
	case css.FamilyColor:
		return css.ColorValue(blendColor(a.Color, b.Color, progress, c.colorInterpolation()))
	case css.FamilyFilter:
		return blendFilter(a, b, progress)
	case css.FamilyTransform:
		ops, _ := transform.Blend(from.operations(a), to.operations(b), progress, c.size())
		return ops.ToCSS()
	}
	return discrete(a, b, progress)
}

func (c *Curve) colorInterpolation() css.ColorInterpolation {
	if c.element == nil {
		return css.ColorInterpolationAuto
	}
	return c.element.ColorInterpolation()
}

func (c *Curve) size() transform.Size {
	if c.element == nil {
		return transform.Size{}
	}
	w, h := c.element.Size()
	return transform.Size{Width: w, Height: h}
}

func (c *Curve) blendLength(a, b css.Length, progress float64) css.Value {
	if a.IsAuto() || b.IsAuto() {
		return discrete(css.LengthValue(a), css.LengthValue(b), progress)
	}
	if a.Unit == b.Unit {
		return css.LengthValue(css.Length{Value: lerp(a.Value, b.Value, progress), Unit: a.Unit})
	}
	if c.element != nil {
		if w, h, ok := c.element.ParentSize(); ok {
			base := h
			if c.property.OnXAxis() {
				base = w
			}
			return css.LengthValue(css.Px(lerp(a.Resolve(base), b.Resolve(base), progress)))
		}
	}
	return discrete(css.LengthValue(a), css.LengthValue(b), progress)
}

// blendColor mixes RGB in gamma space for srgb and auto, in linear light for
// linearrgb. Alpha is mixed separately.
func blendColor(a, b css.Color, progress float64, mode css.ColorInterpolation) css.Color {
	ca := colorful.Color{R: float64(a.R()) / 255, G: float64(a.G()) / 255, B: float64(a.B()) / 255}
	cb := colorful.Color{R: float64(b.R()) / 255, G: float64(b.G()) / 255, B: float64(b.B()) / 255}

	var mixed colorful.Color
	if mode == css.ColorInterpolationLinearRGB {
		r1, g1, b1 := ca.LinearRgb()
		r2, g2, b2 := cb.LinearRgb()
		mixed = colorful.LinearRgb(
			math.Max(0, lerp(r1, r2, progress)),
			math.Max(0, lerp(g1, g2, progress)),
			math.Max(0, lerp(b1, b2, progress)))
	} else {
		mixed = ca.BlendRgb(cb, progress)
	}

	alpha := lerp(float64(a.A()), float64(b.A()), progress)
	alpha = math.Max(0, math.Min(255, math.Round(alpha)))
	r, g, bl := mixed.Clamped().RGB255()
	return css.ARGB(uint8(alpha), r, g, bl)
}

func blendFilter(a, b css.Value, progress float64) css.Value {
	if len(a.Filter) != len(b.Filter) || len(a.Filter) == 0 {
		return discrete(a, b, progress)
	}
	out := make([]css.FilterFunc, len(a.Filter))
	for i := range a.Filter {
		fa, fb := a.Filter[i], b.Filter[i]
		if fa.Type != fb.Type || fa.Unit != fb.Unit {
			return discrete(a, b, progress)
		}
		amount := lerp(fa.Amount, fb.Amount, progress)
		if fa.Type != css.FilterHueRotate {
			amount = math.Max(0, amount)
		}
		out[i] = css.FilterFunc{Type: fa.Type, Amount: amount, Unit: fa.Unit}
	}
	return css.FilterValue(out...)
}

func discrete(a, b css.Value, progress float64) css.Value {
	if progress < 0.5 {
		return a
	}
	return b
}

func lerp(a, b, p float64) float64 { return a + (b-a)*p }
