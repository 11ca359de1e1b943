package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit qualifies a numeric amount.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitPx
	UnitPercent
	UnitNumber
	UnitDeg
)

func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitPercent:
		return "%"
	case UnitDeg:
		return "deg"
	case UnitNumber:
		return ""
	}
	return "auto"
}

// Length is a layout length. The zero value is auto.
type Length struct {
	Value float64
	Unit  Unit
}

func Px(v float64) Length { return Length{Value: v, Unit: UnitPx} }
func Percent(v float64) Length { return Length{Value: v, Unit: UnitPercent} }
func Auto() Length { return Length{} }

// IsAuto reports whether the length is auto.
func (l Length) IsAuto() bool { return l.Unit == UnitAuto }

// Resolve converts the length to pixels against base. Auto resolves to zero.
func (l Length) Resolve(base float64) float64 {
	switch l.Unit {
	case UnitPx:
		return l.Value
	case UnitPercent:
		return l.Value * base / 100
	}
	return 0
}

func (l Length) String() string {
	if l.Unit == UnitAuto {
		return "auto"
	}
	return formatFloat(l.Value) + l.Unit.String()
}

// Color is a 32-bit ARGB colour.
type Color uint32

// ARGB packs the four channels.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R(), c.G(), c.B(), formatFloat(math.Round(float64(c.A())/255*1000)/1000))
}

// TransformType names a CSS transform function.
type TransformType uint8

const (
	TransformNone TransformType = iota
	TransformTranslate
	TransformTranslateX
	TransformTranslateY
	TransformTranslateZ
	TransformTranslate3d
	TransformRotate
	TransformRotateX
	TransformRotateY
	TransformRotateZ
	TransformScale
	TransformScaleX
	TransformScaleY
	TransformSkew
	TransformSkewX
	TransformSkewY
	TransformMatrix
	TransformMatrix3d
)

var transformNames = map[TransformType]string{
	TransformTranslate:   "translate",
	TransformTranslateX:  "translateX",
	TransformTranslateY:  "translateY",
	TransformTranslateZ:  "translateZ",
	TransformTranslate3d: "translate3d",
	TransformRotate:      "rotate",
	TransformRotateX:     "rotateX",
	TransformRotateY:     "rotateY",
	TransformRotateZ:     "rotateZ",
	TransformScale:       "scale",
	TransformScaleX:      "scaleX",
	TransformScaleY:      "scaleY",
	TransformSkew:        "skew",
	TransformSkewX:       "skewX",
	TransformSkewY:       "skewY",
	TransformMatrix:      "matrix",
	TransformMatrix3d:    "matrix3d",
}

func (t TransformType) String() string {
	if name, ok := transformNames[t]; ok {
		return name
	}
	return "none"
}

// TransformFunc is one entry of a transform list. Translations use Lengths,
// rotations and skews use Values in degrees, scales use Values as factors and
// matrices are stored expanded to 4x4 in column-major order.
type TransformFunc struct {
	Type    TransformType
	Lengths [3]Length
	Values  [2]float64
	Matrix  [16]float64
}

func (f TransformFunc) String() string {
	var args []string
	switch f.Type {
	case TransformTranslate:
		args = []string{f.Lengths[0].String(), f.Lengths[1].String()}
	case TransformTranslateX, TransformTranslateY, TransformTranslateZ:
		args = []string{f.Lengths[0].String()}
	case TransformTranslate3d:
		args = []string{f.Lengths[0].String(), f.Lengths[1].String(), f.Lengths[2].String()}
	case TransformRotate, TransformRotateX, TransformRotateY, TransformRotateZ, TransformSkewX, TransformSkewY:
		args = []string{formatFloat(f.Values[0]) + "deg"}
	case TransformSkew:
		args = []string{formatFloat(f.Values[0]) + "deg", formatFloat(f.Values[1]) + "deg"}
	case TransformScale:
		args = []string{formatFloat(f.Values[0]), formatFloat(f.Values[1])}
	case TransformScaleX, TransformScaleY:
		args = []string{formatFloat(f.Values[0])}
	case TransformMatrix, TransformMatrix3d:
		args = make([]string, 16)
		for i, v := range f.Matrix {
			args[i] = formatFloat(v)
		}
		return "matrix3d(" + strings.Join(args, ", ") + ")"
	}
	return f.Type.String() + "(" + strings.Join(args, ", ") + ")"
}

// FilterType names a CSS filter function.
type FilterType uint8

const (
	FilterNone FilterType = iota
	FilterGrayscale
	FilterBlur
	FilterBrightness
	FilterContrast
	FilterSaturate
	FilterSepia
	FilterInvert
	FilterOpacity
	FilterHueRotate
)

var filterNames = map[FilterType]string{
	FilterGrayscale:  "grayscale",
	FilterBlur:       "blur",
	FilterBrightness: "brightness",
	FilterContrast:   "contrast",
	FilterSaturate:   "saturate",
	FilterSepia:      "sepia",
	FilterInvert:     "invert",
	FilterOpacity:    "opacity",
	FilterHueRotate:  "hue-rotate",
}

func (t FilterType) String() string {
	if name, ok := filterNames[t]; ok {
		return name
	}
	return "none"
}

// FilterFunc is one entry of a filter list.
type FilterFunc struct {
	Type   FilterType
	Amount float64
	Unit   Unit
}

func (f FilterFunc) String() string {
	return f.Type.String() + "(" + formatFloat(f.Amount) + f.Unit.String() + ")"
}

// ValueKind tags the payload carried by a Value.
type ValueKind uint8

const (
	KindEmpty ValueKind = iota
	KindNumber
	KindLength
	KindColor
	KindTransform
	KindFilter
	KindTiming
)

// Value is a computed style value. Only the field selected by Kind is meaningful.
type Value struct {
	Kind      ValueKind
	Number    float64
	Length    Length
	Color     Color
	Transform []TransformFunc
	Filter    []FilterFunc
	Timing    TimingFunctionData
}

func Empty() Value { return Value{} }
func NumberValue(v float64) Value { return Value{Kind: KindNumber, Number: v} }
func LengthValue(l Length) Value { return Value{Kind: KindLength, Length: l} }
func ColorValue(c Color) Value { return Value{Kind: KindColor, Color: c} }
func TimingValue(t TimingFunctionData) Value {
	return Value{Kind: KindTiming, Timing: t}
}

func TransformValue(funcs ...TransformFunc) Value {
	return Value{Kind: KindTransform, Transform: funcs}
}

func FilterValue(funcs ...FilterFunc) Value {
	return Value{Kind: KindFilter, Filter: funcs}
}

// IsEmpty reports whether the value carries nothing.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// Equal compares two values by content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Number == o.Number
	case KindLength:
		return v.Length == o.Length
	case KindColor:
		return v.Color == o.Color
	case KindTiming:
		return v.Timing == o.Timing
	case KindTransform:
		if len(v.Transform) != len(o.Transform) {
			return false
		}
		for i := range v.Transform {
			if v.Transform[i] != o.Transform[i] {
				return false
			}
		}
	case KindFilter:
		if len(v.Filter) != len(o.Filter) {
			return false
		}
		for i := range v.Filter {
			if v.Filter[i] != o.Filter[i] {
				return false
			}
		}
	}
	return true
}

// String renders the value as CSS text.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return formatFloat(v.Number)
	case KindLength:
		return v.Length.String()
	case KindColor:
		return v.Color.String()
	case KindTiming:
		return v.Timing.String()
	case KindTransform:
		if len(v.Transform) == 0 {
			return "none"
		}
		parts := make([]string, len(v.Transform))
		for i, f := range v.Transform {
			parts[i] = f.String()
		}
		return strings.Join(parts, " ")
	case KindFilter:
		if len(v.Filter) == 0 {
			return "none"
		}
		parts := make([]string, len(v.Filter))
		for i, f := range v.Filter {
			parts[i] = f.String()
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// MarshalText lets style maps serialise as CSS text.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
