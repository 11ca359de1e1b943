package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]Color{
	"transparent": 0x00000000,
	"black":       0xff000000,
	"white":       0xffffffff,
	"red":         0xffff0000,
	"green":       0xff008000,
	"lime":        0xff00ff00,
	"blue":        0xff0000ff,
	"yellow":      0xffffff00,
	"cyan":        0xff00ffff,
	"magenta":     0xffff00ff,
	"gray":        0xff808080,
	"grey":        0xff808080,
	"orange":      0xffffa500,
	"purple":      0xff800080,
}

// ParseValue parses CSS text for the given property. Only the value grammar
// of animatable properties and animation-timing-function is understood.
func ParseValue(id PropertyID, text string) (Value, error) {
	text = strings.TrimSpace(text)
	if id == PropertyAnimationTimingFunction {
		t, err := ParseTimingFunction(text)
		if err != nil {
			return Empty(), err
		}
		return TimingValue(t), nil
	}

	switch id.Family() {
	case FamilyLayout:
		l, err := ParseLength(text)
		if err != nil {
			return Empty(), fmt.Errorf("%s: %w", id, err)
		}
		return LengthValue(l), nil
	case FamilyOpacity, FamilyFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Empty(), fmt.Errorf("%s: %w", id, err)
		}
		return NumberValue(f), nil
	case FamilyColor:
		c, err := ParseColor(text)
		if err != nil {
			return Empty(), fmt.Errorf("%s: %w", id, err)
		}
		return ColorValue(c), nil
	case FamilyFilter:
		funcs, err := ParseFilter(text)
		if err != nil {
			return Empty(), fmt.Errorf("%s: %w", id, err)
		}
		return FilterValue(funcs...), nil
	case FamilyTransform:
		funcs, err := ParseTransform(text)
		if err != nil {
			return Empty(), fmt.Errorf("%s: %w", id, err)
		}
		return TransformValue(funcs...), nil
	}
	return Empty(), fmt.Errorf("property %s is not animatable", id)
}

// ParseLength parses "auto", "<n>px", "<n>%" or a bare number of pixels.
func ParseLength(text string) (Length, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "auto":
		return Auto(), nil
	case strings.HasSuffix(text, "px"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(text, "px"), 64)
		return Px(f), err
	case strings.HasSuffix(text, "%"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(text, "%"), 64)
		return Percent(f), err
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Auto(), fmt.Errorf("invalid length %q", text)
	}
	return Px(f), nil
}

// ParseColor parses a hex colour, rgb()/rgba() or a handful of keywords.
func ParseColor(text string) (Color, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if c, ok := namedColors[text]; ok {
		return c, nil
	}
	if strings.HasPrefix(text, "#") {
		return parseHexColor(text)
	}
	fns, err := splitFunctions(text)
	if err != nil || len(fns) != 1 {
		return 0, fmt.Errorf("invalid color %q", text)
	}
	fn := fns[0]
	if (fn.name != "rgb" && fn.name != "rgba") || len(fn.args) < 3 || len(fn.args) > 4 {
		return 0, fmt.Errorf("invalid color %q", text)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fn.args[i], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q", text)
		}
		ch[i] = uint8(math.Round(clamp(v, 0, 255)))
	}
	alpha := 1.0
	if len(fn.args) == 4 {
		if alpha, err = strconv.ParseFloat(fn.args[3], 64); err != nil {
			return 0, fmt.Errorf("invalid color %q", text)
		}
	}
	return ARGB(uint8(math.Round(clamp(alpha, 0, 1)*255)), ch[0], ch[1], ch[2]), nil
}

func parseHexColor(text string) (Color, error) {
	var alpha uint8 = 0xff
	switch len(text) {
	case 4:
		text = "#" + strings.Repeat(text[1:2], 2) + strings.Repeat(text[2:3], 2) + strings.Repeat(text[3:4], 2)
	case 9:
		a, err := strconv.ParseUint(text[7:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q", text)
		}
		alpha = uint8(a)
		text = text[:7]
	}
	c, err := colorful.Hex(text)
	if err != nil {
		return 0, err
	}
	r, g, b := c.RGB255()
	return ARGB(alpha, r, g, b), nil
}

// ParseTransform parses a space separated transform function list. "none"
// yields an empty list.
func ParseTransform(text string) ([]TransformFunc, error) {
	if strings.TrimSpace(text) == "none" {
		return nil, nil
	}
	fns, err := splitFunctions(text)
	if err != nil {
		return nil, err
	}
	out := make([]TransformFunc, 0, len(fns))
	for _, fn := range fns {
		tf, err := parseTransformFunc(fn)
		if err != nil {
			return nil, err
		}
		out = append(out, tf)
	}
	return out, nil
}

func parseTransformFunc(fn function) (TransformFunc, error) {
	var tf TransformFunc
	for t, name := range transformNames {
		if name == fn.name {
			tf.Type = t
		}
	}
	want := map[TransformType][2]int{
		TransformTranslate: {1, 2}, TransformTranslateX: {1, 1}, TransformTranslateY: {1, 1},
		TransformTranslateZ: {1, 1}, TransformTranslate3d: {3, 3}, TransformRotate: {1, 1},
		TransformRotateX: {1, 1}, TransformRotateY: {1, 1}, TransformRotateZ: {1, 1},
		TransformScale: {1, 2}, TransformScaleX: {1, 1}, TransformScaleY: {1, 1},
		TransformSkew: {1, 2}, TransformSkewX: {1, 1}, TransformSkewY: {1, 1},
		TransformMatrix: {6, 6}, TransformMatrix3d: {16, 16},
	}
	bounds, ok := want[tf.Type]
	if !ok {
		return tf, fmt.Errorf("unknown transform function %q", fn.name)
	}
	if len(fn.args) < bounds[0] || len(fn.args) > bounds[1] {
		return tf, fmt.Errorf("%s takes %d to %d arguments", fn.name, bounds[0], bounds[1])
	}

	var err error
	switch tf.Type {
	case TransformTranslate, TransformTranslateX, TransformTranslateY, TransformTranslateZ, TransformTranslate3d:
		for i, arg := range fn.args {
			if tf.Lengths[i], err = ParseLength(arg); err != nil {
				return tf, err
			}
			if tf.Lengths[i].IsAuto() {
				return tf, fmt.Errorf("%s does not accept auto", fn.name)
			}
		}
		if tf.Type == TransformTranslate && len(fn.args) == 1 {
			tf.Lengths[1] = Px(0)
		}
	case TransformRotate, TransformRotateX, TransformRotateY, TransformRotateZ, TransformSkew, TransformSkewX, TransformSkewY:
		for i, arg := range fn.args {
			if tf.Values[i], err = parseAngle(arg); err != nil {
				return tf, err
			}
		}
	case TransformScale, TransformScaleX, TransformScaleY:
		for i, arg := range fn.args {
			if tf.Values[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return tf, err
			}
		}
		if tf.Type == TransformScale && len(fn.args) == 1 {
			tf.Values[1] = tf.Values[0]
		}
	case TransformMatrix:
		var m [6]float64
		for i, arg := range fn.args {
			if m[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return tf, err
			}
		}
		tf.Matrix = [16]float64{m[0], m[1], 0, 0, m[2], m[3], 0, 0, 0, 0, 1, 0, m[4], m[5], 0, 1}
	case TransformMatrix3d:
		for i, arg := range fn.args {
			if tf.Matrix[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return tf, err
			}
		}
	}
	return tf, nil
}

func parseAngle(text string) (float64, error) {
	units := []struct {
		suffix string
		scale  float64
	}{
		{"deg", 1},
		{"grad", 0.9},
		{"rad", 180 / math.Pi},
		{"turn", 360},
	}
	for _, u := range units {
		if strings.HasSuffix(text, u.suffix) {
			f, err := strconv.ParseFloat(strings.TrimSuffix(text, u.suffix), 64)
			return f * u.scale, err
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != 0 {
		return 0, fmt.Errorf("invalid angle %q", text)
	}
	return 0, nil
}

// ParseFilter parses a space separated filter function list.
func ParseFilter(text string) ([]FilterFunc, error) {
	if strings.TrimSpace(text) == "none" {
		return nil, nil
	}
	fns, err := splitFunctions(text)
	if err != nil {
		return nil, err
	}
	out := make([]FilterFunc, 0, len(fns))
	for _, fn := range fns {
		var ff FilterFunc
		for t, name := range filterNames {
			if name == fn.name {
				ff.Type = t
			}
		}
		if ff.Type == FilterNone || len(fn.args) != 1 {
			return nil, fmt.Errorf("invalid filter function %q", fn.name)
		}
		arg := fn.args[0]
		switch {
		case ff.Type == FilterHueRotate:
			ff.Amount, err = parseAngle(arg)
			ff.Unit = UnitDeg
		case strings.HasSuffix(arg, "px"):
			ff.Amount, err = strconv.ParseFloat(strings.TrimSuffix(arg, "px"), 64)
			ff.Unit = UnitPx
		case strings.HasSuffix(arg, "%"):
			ff.Amount, err = strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
			ff.Unit = UnitPercent
		default:
			ff.Amount, err = strconv.ParseFloat(arg, 64)
			ff.Unit = UnitNumber
		}
		if err != nil {
			return nil, fmt.Errorf("invalid filter argument %q", arg)
		}
		out = append(out, ff)
	}
	return out, nil
}

// ParseTimingFunction parses a CSS easing, or one of the named curves such as
// "ease-in-out-quad".
func ParseTimingFunction(text string) (TimingFunctionData, error) {
	text = strings.TrimSpace(text)
	switch text {
	case "linear":
		return TimingFunctionData{}, nil
	case "ease":
		return TimingEase, nil
	case "ease-in":
		return TimingEaseIn, nil
	case "ease-out":
		return TimingEaseOut, nil
	case "ease-in-out":
		return TimingEaseInOut, nil
	case "step-start":
		return TimingFunctionData{Type: TimingSteps, Steps: 1, Position: StepStart}, nil
	case "step-end":
		return TimingFunctionData{Type: TimingSteps, Steps: 1, Position: StepEnd}, nil
	}
	if IsNamedEasing(text) {
		return TimingFunctionData{Type: TimingNamed, Name: text}, nil
	}

	fns, err := splitFunctions(text)
	if err != nil || len(fns) != 1 {
		return TimingFunctionData{}, fmt.Errorf("invalid timing function %q", text)
	}
	fn := fns[0]
	switch fn.name {
	case "cubic-bezier":
		if len(fn.args) != 4 {
			return TimingFunctionData{}, fmt.Errorf("cubic-bezier takes 4 arguments")
		}
		var p [4]float64
		for i, arg := range fn.args {
			if p[i], err = strconv.ParseFloat(arg, 64); err != nil {
				return TimingFunctionData{}, err
			}
		}
		if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
			return TimingFunctionData{}, fmt.Errorf("cubic-bezier x values must be in [0, 1]")
		}
		return TimingFunctionData{Type: TimingCubicBezier, X1: p[0], Y1: p[1], X2: p[2], Y2: p[3]}, nil
	case "steps":
		if len(fn.args) < 1 || len(fn.args) > 2 {
			return TimingFunctionData{}, fmt.Errorf("steps takes 1 or 2 arguments")
		}
		n, err := strconv.Atoi(fn.args[0])
		if err != nil || n < 1 {
			return TimingFunctionData{}, fmt.Errorf("invalid step count %q", fn.args[0])
		}
		t := TimingFunctionData{Type: TimingSteps, Steps: n, Position: StepEnd}
		if len(fn.args) == 2 {
			switch fn.args[1] {
			case "start", "jump-start":
				t.Position = StepStart
			case "end", "jump-end":
				t.Position = StepEnd
			case "jump-none":
				t.Position = StepJumpNone
			case "jump-both":
				t.Position = StepJumpBoth
			default:
				return TimingFunctionData{}, fmt.Errorf("invalid step position %q", fn.args[1])
			}
		}
		if t.Position == StepJumpNone && n < 2 {
			return TimingFunctionData{}, fmt.Errorf("steps(%d, jump-none) needs at least 2 steps", n)
		}
		return t, nil
	}
	return TimingFunctionData{}, fmt.Errorf("invalid timing function %q", text)
}

var namedEasings = map[string]bool{}

func init() {
	for _, curve := range []string{"quad", "cubic", "quart", "quint", "sine", "expo", "circ", "back", "bounce", "elastic"} {
		for _, kind := range []string{"ease-in-", "ease-out-", "ease-in-out-"} {
			namedEasings[kind+curve] = true
		}
	}
}

// IsNamedEasing reports whether name is one of the named Penner curves.
func IsNamedEasing(name string) bool {
	return namedEasings[name]
}

func ParseDirection(text string) (Direction, error) {
	switch text {
	case "", "normal":
		return DirectionNormal, nil
	case "reverse":
		return DirectionReverse, nil
	case "alternate":
		return DirectionAlternate, nil
	case "alternate-reverse":
		return DirectionAlternateReverse, nil
	}
	return DirectionNormal, fmt.Errorf("invalid animation direction %q", text)
}

func ParseFillMode(text string) (FillMode, error) {
	switch text {
	case "", "none":
		return FillNone, nil
	case "forwards":
		return FillForwards, nil
	case "backwards":
		return FillBackwards, nil
	case "both":
		return FillBoth, nil
	}
	return FillNone, fmt.Errorf("invalid fill mode %q", text)
}

func ParsePlayState(text string) (PlayState, error) {
	switch text {
	case "", "running":
		return PlayStateRunning, nil
	case "paused":
		return PlayStatePaused, nil
	}
	return PlayStateRunning, fmt.Errorf("invalid play state %q", text)
}

// ParseIterationCount accepts a non-negative number or "infinite".
func ParseIterationCount(text string) (float64, error) {
	switch text {
	case "":
		return 1, nil
	case "infinite":
		return Infinite, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f < 0 || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid iteration count %q", text)
	}
	return f, nil
}

func ParseColorInterpolation(text string) (ColorInterpolation, error) {
	switch text {
	case "", "auto":
		return ColorInterpolationAuto, nil
	case "srgb", "sRGB":
		return ColorInterpolationSRGB, nil
	case "linearrgb", "linearRGB":
		return ColorInterpolationLinearRGB, nil
	}
	return ColorInterpolationAuto, fmt.Errorf("invalid color interpolation %q", text)
}

type function struct {
	name string
	args []string
}

// splitFunctions splits "a(1, 2) b(3)" into its functions.
func splitFunctions(text string) ([]function, error) {
	var out []function
	rest := strings.TrimSpace(text)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open <= 0 || end < open {
			return nil, fmt.Errorf("malformed function list %q", text)
		}
		fn := function{name: strings.TrimSpace(rest[:open])}
		for _, arg := range strings.FieldsFunc(rest[open+1:end], func(r rune) bool { return r == ',' || r == ' ' }) {
			fn.args = append(fn.args, arg)
		}
		out = append(out, fn)
		rest = strings.TrimSpace(rest[end+1:])
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
