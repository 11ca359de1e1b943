package css

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// TimingType selects the easing family of a TimingFunctionData.
type TimingType uint8

const (
	TimingLinear TimingType = iota
	TimingCubicBezier
	TimingSteps
	TimingNamed
)

// StepPosition is the jump term of steps().
type StepPosition uint8

const (
	StepEnd StepPosition = iota
	StepStart
	StepJumpNone
	StepJumpBoth
)

func (p StepPosition) String() string {
	switch p {
	case StepStart:
		return "start"
	case StepJumpNone:
		return "jump-none"
	case StepJumpBoth:
		return "jump-both"
	}
	return "end"
}

// TimingFunctionData describes an easing without evaluating it. It is
// comparable so animation data can be diffed with ==.
type TimingFunctionData struct {
	Type     TimingType
	X1, Y1   float64
	X2, Y2   float64
	Steps    int
	Position StepPosition
	Name     string
}

// Named bezier presets.
var (
	TimingEase      = TimingFunctionData{Type: TimingCubicBezier, X1: 0.25, Y1: 0.1, X2: 0.25, Y2: 1}
	TimingEaseIn    = TimingFunctionData{Type: TimingCubicBezier, X1: 0.42, Y1: 0, X2: 1, Y2: 1}
	TimingEaseOut   = TimingFunctionData{Type: TimingCubicBezier, X1: 0, Y1: 0, X2: 0.58, Y2: 1}
	TimingEaseInOut = TimingFunctionData{Type: TimingCubicBezier, X1: 0.42, Y1: 0, X2: 0.58, Y2: 1}
)

func (t TimingFunctionData) String() string {
	switch t.Type {
	case TimingCubicBezier:
		return fmt.Sprintf("cubic-bezier(%s, %s, %s, %s)", formatFloat(t.X1), formatFloat(t.Y1), formatFloat(t.X2), formatFloat(t.Y2))
	case TimingSteps:
		return fmt.Sprintf("steps(%d, %s)", t.Steps, t.Position)
	case TimingNamed:
		return t.Name
	}
	return "linear"
}

type Direction uint8

const (
	DirectionNormal Direction = iota
	DirectionReverse
	DirectionAlternate
	DirectionAlternateReverse
)

func (d Direction) String() string {
	switch d {
	case DirectionReverse:
		return "reverse"
	case DirectionAlternate:
		return "alternate"
	case DirectionAlternateReverse:
		return "alternate-reverse"
	}
	return "normal"
}

type FillMode uint8

const (
	FillNone FillMode = iota
	FillForwards
	FillBackwards
	FillBoth
)

func (f FillMode) String() string {
	switch f {
	case FillForwards:
		return "forwards"
	case FillBackwards:
		return "backwards"
	case FillBoth:
		return "both"
	}
	return "none"
}

// FillsForwards reports whether the value is held after the active interval.
func (f FillMode) FillsForwards() bool { return f == FillForwards || f == FillBoth }

// FillsBackwards reports whether the first value is applied during the delay.
func (f FillMode) FillsBackwards() bool { return f == FillBackwards || f == FillBoth }

type PlayState uint8

const (
	PlayStateRunning PlayState = iota
	PlayStatePaused
)

func (p PlayState) String() string {
	if p == PlayStatePaused {
		return "paused"
	}
	return "running"
}

// ColorInterpolation selects the space colours are blended in.
type ColorInterpolation uint8

const (
	ColorInterpolationAuto ColorInterpolation = iota
	ColorInterpolationSRGB
	ColorInterpolationLinearRGB
)

func (c ColorInterpolation) String() string {
	switch c {
	case ColorInterpolationSRGB:
		return "srgb"
	case ColorInterpolationLinearRGB:
		return "linearrgb"
	}
	return "auto"
}

// Infinite is the iteration count of an animation that never ends.
var Infinite = math.Inf(1)

// AnimationData is one entry of an element's animation list.
type AnimationData struct {
	Name           string
	Duration       time.Duration
	Delay          time.Duration
	IterationCount float64
	Direction      Direction
	FillMode       FillMode
	TimingFunction TimingFunctionData
	PlayState      PlayState
}

// DefaultAnimationData matches the CSS initial values.
func DefaultAnimationData(name string) AnimationData {
	return AnimationData{Name: name, IterationCount: 1, TimingFunction: TimingEase}
}

// TransitionData is one entry of an element's transition list.
type TransitionData struct {
	Property       PropertyID
	Duration       time.Duration
	Delay          time.Duration
	TimingFunction TimingFunctionData
}

// StyleMap maps properties to values.
type StyleMap map[PropertyID]Value

// Clone returns a shallow copy.
func (m StyleMap) Clone() StyleMap {
	out := make(StyleMap, len(m))
	for id, v := range m {
		out[id] = v
	}
	return out
}

// SortedIDs returns the keys in ascending order.
func (m StyleMap) SortedIDs() []PropertyID {
	ids := make([]PropertyID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MarshalJSON keys the map by property name.
func (m StyleMap) MarshalJSON() ([]byte, error) {
	named := make(map[string]Value, len(m))
	for id, v := range m {
		named[id.String()] = v
	}
	return json.Marshal(named)
}

// KeyframeStop is one offset of a keyframes rule.
type KeyframeStop struct {
	Offset float64
	Styles StyleMap
}

// Keyframes is a keyframes rule ordered by offset.
type Keyframes []KeyframeStop

// Sort orders the stops by offset, keeping the authored order of duplicates.
func (k Keyframes) Sort() {
	sort.SliceStable(k, func(i, j int) bool { return k[i].Offset < k[j].Offset })
}
