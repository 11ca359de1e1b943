// Package anim runs CSS keyframe animations and transitions against elements.
// Everything in this package is driven from a single engine goroutine.
package anim

import (
	"math"
	"time"
)

// TimePoint is a monotonic timestamp in nanoseconds.
type TimePoint int64

const (
	// ZeroTime marks an animation that has not started.
	ZeroTime TimePoint = 0
	// DummyStartTime is the provisional start time used when play() ticks
	// synchronously; the first real frame replaces it.
	DummyStartTime TimePoint = 1
	// MinTimePoint means "no frame time".
	MinTimePoint TimePoint = math.MinInt64
)

const (
	// MinDuration marks an inactive active-time.
	MinDuration = time.Duration(math.MinInt64)
	// MaxDuration is the saturated repeat duration of endless animations.
	MaxDuration = time.Duration(math.MaxInt64)
)

var epoch = time.Now().Add(-time.Second)

// Now reads the monotonic clock. Readings are always larger than DummyStartTime.
func Now() TimePoint {
	return TimePoint(time.Since(epoch))
}

// Add offsets t by d.
func (t TimePoint) Add(d time.Duration) TimePoint { return t + TimePoint(d) }

// Sub returns the duration t-u.
func (t TimePoint) Sub(u TimePoint) time.Duration { return time.Duration(t - u) }

// scaleDuration multiplies d by f, saturating at MaxDuration.
func scaleDuration(d time.Duration, f float64) time.Duration {
	v := float64(d) * f
	if v >= float64(MaxDuration) || math.IsInf(v, 1) {
		return MaxDuration
	}
	if v <= float64(MinDuration) {
		return MinDuration
	}
	return time.Duration(v)
}
