package anim

import (
	"math"
	"time"

	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/timing"
)

// RunState is the lifecycle of a KeyframeModel.
type RunState uint8

const (
	RunStateStarting RunState = iota
	RunStateRunning
	RunStatePaused
	RunStateFinished
)

func (s RunState) String() string {
	switch s {
	case RunStateRunning:
		return "running"
	case RunStatePaused:
		return "paused"
	case RunStateFinished:
		return "finished"
	}
	return "starting"
}

// Phase locates a local time relative to the active interval.
type Phase uint8

const (
	PhaseBefore Phase = iota
	PhaseActive
	PhaseAfter
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseAfter:
		return "after"
	}
	return "before"
}

// KeyframeModel maps wall-clock time onto a curve's local time. A model
// without a curve still keeps the animation's timeline.
type KeyframeModel struct {
	curve *Curve
	data  *css.AnimationData

	runState            RunState
	startTime           TimePoint
	pauseTime           TimePoint
	totalPausedDuration time.Duration
}

// NewKeyframeModel creates an instance of KeyframeModel. data is shared with
// the owning animation.
func NewKeyframeModel(curve *Curve, data *css.AnimationData) *KeyframeModel {
	m := new(KeyframeModel)
	m.curve = curve
	m.data = data
	m.runState = RunStateStarting
	m.startTime = ZeroTime
	m.UpdateAnimationData(data)
	return m
}

func (m *KeyframeModel) Curve() *Curve { return m.curve }
func (m *KeyframeModel) RunState() RunState { return m.runState }
func (m *KeyframeModel) StartTime() TimePoint { return m.startTime }

// SetStartTime anchors the timeline.
func (m *KeyframeModel) SetStartTime(t TimePoint) { m.startTime = t }

// UpdateAnimationData rebinds the model and its curve to new timing data.
func (m *KeyframeModel) UpdateAnimationData(data *css.AnimationData) {
	m.data = data
	if m.curve != nil {
		m.curve.SetScaledDuration(data.Duration)
		m.curve.SetTimingFunction(timing.Make(data.TimingFunction))
	}
}

// Duration is the length of one iteration.
func (m *KeyframeModel) Duration() time.Duration {
	if m.curve != nil {
		return m.curve.Duration()
	}
	return m.data.Duration
}

// SetRunState moves the model to state at time t, accounting paused time.
func (m *KeyframeModel) SetRunState(state RunState, t TimePoint) {
	if m.runState == RunStatePaused && state != RunStatePaused {
		m.totalPausedDuration += t.Sub(m.pauseTime)
	} else if state == RunStatePaused && m.runState != RunStatePaused {
		m.pauseTime = t
	}
	m.runState = state
}

func (m *KeyframeModel) repeatDuration() time.Duration {
	count := m.data.IterationCount
	if count <= 0 {
		return 0
	}
	if math.IsInf(count, 1) {
		return MaxDuration
	}
	return scaleDuration(m.Duration(), count)
}

// localTime is the time since start, excluding pauses. A paused model is
// frozen at its pause time.
func (m *KeyframeModel) localTime(t TimePoint) time.Duration {
	if m.runState == RunStatePaused {
		t = m.pauseTime
	}
	return t.Sub(m.startTime) - m.totalPausedDuration
}

func (m *KeyframeModel) phase(local time.Duration) Phase {
	delay := m.data.Delay
	before := delay
	if before < 0 {
		before = 0
	}
	if local < before {
		return PhaseBefore
	}

	repeat := m.repeatDuration()
	after := MaxDuration
	if repeat != MaxDuration && delay < MaxDuration-repeat {
		after = delay + repeat
		if after < 0 {
			after = 0
		}
	}
	if local >= after {
		return PhaseAfter
	}
	return PhaseActive
}

// Phase reports the phase at time t.
func (m *KeyframeModel) Phase(t TimePoint) Phase {
	return m.phase(m.localTime(t))
}

// UpdateState advances the run state to time t and reports whether the
// animation started or ended on this call.
func (m *KeyframeModel) UpdateState(t TimePoint) (started, ended bool) {
	phase := m.Phase(t)
	switch m.runState {
	case RunStateStarting:
		switch phase {
		case PhaseActive:
			m.SetRunState(RunStateRunning, t)
			started = true
		case PhaseAfter:
			m.SetRunState(RunStateFinished, t)
			started, ended = true, true
		}
	case RunStateRunning:
		switch phase {
		case PhaseAfter:
			m.SetRunState(RunStateFinished, t)
			ended = true
		case PhaseBefore:
			m.SetRunState(RunStateStarting, t)
			ended = true
		}
	case RunStatePaused:
		m.SetRunState(RunStateRunning, t)
		switch m.Phase(t) {
		case PhaseBefore:
			m.runState = RunStateStarting
		case PhaseAfter:
			m.runState = RunStateFinished
		}
	case RunStateFinished:
		if phase == PhaseActive {
			m.SetRunState(RunStateRunning, t)
			started = true
		}
	}
	return started, ended
}

// ActiveTime returns the time into the active interval, or MinDuration when
// the model has no effect at t.
func (m *KeyframeModel) ActiveTime(t TimePoint) time.Duration {
	local := m.localTime(t)
	delay := m.data.Delay
	fill := m.data.FillMode

	switch m.phase(local) {
	case PhaseBefore:
		if fill.FillsBackwards() {
			if active := local - delay; active > 0 {
				return active
			}
			return 0
		}
	case PhaseActive:
		return local - delay
	case PhaseAfter:
		if fill.FillsForwards() {
			active := local - delay
			if repeat := m.repeatDuration(); active > repeat {
				active = repeat
			}
			if active < 0 {
				active = 0
			}
			return active
		}
	}
	return MinDuration
}

// InEffect reports whether the model contributes a value at t.
func (m *KeyframeModel) InEffect(t TimePoint) bool {
	return m.ActiveTime(t) != MinDuration
}

// TrimTimeToCurrentIteration maps t onto the local time within the current
// iteration, applying direction, and returns the iteration index.
func (m *KeyframeModel) TrimTimeToCurrentIteration(t TimePoint) (time.Duration, int) {
	active := m.ActiveTime(t)
	count := m.data.IterationCount
	duration := m.Duration()
	if active < 0 || count == 0 || duration <= 0 {
		return 0, 0
	}

	repeat := m.repeatDuration()
	var iterationTime time.Duration
	if active == repeat && count == math.Trunc(count) {
		iterationTime = duration
	} else {
		iterationTime = active % duration
	}

	var iteration int
	switch {
	case active <= 0:
		iteration = 0
	case iterationTime == duration:
		iteration = int(math.Ceil(count)) - 1
	default:
		iteration = int(active / duration)
	}

	reverse := false
	switch m.data.Direction {
	case css.DirectionReverse:
		reverse = true
	case css.DirectionAlternate:
		reverse = iteration%2 == 1
	case css.DirectionAlternateReverse:
		reverse = iteration%2 == 0
	}
	if reverse {
		iterationTime = duration - iterationTime
	}
	return iterationTime, iteration
}
