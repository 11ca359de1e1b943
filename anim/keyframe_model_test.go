package anim

import (
	"math"
	"testing"
	"time"

	"github.com/matt-g-everett/cssanim/css"
)

func newTimelineModel(data *css.AnimationData) *KeyframeModel {
	m := NewKeyframeModel(nil, data)
	m.SetStartTime(t0)
	return m
}

func TestPhaseAndActiveTime(t *testing.T) {
	tests := []struct {
		name   string
		delay  time.Duration
		fill   css.FillMode
		at     float64
		phase  Phase
		active time.Duration
	}{
		{"before without fill", 100 * time.Millisecond, css.FillNone, 50, PhaseBefore, MinDuration},
		{"before with backwards fill", 100 * time.Millisecond, css.FillBackwards, 50, PhaseBefore, 0},
		{"delay boundary is active", 100 * time.Millisecond, css.FillNone, 100, PhaseActive, 0},
		{"active", 100 * time.Millisecond, css.FillNone, 350, PhaseActive, 250 * time.Millisecond},
		{"active end is after", 100 * time.Millisecond, css.FillNone, 1100, PhaseAfter, MinDuration},
		{"after with forwards fill", 100 * time.Millisecond, css.FillForwards, 5000, PhaseAfter, time.Second},
		{"after with both", 0, css.FillBoth, 1500, PhaseAfter, time.Second},
		{"negative delay starts midway", -400 * time.Millisecond, css.FillNone, 0, PhaseActive, 400 * time.Millisecond},
		{"negative delay ends early", -400 * time.Millisecond, css.FillNone, 600, PhaseAfter, MinDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := linearData("x", time.Second)
			data.Delay = tt.delay
			data.FillMode = tt.fill
			m := newTimelineModel(&data)

			if got := m.Phase(at(tt.at)); got != tt.phase {
				t.Errorf("Phase = %s, want %s", got, tt.phase)
			}
			if got := m.ActiveTime(at(tt.at)); got != tt.active {
				t.Errorf("ActiveTime = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestTrimTimeToCurrentIteration(t *testing.T) {
	tests := []struct {
		name      string
		direction css.Direction
		count     float64
		fill      css.FillMode
		at        float64
		local     time.Duration
		iteration int
	}{
		{"normal first", css.DirectionNormal, 3, css.FillNone, 250, 250 * time.Millisecond, 0},
		{"normal third", css.DirectionNormal, 3, css.FillNone, 2250, 250 * time.Millisecond, 2},
		{"reverse", css.DirectionReverse, 3, css.FillNone, 250, 750 * time.Millisecond, 0},
		{"alternate odd iteration reverses", css.DirectionAlternate, 3, css.FillNone, 1250, 750 * time.Millisecond, 1},
		{"alternate even iteration forward", css.DirectionAlternate, 3, css.FillNone, 2250, 250 * time.Millisecond, 2},
		{"alternate-reverse even iteration reverses", css.DirectionAlternateReverse, 3, css.FillNone, 250, 750 * time.Millisecond, 0},
		{"forwards fill holds the end", css.DirectionNormal, 2, css.FillForwards, 9000, time.Second, 1},
		{"forwards fill alternate ends at start", css.DirectionAlternate, 2, css.FillForwards, 9000, 0, 1},
		{"fractional count holds midway", css.DirectionNormal, 1.5, css.FillForwards, 9000, 500 * time.Millisecond, 1},
		{"inactive is zero", css.DirectionNormal, 1, css.FillNone, 9000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := linearData("x", time.Second)
			data.Direction = tt.direction
			data.IterationCount = tt.count
			data.FillMode = tt.fill
			m := newTimelineModel(&data)

			local, iteration := m.TrimTimeToCurrentIteration(at(tt.at))
			if local != tt.local || iteration != tt.iteration {
				t.Errorf("Trim = (%v, %d), want (%v, %d)", local, iteration, tt.local, tt.iteration)
			}
		})
	}
}

func TestZeroIterationsFinishesImmediately(t *testing.T) {
	data := linearData("x", time.Second)
	data.IterationCount = 0
	m := newTimelineModel(&data)

	started, ended := m.UpdateState(t0)
	if !started || !ended {
		t.Errorf("UpdateState = (%v, %v), want (true, true)", started, ended)
	}
	if m.RunState() != RunStateFinished {
		t.Errorf("RunState = %s", m.RunState())
	}
	if local, _ := m.TrimTimeToCurrentIteration(t0); local != 0 {
		t.Errorf("Trim = %v, want 0", local)
	}
}

func TestInfiniteIterationsNeverEnd(t *testing.T) {
	data := linearData("x", time.Second)
	data.IterationCount = css.Infinite
	m := newTimelineModel(&data)

	m.UpdateState(t0)
	far := t0.Add(1000 * time.Hour)
	if _, ended := m.UpdateState(far); ended {
		t.Error("infinite animation ended")
	}
	if got := m.Phase(far); got != PhaseActive {
		t.Errorf("Phase = %s, want active", got)
	}
	if local, iteration := m.TrimTimeToCurrentIteration(far.Add(250 * time.Millisecond)); local != 250*time.Millisecond || iteration != 3600000 {
		t.Errorf("Trim = (%v, %d)", local, iteration)
	}
}

func TestRepeatDurationSaturates(t *testing.T) {
	data := linearData("x", time.Hour)
	data.IterationCount = 1e12
	m := newTimelineModel(&data)
	if got := m.repeatDuration(); got != MaxDuration {
		t.Errorf("repeatDuration = %v, want MaxDuration", got)
	}
	if got := m.Phase(t0.Add(time.Duration(math.MaxInt64 / 2))); got != PhaseActive {
		t.Errorf("Phase = %s, want active", got)
	}
}

func TestStateMachine(t *testing.T) {
	data := linearData("x", time.Second)
	data.Delay = 100 * time.Millisecond
	m := newTimelineModel(&data)

	steps := []struct {
		at      float64
		state   RunState
		started bool
		ended   bool
	}{
		{0, RunStateStarting, false, false},
		{100, RunStateRunning, true, false},
		{600, RunStateRunning, false, false},
		{1100, RunStateFinished, false, true},
		{1200, RunStateFinished, false, false},
	}
	for _, s := range steps {
		started, ended := m.UpdateState(at(s.at))
		if m.RunState() != s.state || started != s.started || ended != s.ended {
			t.Errorf("at %v: state %s (%v, %v), want %s (%v, %v)", s.at, m.RunState(), started, ended, s.state, s.started, s.ended)
		}
	}
}

func TestStateMachineEdges(t *testing.T) {
	tests := []struct {
		name    string
		change  func(m *KeyframeModel, data *css.AnimationData)
		at      float64
		state   RunState
		started bool
		ended   bool
	}{
		{
			name:   "running back into delay",
			change: func(_ *KeyframeModel, data *css.AnimationData) { data.Delay = 500 * time.Millisecond },
			at:     200,
			state:  RunStateStarting,
			ended:  true,
		},
		{
			name: "paused past the end",
			change: func(m *KeyframeModel, data *css.AnimationData) {
				m.SetRunState(RunStatePaused, at(300))
				data.Duration = 200 * time.Millisecond
			},
			at:    400,
			state: RunStateFinished,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := linearData("x", time.Second)
			m := newTimelineModel(&data)
			if started, _ := m.UpdateState(at(0)); !started {
				t.Fatalf("model did not start: %s", m.RunState())
			}
			tt.change(m, &data)
			started, ended := m.UpdateState(at(tt.at))
			if m.RunState() != tt.state || started != tt.started || ended != tt.ended {
				t.Errorf("state %s (%v, %v), want %s (%v, %v)", m.RunState(), started, ended, tt.state, tt.started, tt.ended)
			}
		})
	}
}

func TestRestartFromFinished(t *testing.T) {
	data := linearData("x", time.Second)
	data.FillMode = css.FillBoth
	m := newTimelineModel(&data)
	m.UpdateState(at(0))
	m.UpdateState(at(2000))
	if m.RunState() != RunStateFinished {
		t.Fatalf("RunState = %s", m.RunState())
	}

	data.IterationCount = 3
	if started, _ := m.UpdateState(at(2000)); !started || m.RunState() != RunStateRunning {
		t.Errorf("extending iterations did not restart: %s", m.RunState())
	}
}

func TestPausedTimeIsExcluded(t *testing.T) {
	data := linearData("x", time.Second)
	m := newTimelineModel(&data)
	m.UpdateState(at(0))
	m.SetRunState(RunStatePaused, at(300))

	if got := m.ActiveTime(at(600)); got != 300*time.Millisecond {
		t.Errorf("ActiveTime while paused = %v, want 300ms", got)
	}

	m.UpdateState(at(700))
	if m.RunState() != RunStateRunning {
		t.Fatalf("RunState after resume = %s", m.RunState())
	}
	if got := m.ActiveTime(at(900)); got != 500*time.Millisecond {
		t.Errorf("ActiveTime after resume = %v, want 500ms", got)
	}
}
