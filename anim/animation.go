package anim

import (
	"github.com/matt-g-everett/cssanim/css"
)

// State is the play state of an Animation.
type State uint8

const (
	StateIdle State = iota
	StatePlay
	StatePause
	StateStop
)

func (s State) String() string {
	switch s {
	case StatePlay:
		return "play"
	case StatePause:
		return "pause"
	case StateStop:
		return "stop"
	}
	return "idle"
}

type eventKind uint8

const (
	eventStart eventKind = iota
	eventEnd
	eventCancel
	eventIteration
)

// Animation is a named keyframe animation or a transition playing on an element.
type Animation struct {
	name       string
	data       css.AnimationData
	state      State
	effect     *KeyframeEffect
	element    Element
	delegate   Delegate
	startTime  TimePoint
	rawStyles  []css.PropertyID
	transition bool
	destroyed  bool
}

// NewAnimation creates an instance of Animation. Its effect starts empty.
func NewAnimation(data css.AnimationData, element Element, delegate Delegate) *Animation {
	a := new(Animation)
	a.name = data.Name
	a.data = data
	a.element = element
	a.delegate = delegate
	a.effect = NewKeyframeEffect(a)
	return a
}

func (a *Animation) Name() string { return a.name }
func (a *Animation) Data() css.AnimationData { return a.data }
func (a *Animation) State() State { return a.state }
func (a *Animation) Effect() *KeyframeEffect { return a.effect }
func (a *Animation) StartTime() TimePoint { return a.startTime }
func (a *Animation) IsTransition() bool { return a.transition }
func (a *Animation) IsDestroyed() bool { return a.destroyed }
func (a *Animation) SetTransition(transition bool) { a.transition = transition }

// RawStyles lists every property the animation writes, in first-write order.
func (a *Animation) RawStyles() []css.PropertyID { return a.rawStyles }

// SetRawStyle records that the animation writes id.
func (a *Animation) SetRawStyle(id css.PropertyID) {
	for _, existing := range a.rawStyles {
		if existing == id {
			return
		}
	}
	a.rawStyles = append(a.rawStyles, id)
}

// UpdateAnimationData swaps in new timing data without restarting.
func (a *Animation) UpdateAnimationData(data css.AnimationData) {
	a.data = data
	a.effect.UpdateAnimationData(&a.data)
}

func (a *Animation) NotifyElementSizeUpdated() {
	a.effect.NotifyElementSizeUpdated()
}

// Play starts or resumes the animation. Starting from idle samples the first
// frame synchronously against a provisional start time.
func (a *Animation) Play() {
	if a.destroyed || a.state == StatePlay {
		return
	}
	if a.state == StateIdle {
		a.state = StatePlay
		a.DoFrame(DummyStartTime)
		a.delegate.FlushAnimatedStyle()
		return
	}
	a.state = StatePlay
	a.delegate.RequestNextFrame(a)
}

// Pause freezes the animation on the next frame.
func (a *Animation) Pause() {
	if a.destroyed || a.state == StatePause || a.state == StateStop {
		return
	}
	a.state = StatePause
	a.delegate.RequestNextFrame(a)
}

// Stop halts the animation without firing events.
func (a *Animation) Stop() {
	a.state = StateStop
}

// Destroy tears the animation down. Running or paused animations fire a
// cancel event. clearEffect restores the authored styles.
func (a *Animation) Destroy(clearEffect bool) {
	if a.destroyed {
		return
	}
	a.destroyed = true
	if clearEffect {
		a.effect.ClearEffect()
	}
	if a.state == StatePlay || a.state == StatePause {
		a.sendEvent(eventCancel)
	}
	a.state = StateStop
	a.delegate.FlushAnimatedStyle()
}

// DoFrame is the per-frame entry point.
func (a *Animation) DoFrame(t TimePoint) {
	if a.destroyed || t == MinTimePoint {
		return
	}
	a.Tick(t)
	if a.effect.CheckHasFinished(t) {
		a.finish()
		return
	}
	switch a.state {
	case StatePlay:
		a.delegate.RequestNextFrame(a)
	case StatePause:
		a.effect.SetPauseTime(t)
	}
}

// Tick samples the effect at t, adopting t as the start time on the first
// real frame.
func (a *Animation) Tick(t TimePoint) {
	if a.startTime == ZeroTime || a.startTime == DummyStartTime {
		a.startTime = t
		a.effect.SetStartTime(t)
	}
	a.effect.TickKeyframeModel(t)
}

func (a *Animation) finish() {
	a.state = StateStop
	if !a.data.FillMode.FillsForwards() {
		a.effect.ClearEffect()
	}
	a.delegate.AnimationFinished(a)
}

func (a *Animation) sendEvent(kind eventKind) {
	if a.element == nil {
		return
	}
	var name string
	switch kind {
	case eventStart:
		name = EventAnimationStart
		if a.transition {
			name = EventTransitionStart
		}
	case eventEnd:
		name = EventAnimationEnd
		if a.transition {
			name = EventTransitionEnd
		}
	case eventCancel:
		name = EventAnimationCancel
		if a.transition {
			name = EventTransitionCancel
		}
	case eventIteration:
		if a.transition {
			return
		}
		name = EventAnimationIteration
	}
	if !a.element.HasEventListener(name) {
		return
	}

	payload := EventPayload{NewAnimator: true, AnimationType: "keyframe", AnimationName: a.name}
	if a.transition {
		payload.AnimationType = "transition"
	}
	a.element.SendAnimationEvent(name, a.element.ID(), payload)
}
