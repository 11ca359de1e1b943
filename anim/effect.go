package anim

import (
	"github.com/matt-g-everett/cssanim/css"
)

// KeyframeEffect owns the keyframe models of one animation, one per property.
type KeyframeEffect struct {
	animation *Animation
	models    []*KeyframeModel
	timeline  *KeyframeModel
	iteration int
}

// NewKeyframeEffect creates an instance of KeyframeEffect for a.
func NewKeyframeEffect(a *Animation) *KeyframeEffect {
	e := new(KeyframeEffect)
	e.animation = a
	e.timeline = NewKeyframeModel(nil, &a.data)
	return e
}

// Models returns the property models in creation order.
func (e *KeyframeEffect) Models() []*KeyframeModel { return e.models }

// AddModel appends a property model.
func (e *KeyframeEffect) AddModel(m *KeyframeModel) {
	e.models = append(e.models, m)
}

// ModelByProperty finds the model animating id.
func (e *KeyframeEffect) ModelByProperty(id css.PropertyID) *KeyframeModel {
	for _, m := range e.models {
		if m.curve != nil && m.curve.property == id {
			return m
		}
	}
	return nil
}

// driven returns the models that carry the timeline. An effect without
// properties still runs so that its events fire.
func (e *KeyframeEffect) driven() []*KeyframeModel {
	if len(e.models) == 0 {
		return []*KeyframeModel{e.timeline}
	}
	return e.models
}

func (e *KeyframeEffect) SetStartTime(t TimePoint) {
	e.timeline.SetStartTime(t)
	for _, m := range e.models {
		m.SetStartTime(t)
	}
}

// SetPauseTime freezes every unfinished model at t.
func (e *KeyframeEffect) SetPauseTime(t TimePoint) {
	pause := func(m *KeyframeModel) {
		if m.runState != RunStateFinished {
			m.SetRunState(RunStatePaused, t)
		}
	}
	pause(e.timeline)
	for _, m := range e.models {
		pause(m)
	}
}

func (e *KeyframeEffect) EnsureFromAndTo() {
	for _, m := range e.models {
		m.curve.EnsureFromAndTo()
	}
}

func (e *KeyframeEffect) UpdateAnimationData(data *css.AnimationData) {
	e.timeline.UpdateAnimationData(data)
	for _, m := range e.models {
		m.UpdateAnimationData(data)
	}
}

func (e *KeyframeEffect) NotifyElementSizeUpdated() {
	for _, m := range e.models {
		m.curve.NotifyElementSizeUpdated()
	}
}

// ClearEffect asks the manager to restore the authored styles of every
// property this animation has touched.
func (e *KeyframeEffect) ClearEffect() {
	e.animation.delegate.SetNeedsAnimationStyleRecalc(e.animation)
}

// CheckHasFinished reports whether every model has finished.
func (e *KeyframeEffect) CheckHasFinished(t TimePoint) bool {
	for _, m := range e.driven() {
		if m.runState != RunStateFinished {
			return false
		}
	}
	return true
}

// TickKeyframeModel advances every model to t, publishes the sampled values
// and fires the events the tick crossed.
func (e *KeyframeEffect) TickKeyframeModel(t TimePoint) {
	var started, ended, iterated bool
	for _, m := range e.driven() {
		s, en := m.UpdateState(t)
		started = started || s
		ended = ended || en
	}

	styles := css.StyleMap{}
	delegate := e.animation.delegate
	for _, m := range e.driven() {
		if !m.InEffect(t) {
			continue
		}
		local, iteration := m.TrimTimeToCurrentIteration(t)
		if iteration != e.iteration {
			iterated = !started && !ended
			e.iteration = iteration
		}
		if m.curve != nil {
			delegate.NotifyClientAnimated(styles, m.curve.property, m.curve.ValueAt(local))
		}
	}
	if len(styles) > 0 {
		delegate.UpdateFinalStyleMap(styles)
	}

	if started {
		e.animation.sendEvent(eventStart)
	}
	if iterated {
		e.animation.sendEvent(eventIteration)
	}
	if ended {
		e.animation.sendEvent(eventEnd)
	}
}
