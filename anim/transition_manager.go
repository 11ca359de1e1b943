package anim

import (
	"github.com/matt-g-everett/cssanim/css"
)

// TransitionManager turns style changes on transitioned properties into
// two-keyframe animations.
type TransitionManager struct {
	manager
	transitions map[css.PropertyID]css.AnimationData
	keyframes   map[string]css.Keyframes
}

// NewTransitionManager creates an instance of TransitionManager for element.
func NewTransitionManager(element Element) *TransitionManager {
	m := new(TransitionManager)
	m.element = element
	m.delegate = m
	m.transitions = make(map[css.PropertyID]css.AnimationData)
	m.keyframes = make(map[string]css.Keyframes)
	m.lookup = func(name string) (css.Keyframes, bool) {
		k, ok := m.keyframes[name]
		return k, ok
	}
	return m
}

// SetTransitionData replaces the transition list. Shorthands and "all"
// expand to their longhands; later entries win. Running transitions of
// properties no longer listed are destroyed.
func (m *TransitionManager) SetTransitionData(data []css.TransitionData) {
	next := make(map[css.PropertyID]css.AnimationData)
	for _, td := range data {
		for _, id := range td.Property.Longhands() {
			if !id.Animatable() {
				continue
			}
			next[id] = css.AnimationData{
				Name:           id.String(),
				Duration:       td.Duration,
				Delay:          td.Delay,
				IterationCount: 1,
				Direction:      css.DirectionNormal,
				FillMode:       css.FillForwards,
				TimingFunction: td.TimingFunction,
				PlayState:      css.PlayStateRunning,
			}
		}
	}

	kept := make([]*Animation, 0, len(m.animations))
	for _, a := range m.animations {
		id, _ := css.ParseProperty(a.name)
		if _, ok := next[id]; ok {
			kept = append(kept, a)
			continue
		}
		a.Destroy(true)
		delete(m.keyframes, a.name)
	}
	m.animations = kept
	m.transitions = next
}

// NeedsTransition reports whether id has a transition configured.
func (m *TransitionManager) NeedsTransition(id css.PropertyID) bool {
	_, ok := m.transitions[id]
	return ok
}

// ConsumeCSSProperty starts a transition of id from its previous value to
// end. It returns false when no transition runs and the caller should apply
// end directly.
func (m *TransitionManager) ConsumeCSSProperty(id css.PropertyID, end css.Value) bool {
	data, ok := m.transitions[id]
	if !ok {
		return false
	}
	if data.Duration <= 0 && data.Delay <= 0 {
		m.TryToStopTransition(id)
		return false
	}

	start, ok := m.element.GetElementPreviousStyle(id)
	if !ok || start.IsEmpty() {
		start = DefaultValue(id)
	}
	if end.IsEmpty() {
		end = DefaultValue(id)
	}
	if !validFor(id, start) || !validFor(id, end) || start.Equal(end) {
		m.TryToStopTransition(id)
		return false
	}

	name := id.String()
	m.keyframes[name] = css.Keyframes{
		{Offset: 0, Styles: css.StyleMap{id: start}},
		{Offset: 1, Styles: css.StyleMap{id: end}},
	}
	if old := m.Find(name); old != nil {
		old.Destroy(false)
		m.remove(old)
	}

	a := m.createAnimation(data)
	a.SetTransition(true)
	a.Play()
	m.animations = append(m.animations, a)
	return true
}

// TryToStopTransition destroys a running transition of id, restoring the
// authored value.
func (m *TransitionManager) TryToStopTransition(id css.PropertyID) {
	name := id.String()
	if a := m.Find(name); a != nil {
		a.Destroy(true)
		m.remove(a)
	}
	delete(m.keyframes, name)
}

// AnimationFinished drops the keyframes of a completed transition.
func (m *TransitionManager) AnimationFinished(a *Animation) {
	delete(m.keyframes, a.name)
}
