package anim

import (
	"github.com/matt-g-everett/cssanim/css"
)

// KeyframeManager reconciles an element's animation list with its running
// keyframe animations.
type KeyframeManager struct {
	manager
	data []css.AnimationData
}

// NewKeyframeManager creates an instance of KeyframeManager for element.
func NewKeyframeManager(element Element) *KeyframeManager {
	m := new(KeyframeManager)
	m.element = element
	m.delegate = m
	m.lookup = element.KeyframesByName
	return m
}

// Data returns the animation list last applied.
func (m *KeyframeManager) Data() []css.AnimationData { return m.data }

// SetAnimationDataAndPlay applies a new animation list. Animations are
// matched by name: matches keep running with the new data, new names start
// and names no longer listed are destroyed.
func (m *KeyframeManager) SetAnimationDataAndPlay(data []css.AnimationData) {
	if equalAnimationData(m.data, data) {
		return
	}
	m.data = append([]css.AnimationData(nil), data...)

	staged := make([]*Animation, 0, len(data))
	for _, d := range data {
		if d.Name == "" {
			continue
		}
		if a := find(staged, d.Name); a != nil {
			a.UpdateAnimationData(d)
			continue
		}
		if a := m.Find(d.Name); a != nil {
			m.remove(a)
			a.UpdateAnimationData(d)
			staged = append(staged, a)
			continue
		}
		staged = append(staged, m.createAnimation(d))
	}

	for _, a := range m.animations {
		a.Destroy(true)
	}

	for _, a := range staged {
		if a.data.PlayState == css.PlayStatePaused {
			a.Pause()
		} else {
			a.Play()
		}
	}
	m.animations = staged
}

// NotifyKeyframesUpdated restarts the animations that use the keyframes
// rule called name.
func (m *KeyframeManager) NotifyKeyframesUpdated(name string) {
	for i, a := range m.animations {
		if a.name != name {
			continue
		}
		a.Destroy(true)
		fresh := m.createAnimation(a.data)
		m.animations[i] = fresh
		if fresh.data.PlayState == css.PlayStatePaused {
			fresh.Pause()
		} else {
			fresh.Play()
		}
	}
}

func equalAnimationData(a, b []css.AnimationData) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
