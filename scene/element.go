package scene

import (
	"github.com/matt-g-everett/cssanim/anim"
	"github.com/matt-g-everett/cssanim/css"
)

// Element is a styled node. It keeps the authored styles, the final styles
// with animation applied and the delta not yet sent to the Sink.
type Element struct {
	id            int
	scene         *Scene
	parent        *Element
	width, height float64
	interpolation css.ColorInterpolation

	authored      css.StyleMap
	previous      css.StyleMap
	final         css.StyleMap
	delta         css.StyleMap
	layoutChanged bool
	frameTime     anim.TimePoint

	listeners map[string]bool
	keyframes map[string]css.Keyframes

	animations    *anim.KeyframeManager
	transitions   *anim.TransitionManager
	animationData []css.AnimationData

	detached bool
}

func newElement(id int, scene *Scene, parent *Element) *Element {
	e := new(Element)
	e.id = id
	e.scene = scene
	e.parent = parent
	e.authored = css.StyleMap{}
	e.previous = css.StyleMap{}
	e.final = css.StyleMap{}
	e.delta = css.StyleMap{}
	e.listeners = make(map[string]bool)
	e.keyframes = make(map[string]css.Keyframes)
	return e
}

func (e *Element) ID() int { return e.id }
func (e *Element) Parent() *Element { return e.parent }
func (e *Element) IsDetached() bool { return e.detached }

// LastFrame returns the time of the last frame the element was ticked in.
func (e *Element) LastFrame() anim.TimePoint { return e.frameTime }

// Final returns a copy of the styles as currently displayed.
func (e *Element) Final() css.StyleMap { return e.final.Clone() }

// Authored returns a copy of the styles set through SetStyle.
func (e *Element) Authored() css.StyleMap { return e.authored.Clone() }

// TakeDelta returns the styles changed since the last call and resets them.
func (e *Element) TakeDelta() css.StyleMap {
	if len(e.delta) == 0 {
		return nil
	}
	d := e.delta
	e.delta = css.StyleMap{}
	return d
}

// Animations returns the running keyframe animations followed by the
// running transitions.
func (e *Element) Animations() []*anim.Animation {
	var out []*anim.Animation
	if e.animations != nil {
		out = append(out, e.animations.Animations()...)
	}
	if e.transitions != nil {
		out = append(out, e.transitions.Animations()...)
	}
	return out
}

func (e *Element) AddEventListener(name string) { e.listeners[name] = true }
func (e *Element) RemoveEventListener(name string) { delete(e.listeners, name) }

// SetSize updates the layout box and re-resolves size dependent animations.
func (e *Element) SetSize(width, height float64) {
	if e.width == width && e.height == height {
		return
	}
	e.width, e.height = width, height
	if e.animations != nil {
		e.animations.NotifyElementSizeUpdated()
	}
	if e.transitions != nil {
		e.transitions.NotifyElementSizeUpdated()
	}
}

func (e *Element) SetColorInterpolation(c css.ColorInterpolation) { e.interpolation = c }

// SetStyle changes an authored style. A transitioned property animates from
// the value on screen; anything else is applied and flushed at once. An
// empty value removes the authored style.
func (e *Element) SetStyle(id css.PropertyID, v css.Value) {
	if e.detached {
		return
	}
	if old, ok := e.final[id]; ok {
		e.previous[id] = old
	} else if old, ok := e.authored[id]; ok {
		e.previous[id] = old
	} else {
		delete(e.previous, id)
	}
	if v.IsEmpty() {
		delete(e.authored, id)
	} else {
		e.authored[id] = v
	}

	if e.transitions != nil && e.transitions.NeedsTransition(id) && e.transitions.ConsumeCSSProperty(id, v) {
		return
	}
	e.apply(id, v)
	e.FlushAnimatedStyle()
}

// SetAnimations replaces the element's keyframe animations. While the
// scheduler is paused the data is held until resume.
func (e *Element) SetAnimations(data []css.AnimationData) {
	if e.detached {
		return
	}
	e.animationData = append([]css.AnimationData(nil), data...)
	if e.scene.scheduler.IsPaused() {
		e.scene.scheduler.DeferUntilResume(e)
		return
	}
	e.ResumeAnimations()
}

// ResumeAnimations applies the latest animation data.
func (e *Element) ResumeAnimations() {
	if e.detached {
		return
	}
	if e.animations == nil {
		if len(e.animationData) == 0 {
			return
		}
		e.animations = anim.NewKeyframeManager(e)
	}
	e.animations.SetAnimationDataAndPlay(e.animationData)
}

// SetTransitions replaces the element's transition list.
func (e *Element) SetTransitions(data []css.TransitionData) {
	if e.detached {
		return
	}
	if e.transitions == nil {
		if len(data) == 0 {
			return
		}
		e.transitions = anim.NewTransitionManager(e)
	}
	e.transitions.SetTransitionData(data)
}

// SetKeyframes adds or replaces an inline keyframes rule. Inline rules take
// precedence over the scene's.
func (e *Element) SetKeyframes(name string, k css.Keyframes) {
	e.keyframes[name] = k
	e.keyframesUpdated(name)
}

func (e *Element) keyframesUpdated(name string) {
	if e.animations != nil && !e.detached {
		e.animations.NotifyKeyframesUpdated(name)
	}
}

// Destroy detaches the element and drops its animations without restoring
// styles.
func (e *Element) Destroy() {
	if e.detached {
		return
	}
	e.detached = true
	if e.animations != nil {
		e.animations.Close()
	}
	if e.transitions != nil {
		e.transitions.Close()
	}
	e.scene.scheduler.NotifyElementDestroy(e)
	e.scene.remove(e)
}

func (e *Element) apply(id css.PropertyID, v css.Value) {
	if v.IsEmpty() {
		delete(e.final, id)
	} else {
		e.final[id] = v
	}
	e.delta[id] = v
	if id.IsLayout() {
		e.layoutChanged = true
	}
}

// TickElement records the frame time.
func (e *Element) TickElement(frameTime anim.TimePoint) {
	e.frameTime = frameTime
}

// TickAllAnimation runs keyframe animations, then transitions, and reports
// whether a layout property changed.
func (e *Element) TickAllAnimation(frameTime anim.TimePoint) bool {
	e.layoutChanged = false
	if e.animations != nil {
		e.animations.TickAllAnimation(frameTime)
	}
	if e.transitions != nil {
		e.transitions.TickAllAnimation(frameTime)
	}
	return e.layoutChanged
}

func (e *Element) GetElementStyle(id css.PropertyID) (css.Value, bool) {
	v, ok := e.authored[id]
	return v, ok
}

func (e *Element) GetElementPreviousStyle(id css.PropertyID) (css.Value, bool) {
	v, ok := e.previous[id]
	return v, ok
}

// UpdateFinalStyleMap applies animated values. Empty values fall back to the
// authored style.
func (e *Element) UpdateFinalStyleMap(styles css.StyleMap) {
	for id, v := range styles {
		if v.IsEmpty() {
			if a, ok := e.authored[id]; ok {
				v = a
			}
		}
		e.apply(id, v)
	}
}

// FlushAnimatedStyle sends the pending delta to the Sink without waiting for
// the end of the frame.
func (e *Element) FlushAnimatedStyle() {
	if len(e.delta) == 0 || e.scene.sink == nil {
		return
	}
	e.scene.sink.FlushStyles(e.id, e.TakeDelta())
}

func (e *Element) HasEventListener(name string) bool {
	return e.listeners[name] || e.listeners["*"]
}

func (e *Element) SendAnimationEvent(name string, elementID int, payload anim.EventPayload) {
	if e.scene.sink != nil {
		e.scene.sink.SendEvent(elementID, name, payload)
	}
}

func (e *Element) RequestNextFrame() {
	if !e.detached {
		e.scene.scheduler.RequestNextFrame(e)
	}
}

func (e *Element) KeyframesByName(name string) (css.Keyframes, bool) {
	if k, ok := e.keyframes[name]; ok {
		return k, true
	}
	k, ok := e.scene.keyframes[name]
	return k, ok
}

func (e *Element) Size() (float64, float64) { return e.width, e.height }

func (e *Element) ParentSize() (float64, float64, bool) {
	if e.parent == nil {
		return 0, 0, false
	}
	return e.parent.width, e.parent.height, true
}

func (e *Element) ColorInterpolation() css.ColorInterpolation { return e.interpolation }
