package anim

import (
	"log"

	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/timing"
)

// manager holds what keyframe and transition managers share: the element,
// its animations and the animations waiting for the next frame.
type manager struct {
	element    Element
	delegate   Delegate
	animations []*Animation
	active     map[*Animation]bool
	lookup     func(name string) (css.Keyframes, bool)
}

// Animations returns the live animations in play order.
func (m *manager) Animations() []*Animation { return m.animations }

// Find returns the animation called name.
func (m *manager) Find(name string) *Animation {
	return find(m.animations, name)
}

func find(animations []*Animation, name string) *Animation {
	for _, a := range animations {
		if a.name == name {
			return a
		}
	}
	return nil
}

func (m *manager) remove(a *Animation) {
	for i, x := range m.animations {
		if x == a {
			m.animations = append(m.animations[:i], m.animations[i+1:]...)
			return
		}
	}
}

func (m *manager) createAnimation(data css.AnimationData) *Animation {
	a := NewAnimation(data, m.element, m.delegate)
	m.makeKeyframeModels(a)
	return a
}

// makeKeyframeModels builds one curve per animated property from the
// animation's keyframes rule.
func (m *manager) makeKeyframeModels(a *Animation) {
	rule, ok := m.lookup(a.name)
	if !ok {
		log.Printf("[animation] No keyframes named %q, animation %q has no effect", a.name, a.name)
		return
	}
	stops := append(css.Keyframes(nil), rule...)
	stops.Sort()

	for _, stop := range stops {
		if stop.Offset < 0 || stop.Offset > 1 {
			log.Printf("[animation] Skipping keyframe at offset %v in %q", stop.Offset, a.name)
			continue
		}
		var fn timing.Function
		if v, ok := stop.Styles[css.PropertyAnimationTimingFunction]; ok && v.Kind == css.KindTiming {
			fn = timing.Make(v.Timing)
		}
		for _, id := range stop.Styles.SortedIDs() {
			if id == css.PropertyAnimationTimingFunction {
				continue
			}
			if !id.Animatable() {
				log.Printf("[animation] Property %s cannot be animated, ignored in %q", id, a.name)
				continue
			}
			k := NewKeyframe(stop.Offset, fn)
			if !k.SetValue(id, stop.Styles[id]) {
				log.Printf("[animation] Invalid value %q for %s in %q", stop.Styles[id], id, a.name)
				continue
			}
			model := a.effect.ModelByProperty(id)
			if model == nil {
				model = NewKeyframeModel(NewCurve(id, m.element), &a.data)
				a.effect.AddModel(model)
			}
			model.curve.AddKeyframe(k)
			a.SetRawStyle(id)
		}
	}
	a.effect.EnsureFromAndTo()
}

// TickAllAnimation runs one frame for every animation that asked for it,
// in play order so later animations win on shared properties.
func (m *manager) TickAllAnimation(t TimePoint) {
	queued := m.active
	m.active = nil
	for _, a := range append([]*Animation(nil), m.animations...) {
		if queued[a] {
			a.DoFrame(t)
		}
	}
}

// NotifyElementSizeUpdated drops size dependent caches of every animation.
func (m *manager) NotifyElementSizeUpdated() {
	for _, a := range m.animations {
		a.NotifyElementSizeUpdated()
	}
}

// Close destroys every animation without restoring styles. It is called
// when the element goes away.
func (m *manager) Close() {
	for _, a := range m.animations {
		a.Destroy(false)
	}
	m.animations = nil
	m.active = nil
}

func (m *manager) RequestNextFrame(a *Animation) {
	if m.active[a] {
		return
	}
	if m.active == nil {
		m.active = make(map[*Animation]bool)
	}
	m.active[a] = true
	m.element.RequestNextFrame()
}

func (m *manager) UpdateFinalStyleMap(styles css.StyleMap) {
	m.element.UpdateFinalStyleMap(styles)
}

func (m *manager) FlushAnimatedStyle() {
	m.element.FlushAnimatedStyle()
}

// SetNeedsAnimationStyleRecalc republishes the authored value of every
// property a has written, or an empty value where nothing is authored.
func (m *manager) SetNeedsAnimationStyleRecalc(a *Animation) {
	styles := css.StyleMap{}
	for _, id := range a.RawStyles() {
		if v, ok := m.element.GetElementStyle(id); ok {
			styles[id] = v
		} else {
			styles[id] = css.Empty()
		}
	}
	if len(styles) > 0 {
		m.element.UpdateFinalStyleMap(styles)
	}
}

// NotifyClientAnimated stores a sampled value, normalising what the
// renderer cannot take.
func (m *manager) NotifyClientAnimated(styles css.StyleMap, id css.PropertyID, value css.Value) {
	switch id {
	case css.PropertyTransform:
		if len(value.Transform) == 0 {
			value = defaultTransform()
		}
	case css.PropertyOpacity:
		if value.Number < 0 {
			return
		}
	}
	styles[id] = value
}

func (m *manager) AnimationFinished(a *Animation) {}
