package anim

import (
	"math"
	"time"

	"github.com/matt-g-everett/cssanim/css"
)

const t0 = TimePoint(10 * time.Second)

func at(ms float64) TimePoint {
	return t0.Add(time.Duration(ms * float64(time.Millisecond)))
}

type sentEvent struct {
	name    string
	payload EventPayload
}

type fakeElement struct {
	id            int
	authored      css.StyleMap
	previous      css.StyleMap
	final         css.StyleMap
	deltas        []css.StyleMap
	keyframes     map[string]css.Keyframes
	events        []sentEvent
	frames        int
	flushes       int
	width, height float64
	parentWidth   float64
	parentHeight  float64
	hasParent     bool
	interpolation css.ColorInterpolation
}

func newFakeElement() *fakeElement {
	return &fakeElement{
		id:        7,
		authored:  css.StyleMap{},
		previous:  css.StyleMap{},
		final:     css.StyleMap{},
		keyframes: map[string]css.Keyframes{},
	}
}

func (e *fakeElement) ID() int { return e.id }

func (e *fakeElement) GetElementStyle(id css.PropertyID) (css.Value, bool) {
	v, ok := e.authored[id]
	return v, ok
}

func (e *fakeElement) GetElementPreviousStyle(id css.PropertyID) (css.Value, bool) {
	v, ok := e.previous[id]
	return v, ok
}

func (e *fakeElement) UpdateFinalStyleMap(styles css.StyleMap) {
	e.deltas = append(e.deltas, styles.Clone())
	for id, v := range styles {
		if v.IsEmpty() {
			delete(e.final, id)
		} else {
			e.final[id] = v
		}
	}
}

func (e *fakeElement) FlushAnimatedStyle() { e.flushes++ }

func (e *fakeElement) HasEventListener(name string) bool { return true }

func (e *fakeElement) SendAnimationEvent(name string, id int, payload EventPayload) {
	e.events = append(e.events, sentEvent{name: name, payload: payload})
}

func (e *fakeElement) RequestNextFrame() { e.frames++ }

func (e *fakeElement) KeyframesByName(name string) (css.Keyframes, bool) {
	k, ok := e.keyframes[name]
	return k, ok
}

func (e *fakeElement) Size() (float64, float64) { return e.width, e.height }

func (e *fakeElement) ParentSize() (float64, float64, bool) {
	return e.parentWidth, e.parentHeight, e.hasParent
}

func (e *fakeElement) ColorInterpolation() css.ColorInterpolation { return e.interpolation }

func (e *fakeElement) eventNames() []string {
	names := make([]string, len(e.events))
	for i, ev := range e.events {
		names[i] = ev.name
	}
	return names
}

// tick runs one frame and returns the deltas it published.
func (e *fakeElement) tick(m interface{ TickAllAnimation(TimePoint) }, t TimePoint) []css.StyleMap {
	n := len(e.deltas)
	m.TickAllAnimation(t)
	return e.deltas[n:]
}

func keyframes(id css.PropertyID, values ...css.Value) css.Keyframes {
	k := make(css.Keyframes, len(values))
	for i, v := range values {
		k[i] = css.KeyframeStop{Offset: float64(i) / float64(len(values)-1), Styles: css.StyleMap{id: v}}
	}
	return k
}

func linearData(name string, duration time.Duration) css.AnimationData {
	d := css.DefaultAnimationData(name)
	d.Duration = duration
	d.TimingFunction = css.TimingFunctionData{}
	return d
}

func approxEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }
