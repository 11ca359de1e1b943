package scene

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/matt-g-everett/cssanim/anim"
	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/scheduler"
)

const t0 = anim.TimePoint(10 * time.Second)

func at(ms int) anim.TimePoint { return t0.Add(time.Duration(ms) * time.Millisecond) }

type recorder struct {
	events  []string
	flushed []css.StyleMap
	frames  []string
	deltas  []css.StyleMap
}

func (r *recorder) SendEvent(id int, name string, payload anim.EventPayload) {
	r.events = append(r.events, name)
}

func (r *recorder) FlushStyles(id int, delta css.StyleMap) {
	r.flushed = append(r.flushed, delta)
}

func (r *recorder) FlushPaint(elements []scheduler.Element) {
	r.frames = append(r.frames, "paint")
	r.take(elements)
}

func (r *recorder) OnPatchFinish(elements []scheduler.Element, root scheduler.Element) {
	r.frames = append(r.frames, "patch")
	r.take(elements)
}

func (r *recorder) take(elements []scheduler.Element) {
	for _, e := range elements {
		if d := e.(*Element).TakeDelta(); d != nil {
			r.deltas = append(r.deltas, d)
		}
	}
}

func newTestScene() (*Scene, *scheduler.ManualVSync, *recorder) {
	v := scheduler.NewManualVSync()
	r := new(recorder)
	return New(scheduler.New(v, r), r), v, r
}

func load(t *testing.T, s *Scene, doc string) {
	t.Helper()
	d, err := DecodeDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Load(d); err != nil {
		t.Fatal(err)
	}
}

func opacity(e *Element) float64 { return e.Final()[css.PropertyOpacity].Number }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

const fadeScene = `
keyframes:
  fade:
    - offset: from
      styles: {opacity: "0"}
    - offset: to
      styles: {opacity: "1"}
elements:
  - id: 1
    width: 200
    height: 100
  - id: 2
    parent: 1
    listeners: ["*"]
    styles: {opacity: "1"}
    animations:
      - name: fade
        duration: 1s
        timingFunction: linear
`

func TestLoadedAnimationPlays(t *testing.T) {
	s, v, r := newTestScene()
	load(t, s, fadeScene)

	e := s.Element(2)
	if e == nil {
		t.Fatal("element 2 not created")
	}
	if got := opacity(e); got != 0 {
		t.Errorf("opacity after play = %v, want 0", got)
	}
	if len(r.flushed) != 2 {
		t.Errorf("immediate flushes = %d, want 2 (authored style, first sample)", len(r.flushed))
	}

	v.Fire(at(0))
	v.Fire(at(500))
	if got := opacity(e); !near(got, 0.5) {
		t.Errorf("opacity at 500ms = %v, want 0.5", got)
	}
	v.Fire(at(1000))

	if diff := cmp.Diff([]string{"animationstart", "animationend"}, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"paint", "paint", "paint"}, r.frames); diff != "" {
		t.Errorf("frames (-want +got):\n%s", diff)
	}
	// Without fill the authored value comes back.
	if got := opacity(e); got != 1 {
		t.Errorf("opacity after end = %v, want 1", got)
	}
	if s.Scheduler().Pending() != 0 {
		t.Errorf("finished animation still scheduled")
	}
}

func TestSetStyleRunsTransition(t *testing.T) {
	s, v, r := newTestScene()
	load(t, s, `
elements:
  - id: 1
    listeners: [transitionstart, transitionend]
    styles: {opacity: "1"}
    transitions:
      - property: opacity
        duration: 1s
        timingFunction: linear
`)
	e := s.Element(1)
	if len(r.events) != 0 {
		t.Fatalf("initial styles transitioned: %v", r.events)
	}

	e.SetStyle(css.PropertyOpacity, css.NumberValue(0))
	v.Fire(at(0))
	v.Fire(at(250))
	if got := opacity(e); !near(got, 0.75) {
		t.Errorf("opacity at 250ms = %v, want 0.75", got)
	}

	// Retargeting starts from the value on screen.
	e.SetStyle(css.PropertyOpacity, css.NumberValue(1))
	if got := opacity(e); !near(got, 0.75) {
		t.Errorf("retargeted start = %v, want 0.75", got)
	}
	v.Fire(at(300))
	v.Fire(at(1300))
	if got := opacity(e); got != 1 {
		t.Errorf("opacity after retarget = %v, want 1", got)
	}
	if diff := cmp.Diff([]string{"transitionstart", "transitionstart", "transitionend"}, r.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestSetStyleWithoutTransitionFlushes(t *testing.T) {
	s, _, r := newTestScene()
	e, err := s.NewElement(1, nil)
	if err != nil {
		t.Fatal(err)
	}
	e.SetStyle(css.PropertyWidth, css.LengthValue(css.Px(10)))

	want := []css.StyleMap{{css.PropertyWidth: css.LengthValue(css.Px(10))}}
	if diff := cmp.Diff(want, r.flushed); diff != "" {
		t.Errorf("flushed (-want +got):\n%s", diff)
	}
	if e.TakeDelta() != nil {
		t.Errorf("delta left after flush")
	}
}

func TestLayoutAnimationTakesPatchPath(t *testing.T) {
	s, v, r := newTestScene()
	load(t, s, `
keyframes:
  grow:
    - offset: 0%
      styles: {width: "0px"}
    - offset: 100%
      styles: {width: "100%"}
elements:
  - id: 1
    width: 400
    height: 100
  - id: 2
    parent: 1
    animations:
      - name: grow
        duration: 1s
        timingFunction: linear
`)
	v.Fire(at(0))
	v.Fire(at(250))

	if diff := cmp.Diff([]string{"patch", "patch"}, r.frames); diff != "" {
		t.Errorf("frames (-want +got):\n%s", diff)
	}
	got := s.Element(2).Final()[css.PropertyWidth]
	if want := css.LengthValue(css.Px(100)); !got.Equal(want) {
		t.Errorf("width at 250ms = %v, want %v", got, want)
	}
}

func TestAnimationsSetWhilePausedWaitForResume(t *testing.T) {
	s, v, _ := newTestScene()
	load(t, s, `
keyframes:
  fade:
    - {offset: "0", styles: {opacity: "0"}}
    - {offset: "1", styles: {opacity: "1"}}
elements:
  - id: 1
`)
	e := s.Element(1)
	s.Pause()
	d := css.DefaultAnimationData("fade")
	d.Duration = time.Second
	e.SetAnimations([]css.AnimationData{d})
	if n := len(e.Animations()); n != 0 {
		t.Fatalf("animations created while paused: %d", n)
	}

	s.Resume()
	if n := len(e.Animations()); n != 1 {
		t.Fatalf("animations after resume = %d, want 1", n)
	}
	v.Fire(at(0))
	if s.Scheduler().Pending() != 1 {
		t.Errorf("resumed animation not scheduled")
	}
}

func TestInlineKeyframesWin(t *testing.T) {
	s, _, _ := newTestScene()
	load(t, s, `
keyframes:
  k:
    - {offset: from, styles: {opacity: "0"}}
    - {offset: to, styles: {opacity: "1"}}
elements:
  - id: 1
    keyframes:
      k:
        - {offset: from, styles: {opacity: "0.4"}}
        - {offset: to, styles: {opacity: "1"}}
    animations:
      - {name: k, duration: 1s}
`)
	if got := opacity(s.Element(1)); !near(got, 0.4) {
		t.Errorf("first sample = %v, want 0.4 from the inline rule", got)
	}
}

func TestSceneKeyframesUpdateRestarts(t *testing.T) {
	s, _, _ := newTestScene()
	load(t, s, fadeScene)
	e := s.Element(2)
	first := e.Animations()[0]

	s.SetKeyframes("fade", css.Keyframes{
		{Offset: 0, Styles: css.StyleMap{css.PropertyOpacity: css.NumberValue(0.2)}},
		{Offset: 1, Styles: css.StyleMap{css.PropertyOpacity: css.NumberValue(1)}},
	})
	if !first.IsDestroyed() {
		t.Errorf("old animation survived a keyframes update")
	}
	if got := opacity(e); !near(got, 0.2) {
		t.Errorf("opacity after update = %v, want 0.2", got)
	}
}

func TestDestroy(t *testing.T) {
	s, v, r := newTestScene()
	load(t, s, fadeScene)
	e := s.Element(2)
	events := len(r.events)

	e.Destroy()
	e.Destroy()
	if s.Element(2) != nil {
		t.Errorf("destroyed element still in scene")
	}
	if s.Scheduler().Pending() != 0 {
		t.Errorf("destroyed element still scheduled")
	}
	v.Fire(at(0))
	if len(r.frames) != 0 {
		t.Errorf("frames after destroy: %v", r.frames)
	}
	if diff := cmp.Diff([]string{"animationcancel"}, r.events[events:]); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}

	e.SetStyle(css.PropertyOpacity, css.NumberValue(0.7))
	if got := opacity(e); got != 0 {
		t.Errorf("detached element took a style: opacity = %v", got)
	}
	if _, err := s.NewElement(3, e); err == nil {
		t.Errorf("child of a destroyed element was created")
	}
}

func TestSnapshot(t *testing.T) {
	s, _, _ := newTestScene()
	load(t, s, `
elements:
  - id: 1
    styles: {color: "#ff0000", opacity: "0.5"}
`)
	want := map[int]css.StyleMap{
		1: {
			css.PropertyColor:   css.ColorValue(0xffff0000),
			css.PropertyOpacity: css.NumberValue(0.5),
		},
	}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("snapshot (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "elements:\n  - id: 1\n    colour: red\n", "decoding scene"},
		{"unknown property", "elements:\n  - id: 1\n    styles: {colour: red}\n", "unknown property"},
		{"bad value", "elements:\n  - id: 1\n    styles: {opacity: lots}\n", "opacity"},
		{"unknown parent", "elements:\n  - id: 2\n    parent: 1\n", "unknown parent"},
		{"duplicate", "elements:\n  - id: 1\n  - id: 1\n", "already exists"},
		{"bad offset", "keyframes:\n  k:\n    - {offset: middle}\n", "keyframe offset"},
		{"bad direction", "elements:\n  - id: 1\n    animations:\n      - {name: k, direction: sideways}\n", "direction"},
		{"bad transition", "elements:\n  - id: 1\n    transitions:\n      - {property: colour}\n", "unknown property"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestScene()
			d, err := DecodeDocument(strings.NewReader(tt.doc))
			if err == nil {
				err = s.Load(d)
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseOffset(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"from", 0},
		{"to", 1},
		{"50%", 0.5},
		{"0.25", 0.25},
		{" 100% ", 1},
	}
	for _, tt := range tests {
		got, err := ParseOffset(tt.in)
		if err != nil || !near(got, tt.want) {
			t.Errorf("ParseOffset(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
