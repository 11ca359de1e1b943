package anim

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matt-g-everett/cssanim/css"
)

func TestSetAnimationDataIsIdempotent(t *testing.T) {
	el := newFakeElement()
	el.keyframes["f"] = keyframes(css.PropertyOpacity, css.NumberValue(0), css.NumberValue(1))
	m := NewKeyframeManager(el)
	list := []css.AnimationData{linearData("f", time.Second)}

	m.SetAnimationDataAndPlay(list)
	first := m.Find("f")
	events, deltas := len(el.events), len(el.deltas)

	m.SetAnimationDataAndPlay(append([]css.AnimationData(nil), list...))
	if m.Find("f") != first {
		t.Error("second call replaced the animation")
	}
	if len(el.events) != events || len(el.deltas) != deltas {
		t.Errorf("second call emitted %d events and %d deltas", len(el.events)-events, len(el.deltas)-deltas)
	}
}

func TestSetAnimationDataReconciles(t *testing.T) {
	el := newFakeElement()
	el.keyframes["a"] = keyframes(css.PropertyOpacity, css.NumberValue(0), css.NumberValue(1))
	el.keyframes["b"] = keyframes(css.PropertyFlexGrow, css.NumberValue(0), css.NumberValue(1))
	el.keyframes["c"] = keyframes(css.PropertyWidth, css.LengthValue(css.Px(0)), css.LengthValue(css.Px(10)))
	m := NewKeyframeManager(el)

	m.SetAnimationDataAndPlay([]css.AnimationData{linearData("a", time.Second), linearData("b", time.Second)})
	el.tick(m, at(0))
	a := m.Find("a")

	slower := linearData("a", 2*time.Second)
	m.SetAnimationDataAndPlay([]css.AnimationData{linearData("c", time.Second), slower})

	if m.Find("a") != a {
		t.Error("kept animation was recreated")
	}
	if a.Data().Duration != 2*time.Second {
		t.Errorf("kept animation duration = %v", a.Data().Duration)
	}
	if m.Find("b") != nil {
		t.Error("dropped animation still present")
	}
	var names []string
	for _, x := range m.Animations() {
		names = append(names, x.Name())
	}
	if diff := cmp.Diff([]string{"c", "a"}, names); diff != "" {
		t.Errorf("animation order (-want +got):\n%s", diff)
	}
	if _, ok := el.final[css.PropertyFlexGrow]; ok {
		t.Error("dropped animation left its value behind")
	}

	el.events = nil
	el.tick(m, at(1000))
	if got := el.final[css.PropertyOpacity].Number; !approxEqual(got, 0.5) {
		t.Errorf("opacity with new duration = %v, want 0.5", got)
	}
}

func TestLastWriteWins(t *testing.T) {
	el := newFakeElement()
	el.keyframes["low"] = keyframes(css.PropertyOpacity, css.NumberValue(0), css.NumberValue(0.1))
	el.keyframes["high"] = keyframes(css.PropertyOpacity, css.NumberValue(0.9), css.NumberValue(1))
	m := NewKeyframeManager(el)
	m.SetAnimationDataAndPlay([]css.AnimationData{linearData("low", time.Second), linearData("high", time.Second)})

	el.tick(m, at(0))
	el.tick(m, at(500))
	if got := el.final[css.PropertyOpacity].Number; !approxEqual(got, 0.95) {
		t.Errorf("opacity = %v, want the later animation's 0.95", got)
	}
}

func TestLastWriteWinsAfterResume(t *testing.T) {
	el := newFakeElement()
	el.keyframes["low"] = keyframes(css.PropertyOpacity, css.NumberValue(0), css.NumberValue(0.1))
	el.keyframes["high"] = keyframes(css.PropertyOpacity, css.NumberValue(0.9), css.NumberValue(1))
	m := NewKeyframeManager(el)
	low, high := linearData("low", time.Second), linearData("high", time.Second)
	m.SetAnimationDataAndPlay([]css.AnimationData{low, high})
	el.tick(m, at(0))

	paused := low
	paused.PlayState = css.PlayStatePaused
	m.SetAnimationDataAndPlay([]css.AnimationData{paused, high})
	el.tick(m, at(100))

	m.SetAnimationDataAndPlay([]css.AnimationData{low, high})
	el.tick(m, at(500))
	if got := el.final[css.PropertyOpacity].Number; !approxEqual(got, 0.95) {
		t.Errorf("opacity = %v, want the later animation's 0.95", got)
	}
}

func TestEmptyAnimationNameIsSkipped(t *testing.T) {
	el := newFakeElement()
	el.keyframes["f"] = keyframes(css.PropertyOpacity, css.NumberValue(0), css.NumberValue(1))
	m := NewKeyframeManager(el)
	m.SetAnimationDataAndPlay([]css.AnimationData{linearData("", time.Second), linearData("f", time.Second)})

	var names []string
	for _, a := range m.Animations() {
		names = append(names, a.Name())
	}
	if diff := cmp.Diff([]string{"f"}, names); diff != "" {
		t.Errorf("animations (-want +got):\n%s", diff)
	}
}

func TestNotifyClientAnimatedNormalises(t *testing.T) {
	m := NewKeyframeManager(newFakeElement())
	styles := css.StyleMap{}
	m.NotifyClientAnimated(styles, css.PropertyTransform, css.TransformValue())
	m.NotifyClientAnimated(styles, css.PropertyOpacity, css.NumberValue(-0.2))
	if got := styles[css.PropertyTransform].String(); got != "rotateZ(0deg)" {
		t.Errorf("empty transform became %q", got)
	}
	if _, ok := styles[css.PropertyOpacity]; ok {
		t.Error("negative opacity was published")
	}
}

func TestNotifyKeyframesUpdatedRestarts(t *testing.T) {
	el := newFakeElement()
	el.keyframes["f"] = keyframes(css.PropertyOpacity, css.NumberValue(0), css.NumberValue(1))
	m := NewKeyframeManager(el)
	m.SetAnimationDataAndPlay([]css.AnimationData{linearData("f", time.Second)})
	el.tick(m, at(0))
	old := m.Find("f")

	el.keyframes["f"] = keyframes(css.PropertyOpacity, css.NumberValue(1), css.NumberValue(0))
	m.NotifyKeyframesUpdated("f")
	if m.Find("f") == old || !old.IsDestroyed() {
		t.Fatal("keyframes change did not replace the animation")
	}
	el.tick(m, at(100))
	if got := opacityOf(t, el.tick(m, at(350))); !approxEqual(got, 0.75) {
		t.Errorf("opacity with new keyframes = %v, want 0.75", got)
	}
}

func TestCloseDestroysWithoutRestoring(t *testing.T) {
	el := newFakeElement()
	el.keyframes["f"] = keyframes(css.PropertyOpacity, css.NumberValue(0), css.NumberValue(1))
	m := NewKeyframeManager(el)
	m.SetAnimationDataAndPlay([]css.AnimationData{linearData("f", time.Second)})
	a := m.Find("f")
	el.tick(m, at(0))

	deltas := len(el.deltas)
	m.Close()
	if !a.IsDestroyed() || len(m.Animations()) != 0 {
		t.Error("Close left animations alive")
	}
	if len(el.deltas) != deltas {
		t.Error("Close restored styles")
	}
}
