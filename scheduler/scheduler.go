// Package scheduler batches animation ticks of many elements onto vsync.
package scheduler

import (
	"time"

	"github.com/matt-g-everett/cssanim/anim"
)

// Element is what the scheduler ticks.
type Element interface {
	IsDetached() bool
	TickElement(frameTime anim.TimePoint)
	// TickAllAnimation runs the element's animations and reports whether a
	// layout property changed.
	TickAllAnimation(frameTime anim.TimePoint) bool
	// ResumeAnimations applies animation data that arrived while paused.
	ResumeAnimations()
}

// Pipeline receives the end of each frame.
type Pipeline interface {
	// FlushPaint commits a frame that changed paint properties only.
	FlushPaint(elements []Element)
	// OnPatchFinish commits a frame that needs layout. root is the only
	// ticked element, or nil when several were ticked.
	OnPatchFinish(elements []Element, root Element)
}

// FPS is the frame rate preference.
type FPS uint8

const (
	FPSHigh FPS = iota
	FPSLow
)

const (
	lowFPSInterval  = time.Second / 30
	lowFPSTolerance = 2 * time.Millisecond
)

// elementSet keeps insertion order so frames tick deterministically.
type elementSet struct {
	items []Element
	index map[Element]struct{}
}

func (s *elementSet) add(e Element) {
	if s.index == nil {
		s.index = make(map[Element]struct{})
	}
	if _, ok := s.index[e]; ok {
		return
	}
	s.index[e] = struct{}{}
	s.items = append(s.items, e)
}

func (s *elementSet) remove(e Element) {
	if _, ok := s.index[e]; !ok {
		return
	}
	delete(s.index, e)
	for i, x := range s.items {
		if x == e {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *elementSet) take() []Element {
	items := s.items
	s.items = nil
	s.index = nil
	return items
}

func (s *elementSet) len() int { return len(s.items) }

// Scheduler ticks every element that asked for a frame once per vsync.
type Scheduler struct {
	vsync    VSyncSource
	pipeline Pipeline
	fps      FPS

	requested bool
	lastFrame anim.TimePoint

	elements elementSet
	paused   bool
	deferred elementSet
}

// New creates an instance of Scheduler.
func New(vsync VSyncSource, pipeline Pipeline) *Scheduler {
	s := new(Scheduler)
	s.vsync = vsync
	s.pipeline = pipeline
	return s
}

// SetPreferredFPS switches between every vsync and roughly 30 frames a second.
func (s *Scheduler) SetPreferredFPS(fps FPS) { s.fps = fps }

// IsPaused reports the global pause flag.
func (s *Scheduler) IsPaused() bool { return s.paused }

// Pending returns the number of elements waiting for a frame.
func (s *Scheduler) Pending() int { return s.elements.len() }

// RequestNextFrame schedules e for the next vsync.
func (s *Scheduler) RequestNextFrame(e Element) {
	s.elements.add(e)
	if !s.paused {
		s.requestVSync()
	}
}

func (s *Scheduler) requestVSync() {
	if s.requested {
		return
	}
	s.requested = true
	s.vsync.RequestVSync(s.onVSync)
}

func (s *Scheduler) onVSync(frameTime anim.TimePoint) {
	s.requested = false
	if s.paused || s.elements.len() == 0 {
		return
	}
	if s.fps == FPSLow && s.lastFrame != 0 && frameTime.Sub(s.lastFrame) < lowFPSInterval-lowFPSTolerance {
		s.requestVSync()
		return
	}
	s.lastFrame = frameTime
	s.TickAllElement(frameTime)
}

// TickAllElement runs one frame for every scheduled element.
func (s *Scheduler) TickAllElement(frameTime anim.TimePoint) {
	if s.paused || s.elements.len() == 0 {
		return
	}
	elements := s.elements.take()

	ticked := make([]Element, 0, len(elements))
	layout := false
	for _, e := range elements {
		if e.IsDetached() {
			continue
		}
		e.TickElement(frameTime)
		if e.TickAllAnimation(frameTime) {
			layout = true
		}
		ticked = append(ticked, e)
	}
	if len(ticked) == 0 || s.pipeline == nil {
		return
	}

	if !layout {
		s.pipeline.FlushPaint(ticked)
		return
	}
	var root Element
	if len(ticked) == 1 {
		root = ticked[0]
	}
	s.pipeline.OnPatchFinish(ticked, root)
}

// PauseAllAnimations stops ticking until ResumeAllAnimations.
func (s *Scheduler) PauseAllAnimations() {
	s.paused = true
}

// ResumeAllAnimations restarts ticking and applies deferred animation data.
func (s *Scheduler) ResumeAllAnimations() {
	if !s.paused {
		return
	}
	s.paused = false
	s.requestVSync()
	for _, e := range s.deferred.take() {
		e.ResumeAnimations()
	}
}

// DeferUntilResume records that e received animation data while paused.
func (s *Scheduler) DeferUntilResume(e Element) {
	s.deferred.add(e)
}

// NotifyElementDestroy forgets e.
func (s *Scheduler) NotifyElementDestroy(e Element) {
	s.elements.remove(e)
	s.deferred.remove(e)
}
