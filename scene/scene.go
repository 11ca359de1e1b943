// Package scene is an in-memory tree of styled elements driven by the
// animation managers and the scheduler.
package scene

import (
	"fmt"
	"sort"

	"github.com/matt-g-everett/cssanim/anim"
	"github.com/matt-g-everett/cssanim/css"
	"github.com/matt-g-everett/cssanim/scheduler"
)

// Sink receives what elements emit outside of the frame pipeline.
type Sink interface {
	SendEvent(elementID int, name string, payload anim.EventPayload)
	// FlushStyles commits a delta immediately, outside of a frame.
	FlushStyles(elementID int, delta css.StyleMap)
}

// Scene holds the elements and the keyframes rules shared by them.
type Scene struct {
	scheduler *scheduler.Scheduler
	sink      Sink
	keyframes map[string]css.Keyframes
	elements  []*Element
	byID      map[int]*Element
}

// New creates an instance of Scene.
func New(s *scheduler.Scheduler, sink Sink) *Scene {
	sc := new(Scene)
	sc.scheduler = s
	sc.sink = sink
	sc.keyframes = make(map[string]css.Keyframes)
	sc.byID = make(map[int]*Element)
	return sc
}

func (s *Scene) Scheduler() *scheduler.Scheduler { return s.scheduler }

// NewElement adds an element. parent may be nil for a root.
func (s *Scene) NewElement(id int, parent *Element) (*Element, error) {
	if _, ok := s.byID[id]; ok {
		return nil, fmt.Errorf("element %d already exists", id)
	}
	if parent != nil && parent.detached {
		return nil, fmt.Errorf("parent %d of element %d is destroyed", parent.id, id)
	}
	e := newElement(id, s, parent)
	s.elements = append(s.elements, e)
	s.byID[id] = e
	return e, nil
}

// Element returns the element with the given id, or nil.
func (s *Scene) Element(id int) *Element { return s.byID[id] }

// Elements returns the elements in creation order.
func (s *Scene) Elements() []*Element { return s.elements }

func (s *Scene) remove(e *Element) {
	delete(s.byID, e.id)
	for i, x := range s.elements {
		if x == e {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			return
		}
	}
}

// SetKeyframes adds or replaces a keyframes rule and restarts the
// animations using it.
func (s *Scene) SetKeyframes(name string, k css.Keyframes) {
	s.keyframes[name] = k
	for _, e := range s.elements {
		if _, inline := e.keyframes[name]; !inline {
			e.keyframesUpdated(name)
		}
	}
}

// KeyframesNames returns the names of the scene's keyframes rules, sorted.
func (s *Scene) KeyframesNames() []string {
	names := make([]string, 0, len(s.keyframes))
	for name := range s.keyframes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the displayed styles of every element.
func (s *Scene) Snapshot() map[int]css.StyleMap {
	out := make(map[int]css.StyleMap, len(s.elements))
	for _, e := range s.elements {
		out[e.id] = e.Final()
	}
	return out
}

func (s *Scene) Pause() { s.scheduler.PauseAllAnimations() }
func (s *Scene) Resume() { s.scheduler.ResumeAllAnimations() }
