package stream

import (
	"encoding/json"

	"github.com/matt-g-everett/cssanim/anim"
	"github.com/matt-g-everett/cssanim/css"
)

// Frame is the set of style changes committed together, keyed by element id.
type Frame struct {
	Sequence uint64               `json:"seq"`
	Time     anim.TimePoint       `json:"time"`
	Layout   bool                 `json:"layout"`
	Elements map[int]css.StyleMap `json:"elements"`
}

// NewFrame creates a new Frame instance.
func NewFrame(sequence uint64, t anim.TimePoint, layout bool) *Frame {
	f := new(Frame)
	f.Sequence = sequence
	f.Time = t
	f.Layout = layout
	f.Elements = make(map[int]css.StyleMap)
	return f
}

// Add merges a delta for an element, later values winning.
func (f *Frame) Add(id int, delta css.StyleMap) {
	if len(delta) == 0 {
		return
	}
	styles, ok := f.Elements[id]
	if !ok {
		f.Elements[id] = delta
		return
	}
	for p, v := range delta {
		styles[p] = v
	}
}

func (f *Frame) Empty() bool { return len(f.Elements) == 0 }

// MarshalBinary converts a Frame into the JSON published on the frames topic.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	return json.Marshal(f)
}
