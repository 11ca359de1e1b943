package anim

import (
	"github.com/matt-g-everett/cssanim/css"
)

// Event names sent to elements.
const (
	EventAnimationStart     = "animationstart"
	EventAnimationEnd       = "animationend"
	EventAnimationCancel    = "animationcancel"
	EventAnimationIteration = "animationiteration"
	EventTransitionStart    = "transitionstart"
	EventTransitionEnd      = "transitionend"
	EventTransitionCancel   = "transitioncancel"
)

// EventPayload is the body of an animation or transition event.
type EventPayload struct {
	NewAnimator   bool   `json:"new_animator"`
	AnimationType string `json:"animation_type"`
	AnimationName string `json:"animation_name"`
}

// Element is the styled node animations run against.
type Element interface {
	ID() int

	// GetElementStyle returns the authored value of a property.
	GetElementStyle(id css.PropertyID) (css.Value, bool)
	// GetElementPreviousStyle returns the value a property had before the
	// latest style change.
	GetElementPreviousStyle(id css.PropertyID) (css.Value, bool)

	// UpdateFinalStyleMap applies animated values. An empty value restores
	// the authored one.
	UpdateFinalStyleMap(styles css.StyleMap)
	FlushAnimatedStyle()

	HasEventListener(name string) bool
	SendAnimationEvent(name string, elementID int, payload EventPayload)

	RequestNextFrame()

	// KeyframesByName resolves a keyframes rule, inline rules first.
	KeyframesByName(name string) (css.Keyframes, bool)

	Size() (width, height float64)
	ParentSize() (width, height float64, ok bool)
	ColorInterpolation() css.ColorInterpolation
}

// Delegate is how an Animation reaches its manager.
type Delegate interface {
	RequestNextFrame(a *Animation)
	UpdateFinalStyleMap(styles css.StyleMap)
	FlushAnimatedStyle()
	SetNeedsAnimationStyleRecalc(a *Animation)
	NotifyClientAnimated(styles css.StyleMap, id css.PropertyID, value css.Value)
	AnimationFinished(a *Animation)
}
