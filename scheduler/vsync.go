package scheduler

import (
	"context"
	"time"

	"github.com/matt-g-everett/cssanim/anim"
)

// VSyncSource delivers one callback per request at the next frame boundary.
type VSyncSource interface {
	RequestVSync(cb func(frameTime anim.TimePoint))
}

// ManualVSync fires only when told to. It drives tests and offline rendering.
type ManualVSync struct {
	pending []func(anim.TimePoint)
}

// NewManualVSync creates an instance of ManualVSync.
func NewManualVSync() *ManualVSync {
	return new(ManualVSync)
}

func (v *ManualVSync) RequestVSync(cb func(anim.TimePoint)) {
	v.pending = append(v.pending, cb)
}

// Pending reports how many callbacks wait for the next Fire.
func (v *ManualVSync) Pending() int { return len(v.pending) }

// Fire runs the callbacks requested so far. Callbacks requested while firing
// wait for the next call.
func (v *ManualVSync) Fire(frameTime anim.TimePoint) {
	pending := v.pending
	v.pending = nil
	for _, cb := range pending {
		cb(frameTime)
	}
}

// TickerVSync paces frames with a time.Ticker and serialises all engine work
// onto the goroutine running Run.
type TickerVSync struct {
	interval time.Duration
	pending  []func(anim.TimePoint)
	tasks    chan func()
	done     chan struct{}
}

// NewTickerVSync creates an instance of TickerVSync firing fps times a second.
func NewTickerVSync(fps int) *TickerVSync {
	if fps <= 0 {
		fps = 60
	}
	v := new(TickerVSync)
	v.interval = time.Second / time.Duration(fps)
	v.tasks = make(chan func(), 64)
	v.done = make(chan struct{})
	return v
}

// RequestVSync must be called from the Run goroutine.
func (v *TickerVSync) RequestVSync(cb func(anim.TimePoint)) {
	v.pending = append(v.pending, cb)
}

// Post queues fn to run on the engine goroutine. It is safe from any
// goroutine and reports false, dropping fn, once Run has returned.
func (v *TickerVSync) Post(fn func()) bool {
	select {
	case <-v.done:
		return false
	default:
	}
	select {
	case v.tasks <- fn:
		return true
	case <-v.done:
		return false
	}
}

// Run drives frames until ctx is done.
func (v *TickerVSync) Run(ctx context.Context) error {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()
	defer close(v.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-v.tasks:
			fn()
		case <-ticker.C:
			if len(v.pending) == 0 {
				continue
			}
			pending := v.pending
			v.pending = nil
			now := anim.Now()
			for _, cb := range pending {
				cb(now)
			}
		}
	}
}
