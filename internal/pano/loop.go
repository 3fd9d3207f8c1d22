package pano

import (
	"time"

	"github.com/Faultbox/panoview/internal/engine/frame"
)

// TextureRefreshInterval is the minimum time between texture invalidations.
const TextureRefreshInterval = 30 * time.Millisecond

// FrameScheduler runs callbacks on the host's next frame.
type FrameScheduler interface {
	RequestFrame(cb frame.Callback) frame.ID
	CancelFrame(id frame.ID)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// LoopState is the render loop state.
type LoopState int

const (
	LoopStopped LoopState = iota
	LoopRunning
)

func (s LoopState) String() string {
	switch s {
	case LoopRunning:
		return "running"
	default:
		return "stopped"
	}
}

// LoopHooks connects the loop to the work it drives.
type LoopHooks struct {
	// Ready gates Render. A nil Ready never renders.
	Ready func() bool
	// TextureRefresh fires at most once per TextureRefreshInterval.
	TextureRefresh func()
	// Render draws one frame.
	Render func()
}

// Loop is a self-rescheduling per-frame tick. Each tick requests the next
// frame before doing its work, so Stop must cancel the pending request.
type Loop struct {
	sched FrameScheduler
	clock Clock
	hooks LoopHooks

	state       LoopState
	pending     frame.ID
	lastRefresh time.Time
	tickFn      frame.Callback
}

// NewLoop creates a stopped loop. A nil clock uses the system clock.
func NewLoop(sched FrameScheduler, clock Clock, hooks LoopHooks) *Loop {
	if clock == nil {
		clock = systemClock{}
	}
	l := &Loop{
		sched: sched,
		clock: clock,
		hooks: hooks,
	}
	l.tickFn = l.tick
	return l
}

// State returns the current loop state.
func (l *Loop) State() LoopState {
	return l.state
}

// Start moves Stopped to Running and schedules the first tick. Starting a
// running loop does nothing.
func (l *Loop) Start() {
	if l.state == LoopRunning {
		return
	}
	l.state = LoopRunning
	l.lastRefresh = l.clock.Now()
	l.pending = l.sched.RequestFrame(l.tickFn)
}

// Stop moves Running to Stopped and cancels the scheduled tick. Stopping a
// stopped loop does nothing.
func (l *Loop) Stop() {
	if l.state == LoopStopped {
		return
	}
	l.state = LoopStopped
	if l.pending != 0 {
		l.sched.CancelFrame(l.pending)
		l.pending = 0
	}
}

func (l *Loop) tick(now time.Time) {
	l.pending = 0
	if l.state != LoopRunning {
		return
	}
	l.pending = l.sched.RequestFrame(l.tickFn)

	if now.Sub(l.lastRefresh) >= TextureRefreshInterval {
		l.lastRefresh = now
		if l.hooks.TextureRefresh != nil {
			l.hooks.TextureRefresh()
		}
	}

	if l.hooks.Ready != nil && l.hooks.Ready() && l.hooks.Render != nil {
		l.hooks.Render()
	}
}
