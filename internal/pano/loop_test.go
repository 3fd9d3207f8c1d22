package pano

import (
	"testing"
	"time"

	"github.com/Faultbox/panoview/internal/engine/frame"
)

func TestTextureCadence(t *testing.T) {
	sched := frame.New()
	clock := &fakeClock{now: epoch}
	var refreshedAt []int
	tickNo := 0
	loop := NewLoop(sched, clock, LoopHooks{
		Ready:          func() bool { return true },
		TextureRefresh: func() { refreshedAt = append(refreshedAt, tickNo) },
		Render:         func() {},
	})
	loop.Start()

	for tickNo = 1; tickNo <= 10; tickNo++ {
		sched.RunFrame(epoch.Add(time.Duration(tickNo) * 10 * time.Millisecond))
	}

	want := []int{3, 6, 9}
	if len(refreshedAt) != len(want) {
		t.Fatalf("expected refreshes on ticks %v, got %v", want, refreshedAt)
	}
	for i := range want {
		if refreshedAt[i] != want[i] {
			t.Errorf("expected refreshes on ticks %v, got %v", want, refreshedAt)
			break
		}
	}
}

func TestTextureCadenceThroughController(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	notified := 0
	h.bus.On(EventTextureRender, func(*Event) { notified++ })
	h.ctrl.Start()

	for i := 0; i < 9; i++ {
		h.step(10 * time.Millisecond)
	}

	if h.target.invalidations != 3 {
		t.Errorf("expected 3 texture invalidations, got %d", h.target.invalidations)
	}
	if notified != 3 {
		t.Errorf("expected 3 textureRender notifications, got %d", notified)
	}
}

func TestReadinessGating(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	rendered := 0
	h.bus.On(EventRender, func(*Event) { rendered++ })
	h.ctrl.Start()

	for _, state := range []ReadyState{HaveNothing, HaveMetadata} {
		h.player.state = state
		for i := 0; i < 20; i++ {
			h.step(50 * time.Millisecond)
		}
	}
	if rendered != 0 || len(h.target.renders) != 0 {
		t.Fatalf("rendered %d times before current data was available", rendered)
	}
	if h.target.invalidations != 40 {
		t.Errorf("expected texture bookkeeping to keep running, got %d invalidations", h.target.invalidations)
	}

	h.player.state = HaveCurrentData
	h.step(time.Millisecond)
	if rendered != 1 || len(h.target.renders) != 1 {
		t.Errorf("expected a render once current data is available, got %d", rendered)
	}
}

func TestLoopStartStop(t *testing.T) {
	sched := frame.New()
	ticks := 0
	loop := NewLoop(sched, nil, LoopHooks{
		Ready:  func() bool { return true },
		Render: func() { ticks++ },
	})

	if loop.State() != LoopStopped {
		t.Fatalf("expected new loop stopped, got %v", loop.State())
	}

	loop.Start()
	loop.Start()
	if sched.Pending() != 1 {
		t.Fatalf("expected one pending frame after double start, got %d", sched.Pending())
	}

	sched.RunFrame(time.Now())
	sched.RunFrame(time.Now())
	if ticks != 2 {
		t.Errorf("expected 2 ticks, got %d", ticks)
	}

	loop.Stop()
	loop.Stop()
	if loop.State() != LoopStopped {
		t.Errorf("expected stopped, got %v", loop.State())
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending frames after stop, got %d", sched.Pending())
	}

	sched.RunFrame(time.Now())
	if ticks != 2 {
		t.Errorf("tick ran after stop")
	}
}

func TestLoopStopFromHook(t *testing.T) {
	sched := frame.New()
	var loop *Loop
	ticks := 0
	loop = NewLoop(sched, nil, LoopHooks{
		Ready: func() bool { return true },
		Render: func() {
			ticks++
			loop.Stop()
		},
	})
	loop.Start()

	sched.RunFrame(time.Now())
	sched.RunFrame(time.Now())

	if ticks != 1 {
		t.Errorf("expected a single tick, got %d", ticks)
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending frames, got %d", sched.Pending())
	}
}

func TestLoopNilReadyNeverRenders(t *testing.T) {
	sched := frame.New()
	rendered := false
	loop := NewLoop(sched, nil, LoopHooks{Render: func() { rendered = true }})
	loop.Start()
	sched.RunFrame(time.Now())
	if rendered {
		t.Error("rendered without a readiness check")
	}
	loop.Stop()
}
