package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"ownerconsole/internal/live"
	"ownerconsole/internal/orders"
)

type fakeSource struct {
	mu sync.Mutex
	st orders.State
}

func (s *fakeSource) State() orders.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

func (s *fakeSource) set(st orders.State) {
	s.mu.Lock()
	s.st = st
	s.mu.Unlock()
}

type recorder struct {
	mu    sync.Mutex
	ticks []live.Tick
}

func (r *recorder) Broadcast(t live.Tick) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, t)
	return 1
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

func activeState(remaining time.Duration) orders.State {
	return orders.State{
		Active:    true,
		Pending:   2,
		Countdown: orders.Countdown{Active: true, Remaining: remaining, Urgent: remaining <= orders.UrgentWithin},
	}
}

func TestCountdownWorker_PublishesOnlyWhileActive(t *testing.T) {
	src := &fakeSource{}
	rec := &recorder{}
	w := NewCountdownWorker(src, rec)

	w.tick()
	if rec.count() != 0 {
		t.Fatalf("Expected no ticks while inactive, got %d", rec.count())
	}

	src.set(activeState(4*time.Minute + 30*time.Second))
	w.tick()
	w.tick()
	if rec.count() != 2 {
		t.Fatalf("Expected 2 ticks while active, got %d", rec.count())
	}
	got := rec.ticks[0]
	if got.Display != "4:30" || got.Remaining != 270 || !got.Urgent || got.Pending != 2 {
		t.Errorf("Unexpected tick: %+v", got)
	}

	src.set(orders.State{})
	w.tick()
	w.tick()
	if rec.count() != 3 {
		t.Fatalf("Expected one final inactive tick, got %d total", rec.count())
	}
	if rec.ticks[2].Active {
		t.Error("Expected final tick to be inactive")
	}
}

func TestCountdownWorker_StopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	src.set(activeState(10 * time.Minute))
	rec := &recorder{}
	w := NewCountdownWorker(src, rec)
	w.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Expected worker to publish")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected worker to stop after cancel")
	}
}
