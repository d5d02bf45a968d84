package session

import (
	"sync"
	"testing"
	"time"
)

func TestTimerCountsDownAndFiresElapsedOnce(t *testing.T) {
	timer := NewTimerWithInterval(5 * time.Millisecond)

	var mu sync.Mutex
	var ticks []int
	elapsed := make(chan struct{}, 2)

	timer.Start(3,
		func(remaining int) {
			mu.Lock()
			ticks = append(ticks, remaining)
			mu.Unlock()
		},
		func() { elapsed <- struct{}{} },
	)

	select {
	case <-elapsed:
	case <-time.After(time.Second):
		t.Fatal("Expected elapsed to fire")
	}

	select {
	case <-elapsed:
		t.Fatal("Expected elapsed to fire only once")
	case <-time.After(50 * time.Millisecond):
	}

	mu.Lock()
	defer mu.Unlock()
	if len(ticks) != 2 || ticks[0] != 2 || ticks[1] != 1 {
		t.Errorf("Expected ticks [2 1], got %v", ticks)
	}
}

func TestTimerCancelStopsCountdown(t *testing.T) {
	timer := NewTimerWithInterval(5 * time.Millisecond)

	elapsed := make(chan struct{}, 1)
	timer.Start(2, nil, func() { elapsed <- struct{}{} })
	timer.Cancel()

	select {
	case <-elapsed:
		t.Fatal("Expected no elapsed after cancel")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimerCancelIsIdempotent(t *testing.T) {
	timer := NewTimerWithInterval(5 * time.Millisecond)

	timer.Start(2, nil, func() {})
	timer.Cancel()
	timer.Cancel()

	// Cancel after natural expiry must also be safe.
	elapsed := make(chan struct{}, 1)
	timer.Start(1, nil, func() { elapsed <- struct{}{} })
	select {
	case <-elapsed:
	case <-time.After(time.Second):
		t.Fatal("Expected elapsed to fire")
	}
	timer.Cancel()
}

func TestTimerRestartCancelsPreviousCountdown(t *testing.T) {
	timer := NewTimerWithInterval(5 * time.Millisecond)

	firstElapsed := make(chan struct{}, 1)
	secondElapsed := make(chan struct{}, 1)

	timer.Start(100, nil, func() { firstElapsed <- struct{}{} })
	timer.Start(2, nil, func() { secondElapsed <- struct{}{} })

	select {
	case <-secondElapsed:
	case <-time.After(time.Second):
		t.Fatal("Expected second countdown to elapse")
	}

	select {
	case <-firstElapsed:
		t.Fatal("Expected first countdown to be cancelled")
	case <-time.After(50 * time.Millisecond):
	}
}
