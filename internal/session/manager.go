package session

import (
	"context"
	"sync"
	"time"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/catalog"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

const (
	EventStarted   = "started"
	EventTick      = "tick"
	EventAdvanced  = "advanced"
	EventGated     = "gated"
	EventCompleted = "completed"
	EventAbandoned = "abandoned"
)

type Event struct {
	Type string `json:"type"`
	Snapshot
}

// EventSink receives session lifecycle events for delivery to the
// user's connected clients.
type EventSink interface {
	Publish(userID int64, event Event)
}

// CompletionHandler runs the completion side effects for a finished
// session. It must tolerate store failures without returning them:
// persistence problems never unwind the state machine.
type CompletionHandler interface {
	HandleCompletion(ctx context.Context, userID int64, workout *models.Workout)
}

// Manager owns at most one live session per user. All transitions occur
// under its lock in reaction to a discrete event: a timer callback, a
// user command, or a websocket command relayed by the hub.
type Manager struct {
	mu           sync.Mutex
	active       map[int64]*Session
	tickInterval time.Duration
	completion   CompletionHandler
	sink         EventSink
}

func NewManager(completion CompletionHandler, sink EventSink) *Manager {
	return NewManagerWithInterval(completion, sink, time.Second)
}

func NewManagerWithInterval(completion CompletionHandler, sink EventSink, tickInterval time.Duration) *Manager {
	return &Manager{
		active:       make(map[int64]*Session),
		tickInterval: tickInterval,
		completion:   completion,
		sink:         sink,
	}
}

// Start selects a workout for the user, replacing (and abandoning) any
// session already in flight. The entitlement snapshot is taken here and
// re-checked at every advance boundary.
func (m *Manager) Start(userID int64, workout *models.Workout, entitlement bool) Snapshot {
	m.mu.Lock()
	var replaced *Snapshot
	if existing, ok := m.active[userID]; ok {
		m.abandonLocked(existing)
		old := existing.snapshot()
		replaced = &old
	}

	s := newSession(userID, workout, entitlement, NewTimerWithInterval(m.tickInterval))
	m.active[userID] = s

	if !catalog.WorkoutAccessible(workout, entitlement) {
		s.state = StateGated
		snap := s.snapshot()
		m.mu.Unlock()
		m.publishReplaced(userID, replaced)
		m.publish(userID, Event{Type: EventGated, Snapshot: snap})
		return snap
	}

	snap := m.enterExerciseLocked(s)
	m.mu.Unlock()

	m.publishReplaced(userID, replaced)
	if snap.State == StateGated {
		m.publish(userID, Event{Type: EventGated, Snapshot: snap})
	} else {
		m.publish(userID, Event{Type: EventStarted, Snapshot: snap})
	}
	return snap
}

// Advance skips to the next exercise, or completes the session at the
// last one. It is the manual counterpart of the timer's elapsed signal.
func (m *Manager) Advance(userID int64) (Snapshot, error) {
	m.mu.Lock()
	s, ok := m.active[userID]
	if !ok {
		m.mu.Unlock()
		return Snapshot{}, ErrNoActiveSession
	}
	if s.state == StateGated {
		snap := s.snapshot()
		m.mu.Unlock()
		return snap, ErrSessionGated
	}
	return m.advanceLocked(s)
}

// Resume re-evaluates a gated session's current exercise with a fresh
// entitlement snapshot. The exercise restarts from its full duration;
// no mid-countdown state is retained.
func (m *Manager) Resume(userID int64, entitlement bool) (Snapshot, error) {
	m.mu.Lock()
	s, ok := m.active[userID]
	if !ok {
		m.mu.Unlock()
		return Snapshot{}, ErrNoActiveSession
	}
	if s.state != StateGated {
		snap := s.snapshot()
		m.mu.Unlock()
		return snap, ErrSessionNotGated
	}

	s.entitlement = entitlement
	if !catalog.WorkoutAccessible(s.workout, entitlement) {
		snap := s.snapshot()
		m.mu.Unlock()
		m.publish(userID, Event{Type: EventGated, Snapshot: snap})
		return snap, nil
	}

	snap := m.enterExerciseLocked(s)
	m.mu.Unlock()

	if snap.State == StateGated {
		m.publish(userID, Event{Type: EventGated, Snapshot: snap})
	} else {
		m.publish(userID, Event{Type: EventStarted, Snapshot: snap})
	}
	return snap, nil
}

// Abandon discards the user's session without persisting anything.
// Calling it without a live session is a no-op, so it is idempotent.
func (m *Manager) Abandon(userID int64) {
	m.mu.Lock()
	s, ok := m.active[userID]
	if !ok {
		m.mu.Unlock()
		return
	}
	m.abandonLocked(s)
	snap := s.snapshot()
	m.mu.Unlock()

	m.publish(userID, Event{Type: EventAbandoned, Snapshot: snap})
}

// State returns the current snapshot of the user's live session.
func (m *Manager) State(userID int64) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.active[userID]
	if !ok {
		return Snapshot{}, ErrNoActiveSession
	}
	return s.snapshot(), nil
}

// enterExerciseLocked applies the gating check for the session's current
// exercise and, if accessible, arms the countdown. The previous
// countdown is always cancelled first.
func (m *Manager) enterExerciseLocked(s *Session) Snapshot {
	s.timer.Cancel()
	s.generation++

	exercise := s.currentExercise()
	if !catalog.ExerciseAccessible(s.workout, exercise, s.entitlement) {
		s.state = StateGated
		s.remainingSeconds = 0
		return s.snapshot()
	}

	s.state = StateRunning
	s.remainingSeconds = exercise.DurationSeconds

	generation := s.generation
	s.timer.Start(exercise.DurationSeconds,
		func(remaining int) { m.handleTick(s, generation, remaining) },
		func() { m.handleElapsed(s, generation) },
	)
	return s.snapshot()
}

// advanceLocked moves the session forward one exercise. The caller must
// hold the manager lock; it is released before side effects run.
func (m *Manager) advanceLocked(s *Session) (Snapshot, error) {
	s.timer.Cancel()
	s.generation++

	if s.index+1 < len(s.workout.Exercises) {
		s.index++
		snap := m.enterExerciseLocked(s)
		m.mu.Unlock()

		if snap.State == StateGated {
			m.publish(s.userID, Event{Type: EventGated, Snapshot: snap})
		} else {
			m.publish(s.userID, Event{Type: EventAdvanced, Snapshot: snap})
		}
		return snap, nil
	}

	s.state = StateCompleted
	s.remainingSeconds = 0
	fire := !s.completionFired
	s.completionFired = true
	delete(m.active, s.userID)
	snap := s.snapshot()
	m.mu.Unlock()

	if fire {
		m.completion.HandleCompletion(context.Background(), s.userID, s.workout)
	}
	m.publish(s.userID, Event{Type: EventCompleted, Snapshot: snap})
	return snap, nil
}

func (m *Manager) abandonLocked(s *Session) {
	s.timer.Cancel()
	s.generation++
	s.state = StateAbandoned
	delete(m.active, s.userID)
}

// handleTick publishes the remaining time for a live countdown. Ticks
// from a superseded or cancelled countdown are dropped.
func (m *Manager) handleTick(s *Session, generation uint64, remaining int) {
	m.mu.Lock()
	if m.active[s.userID] != s || s.generation != generation || s.state != StateRunning {
		m.mu.Unlock()
		return
	}
	s.remainingSeconds = remaining
	snap := s.snapshot()
	m.mu.Unlock()

	m.publish(s.userID, Event{Type: EventTick, Snapshot: snap})
}

// handleElapsed advances the session when its countdown ran out. A late
// elapsed signal for a session that already moved on is a no-op.
func (m *Manager) handleElapsed(s *Session, generation uint64) {
	m.mu.Lock()
	if m.active[s.userID] != s || s.generation != generation || s.state != StateRunning {
		m.mu.Unlock()
		return
	}
	_, _ = m.advanceLocked(s)
}

// publishReplaced tells a replaced session's clients that it ended
// before any event of its successor reaches them.
func (m *Manager) publishReplaced(userID int64, replaced *Snapshot) {
	if replaced != nil {
		m.publish(userID, Event{Type: EventAbandoned, Snapshot: *replaced})
	}
}

func (m *Manager) publish(userID int64, event Event) {
	if m.sink != nil {
		m.sink.Publish(userID, event)
	}
}
