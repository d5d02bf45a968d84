package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

type stubCompletionHandler struct {
	mu       sync.Mutex
	calls    int
	workouts []string
	done     chan struct{}
}

func newStubCompletionHandler() *stubCompletionHandler {
	return &stubCompletionHandler{done: make(chan struct{}, 4)}
}

func (h *stubCompletionHandler) HandleCompletion(_ context.Context, _ int64, workout *models.Workout) {
	h.mu.Lock()
	h.calls++
	h.workouts = append(h.workouts, workout.Title)
	h.mu.Unlock()
	h.done <- struct{}{}
}

func (h *stubCompletionHandler) callCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Publish(_ int64, event Event) {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

func (s *recordingSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]string, len(s.events))
	for i, e := range s.events {
		types[i] = e.Type
	}
	return types
}

func freeWorkout() *models.Workout {
	return &models.Workout{
		ID:       1,
		Title:    "Workout A: Full Body",
		Duration: "15 min",
		Level:    models.LevelBeginner,
		Exercises: []models.Exercise{
			{ID: 1, Name: "Squats", DurationSeconds: 45},
			{ID: 2, Name: "Push-Ups", DurationSeconds: 30},
			{ID: 3, Name: "Plank", DurationSeconds: 30},
		},
	}
}

func premiumWorkout() *models.Workout {
	w := freeWorkout()
	w.ID = 2
	w.Title = "Workout B: HIIT"
	w.IsPremium = true
	return w
}

func mixedWorkout() *models.Workout {
	w := freeWorkout()
	w.Exercises[1].IsPremium = true
	return w
}

func TestStartGatesPremiumWorkoutWithoutEntitlement(t *testing.T) {
	handler := newStubCompletionHandler()
	manager := NewManager(handler, nil)

	snap := manager.Start(7, premiumWorkout(), false)
	if snap.State != StateGated {
		t.Fatalf("Expected gated state, got %s", snap.State)
	}
	if snap.ExerciseIndex != 0 {
		t.Errorf("Expected index 0, got %d", snap.ExerciseIndex)
	}

	if _, err := manager.Advance(7); !errors.Is(err, ErrSessionGated) {
		t.Errorf("Expected ErrSessionGated, got %v", err)
	}
	if handler.callCount() != 0 {
		t.Errorf("Expected no completion for gated session")
	}
}

func TestStartRunsAccessibleWorkoutAtFirstExercise(t *testing.T) {
	handler := newStubCompletionHandler()
	manager := NewManager(handler, nil)

	snap := manager.Start(7, premiumWorkout(), true)
	if snap.State != StateRunning {
		t.Fatalf("Expected running state, got %s", snap.State)
	}
	if snap.ExerciseIndex != 0 {
		t.Errorf("Expected index 0, got %d", snap.ExerciseIndex)
	}
	if snap.RemainingSeconds != 45 {
		t.Errorf("Expected full first-exercise duration, got %d", snap.RemainingSeconds)
	}
	manager.Abandon(7)
}

func TestAdvanceWalksExercisesAndCompletesOnce(t *testing.T) {
	handler := newStubCompletionHandler()
	sink := &recordingSink{}
	manager := NewManager(handler, sink)

	manager.Start(7, freeWorkout(), false)

	snap, err := manager.Advance(7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snap.ExerciseIndex != 1 || snap.State != StateRunning {
		t.Fatalf("Expected running at index 1, got %s at %d", snap.State, snap.ExerciseIndex)
	}
	if snap.RemainingSeconds != 30 {
		t.Errorf("Expected countdown reset to 30, got %d", snap.RemainingSeconds)
	}

	if _, err := manager.Advance(7); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	snap, err = manager.Advance(7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snap.State != StateCompleted {
		t.Fatalf("Expected completed state, got %s", snap.State)
	}

	if handler.callCount() != 1 {
		t.Errorf("Expected exactly one completion, got %d", handler.callCount())
	}

	// The session is discarded on completion: further operations fail loudly.
	if _, err := manager.Advance(7); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession after completion, got %v", err)
	}
	if _, err := manager.State(7); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession after completion, got %v", err)
	}

	types := sink.types()
	expected := []string{"started", "advanced", "advanced", "completed"}
	if len(types) != len(expected) {
		t.Fatalf("Expected events %v, got %v", expected, types)
	}
	for i := range expected {
		if types[i] != expected[i] {
			t.Fatalf("Expected events %v, got %v", expected, types)
		}
	}
}

func TestAdvanceGatesPremiumExerciseMidWorkout(t *testing.T) {
	handler := newStubCompletionHandler()
	manager := NewManager(handler, nil)

	snap := manager.Start(7, mixedWorkout(), false)
	if snap.State != StateRunning {
		t.Fatalf("Expected running state, got %s", snap.State)
	}

	snap, err := manager.Advance(7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snap.State != StateGated || snap.ExerciseIndex != 1 {
		t.Fatalf("Expected gated at index 1, got %s at %d", snap.State, snap.ExerciseIndex)
	}

	if _, err := manager.Advance(7); !errors.Is(err, ErrSessionGated) {
		t.Errorf("Expected ErrSessionGated, got %v", err)
	}
}

func TestResumeRestartsGatedExerciseFromTheTop(t *testing.T) {
	handler := newStubCompletionHandler()
	manager := NewManager(handler, nil)

	manager.Start(7, mixedWorkout(), false)
	if _, err := manager.Advance(7); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Still gated without entitlement.
	snap, err := manager.Resume(7, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snap.State != StateGated {
		t.Fatalf("Expected still gated, got %s", snap.State)
	}

	snap, err = manager.Resume(7, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if snap.State != StateRunning || snap.ExerciseIndex != 1 {
		t.Fatalf("Expected running at index 1, got %s at %d", snap.State, snap.ExerciseIndex)
	}
	if snap.RemainingSeconds != 30 {
		t.Errorf("Expected full exercise duration on re-entry, got %d", snap.RemainingSeconds)
	}

	if _, err := manager.Resume(7, true); !errors.Is(err, ErrSessionNotGated) {
		t.Errorf("Expected ErrSessionNotGated resuming a running session, got %v", err)
	}
	manager.Abandon(7)
}

func TestAbandonIsIdempotentAndSkipsCompletion(t *testing.T) {
	handler := newStubCompletionHandler()
	sink := &recordingSink{}
	manager := NewManager(handler, sink)

	manager.Start(7, freeWorkout(), false)
	manager.Abandon(7)
	manager.Abandon(7)

	if handler.callCount() != 0 {
		t.Errorf("Expected no completion after abandonment")
	}
	if _, err := manager.Advance(7); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected ErrNoActiveSession, got %v", err)
	}

	types := sink.types()
	expected := []string{"started", "abandoned"}
	if len(types) != len(expected) {
		t.Fatalf("Expected events %v, got %v", expected, types)
	}
}

func TestStartReplacesExistingSession(t *testing.T) {
	handler := newStubCompletionHandler()
	sink := &recordingSink{}
	manager := NewManager(handler, sink)

	first := manager.Start(7, freeWorkout(), false)
	snap := manager.Start(7, mixedWorkout(), false)
	if snap.ExerciseIndex != 0 || snap.State != StateRunning {
		t.Fatalf("Expected fresh session at index 0, got %s at %d", snap.State, snap.ExerciseIndex)
	}

	state, err := manager.State(7)
	if err != nil {
		t.Fatalf("Expected active session, got %v", err)
	}
	if state.SessionID != snap.SessionID {
		t.Errorf("Expected replacement session to be the active one")
	}
	if handler.callCount() != 0 {
		t.Errorf("Expected no completion when replacing a session")
	}

	// The replaced session announces its end before the new one starts.
	types := sink.types()
	expected := []string{"started", "abandoned", "started"}
	if len(types) != len(expected) {
		t.Fatalf("Expected events %v, got %v", expected, types)
	}
	for i := range expected {
		if types[i] != expected[i] {
			t.Fatalf("Expected events %v, got %v", expected, types)
		}
	}
	sink.mu.Lock()
	replacedEvent := sink.events[1]
	sink.mu.Unlock()
	if replacedEvent.SessionID != first.SessionID {
		t.Errorf("Expected abandoned event for the replaced session")
	}
	if replacedEvent.State != StateAbandoned {
		t.Errorf("Expected abandoned state in event, got %s", replacedEvent.State)
	}
	manager.Abandon(7)
}

func TestTimerDrivenRunCompletesWorkout(t *testing.T) {
	handler := newStubCompletionHandler()
	sink := &recordingSink{}
	manager := NewManagerWithInterval(handler, sink, 5*time.Millisecond)

	workout := &models.Workout{
		ID:       1,
		Title:    "Short",
		Duration: "1 min",
		Exercises: []models.Exercise{
			{ID: 1, Name: "First", DurationSeconds: 1},
			{ID: 2, Name: "Second", DurationSeconds: 1},
		},
	}

	manager.Start(7, workout, false)

	select {
	case <-handler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected timer-driven completion")
	}

	if handler.callCount() != 1 {
		t.Errorf("Expected exactly one completion, got %d", handler.callCount())
	}
	if _, err := manager.State(7); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Expected session to be discarded, got %v", err)
	}

	types := sink.types()
	if len(types) == 0 || types[len(types)-1] != EventCompleted {
		t.Errorf("Expected final completed event, got %v", types)
	}
}

func TestLateTimerCallbackAfterAbandonIsNoOp(t *testing.T) {
	handler := newStubCompletionHandler()
	sink := &recordingSink{}
	manager := NewManagerWithInterval(handler, sink, 5*time.Millisecond)

	workout := &models.Workout{
		ID:        1,
		Title:     "Short",
		Exercises: []models.Exercise{{ID: 1, Name: "Only", DurationSeconds: 2}},
	}

	manager.Start(7, workout, false)
	manager.Abandon(7)

	select {
	case <-handler.done:
		t.Fatal("Expected no completion after abandonment")
	case <-time.After(100 * time.Millisecond):
	}

	// Nothing may be published once the session is gone.
	types := sink.types()
	abandonedAt := -1
	for i, eventType := range types {
		if eventType == EventAbandoned {
			abandonedAt = i
		}
	}
	if abandonedAt == -1 {
		t.Fatalf("Expected abandoned event, got %v", types)
	}
	if abandonedAt != len(types)-1 {
		t.Errorf("Expected abandoned to be the final event, got %v", types)
	}
}
