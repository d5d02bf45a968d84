// Package session implements the guided-workout playback core: a
// per-exercise countdown timer, the session state machine, and the
// manager that owns at most one live session per user.
package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

type State string

const (
	StateRunning   State = "running"
	StateGated     State = "gated"
	StateCompleted State = "completed"
	StateAbandoned State = "abandoned"
)

var (
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionNotGated = errors.New("session is not gated")
	ErrSessionGated    = errors.New("session is gated")
)

// Session is the ephemeral run-through of one workout. It is owned by
// the Manager, mutated only under its lock, and discarded on completion
// or abandonment. It is never persisted.
type Session struct {
	id          string
	userID      int64
	workout     *models.Workout
	entitlement bool

	state            State
	index            int
	remainingSeconds int

	timer *Timer
	// generation invalidates callbacks from a superseded or cancelled
	// countdown: a late tick whose generation no longer matches is a no-op.
	generation uint64

	completionFired bool
}

func newSession(userID int64, workout *models.Workout, entitlement bool, timer *Timer) *Session {
	return &Session{
		id:          uuid.NewString(),
		userID:      userID,
		workout:     workout,
		entitlement: entitlement,
		timer:       timer,
	}
}

// Snapshot is the externally visible view of a session, safe to hand to
// handlers and the event hub after the manager lock is released.
type Snapshot struct {
	SessionID        string           `json:"session_id"`
	WorkoutID        int              `json:"workout_id"`
	WorkoutTitle     string           `json:"workout_title"`
	State            State            `json:"state"`
	ExerciseIndex    int              `json:"exercise_index"`
	TotalExercises   int              `json:"total_exercises"`
	RemainingSeconds int              `json:"remaining_seconds"`
	Exercise         *models.Exercise `json:"exercise,omitempty"`
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		SessionID:        s.id,
		WorkoutID:        s.workout.ID,
		WorkoutTitle:     s.workout.Title,
		State:            s.state,
		ExerciseIndex:    s.index,
		TotalExercises:   len(s.workout.Exercises),
		RemainingSeconds: s.remainingSeconds,
	}
	if s.state == StateRunning || s.state == StateGated {
		exercise := s.workout.Exercises[s.index]
		snap.Exercise = &exercise
	}
	return snap
}

func (s *Session) currentExercise() *models.Exercise {
	return &s.workout.Exercises[s.index]
}
