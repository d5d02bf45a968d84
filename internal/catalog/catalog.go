// Package catalog holds the static workout library and the premium
// gating policy. Definitions are loaded once and never mutated; there
// is no persistence contract beyond process lifetime.
package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Catalog struct {
	workouts []models.Workout
}

func New() *Catalog {
	return &Catalog{workouts: defaultWorkouts}
}

// List returns the workouts matching level, or all workouts when level
// is empty.
func (c *Catalog) List(level string) []models.Workout {
	if level == "" {
		result := make([]models.Workout, len(c.workouts))
		copy(result, c.workouts)
		return result
	}

	var result []models.Workout
	for _, w := range c.workouts {
		if w.Level == level {
			result = append(result, w)
		}
	}
	return result
}

func (c *Catalog) Get(id int) (*models.Workout, error) {
	for i := range c.workouts {
		if c.workouts[i].ID == id {
			workout := c.workouts[i]
			return &workout, nil
		}
	}
	return nil, ErrWorkoutNotFound
}

func (c *Catalog) Levels() []string {
	return []string{models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced}
}

// WorkoutAccessible reports whether the workout may be started at all.
// Gating is a state, not an error: callers translate false into a Gated
// session rather than a failure.
func WorkoutAccessible(w *models.Workout, entitlement bool) bool {
	return entitlement || !w.IsPremium
}

// ExerciseAccessible applies both the workout-level and exercise-level
// premium flags. A premium workout gates every exercise it contains,
// regardless of the per-exercise flag.
func ExerciseAccessible(w *models.Workout, exercise *models.Exercise, entitlement bool) bool {
	if entitlement {
		return true
	}
	return !w.IsPremium && !exercise.IsPremium
}

// DurationMinutes parses the leading integer of a display duration such
// as "15 min". Malformed values count as zero minutes.
func DurationMinutes(w *models.Workout) int {
	fields := strings.Fields(w.Duration)
	if len(fields) == 0 {
		return 0
	}
	minutes, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return minutes
}
