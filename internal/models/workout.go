package models

const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Exercise is an immutable catalog value. IDs are unique within a workout
// and the slice order in Workout.Exercises is the playback order.
type Exercise struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
	Instructions    string `json:"instructions"`
	VideoURL        string `json:"video_url"`
	IsPremium       bool   `json:"is_premium,omitempty"`
}

type Workout struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Duration  string     `json:"duration"`
	Type      string     `json:"type"`
	Level     string     `json:"level"`
	Exercises []Exercise `json:"exercises"`
	IsPremium bool       `json:"is_premium,omitempty"`
}
