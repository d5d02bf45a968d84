package models

import "time"

// WorkoutHistoryItem is append-only: one row per completed session,
// never updated or deleted.
type WorkoutHistoryItem struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"user_id"`
	WorkoutTitle    string    `json:"workout_title"`
	DurationMinutes int       `json:"duration_minutes"`
	CompletedAt     time.Time `json:"completed_at"`
}

type UserBadge struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	BadgeName string    `json:"badge_name"`
	EarnedAt  time.Time `json:"earned_at"`
}
