package models

import "time"

type UserProfile struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	FitnessLevel  string    `json:"fitness_level"`
	IsPremium     bool      `json:"is_premium"`
	Streak        int       `json:"streak"`
	TotalWorkouts int       `json:"total_workouts"`
	TotalMinutes  int       `json:"total_minutes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
