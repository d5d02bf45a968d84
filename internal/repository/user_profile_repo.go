package repository

import (
	"context"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

const userProfileColumns = `
	id, user_id, name, fitness_level, is_premium,
	streak, total_workouts, total_minutes, created_at, updated_at
`

func (r *UserProfileRepository) Create(ctx context.Context, userID int64, name string) error {
	query := `
		INSERT INTO user_profiles (user_id, name)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(ctx, query, userID, name)
	return err
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT ` + userProfileColumns + `
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.FitnessLevel,
		&profile.IsPremium,
		&profile.Streak,
		&profile.TotalWorkouts,
		&profile.TotalMinutes,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UpdateProfileInput struct {
	Name         *string
	FitnessLevel *string
}

func (r *UserProfileRepository) Update(ctx context.Context, userID int64, input UpdateProfileInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET name = COALESCE($2, name),
		    fitness_level = COALESCE($3, fitness_level),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userProfileColumns
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID, input.Name, input.FitnessLevel).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.FitnessLevel,
		&profile.IsPremium,
		&profile.Streak,
		&profile.TotalWorkouts,
		&profile.TotalMinutes,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// RecordCompletion applies the counter increments for one finished
// workout in a single statement. The streak increment is unconditional:
// calendar continuity is deliberately not checked.
func (r *UserProfileRepository) RecordCompletion(ctx context.Context, userID int64, durationMinutes int) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET total_workouts = total_workouts + 1,
		    total_minutes = total_minutes + $2,
		    streak = streak + 1,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + userProfileColumns
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID, durationMinutes).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.FitnessLevel,
		&profile.IsPremium,
		&profile.Streak,
		&profile.TotalWorkouts,
		&profile.TotalMinutes,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
