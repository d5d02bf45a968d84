package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

type HistoryRepository struct {
	db DBTX
}

func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

type InsertHistoryInput struct {
	UserID          int64
	WorkoutTitle    string
	DurationMinutes int
}

// Insert appends one completion record. Rows are never updated or
// deleted afterwards.
func (r *HistoryRepository) Insert(ctx context.Context, input InsertHistoryInput) (*models.WorkoutHistoryItem, error) {
	query := `
		INSERT INTO workout_history (id, user_id, workout_title, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, workout_title, duration_minutes, completed_at
	`
	var item models.WorkoutHistoryItem
	err := r.db.QueryRow(ctx, query, uuid.NewString(), input.UserID, input.WorkoutTitle, input.DurationMinutes).Scan(
		&item.ID,
		&item.UserID,
		&item.WorkoutTitle,
		&item.DurationMinutes,
		&item.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *HistoryRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]models.WorkoutHistoryItem, error) {
	query := `
		SELECT id, user_id, workout_title, duration_minutes, completed_at
		FROM workout_history
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.WorkoutHistoryItem
	for rows.Next() {
		var item models.WorkoutHistoryItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.WorkoutTitle,
			&item.DurationMinutes,
			&item.CompletedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
