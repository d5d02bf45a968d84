package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

type BadgeRepository struct {
	db DBTX
}

func NewBadgeRepository(db DBTX) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// Award stores a badge for the user. Awarding the same badge twice is a
// no-op thanks to the unique constraint on (user_id, badge_name).
func (r *BadgeRepository) Award(ctx context.Context, userID int64, badgeName string) error {
	query := `
		INSERT INTO user_badges (id, user_id, badge_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, badge_name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, uuid.NewString(), userID, badgeName)
	return err
}

func (r *BadgeRepository) ListByUserID(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	query := `
		SELECT id, user_id, badge_name, earned_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY earned_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []models.UserBadge
	for rows.Next() {
		var badge models.UserBadge
		if err := rows.Scan(&badge.ID, &badge.UserID, &badge.BadgeName, &badge.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, badge)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return badges, nil
}
