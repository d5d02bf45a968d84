package services

import (
	"context"
	"log"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/catalog"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/repository"
)

const (
	BadgeFirstWorkout = "First Workout"
	BadgeTenWorkouts  = "10 Workouts"
	BadgeWeekStreak   = "7-Day Streak"
)

type historyStore interface {
	Insert(ctx context.Context, input repository.InsertHistoryInput) (*models.WorkoutHistoryItem, error)
	ListByUserID(ctx context.Context, userID int64, limit int) ([]models.WorkoutHistoryItem, error)
}

type profileStatsStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	RecordCompletion(ctx context.Context, userID int64, durationMinutes int) (*models.UserProfile, error)
}

type badgeStore interface {
	Award(ctx context.Context, userID int64, badgeName string) error
	ListByUserID(ctx context.Context, userID int64) ([]models.UserBadge, error)
}

// ProgressService persists workout outcomes and serves the progress
// view. Completion writes are best-effort: a store failure is logged
// and control returns to the caller, whose session has already
// completed either way.
type ProgressService struct {
	historyRepo  historyStore
	profileRepo  profileStatsStore
	badgeRepo    badgeStore
	historyLimit int
}

func NewProgressService(
	historyRepo historyStore,
	profileRepo profileStatsStore,
	badgeRepo badgeStore,
	historyLimit int,
) *ProgressService {
	return &ProgressService{
		historyRepo:  historyRepo,
		profileRepo:  profileRepo,
		badgeRepo:    badgeRepo,
		historyLimit: historyLimit,
	}
}

// HandleCompletion runs the completion side effects in order: append
// the history record, bump the profile counters, award any milestone
// badges, then re-read the profile so the caller sees the stored
// values. Failures do not stop later steps and are never returned.
func (s *ProgressService) HandleCompletion(ctx context.Context, userID int64, workout *models.Workout) {
	minutes := catalog.DurationMinutes(workout)

	if _, err := s.historyRepo.Insert(ctx, repository.InsertHistoryInput{
		UserID:          userID,
		WorkoutTitle:    workout.Title,
		DurationMinutes: minutes,
	}); err != nil {
		log.Printf("progress: insert history for user %d: %v", userID, err)
	}

	profile, err := s.profileRepo.RecordCompletion(ctx, userID, minutes)
	if err != nil {
		log.Printf("progress: record completion for user %d: %v", userID, err)
		return
	}

	s.awardMilestones(ctx, userID, profile)
}

func (s *ProgressService) awardMilestones(ctx context.Context, userID int64, profile *models.UserProfile) {
	milestones := []struct {
		badge   string
		reached bool
	}{
		{BadgeFirstWorkout, profile.TotalWorkouts >= 1},
		{BadgeTenWorkouts, profile.TotalWorkouts >= 10},
		{BadgeWeekStreak, profile.Streak >= 7},
	}

	for _, m := range milestones {
		if !m.reached {
			continue
		}
		if err := s.badgeRepo.Award(ctx, userID, m.badge); err != nil {
			log.Printf("progress: award badge %q for user %d: %v", m.badge, userID, err)
		}
	}
}

type ProgressView struct {
	Profile *models.UserProfile         `json:"profile"`
	History []models.WorkoutHistoryItem `json:"history"`
	Badges  []models.UserBadge          `json:"badges"`
}

// GetProgress re-reads profile, history and badges from the store. It
// is the read-after-write used by the progress screen right after a
// completion.
func (s *ProgressService) GetProgress(ctx context.Context, userID int64) (*ProgressView, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.ListByUserID(ctx, userID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	badges, err := s.badgeRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProgressView{
		Profile: profile,
		History: history,
		Badges:  badges,
	}, nil
}
