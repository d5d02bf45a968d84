package services

import (
	"context"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/repository"
)

type profileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	Update(ctx context.Context, userID int64, input repository.UpdateProfileInput) (*models.UserProfile, error)
}

type ProfileService struct {
	profileRepo profileStore
}

func NewProfileService(profileRepo profileStore) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID int64, input repository.UpdateProfileInput) (*models.UserProfile, error) {
	return s.profileRepo.Update(ctx, userID, input)
}

// Entitlement returns the user's premium snapshot for a gating check.
// A missing profile counts as no entitlement rather than an error.
func (s *ProfileService) Entitlement(ctx context.Context, userID int64) bool {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false
	}
	return profile.IsPremium
}
