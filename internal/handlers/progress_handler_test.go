package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/services"
)

type stubProgressService struct {
	view *services.ProgressView
	err  error
}

func (s *stubProgressService) GetProgress(_ context.Context, _ int64) (*services.ProgressView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func TestGetProgressReturnsView(t *testing.T) {
	service := &stubProgressService{
		view: &services.ProgressView{
			Profile: &models.UserProfile{UserID: 42, Streak: 3, TotalWorkouts: 5, TotalMinutes: 75},
			History: []models.WorkoutHistoryItem{{WorkoutTitle: "Workout A: Full Body", DurationMinutes: 15}},
			Badges:  []models.UserBadge{{BadgeName: services.BadgeFirstWorkout}},
		},
	}
	handler := NewProgressHandler(service)

	app := authedApp()
	app.Get("/api/v1/users/progress", handler.GetProgress)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/progress", nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var view services.ProgressView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if view.Profile == nil || view.Profile.TotalWorkouts != 5 {
		t.Errorf("Expected profile with 5 workouts, got %+v", view.Profile)
	}
	if len(view.History) != 1 || len(view.Badges) != 1 {
		t.Errorf("Expected one history item and one badge")
	}
}

func TestGetProgressWithoutProfileIsNotFound(t *testing.T) {
	handler := NewProgressHandler(&stubProgressService{err: pgx.ErrNoRows})

	app := authedApp()
	app.Get("/api/v1/users/progress", handler.GetProgress)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/progress", nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}
