package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/repository"
)

type stubProfileService struct {
	profile   *models.UserProfile
	err       error
	lastInput repository.UpdateProfileInput
}

func (s *stubProfileService) GetProfile(_ context.Context, _ int64) (*models.UserProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func (s *stubProfileService) UpdateProfile(_ context.Context, _ int64, input repository.UpdateProfileInput) (*models.UserProfile, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func newProfileApp(service *stubProfileService) *fiber.App {
	handler := NewProfileHandler(service)
	app := authedApp()
	app.Get("/api/v1/users/profile", handler.GetProfile)
	app.Put("/api/v1/users/profile", handler.UpdateProfile)
	return app
}

func TestGetProfileReturnsProfile(t *testing.T) {
	service := &stubProfileService{
		profile: &models.UserProfile{UserID: 42, Name: "Maria", FitnessLevel: models.LevelBeginner},
	}
	app := newProfileApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Profile models.UserProfile `json:"profile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Profile.Name != "Maria" {
		t.Errorf("Expected profile name Maria, got %s", body.Profile.Name)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	app := newProfileApp(&stubProfileService{err: pgx.ErrNoRows})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateProfileForwardsPartialInput(t *testing.T) {
	service := &stubProfileService{
		profile: &models.UserProfile{UserID: 42, Name: "Maria", FitnessLevel: models.LevelIntermediate},
	}
	app := newProfileApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile",
		strings.NewReader(`{"fitness_level": "Intermediate"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	if service.lastInput.Name != nil {
		t.Errorf("Expected name to be left unset")
	}
	if service.lastInput.FitnessLevel == nil || *service.lastInput.FitnessLevel != models.LevelIntermediate {
		t.Errorf("Expected fitness level Intermediate, got %v", service.lastInput.FitnessLevel)
	}
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	app := newProfileApp(&stubProfileService{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", strings.NewReader(`{"name": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateProfileRejectsUnknownFitnessLevel(t *testing.T) {
	app := newProfileApp(&stubProfileService{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", strings.NewReader(`{"fitness_level": "Expert"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}
