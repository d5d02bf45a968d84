package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/repository"
)

type profileReader interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID int64, input repository.UpdateProfileInput) (*models.UserProfile, error)
}

type ProfileHandler struct {
	service profileReader
}

func NewProfileHandler(service profileReader) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.service.GetProfile(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

type updateProfileRequest struct {
	Name         *string `json:"name"`
	FitnessLevel *string `json:"fitness_level"`
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name must not be empty"})
	}
	if req.FitnessLevel != nil {
		level := strings.TrimSpace(*req.FitnessLevel)
		if level != models.LevelBeginner && level != models.LevelIntermediate && level != models.LevelAdvanced {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "fitness_level must be Beginner, Intermediate or Advanced"})
		}
		req.FitnessLevel = &level
	}

	profile, err := h.service.UpdateProfile(c.Context(), userID, repository.UpdateProfileInput{
		Name:         req.Name,
		FitnessLevel: req.FitnessLevel,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}
