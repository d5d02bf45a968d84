package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/catalog"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/models"
)

type entitlementSource interface {
	Entitlement(ctx context.Context, userID int64) bool
}

type CatalogHandler struct {
	catalog  *catalog.Catalog
	profiles entitlementSource
}

func NewCatalogHandler(c *catalog.Catalog, profiles entitlementSource) *CatalogHandler {
	return &CatalogHandler{catalog: c, profiles: profiles}
}

// workoutView augments a catalog entry with whether it is locked for
// the requesting user, so the client can render the paywall without a
// second round trip.
type workoutView struct {
	models.Workout
	Locked bool `json:"locked"`
}

func (h *CatalogHandler) ListWorkouts(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	level := strings.TrimSpace(c.Query("level"))
	if level != "" && level != models.LevelBeginner && level != models.LevelIntermediate && level != models.LevelAdvanced {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "level must be Beginner, Intermediate or Advanced"})
	}

	entitlement := h.profiles.Entitlement(c.Context(), userID)

	workouts := h.catalog.List(level)
	views := make([]workoutView, len(workouts))
	for i := range workouts {
		views[i] = workoutView{
			Workout: workouts[i],
			Locked:  !catalog.WorkoutAccessible(&workouts[i], entitlement),
		}
	}

	return c.JSON(fiber.Map{"workouts": views})
}

func (h *CatalogHandler) GetWorkout(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.catalog.Get(workoutID)
	if err != nil {
		if errors.Is(err, catalog.ErrWorkoutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workout"})
	}

	entitlement := h.profiles.Entitlement(c.Context(), userID)

	return c.JSON(fiber.Map{"workout": workoutView{
		Workout: *workout,
		Locked:  !catalog.WorkoutAccessible(workout, entitlement),
	}})
}
