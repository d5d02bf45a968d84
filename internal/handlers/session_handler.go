package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/catalog"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/session"
)

type SessionHandler struct {
	manager  *session.Manager
	catalog  *catalog.Catalog
	profiles entitlementSource
}

func NewSessionHandler(manager *session.Manager, c *catalog.Catalog, profiles entitlementSource) *SessionHandler {
	return &SessionHandler{manager: manager, catalog: c, profiles: profiles}
}

type startSessionRequest struct {
	WorkoutID int `json:"workout_id"`
}

func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req startSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	workout, err := h.catalog.Get(req.WorkoutID)
	if err != nil {
		if errors.Is(err, catalog.ErrWorkoutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workout"})
	}

	entitlement := h.profiles.Entitlement(c.Context(), userID)
	snap := h.manager.Start(userID, workout, entitlement)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": snap})
}

func (h *SessionHandler) AdvanceSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	snap, err := h.manager.Advance(userID)
	if err != nil {
		return mapSessionError(c, snap, err)
	}

	return c.JSON(fiber.Map{"session": snap})
}

// ResumeSession re-checks the gated exercise with a fresh entitlement
// snapshot, typically after the user upgraded to premium.
func (h *SessionHandler) ResumeSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entitlement := h.profiles.Entitlement(c.Context(), userID)
	snap, err := h.manager.Resume(userID, entitlement)
	if err != nil {
		return mapSessionError(c, snap, err)
	}

	return c.JSON(fiber.Map{"session": snap})
}

func (h *SessionHandler) AbandonSession(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	h.manager.Abandon(userID)

	return c.JSON(fiber.Map{"status": "abandoned"})
}

func (h *SessionHandler) GetSessionState(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	snap, err := h.manager.State(userID)
	if err != nil {
		return mapSessionError(c, snap, err)
	}

	return c.JSON(fiber.Map{"session": snap})
}

func mapSessionError(c *fiber.Ctx, snap session.Snapshot, err error) error {
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active session"})
	case errors.Is(err, session.ErrSessionGated):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "Session is gated: premium entitlement required",
			"session": snap,
		})
	case errors.Is(err, session.ErrSessionNotGated):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "Session is not waiting on an upgrade",
			"session": snap,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Session operation failed"})
	}
}
