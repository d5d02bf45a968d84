package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hhrukbfu-tech/treino-em-casa/internal/config"
	"github.com/hhrukbfu-tech/treino-em-casa/internal/services"
)

type BillingHandler struct {
	billing services.BillingService
	cfg     *config.Config
}

func NewBillingHandler(billing services.BillingService, cfg *config.Config) *BillingHandler {
	return &BillingHandler{billing: billing, cfg: cfg}
}

// ListPlans exposes the subscription plans so the paywall screen can
// render them without hardcoding price IDs.
func (h *BillingHandler) ListPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"plans": []fiber.Map{
			{
				"id":            "monthly",
				"name":          "Monthly",
				"price_display": "R$ 29,90",
				"interval":      "month",
				"price_id":      h.cfg.StripeMonthlyPrice,
			},
			{
				"id":            "annual",
				"name":          "Annual",
				"price_display": "R$ 179,90",
				"interval":      "year",
				"price_id":      h.cfg.StripeAnnualPrice,
			},
		},
		"enabled": h.cfg.BillingEnabled(),
	})
}

type checkoutRequest struct {
	PriceID string `json:"price_id"`
}

func (h *BillingHandler) CreateCheckout(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	priceID := strings.TrimSpace(req.PriceID)
	if priceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "price_id is required"})
	}
	if priceID != h.cfg.StripeMonthlyPrice && priceID != h.cfg.StripeAnnualPrice {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown price_id"})
	}

	checkout, err := h.billing.CreateCheckoutSession(c.Context(), priceID, userID)
	if err != nil {
		return mapBillingError(c, err)
	}

	return c.JSON(fiber.Map{"checkout": checkout})
}

type portalRequest struct {
	CustomerID string `json:"customer_id"`
}

func (h *BillingHandler) CreatePortal(c *fiber.Ctx) error {
	if _, err := parseUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req portalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if strings.TrimSpace(req.CustomerID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "customer_id is required"})
	}

	portal, err := h.billing.CreatePortalSession(c.Context(), req.CustomerID)
	if err != nil {
		return mapBillingError(c, err)
	}

	return c.JSON(fiber.Map{"portal": portal})
}

// mapBillingError surfaces payment failures directly: they are
// actionable by the user and never retried here.
func mapBillingError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrBillingNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"error": "Payments are not available on this deployment"})
	}
	log.Printf("billing: %v", err)
	return c.Status(fiber.StatusBadGateway).
		JSON(fiber.Map{"error": "Payment processing failed. Please try again."})
}
