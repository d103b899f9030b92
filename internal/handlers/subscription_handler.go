package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type subscriptionApplicationService interface {
	Purchase(ctx context.Context, input services.PurchaseInput) (*models.Subscription, error)
	Get(ctx context.Context, userID int64) (*models.Subscription, error)
}

type SubscriptionHandler struct {
	service subscriptionApplicationService
}

func NewSubscriptionHandler(service subscriptionApplicationService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type purchaseRequest struct {
	UserID        flexID `json:"user_id"`
	Cardholder    string `json:"cardholder"`
	CardNumber    string `json:"card_number"`
	ExpDate       string `json:"exp_date"`
	CVV           string `json:"cvv"`
	PlanPurchased string `json:"plan_purchased"`
}

func (r purchaseRequest) complete() bool {
	for _, v := range []string{r.Cardholder, r.CardNumber, r.ExpDate, r.CVV, r.PlanPurchased} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return r.UserID > 0
}

func (h *SubscriptionHandler) Purchase(c *fiber.Ctx) error {
	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !req.complete() {
		return badRequest(c, "All fields are required")
	}
	if ok, err := requireCaller(c, int64(req.UserID)); !ok {
		return err
	}

	sub, err := h.service.Purchase(c.UserContext(), services.PurchaseInput{
		UserID:        int64(req.UserID),
		Cardholder:    req.Cardholder,
		CardNumber:    req.CardNumber,
		ExpDate:       req.ExpDate,
		CVV:           req.CVV,
		PlanPurchased: req.PlanPurchased,
	})
	if err != nil {
		return mapSubscriptionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Subscription created successfully",
		"subscription": fiber.Map{
			"subscription_id":  sub.ID,
			"user_id":          sub.UserID,
			"plan_purchased":   sub.PlanPurchased,
			"date_of_purchase": sub.DateOfPurchase,
		},
	})
}

func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return badRequest(c, "Invalid user id")
	}
	if ok, err := requireCaller(c, userID); !ok {
		return err
	}

	sub, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return mapSubscriptionError(c, err)
	}
	return c.JSON(sub)
}

func mapSubscriptionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return badRequest(c, "Invalid card details")
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subscription not found"})
	default:
		return serverError(c, "Failed to process subscription", err)
	}
}
