package services

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
)

var expDateLayouts = []string{"2006-01-02", "2006-01", "01/06", "01/2006"}

type subscriptionStore interface {
	Upsert(ctx context.Context, input repository.UpsertSubscriptionInput) (*models.Subscription, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Subscription, error)
}

type SubscriptionService struct {
	subscriptionRepo subscriptionStore
}

func NewSubscriptionService(subscriptionRepo subscriptionStore) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo}
}

type PurchaseInput struct {
	UserID        int64
	Cardholder    string
	CardNumber    string
	ExpDate       string
	CVV           string
	PlanPurchased string
}

// Purchase validates the card details and stores the plan. Only the last four
// digits of the card survive; the security code is checked and dropped.
func (s *SubscriptionService) Purchase(ctx context.Context, input PurchaseInput) (*models.Subscription, error) {
	input.Cardholder = strings.TrimSpace(input.Cardholder)
	input.PlanPurchased = strings.TrimSpace(input.PlanPurchased)
	if input.UserID <= 0 || input.Cardholder == "" || input.PlanPurchased == "" {
		return nil, ErrInvalidInput
	}

	number := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, input.CardNumber)
	if len(number) < 12 || len(number) > 19 || !allDigits(number) {
		return nil, ErrInvalidInput
	}
	cvv := strings.TrimSpace(input.CVV)
	if len(cvv) < 3 || len(cvv) > 4 || !allDigits(cvv) {
		return nil, ErrInvalidInput
	}
	expDate, ok := parseExpDate(input.ExpDate)
	if !ok {
		return nil, ErrInvalidInput
	}

	sub, err := s.subscriptionRepo.Upsert(ctx, repository.UpsertSubscriptionInput{
		UserID:        input.UserID,
		Cardholder:    input.Cardholder,
		CardLast4:     number[len(number)-4:],
		ExpDate:       expDate,
		PlanPurchased: input.PlanPurchased,
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) Get(ctx context.Context, userID int64) (*models.Subscription, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	sub, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	return sub, nil
}

func parseExpDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range expDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
