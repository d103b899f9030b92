package services

import (
	"context"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type intakeStore interface {
	ListByProfile(ctx context.Context, profileID int64) ([]models.Intake, error)
	GetByID(ctx context.Context, id int64) (*models.Intake, error)
	Delete(ctx context.Context, id int64) error
}

type IntakeService struct {
	db          *pgxpool.Pool
	profileRepo profileReader
	intakeRepo  intakeStore
}

func NewIntakeService(db *pgxpool.Pool, profileRepo profileReader, intakeRepo intakeStore) *IntakeService {
	return &IntakeService{db: db, profileRepo: profileRepo, intakeRepo: intakeRepo}
}

type IntakeItem struct {
	NutritionID int64
	Quantity    float64
}

func (s *IntakeService) List(ctx context.Context, userID int64) ([]models.Intake, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return s.intakeRepo.ListByProfile(ctx, profile.ID)
}

// Create logs a meal. All items are written in one transaction and an unknown
// nutrition id aborts the whole meal.
func (s *IntakeService) Create(ctx context.Context, userID int64, typeMeal string, items []IntakeItem) ([]models.Intake, error) {
	typeMeal = strings.TrimSpace(typeMeal)
	if userID <= 0 || typeMeal == "" || len(items) == 0 {
		return nil, ErrInvalidInput
	}
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it.NutritionID <= 0 || it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
		ids = append(ids, it.NutritionID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	profile, err := repository.NewProfileRepository(tx).GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}

	existing, err := repository.NewNutritionRepository(tx).ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			return nil, ErrNutritionNotFound
		}
	}

	intakeRepo := repository.NewIntakeRepository(tx)
	created := make([]models.Intake, 0, len(items))
	for _, it := range items {
		intake, err := intakeRepo.Create(ctx, repository.CreateIntakeInput{
			ProfileID:   profile.ID,
			NutritionID: it.NutritionID,
			Quantity:    it.Quantity,
			TypeMeal:    typeMeal,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, *intake)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns ErrForbidden when the intake belongs to someone other than actorID.
func (s *IntakeService) Get(ctx context.Context, actorID, id int64) (*models.Intake, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	intake, err := s.intakeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	if err := s.checkOwner(ctx, actorID, intake); err != nil {
		return nil, err
	}
	return intake, nil
}

func (s *IntakeService) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.Get(ctx, actorID, id); err != nil {
		return err
	}
	return notFound(s.intakeRepo.Delete(ctx, id), ErrNotFound)
}

func (s *IntakeService) checkOwner(ctx context.Context, actorID int64, intake *models.Intake) error {
	profile, err := s.profileRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return notFound(err, ErrForbidden)
	}
	if profile.ID != intake.ProfileID {
		return ErrForbidden
	}
	return nil
}
