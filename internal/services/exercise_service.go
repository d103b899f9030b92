package services

import (
	"context"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/repository"
)

const (
	DefaultExercisePageLimit = 20
	allBodyParts             = "All"
)

type exerciseCatalog interface {
	List(ctx context.Context, filter repository.ExerciseFilter) ([]models.Exercise, int, error)
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
}

type ExerciseService struct {
	exerciseRepo exerciseCatalog
}

func NewExerciseService(exerciseRepo exerciseCatalog) *ExerciseService {
	return &ExerciseService{exerciseRepo: exerciseRepo}
}

type ListExercisesInput struct {
	Page     int
	Limit    int
	BodyPart string
	Search   string
}

func (s *ExerciseService) List(ctx context.Context, input ListExercisesInput) ([]models.Exercise, models.CatalogPagination, error) {
	if input.Page == 0 {
		input.Page = 1
	}
	if input.Limit == 0 {
		input.Limit = DefaultExercisePageLimit
	}
	if input.Page < 0 || input.Limit < 0 {
		return nil, models.CatalogPagination{}, ErrInvalidInput
	}

	bodyPart := strings.TrimSpace(input.BodyPart)
	if strings.EqualFold(bodyPart, allBodyParts) {
		bodyPart = ""
	}

	exercises, total, err := s.exerciseRepo.List(ctx, repository.ExerciseFilter{
		BodyPart: bodyPart,
		Search:   strings.TrimSpace(input.Search),
		Limit:    input.Limit,
		Offset:   (input.Page - 1) * input.Limit,
	})
	if err != nil {
		return nil, models.CatalogPagination{}, err
	}

	return exercises, models.CatalogPagination{
		Total:   total,
		Pages:   (total + input.Limit - 1) / input.Limit,
		Current: input.Page,
		Limit:   input.Limit,
	}, nil
}

func (s *ExerciseService) Get(ctx context.Context, id int64) (*models.Exercise, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrExerciseNotFound)
	}
	return exercise, nil
}
