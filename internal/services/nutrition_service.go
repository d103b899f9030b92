package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	nutritionSearchLimit = 10
	megabyte             = 1024 * 1024
	nutritionCacheExpire = 60 * 60 // seconds
)

type nutritionCatalog interface {
	Search(ctx context.Context, term string, limit int) ([]models.Nutrition, error)
	GetByID(ctx context.Context, id int64) (*models.Nutrition, error)
}

type NutritionService struct {
	nutritionRepo nutritionCatalog
	cache         *freecache.Cache
	metrics       *metrics.Manager
}

// NewNutritionService keeps a freecache of cacheSizeMB megabytes in front of
// lookups by id. Reference rows only change through the importer, which never
// rewrites an existing item.
func NewNutritionService(nutritionRepo nutritionCatalog, cacheSizeMB int, metricsManager *metrics.Manager) *NutritionService {
	if cacheSizeMB <= 0 {
		cacheSizeMB = 8
	}
	return &NutritionService{
		nutritionRepo: nutritionRepo,
		cache:         freecache.NewCache(cacheSizeMB * megabyte),
		metrics:       metricsManager,
	}
}

func (s *NutritionService) Search(ctx context.Context, term string) ([]models.Nutrition, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrInvalidInput
	}
	return s.nutritionRepo.Search(ctx, term, nutritionSearchLimit)
}

func (s *NutritionService) Get(ctx context.Context, id int64) (*models.Nutrition, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}

	cacheKey := []byte(fmt.Sprintf("nutrition::%d", id))
	if cached, err := s.cache.Get(cacheKey); err == nil {
		item := &models.Nutrition{}
		err := json.Unmarshal(cached, item)
		if err == nil {
			s.countCache("hit")
			return item, nil
		}
		log.Errorf("failed to unmarshal cached nutrition %d: %s", id, err)
	}
	s.countCache("miss")

	item, err := s.nutritionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrNutritionNotFound)
	}

	if raw, err := json.Marshal(item); err == nil {
		if err := s.cache.Set(cacheKey, raw, nutritionCacheExpire); err != nil {
			log.Errorf("failed to cache nutrition %d: %s", id, err)
		}
	}
	return item, nil
}

func (s *NutritionService) countCache(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.CounterNutritionCacheHits.WithLabelValues(result).Inc()
}
