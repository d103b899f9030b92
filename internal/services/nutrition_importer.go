package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/models"
	log "github.com/sirupsen/logrus"
)

// importRecord is one entry of the reference file, keyed by food name at the top level.
type importRecord struct {
	Category    string  `json:"Category"`
	Calories    float64 `json:"Calories (kcal)"`
	Protein     float64 `json:"Protein (g)"`
	Carbs       float64 `json:"Carbohydrates (g)"`
	Fat         float64 `json:"Fat (g)"`
	Fiber       float64 `json:"Fiber (g)"`
	Sugar       float64 `json:"Sugars (g)"`
	Sodium      float64 `json:"Sodium (mg)"`
	Cholesterol float64 `json:"Cholesterol (mg)"`
}

// ParseNutritionFile decodes the reference file into rows sorted by food name.
func ParseNutritionFile(r io.Reader) ([]models.Nutrition, error) {
	var raw map[string]importRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode nutrition file: %w", err)
	}

	items := make([]models.Nutrition, 0, len(raw))
	for name, rec := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		item := models.Nutrition{
			FoodItem:    name,
			Calories:    rec.Calories,
			Protein:     rec.Protein,
			Carbs:       rec.Carbs,
			Fat:         rec.Fat,
			Fiber:       rec.Fiber,
			Sugar:       rec.Sugar,
			Sodium:      rec.Sodium,
			Cholesterol: rec.Cholesterol,
		}
		if rec.Category != "" {
			category := rec.Category
			item.Category = &category
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].FoodItem < items[j].FoodItem })
	return items, nil
}

type nutritionInserter interface {
	InsertIfAbsent(ctx context.Context, item *models.Nutrition) (bool, error)
}

type ImportStats struct {
	Inserted int
	Skipped  int
}

type NutritionImporter struct {
	nutritionRepo nutritionInserter
}

func NewNutritionImporter(nutritionRepo nutritionInserter) *NutritionImporter {
	return &NutritionImporter{nutritionRepo: nutritionRepo}
}

// Import inserts every item whose name is not already present. Running it twice
// over the same file inserts nothing the second time.
func (im *NutritionImporter) Import(ctx context.Context, items []models.Nutrition) (ImportStats, error) {
	var st ImportStats
	for i := range items {
		inserted, err := im.nutritionRepo.InsertIfAbsent(ctx, &items[i])
		if err != nil {
			return st, fmt.Errorf("insert %q: %w", items[i].FoodItem, err)
		}
		if inserted {
			st.Inserted++
			continue
		}
		log.Debugf("nutrition item %q already present, skipping", items[i].FoodItem)
		st.Skipped++
	}
	return st, nil
}
