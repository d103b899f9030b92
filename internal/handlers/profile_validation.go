package handlers

import (
	"strings"
)

var allowedGenders = map[string]struct{}{
	"male":              {},
	"female":            {},
	"other":             {},
	"prefer_not_to_say": {},
}

var allowedFitnessLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

func validateProfileFields(p *profileFields) string {
	if p == nil {
		return ""
	}
	if p.Gender != nil && strings.TrimSpace(*p.Gender) != "" {
		if err := validateGender(*p.Gender); err != "" {
			return err
		}
	}
	if p.Height != nil && *p.Height <= 0 {
		return "height must be greater than 0"
	}
	if p.CurrWeight != nil && *p.CurrWeight <= 0 {
		return "curr_weight must be greater than 0"
	}
	if p.GoalWeight != nil && *p.GoalWeight <= 0 {
		return "goal_weight must be greater than 0"
	}
	if p.FitnessLevel != nil {
		if err := validateFitnessLevel(*p.FitnessLevel); err != "" {
			return err
		}
	}
	if p.FitnessGoals != nil {
		for _, goal := range *p.FitnessGoals {
			if strings.TrimSpace(goal) == "" {
				return "fitness_goals must not contain empty values"
			}
		}
	}
	return ""
}

func validateUserFields(u *userFields) string {
	if u == nil {
		return ""
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return "name must not be empty"
	}
	return ""
}

func validateGender(gender string) string {
	if _, ok := allowedGenders[strings.ToLower(strings.TrimSpace(gender))]; !ok {
		return "gender must be one of: male, female, other, prefer_not_to_say"
	}
	return ""
}

// Levels are matched case-insensitively; the dashboard stores them as sent.
func validateFitnessLevel(level string) string {
	if _, ok := allowedFitnessLevels[strings.ToLower(strings.TrimSpace(level))]; !ok {
		return "fitness_level must be one of: beginner, intermediate, advanced"
	}
	return ""
}
