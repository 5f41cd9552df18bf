package schema

import (
	"strings"

	"thesisdesk/internal/model"
)

// Default rating bounds when a rating question carries no scale
const (
	DefaultScaleMin = 1
	DefaultScaleMax = 5
)

// RatingQuestions derives the index of numeric-scale questions from a
// canonical schema, deduplicated by case-insensitive id. Missing scales
// default to [1,5]; reversed bounds are swapped.
func RatingQuestions(cs *model.CanonicalSchema) []model.RatingQuestion {
	if cs == nil {
		return nil
	}

	var out []model.RatingQuestion
	seen := make(map[string]bool)

	for _, q := range cs.Questions() {
		if q.Type != model.QuestionTypeRating {
			continue
		}
		key := strings.ToLower(q.ID)
		if seen[key] {
			continue
		}
		seen[key] = true

		min, max := DefaultScaleMin, DefaultScaleMax
		if q.Scale != nil {
			min, max = q.Scale.Min, q.Scale.Max
			if min > max {
				min, max = max, min
			}
		}

		out = append(out, model.RatingQuestion{
			ID:          q.ID,
			Label:       q.Label,
			Min:         min,
			Max:         max,
			Required:    q.Required,
			Description: q.Description,
		})
	}
	return out
}
