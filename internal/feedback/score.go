package feedback

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"thesisdesk/internal/model"
)

// coerceNumber converts an answer value to a finite float64. Numeric
// strings are accepted; booleans and containers are not.
func coerceNumber(v model.AnswerValue) (float64, bool) {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case float32:
		n = float64(val)
	case int:
		n = float64(val)
	case int64:
		n = float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ComputeScore derives the weighted score summary over all rating
// questions. A question whose answer cannot be coerced contributes 0 to
// the total, but its max still counts toward the maximum: partially
// completed drafts are scored as zero-of-max, never excluded.
func ComputeScore(answers model.AnswerMap, ratings []model.RatingQuestion) model.ScoreSummary {
	sum := model.ScoreSummary{
		RatingQuestions: len(ratings),
		Breakdown:       make(map[string]model.ScoreBreakdownEntry, len(ratings)),
	}

	for _, rq := range ratings {
		sum.MaxScore += float64(rq.Max)

		value := answers[rq.ID]
		score := 0.0
		if n, ok := coerceNumber(value); ok {
			// Clamp into the question's bounds before summing
			if n < float64(rq.Min) {
				n = float64(rq.Min)
			}
			if n > float64(rq.Max) {
				n = float64(rq.Max)
			}
			score = n
		}
		sum.TotalScore += score

		sum.Breakdown[rq.ID] = model.ScoreBreakdownEntry{
			Score: score,
			Value: value,
			Min:   rq.Min,
			Max:   rq.Max,
			Label: rq.Label,
		}
	}

	if sum.MaxScore > 0 {
		sum.Percentage = sum.TotalScore / sum.MaxScore * 100
	}
	return sum
}
