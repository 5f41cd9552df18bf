package feedback

import (
	"encoding/json"
	"math"
	"testing"

	"thesisdesk/internal/model"
)

var rubric = []model.RatingQuestion{
	{ID: "clarity", Label: "Clarity", Min: 1, Max: 10},
	{ID: "rigor", Label: "Rigor", Min: 1, Max: 10},
	{ID: "defense", Label: "Defense", Min: 0, Max: 20},
}

func TestComputeScoreFullDraft(t *testing.T) {
	answers := model.AnswerMap{
		"clarity": float64(8),
		"rigor":   "7", // numeric strings count
		"defense": json.Number("15"),
	}

	got := ComputeScore(answers, rubric)
	if got.TotalScore != 30 {
		t.Errorf("TotalScore = %v, want 30", got.TotalScore)
	}
	if got.MaxScore != 40 {
		t.Errorf("MaxScore = %v, want 40", got.MaxScore)
	}
	if got.Percentage != 75 {
		t.Errorf("Percentage = %v, want 75", got.Percentage)
	}
	if got.RatingQuestions != 3 {
		t.Errorf("RatingQuestions = %d, want 3", got.RatingQuestions)
	}
}

func TestComputeScorePartialDraftIsZeroOfMax(t *testing.T) {
	answers := model.AnswerMap{"clarity": float64(10)}

	got := ComputeScore(answers, rubric)
	if got.TotalScore != 10 {
		t.Errorf("TotalScore = %v, want 10", got.TotalScore)
	}
	// Unanswered questions still contribute their max to the denominator
	if got.MaxScore != 40 {
		t.Errorf("MaxScore = %v, want 40", got.MaxScore)
	}
	if got.Percentage != 25 {
		t.Errorf("Percentage = %v, want 25", got.Percentage)
	}
	entry := got.Breakdown["rigor"]
	if entry.Score != 0 || entry.Max != 10 {
		t.Errorf("unanswered breakdown = %+v, want zero-of-max", entry)
	}
}

func TestComputeScoreClamping(t *testing.T) {
	answers := model.AnswerMap{
		"clarity": float64(99), // above max
		"rigor":   float64(-3), // below min
		"defense": float64(10),
	}

	got := ComputeScore(answers, rubric)
	if got.Breakdown["clarity"].Score != 10 {
		t.Errorf("clarity = %v, want clamped to 10", got.Breakdown["clarity"].Score)
	}
	if got.Breakdown["rigor"].Score != 1 {
		t.Errorf("rigor = %v, want clamped to 1", got.Breakdown["rigor"].Score)
	}
	if got.TotalScore != 21 {
		t.Errorf("TotalScore = %v, want 21", got.TotalScore)
	}
}

func TestComputeScoreUncoercibleValues(t *testing.T) {
	answers := model.AnswerMap{
		"clarity": "not a number",
		"rigor":   true,
		"defense": []interface{}{5},
	}

	got := ComputeScore(answers, rubric)
	if got.TotalScore != 0 {
		t.Errorf("TotalScore = %v, want 0", got.TotalScore)
	}
	if got.MaxScore != 40 {
		t.Errorf("MaxScore = %v, want 40", got.MaxScore)
	}
	if got.Percentage != 0 {
		t.Errorf("Percentage = %v, want 0", got.Percentage)
	}
}

func TestComputeScoreNoRatings(t *testing.T) {
	got := ComputeScore(model.AnswerMap{"x": float64(5)}, nil)
	if got.MaxScore != 0 || got.Percentage != 0 {
		t.Errorf("got %+v, want zero max and guarded percentage", got)
	}
}

func TestCoerceNumber(t *testing.T) {
	cases := []struct {
		name  string
		value model.AnswerValue
		want  float64
		ok    bool
	}{
		{"float64", float64(4.5), 4.5, true},
		{"int", 7, 7, true},
		{"int64", int64(3), 3, true},
		{"numeric string", "6", 6, true},
		{"padded numeric string", "  8 ", 8, true},
		{"json number", json.Number("2.5"), 2.5, true},
		{"text", "seven", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
		{"nan string", "NaN", 0, false},
		{"inf", math.Inf(1), 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := coerceNumber(tc.value)
			if ok != tc.ok || got != tc.want {
				t.Errorf("coerceNumber(%v) = %v, %v; want %v, %v", tc.value, got, ok, tc.want, tc.ok)
			}
		})
	}
}
