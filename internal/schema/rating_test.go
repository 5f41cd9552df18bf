package schema

import (
	"reflect"
	"testing"

	"thesisdesk/internal/model"
)

func TestRatingQuestions(t *testing.T) {
	cs := &model.CanonicalSchema{
		Sections: []model.Section{
			{
				ID: "s1",
				Questions: []model.Question{
					{ID: "clarity", Type: model.QuestionTypeRating, Label: "Clarity", Scale: &model.Scale{Min: 1, Max: 10}, Required: true},
					{ID: "notes", Type: model.QuestionTypeTextarea, Label: "Notes"},
				},
			},
			{
				ID: "s2",
				Questions: []model.Question{
					{ID: "defaulted", Type: model.QuestionTypeRating, Label: "No scale"},
					{ID: "CLARITY", Type: model.QuestionTypeRating, Label: "Dup by case"},
				},
			},
		},
	}

	got := RatingQuestions(cs)
	want := []model.RatingQuestion{
		{ID: "clarity", Label: "Clarity", Min: 1, Max: 10, Required: true},
		{ID: "defaulted", Label: "No scale", Min: DefaultScaleMin, Max: DefaultScaleMax},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RatingQuestions = %+v, want %+v", got, want)
	}
}

func TestRatingQuestionsReversedBounds(t *testing.T) {
	cs := &model.CanonicalSchema{
		Sections: []model.Section{{
			Questions: []model.Question{
				{ID: "r", Type: model.QuestionTypeRating, Scale: &model.Scale{Min: 5, Max: 1}},
			},
		}},
	}
	got := RatingQuestions(cs)
	if len(got) != 1 || got[0].Min != 1 || got[0].Max != 5 {
		t.Fatalf("got %+v, want swapped [1,5]", got)
	}
}

func TestRatingQuestionsNilSchema(t *testing.T) {
	if got := RatingQuestions(nil); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
