package feedback

import (
	"reflect"
	"testing"

	"thesisdesk/internal/model"
)

func TestIsMissingAnswer(t *testing.T) {
	cases := []struct {
		name    string
		value   model.AnswerValue
		missing bool
	}{
		{"nil", nil, true},
		{"empty string", "", true},
		{"whitespace string", "   \t\n", true},
		{"empty slice", []interface{}{}, true},
		{"empty string slice", []string{}, true},
		{"empty map", map[string]interface{}{}, true},
		{"zero is an answer", float64(0), false},
		{"int zero is an answer", 0, false},
		{"false is an answer", false, false},
		{"text", "fine", false},
		{"slice with element", []interface{}{"a"}, false},
		{"map with entry", map[string]interface{}{"k": "v"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsMissingAnswer(tc.value); got != tc.missing {
				t.Errorf("IsMissingAnswer(%v) = %v, want %v", tc.value, got, tc.missing)
			}
		})
	}
}

func TestComputeCompletion(t *testing.T) {
	required := []string{"q1", "q2", "q3", "q4"}
	answers := model.AnswerMap{
		"q1": float64(0), // a real answer
		"q2": "",         // missing
		"q4": false,      // a real answer
		// q3 absent entirely
	}

	got := ComputeCompletion(answers, required)
	want := model.Completion{Required: 4, Answered: 2, Missing: []string{"q2", "q3"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComputeCompletion = %+v, want %+v", got, want)
	}
}

func TestComputeCompletionIdentity(t *testing.T) {
	// Answered + len(Missing) == Required must hold for any answer state
	required := []string{"a", "b", "c"}
	states := []model.AnswerMap{
		{},
		{"a": nil, "b": "", "c": []interface{}{}},
		{"a": 1, "b": "x", "c": true},
		{"a": 1, "unrelated": "y"},
	}
	for i, answers := range states {
		c := ComputeCompletion(answers, required)
		if c.Answered+len(c.Missing) != c.Required {
			t.Errorf("state %d: %d + %d != %d", i, c.Answered, len(c.Missing), c.Required)
		}
	}
}

func TestComputeCompletionNoRequired(t *testing.T) {
	got := ComputeCompletion(model.AnswerMap{"q1": "x"}, nil)
	if got.Required != 0 || got.Answered != 0 || len(got.Missing) != 0 {
		t.Errorf("got %+v, want all-zero completion", got)
	}
}
