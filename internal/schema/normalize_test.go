package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"thesisdesk/internal/model"
)

func mustRaw(t *testing.T, src string) model.RawSchema {
	t.Helper()
	var raw model.RawSchema
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return raw
}

func TestNormalizeSectionedDialect(t *testing.T) {
	raw := mustRaw(t, `{
		"title": "Defense Feedback",
		"sections": [
			{
				"id": "presentation",
				"title": "Presentation",
				"questions": [
					{"id": "clarity", "type": "rating", "label": "Clarity", "scale": {"min": 1, "max": 10}, "required": true},
					{"id": "comments", "type": "textarea", "label": "Comments"}
				]
			},
			{
				"title": "Empty one",
				"questions": []
			}
		]
	}`)

	cs := Normalize(raw)
	if cs == nil {
		t.Fatal("expected sectioned dialect to match")
	}
	if cs.Title != "Defense Feedback" {
		t.Errorf("title = %q", cs.Title)
	}
	if len(cs.Sections) != 1 {
		t.Fatalf("expected empty section to be dropped, got %d sections", len(cs.Sections))
	}

	sec := cs.Sections[0]
	if sec.ID != "presentation" || len(sec.Questions) != 2 {
		t.Fatalf("section = %+v", sec)
	}
	clarity := sec.Questions[0]
	if clarity.Type != model.QuestionTypeRating || !clarity.Required {
		t.Errorf("clarity = %+v", clarity)
	}
	if clarity.Scale == nil || clarity.Scale.Min != 1 || clarity.Scale.Max != 10 {
		t.Errorf("clarity scale = %+v", clarity.Scale)
	}
	if sec.Questions[1].Type != model.QuestionTypeTextarea {
		t.Errorf("comments type = %s", sec.Questions[1].Type)
	}
}

func TestNormalizeFlatDialect(t *testing.T) {
	raw := mustRaw(t, `{
		"name": "Quick Form",
		"fields": [
			{"key": "overall", "type": "scale", "title": "Overall", "min": 1, "max": 5},
			{"key": "verdict", "choices": ["pass", "fail"]}
		]
	}`)

	cs := Normalize(raw)
	if cs == nil {
		t.Fatal("expected flat dialect to match")
	}
	if len(cs.Sections) != 1 || cs.Sections[0].ID != "main" {
		t.Fatalf("sections = %+v", cs.Sections)
	}

	qs := cs.Questions()
	if len(qs) != 2 {
		t.Fatalf("got %d questions", len(qs))
	}
	if qs[0].ID != "overall" || qs[0].Type != model.QuestionTypeRating {
		t.Errorf("overall = %+v", qs[0])
	}
	// No explicit type but options present: inferred choice
	if qs[1].Type != model.QuestionTypeChoice || len(qs[1].Options) != 2 {
		t.Errorf("verdict = %+v", qs[1])
	}
}

func TestNormalizePropertySchemaDialect(t *testing.T) {
	raw := mustRaw(t, `{
		"title": "Rubric",
		"properties": {
			"methodology": {"type": "string", "title": "Methodology notes"},
			"defense_score": {"type": "rating", "min": 0, "max": 20}
		},
		"required": ["defense_score"]
	}`)

	cs := Normalize(raw)
	if cs == nil {
		t.Fatal("expected property dialect to match")
	}

	qs := cs.Questions()
	if len(qs) != 2 {
		t.Fatalf("got %d questions", len(qs))
	}
	// Sorted property keys: defense_score before methodology
	if qs[0].ID != "defense_score" || qs[1].ID != "methodology" {
		t.Fatalf("order = %s, %s", qs[0].ID, qs[1].ID)
	}
	if !qs[0].Required || qs[1].Required {
		t.Errorf("required flags = %v, %v", qs[0].Required, qs[1].Required)
	}
	// JSON-schema "string" maps onto a plain text question
	if qs[1].Type != model.QuestionTypeText {
		t.Errorf("methodology type = %s", qs[1].Type)
	}
	if qs[1].Label != "Methodology notes" {
		t.Errorf("methodology label = %q", qs[1].Label)
	}
}

func TestNormalizeDialectOrder(t *testing.T) {
	// A payload that would satisfy both sectioned and flat dialects must go
	// through the sectioned path first.
	raw := mustRaw(t, `{
		"sections": [
			{"id": "s1", "questions": [{"id": "a", "type": "text"}]}
		],
		"questions": [{"id": "b", "type": "text"}]
	}`)

	cs := Normalize(raw)
	if cs == nil {
		t.Fatal("expected a match")
	}
	qs := cs.Questions()
	if len(qs) != 1 || qs[0].ID != "a" {
		t.Fatalf("expected sectioned dialect to win, got %+v", qs)
	}
}

func TestNormalizeNoDialect(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty object", `{}`},
		{"unrelated keys", `{"version": 3, "ok": true}`},
		{"sections without questions", `{"sections": [{"id": "s1"}]}`},
		{"questions all dropped", `{"questions": [{"type": "text", "label": "no id"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if cs := Normalize(mustRaw(t, tc.raw)); cs != nil {
				t.Errorf("expected nil, got %+v", cs)
			}
		})
	}
}

func TestNormalizeQuestionDefaults(t *testing.T) {
	raw := mustRaw(t, `{
		"questions": [
			{"id": "q1"},
			{"id": "q2", "multiline": true},
			{"label": "dropped, no id"},
			{"id": "q3", "type": "somethingexotic"}
		]
	}`)

	cs := Normalize(raw)
	if cs == nil {
		t.Fatal("expected a match")
	}
	qs := cs.Questions()
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3 (id-less one dropped)", len(qs))
	}
	if qs[0].Label != "Untitled question" {
		t.Errorf("q1 label = %q", qs[0].Label)
	}
	if qs[0].Type != model.QuestionTypeUnknown {
		t.Errorf("q1 type = %s", qs[0].Type)
	}
	if qs[1].Type != model.QuestionTypeTextarea {
		t.Errorf("q2 type = %s", qs[1].Type)
	}
	// Unrecognized explicit type falls through to shape inference
	if qs[2].Type != model.QuestionTypeUnknown {
		t.Errorf("q3 type = %s", qs[2].Type)
	}
}

func TestNormalizeReversedScaleSwapped(t *testing.T) {
	raw := mustRaw(t, `{
		"questions": [{"id": "q1", "type": "rating", "scale": {"min": 10, "max": 1}}]
	}`)

	cs := Normalize(raw)
	q := cs.Questions()[0]
	if q.Scale == nil || q.Scale.Min != 1 || q.Scale.Max != 10 {
		t.Fatalf("scale = %+v, want swapped bounds", q.Scale)
	}
}

func TestNormalizeOptionObjects(t *testing.T) {
	raw := mustRaw(t, `{
		"questions": [{
			"id": "grade",
			"type": "select",
			"options": [
				{"value": "A", "label": "Excellent"},
				{"value": "B"},
				{"label": "Fail"}
			]
		}]
	}`)

	q := Normalize(raw).Questions()[0]
	want := []model.Option{
		{Value: "A", Label: "Excellent"},
		{Value: "B", Label: "B"},
		{Value: "Fail", Label: "Fail"},
	}
	if !reflect.DeepEqual(q.Options, want) {
		t.Errorf("options = %+v, want %+v", q.Options, want)
	}
	if q.Type != model.QuestionTypeChoice {
		t.Errorf("type = %s", q.Type)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := mustRaw(t, `{
		"properties": {
			"z": {"type": "string"},
			"a": {"type": "rating", "min": 1, "max": 5},
			"m": {"type": "boolean"}
		},
		"required": ["a", "z"]
	}`)

	first := Normalize(raw)
	for i := 0; i < 20; i++ {
		if got := Normalize(raw); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	src := `{"properties": {"x": {"type": "string"}}, "required": ["x"]}`
	raw := mustRaw(t, src)
	before, _ := json.Marshal(raw)

	Normalize(raw)

	after, _ := json.Marshal(raw)
	if string(before) != string(after) {
		t.Errorf("input mutated: %s -> %s", before, after)
	}
}
