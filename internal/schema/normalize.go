package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"thesisdesk/internal/model"
)

// ErrNoUsableDialect is returned by callers when Normalize yields nil: a
// schema was retrieved but no dialect strategy produced a usable section.
var ErrNoUsableDialect = errors.New("schema: no dialect produced a usable section")

// defaultLabel is used when a question carries no label-like field at all
const defaultLabel = "Untitled question"

// dialect is one try-normalize strategy. It returns nil when the raw payload
// does not speak its dialect; partial results with zero sections count as nil.
type dialect func(model.RawSchema) *model.CanonicalSchema

// dialects are probed strictly in order; the first that yields at least one
// non-empty section wins.
var dialects = []dialect{
	normalizeSectioned,
	normalizeFlat,
	normalizeProperties,
}

// Normalize converts a raw form payload into the canonical section/question
// model. It is a pure function: identical input yields structurally identical
// output, and the input is never mutated. Returns nil when no dialect applies.
func Normalize(raw model.RawSchema) *model.CanonicalSchema {
	if len(raw) == 0 {
		return nil
	}
	for _, try := range dialects {
		if cs := try(raw); cs != nil && len(cs.Sections) > 0 {
			return cs
		}
	}
	return nil
}

// normalizeSectioned handles payloads with an explicit sections array, each
// element holding a nested questions/fields array.
func normalizeSectioned(raw model.RawSchema) *model.CanonicalSchema {
	rawSections, ok := asSlice(raw["sections"])
	if !ok {
		return nil
	}

	cs := &model.CanonicalSchema{
		Title:       stringAt(raw, "title", "name"),
		Description: stringAt(raw, "description"),
	}

	for i, rs := range rawSections {
		sm, ok := asMap(rs)
		if !ok {
			continue
		}
		items, ok := asSlice(sm["questions"])
		if !ok {
			items, ok = asSlice(sm["fields"])
		}
		if !ok {
			continue
		}

		sec := model.Section{
			ID:          stringAt(sm, "id", "key", "name"),
			Title:       stringAt(sm, "title", "label", "name"),
			Description: stringAt(sm, "description"),
		}
		if sec.ID == "" {
			sec.ID = fmt.Sprintf("section-%d", i+1)
		}
		if sec.Title == "" {
			sec.Title = fmt.Sprintf("Section %d", i+1)
		}

		for _, item := range items {
			qm, ok := asMap(item)
			if !ok {
				continue
			}
			if q := normalizeQuestion(qm); q != nil {
				sec.Questions = append(sec.Questions, *q)
			}
		}
		// A section with zero surviving questions does not exist
		if len(sec.Questions) > 0 {
			cs.Sections = append(cs.Sections, sec)
		}
	}
	return cs
}

// normalizeFlat handles payloads with a top-level questions/fields array,
// wrapped into one synthetic section.
func normalizeFlat(raw model.RawSchema) *model.CanonicalSchema {
	items, ok := asSlice(raw["questions"])
	if !ok {
		items, ok = asSlice(raw["fields"])
	}
	if !ok {
		return nil
	}

	title := stringAt(raw, "title", "name")
	sec := model.Section{ID: "main", Title: title}
	if sec.Title == "" {
		sec.Title = "Feedback"
	}
	for _, item := range items {
		qm, ok := asMap(item)
		if !ok {
			continue
		}
		if q := normalizeQuestion(qm); q != nil {
			sec.Questions = append(sec.Questions, *q)
		}
	}
	if len(sec.Questions) == 0 {
		return nil
	}

	return &model.CanonicalSchema{
		Title:       title,
		Description: stringAt(raw, "description"),
		Sections:    []model.Section{sec},
	}
}

// normalizeProperties handles JSON-schema-like payloads: a properties object
// plus an optional required string array. Property keys are iterated in
// sorted order so normalization stays deterministic.
func normalizeProperties(raw model.RawSchema) *model.CanonicalSchema {
	props, ok := asMap(raw["properties"])
	if !ok || len(props) == 0 {
		return nil
	}

	requiredKeys := make(map[string]bool)
	if reqs, ok := asSlice(raw["required"]); ok {
		for _, r := range reqs {
			if s, ok := r.(string); ok {
				requiredKeys[s] = true
			}
		}
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sec := model.Section{ID: "main", Title: stringAt(raw, "title", "name")}
	if sec.Title == "" {
		sec.Title = "Feedback"
	}
	for _, key := range keys {
		pm, ok := asMap(props[key])
		if !ok {
			continue
		}
		// The property key is the id; inject it so the shared per-question
		// path resolves id and fallback label the same way everywhere.
		qm := make(map[string]interface{}, len(pm)+1)
		for k, v := range pm {
			qm[k] = v
		}
		if _, exists := qm["id"]; !exists {
			qm["id"] = key
		}
		if requiredKeys[key] {
			qm["required"] = true
		}
		if q := normalizeQuestion(qm); q != nil {
			sec.Questions = append(sec.Questions, *q)
		}
	}
	if len(sec.Questions) == 0 {
		return nil
	}

	return &model.CanonicalSchema{
		Title:       stringAt(raw, "title", "name"),
		Description: stringAt(raw, "description"),
		Sections:    []model.Section{sec},
	}
}

// typeAliases maps explicit type strings (lowercased) to canonical types.
// Anything outside this table falls through to shape inference.
var typeAliases = map[string]model.QuestionType{
	"rating":          model.QuestionTypeRating,
	"scale":           model.QuestionTypeRating,
	"score":           model.QuestionTypeRating,
	"text":            model.QuestionTypeText,
	"string":          model.QuestionTypeText,
	"input":           model.QuestionTypeText,
	"textarea":        model.QuestionTypeTextarea,
	"longtext":        model.QuestionTypeTextarea,
	"essay":           model.QuestionTypeTextarea,
	"number":          model.QuestionTypeNumber,
	"integer":         model.QuestionTypeNumber,
	"numeric":         model.QuestionTypeNumber,
	"boolean":         model.QuestionTypeBoolean,
	"bool":            model.QuestionTypeBoolean,
	"checkbox":        model.QuestionTypeBoolean,
	"choice":          model.QuestionTypeChoice,
	"select":          model.QuestionTypeChoice,
	"radio":           model.QuestionTypeChoice,
	"single_choice":   model.QuestionTypeChoice,
	"multichoice":     model.QuestionTypeMultichoice,
	"multiselect":     model.QuestionTypeMultichoice,
	"multiple_choice": model.QuestionTypeMultichoice,
}

// normalizeQuestion converts one question-like object into the canonical
// model. Questions without a resolvable id are dropped here, never the
// whole schema.
func normalizeQuestion(qm map[string]interface{}) *model.Question {
	id := stringAt(qm, "id", "key", "name", "field", "questionId")
	if id == "" {
		return nil
	}

	q := &model.Question{
		ID:          id,
		Label:       stringAt(qm, "label", "title", "question", "name"),
		Description: stringAt(qm, "description", "help"),
		Placeholder: stringAt(qm, "placeholder"),
		Required:    boolAt(qm, "required"),
		Scale:       parseScale(qm),
		Options:     parseOptions(qm),
	}
	if q.Label == "" {
		q.Label = defaultLabel
	}

	if t, ok := qm["type"].(string); ok {
		if canonical, known := typeAliases[strings.ToLower(t)]; known {
			q.Type = canonical
			return q
		}
	}

	// No usable explicit type: infer from shape
	switch {
	case q.Scale != nil:
		q.Type = model.QuestionTypeRating
	case len(q.Options) > 0:
		if boolAt(qm, "multiple") {
			q.Type = model.QuestionTypeMultichoice
		} else {
			q.Type = model.QuestionTypeChoice
		}
	case boolAt(qm, "multiline"):
		q.Type = model.QuestionTypeTextarea
	default:
		q.Type = model.QuestionTypeUnknown
	}
	return q
}

// parseScale reads a scale object or inline min/max pair. Reversed bounds
// are swapped, never rejected.
func parseScale(qm map[string]interface{}) *model.Scale {
	var min, max int
	var okMin, okMax bool

	if sm, ok := asMap(qm["scale"]); ok {
		min, okMin = intValue(sm["min"])
		max, okMax = intValue(sm["max"])
	} else {
		min, okMin = intValue(qm["min"])
		max, okMax = intValue(qm["max"])
	}
	if !okMin || !okMax {
		return nil
	}
	if min > max {
		min, max = max, min
	}
	return &model.Scale{Min: min, Max: max}
}

// parseOptions reads options/choices/enum arrays of strings or
// {value,label} objects.
func parseOptions(qm map[string]interface{}) []model.Option {
	var items []interface{}
	for _, key := range []string{"options", "choices", "enum"} {
		if s, ok := asSlice(qm[key]); ok && len(s) > 0 {
			items = s
			break
		}
	}
	if items == nil {
		return nil
	}

	opts := make([]model.Option, 0, len(items))
	for _, item := range items {
		switch o := item.(type) {
		case string:
			opts = append(opts, model.Option{Value: o, Label: o})
		case map[string]interface{}:
			val := stringAt(o, "value", "id", "key")
			label := stringAt(o, "label", "text", "title")
			if val == "" {
				val = label
			}
			if label == "" {
				label = val
			}
			if val != "" {
				opts = append(opts, model.Option{Value: val, Label: label})
			}
		}
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}
