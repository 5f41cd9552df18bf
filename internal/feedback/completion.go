package feedback

import (
	"strings"

	"thesisdesk/internal/model"
)

// IsMissingAnswer reports whether a value counts as unanswered: nil, a
// string that trims to empty, an empty slice, or an empty map. Numeric 0
// and boolean false are real answers; treating them as missing would be a
// correctness bug.
func IsMissingAnswer(v model.AnswerValue) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []interface{}:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	default:
		return false
	}
}

// ComputeCompletion counts answered and missing required questions.
// Invariant: Answered + len(Missing) == Required for every answer state.
func ComputeCompletion(answers model.AnswerMap, requiredIDs []string) model.Completion {
	c := model.Completion{
		Required: len(requiredIDs),
		Missing:  []string{},
	}
	for _, id := range requiredIDs {
		if IsMissingAnswer(answers[id]) {
			c.Missing = append(c.Missing, id)
		} else {
			c.Answered++
		}
	}
	return c
}
