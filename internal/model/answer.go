package model

// AnswerValue is a single draft answer: string, float64, bool, []interface{},
// map[string]interface{} or nil, depending on the question type. Values come
// straight out of JSON decoding, so numbers are float64.
type AnswerValue = interface{}

// AnswerMap maps question ids to their current draft values
type AnswerMap map[string]AnswerValue

// Clone returns a shallow copy of the map. Values are JSON scalars or
// JSON-decoded containers; callers needing full isolation go through
// feedback.AnswerStore.Snapshot.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ScoreBreakdownEntry is the per-question drill-down of a score summary
type ScoreBreakdownEntry struct {
	Score float64     `json:"score"`
	Value AnswerValue `json:"value"`
	Min   int         `json:"min"`
	Max   int         `json:"max"`
	Label string      `json:"label"`
}

// ScoreSummary is the weighted score over all rating questions of an item.
// Unanswered rating questions score zero of their max; they are never
// excluded from MaxScore.
type ScoreSummary struct {
	TotalScore      float64                        `json:"total_score"`
	MaxScore        float64                        `json:"max_score"`
	Percentage      float64                        `json:"percentage"`
	RatingQuestions int                            `json:"rating_questions"`
	Breakdown       map[string]ScoreBreakdownEntry `json:"breakdown"`
}

// Completion reports required-answer progress for an item
type Completion struct {
	Required int      `json:"required"`
	Answered int      `json:"answered"`
	Missing  []string `json:"missing"`
}
