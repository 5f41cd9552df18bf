package model

import "time"

// ItemStatus is the lifecycle state of a feedback item
type ItemStatus string

const (
	// ItemStatusPending is the only editable state
	ItemStatusPending ItemStatus = "pending"
	// ItemStatusSubmitted is reached by a successful submit; read-only
	ItemStatusSubmitted ItemStatus = "submitted"
	// ItemStatusLocked is set server-side (e.g. past deadline); read-only
	ItemStatusLocked ItemStatus = "locked"
)

// Editable reports whether draft edits and saves are allowed
func (s ItemStatus) Editable() bool {
	return s == ItemStatusPending
}

// FeedbackItem is one reviewer's feedback record for one defense.
// The answers map is the persisted draft seeded into the AnswerStore at load.
type FeedbackItem struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	ScheduleID  string     `json:"scheduleId" bson:"scheduleId"`
	ReviewerID  string     `json:"reviewerId" bson:"reviewerId"`
	StudentID   string     `json:"studentId" bson:"studentId"`
	Status      ItemStatus `json:"status" bson:"status"`
	Answers     AnswerMap  `json:"answers" bson:"answers"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}
