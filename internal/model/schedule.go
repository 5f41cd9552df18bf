package model

import "time"

// ScheduleStatus is the lifecycle state of a defense schedule
type ScheduleStatus string

const (
	ScheduleStatusPlanned   ScheduleStatus = "planned"
	ScheduleStatusOngoing   ScheduleStatus = "ongoing"
	ScheduleStatusCompleted ScheduleStatus = "completed"
)

// DefenseSchedule is one scheduled thesis defense slot
type DefenseSchedule struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	StudentID   string         `json:"studentId" bson:"studentId"`
	GroupID     string         `json:"groupId" bson:"groupId"`
	Title       string         `json:"title" bson:"title"`
	Room        string         `json:"room" bson:"room"`
	StartsAt    time.Time      `json:"startsAt" bson:"startsAt"`
	EndsAt      time.Time      `json:"endsAt" bson:"endsAt"`
	Status      ScheduleStatus `json:"status" bson:"status"`
	ReviewerIDs []string       `json:"reviewerIds" bson:"reviewerIds"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}
