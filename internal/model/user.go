package model

import "time"

// UserRole distinguishes the admin-side account types
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleTeacher  UserRole = "teacher"
	RoleStudent  UserRole = "student"
	RoleReviewer UserRole = "reviewer"
)

// User is an account in the defense administration system
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	FullName  string    `json:"fullName" bson:"fullName"`
	Email     string    `json:"email" bson:"email"`
	Role      UserRole  `json:"role" bson:"role"`
	GroupID   string    `json:"groupId,omitempty" bson:"groupId,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Group is a defense committee or student cohort
type Group struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Kind      string    `json:"kind" bson:"kind"` // "committee" or "cohort"
	MemberIDs []string  `json:"memberIds" bson:"memberIds"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
