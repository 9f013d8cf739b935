package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

type AuthorizationStatus string

const (
	AuthorizationNotDetermined AuthorizationStatus = "notDetermined"
	AuthorizationDenied        AuthorizationStatus = "denied"
	AuthorizationAuthorized    AuthorizationStatus = "authorized"
)

// Reminder is a single reminder item inside a reminder list
type Reminder struct {
	ReminderID  string    `bson:"_id,omitempty" json:"id"`
	ListID      string    `bson:"list_id" json:"list_id"`
	Title       string    `bson:"title" json:"title" binding:"required"`
	Priority    Priority  `bson:"priority,omitempty" json:"priority,omitempty"`
	Complete    bool      `bson:"complete" json:"complete"`
	CompletedAt time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	DueDate     time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
}

// ReminderList groups reminders and carries the display metadata a status
// inherits when a report targets the list directly.
type ReminderList struct {
	ListID string `bson:"_id,omitempty" json:"id"`
	Title  string `bson:"title" json:"title" binding:"required"`
	Color  string `bson:"color,omitempty" json:"color,omitempty"`
}
