package entity

import "time"

type NotificationKind string

const (
	NotificationBudgetExceeded NotificationKind = "BUDGET_EXCEEDED"
	NotificationGoalReached    NotificationKind = "GOAL_REACHED"
)

type Notification struct {
	UserID    int64            `json:"userId"`
	Kind      NotificationKind `json:"kind"`
	Subject   string           `json:"subject"`
	Message   string           `json:"message"`
	Recipient string           `json:"recipient,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
