package investment

import "time"

// EventType names a lifecycle change announced to other systems.
type EventType string

const (
	EventActivated EventType = "investment.activated"
	EventCompleted EventType = "investment.completed"
	EventRejected  EventType = "investment.rejected"
	EventSuspended EventType = "investments.suspended"
)

// LifecycleEvent describes a committed lifecycle change.
type LifecycleEvent struct {
	Type          EventType `json:"type"`
	InvestmentIDs []string  `json:"investment_ids,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	Count         int64     `json:"count,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewLifecycleEvent(t EventType, inv *Investment, now time.Time) LifecycleEvent {
	return LifecycleEvent{
		Type:          t,
		InvestmentIDs: []string{inv.ID()},
		UserID:        inv.UserID(),
		Count:         1,
		OccurredAt:    now,
	}
}
