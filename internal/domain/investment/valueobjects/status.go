package valueobjects

import "fmt"

// Status is the lifecycle state of an investment. Deletion (admin reject or
// owner cancel) removes the row and has no status of its own.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusCompleted Status = "completed"
)

var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusActive},
	StatusActive:  {StatusCompleted, StatusSuspended},
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid investment status: %s", s)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the investment still counts as a live holding
// for duplicate detection and deposit changes.
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusActive
}

// NeedsReconciliation reports whether the row must appear on a refund list.
func (s Status) NeedsReconciliation() bool {
	return s == StatusPending || s == StatusActive || s == StatusSuspended
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// OpenStatuses are the statuses counted as an existing holding.
func OpenStatuses() []Status {
	return []Status{StatusPending, StatusActive}
}

// ReconciliationStatuses are the statuses exported on a refund list.
func ReconciliationStatuses() []Status {
	return []Status{StatusActive, StatusPending, StatusSuspended}
}
