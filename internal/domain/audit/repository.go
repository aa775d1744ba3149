package audit

import "context"

// Repository has no update or delete: entries are never changed once written.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
}
