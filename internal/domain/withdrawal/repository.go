package withdrawal

import (
	"context"
	"strconv"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

type PreferenceRepository interface {
	// Upsert inserts or replaces the preference for its (user, type) pair.
	Upsert(ctx context.Context, p *Preference) error
	ListByUser(ctx context.Context, userID string) ([]*Preference, error)
}

type PrincipalRequestRepository interface {
	Create(ctx context.Context, r *PrincipalRequest) error
	Update(ctx context.Context, r *PrincipalRequest) error
	GetByID(ctx context.Context, id uint) (*PrincipalRequest, error)
	// List returns requests newest first; an empty status lists all.
	List(ctx context.Context, status RequestStatus) ([]*PrincipalRequest, error)
	HasPending(ctx context.Context, userID string) (bool, error)
}

func ErrRequestNotFound(id uint) error {
	return errors.NewNotFoundError("principal withdrawal request not found", strconv.FormatUint(uint64(id), 10))
}
