package profile

import (
	"context"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// GetByUserIDs returns the profiles found, keyed by user id.
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
}

func ErrNotFound(userID string) error {
	return errors.NewNotFoundError("profile not found", userID)
}
