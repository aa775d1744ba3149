package account

import (
	"context"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

func ErrNotFound(key string) error {
	return errors.NewNotFoundError("user not found", key)
}
