package usecases

import (
	"context"

	"github.com/perkloop/perkloop/internal/shared/authorization"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// IssuedToken is a signed bearer token and its lifetime in seconds.
type IssuedToken struct {
	AccessToken string
	ExpiresIn   int64
}

type TokenIssuer interface {
	Issue(userID string, role authorization.UserRole) (*IssuedToken, error)
}

// RoleChecker answers whether a user holds the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
