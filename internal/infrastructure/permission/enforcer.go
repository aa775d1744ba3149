// Package permission stores user roles and route policies in casbin,
// persisted through the gorm adapter.
package permission

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/shared/authorization"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

//go:embed model.conf
var modelText string

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer loads the RBAC model and the stored policies. The adapter
// creates the casbin_rule table when it does not exist.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}, nil
}

// Enforce checks whether the user may perform act on the route obj.
func (e *Enforcer) Enforce(userID string, obj string, act string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(userID, obj, act)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", obj, "action", act)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// IsAdmin reports whether the user holds the admin role.
func (e *Enforcer) IsAdmin(_ context.Context, userID string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ok, err := e.enforcer.HasRoleForUser(userID, authorization.RoleAdmin.String())
	if err != nil {
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}
	return ok, nil
}

// GrantAdmin adds the admin role. Granting it twice is not an error.
func (e *Enforcer) GrantAdmin(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added, err := e.enforcer.AddRoleForUser(userID, authorization.RoleAdmin.String())
	if err != nil {
		e.logger.Errorw("failed to add role for user", "error", err, "user_id", userID)
		return fmt.Errorf("failed to add role for user: %w", err)
	}
	if added {
		e.logger.Infow("admin role granted", "user_id", userID)
	}
	return nil
}

// RevokeAdmin removes the admin role. Revoking a missing role is not an error.
func (e *Enforcer) RevokeAdmin(userID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.enforcer.DeleteRoleForUser(userID, authorization.RoleAdmin.String())
	if err != nil {
		e.logger.Errorw("failed to delete role for user", "error", err, "user_id", userID)
		return fmt.Errorf("failed to delete role for user: %w", err)
	}
	if removed {
		e.logger.Infow("admin role revoked", "user_id", userID)
	}
	return nil
}

// ListAdmins returns the ids of all users holding the admin role.
func (e *Enforcer) ListAdmins() ([]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	users, err := e.enforcer.GetUsersForRole(authorization.RoleAdmin.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get users for role: %w", err)
	}
	return users, nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Infow("policy reloaded successfully")
	return nil
}
