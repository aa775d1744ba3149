package permission

import (
	"fmt"

	"github.com/perkloop/perkloop/internal/shared/authorization"
)

// AdminRoutePattern matches every back-office route.
const AdminRoutePattern = "/api/v1/admin/*"

// InitAdminPermissions seeds the route policies of the admin role.
// Existing policies are left untouched.
func (e *Enforcer) InitAdminPermissions() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	policies := [][]string{
		{authorization.RoleAdmin.String(), AdminRoutePattern, "(GET)|(POST)|(PUT)|(DELETE)"},
		{authorization.RoleAdmin.String(), "/api/v1/admin", "GET"},
	}

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			e.logger.Errorw("failed to add admin permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	e.logger.Infow("admin permissions initialized successfully")
	return nil
}
