// Package admin manages back-office operators from the command line.
package admin

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/perkloop/perkloop/internal/domain/account"
	"github.com/perkloop/perkloop/internal/infrastructure/config"
	"github.com/perkloop/perkloop/internal/infrastructure/database"
	"github.com/perkloop/perkloop/internal/infrastructure/permission"
	"github.com/perkloop/perkloop/internal/infrastructure/repository"
	"github.com/perkloop/perkloop/internal/interfaces/cli/server"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

var env string

type userLookup interface {
	GetByEmail(ctx context.Context, email string) (*account.User, error)
	GetByID(ctx context.Context, id string) (*account.User, error)
}

type roleStore interface {
	GrantAdmin(userID string) error
	RevokeAdmin(userID string) error
	ListAdmins() ([]string, error)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back-office operators",
		Long:  `Grant, revoke and list the admin role. Users are addressed by the email they registered with.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "grant <email>",
			Short: "Grant the admin role",
			Args:  cobra.ExactArgs(1),
			RunE: withDeps(func(cmd *cobra.Command, users userLookup, roles roleStore, args []string) error {
				return grant(cmd.Context(), cmd.OutOrStdout(), users, roles, args[0])
			}),
		},
		&cobra.Command{
			Use:   "revoke <email>",
			Short: "Revoke the admin role",
			Args:  cobra.ExactArgs(1),
			RunE: withDeps(func(cmd *cobra.Command, users userLookup, roles roleStore, args []string) error {
				return revoke(cmd.Context(), cmd.OutOrStdout(), users, roles, args[0])
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List admins",
			Args:  cobra.NoArgs,
			RunE: withDeps(func(cmd *cobra.Command, users userLookup, roles roleStore, _ []string) error {
				return list(cmd.Context(), cmd.OutOrStdout(), users, roles)
			}),
		},
	)

	return cmd
}

type runFunc func(cmd *cobra.Command, users userLookup, roles roleStore, args []string) error

func withDeps(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(server.MapEnvToGinMode(env))
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log := logger.NewLogger()

		if err := database.Init(&cfg.Database); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()

		enforcer, err := permission.NewEnforcer(database.Get(), log)
		if err != nil {
			return fmt.Errorf("failed to create permission enforcer: %w", err)
		}
		if err := enforcer.InitAdminPermissions(); err != nil {
			return fmt.Errorf("failed to initialize admin permissions: %w", err)
		}

		return fn(cmd, repository.NewUserRepository(database.Get(), log), enforcer, args)
	}
}

func resolve(ctx context.Context, users userLookup, email string) (*account.User, error) {
	normalized, err := account.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return users.GetByEmail(ctx, normalized)
}

func grant(ctx context.Context, out io.Writer, users userLookup, roles roleStore, email string) error {
	user, err := resolve(ctx, users, email)
	if err != nil {
		return err
	}
	if err := roles.GrantAdmin(user.ID()); err != nil {
		return err
	}
	fmt.Fprintf(out, "granted admin to %s (%s)\n", user.Email(), user.ID())
	return nil
}

func revoke(ctx context.Context, out io.Writer, users userLookup, roles roleStore, email string) error {
	user, err := resolve(ctx, users, email)
	if err != nil {
		return err
	}
	if err := roles.RevokeAdmin(user.ID()); err != nil {
		return err
	}
	fmt.Fprintf(out, "revoked admin from %s (%s)\n", user.Email(), user.ID())
	return nil
}

// list prints one admin per line. Ids whose user row is gone are still shown.
func list(ctx context.Context, out io.Writer, users userLookup, roles roleStore) error {
	ids, err := roles.ListAdmins()
	if err != nil {
		return err
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		fmt.Fprintln(out, "no admins")
		return nil
	}
	for _, id := range ids {
		email := "(unknown user)"
		if user, err := users.GetByID(ctx, id); err == nil {
			email = user.Email()
		}
		fmt.Fprintf(out, "%s\t%s\n", id, email)
	}
	return nil
}
