package usecases

import (
	"context"

	"github.com/perkloop/perkloop/internal/application/account/dto"
	"github.com/perkloop/perkloop/internal/domain/account"
	"github.com/perkloop/perkloop/internal/shared/authorization"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	users  account.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	roles  RoleChecker
	logger logger.Interface
}

func NewLoginUseCase(users account.Repository, hasher PasswordHasher, tokens TokenIssuer, roles RoleChecker, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		roles:  roles,
		logger: logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResultDTO, error) {
	invalid := errors.NewUnauthorizedError("invalid email or password")

	email, err := account.NormalizeEmail(cmd.Email)
	if err != nil {
		return nil, invalid
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, invalid
		}
		uc.logger.Errorw("failed to load user for login", "error", err)
		return nil, errors.WrapPersistence("get user by email", email, err)
	}

	if err := uc.hasher.Verify(cmd.Password, user.PasswordHash()); err != nil {
		uc.logger.Warnw("login failed", "user_id", user.ID())
		return nil, invalid
	}

	isAdmin, err := uc.roles.IsAdmin(ctx, user.ID())
	if err != nil {
		uc.logger.Errorw("failed to resolve role", "user_id", user.ID(), "error", err)
		return nil, errors.NewInternalError("failed to resolve role")
	}
	role := authorization.RoleFor(isAdmin)

	token, err := uc.tokens.Issue(user.ID(), role)
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", user.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue access token")
	}

	uc.logger.Infow("user logged in", "user_id", user.ID(), "role", role)
	return authResult(user, role, token), nil
}

type GetMeUseCase struct {
	users  account.Repository
	roles  RoleChecker
	logger logger.Interface
}

func NewGetMeUseCase(users account.Repository, roles RoleChecker, logger logger.Interface) *GetMeUseCase {
	return &GetMeUseCase{
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

func (uc *GetMeUseCase) Execute(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.WrapPersistence("get user", userID, err)
	}
	isAdmin, err := uc.roles.IsAdmin(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to resolve role", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to resolve role")
	}
	result := toUserDTO(user, authorization.RoleFor(isAdmin))
	return &result, nil
}
