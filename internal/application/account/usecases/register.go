package usecases

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/perkloop/perkloop/internal/application/account/dto"
	"github.com/perkloop/perkloop/internal/domain/account"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/shared/authorization"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLength = 72
)

type RegisterCommand struct {
	Email    string
	Password string
}

// RegisterUseCase creates a user with an empty profile and signs them in.
type RegisterUseCase struct {
	users     account.Repository
	profiles  profile.Repository
	hasher    PasswordHasher
	tokens    TokenIssuer
	txManager db.TransactionRunner
	logger    logger.Interface
	clock     func() time.Time
}

func NewRegisterUseCase(
	users account.Repository,
	profiles profile.Repository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		users:     users,
		profiles:  profiles,
		hasher:    hasher,
		tokens:    tokens,
		txManager: txManager,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.AuthResultDTO, error) {
	email, err := account.NormalizeEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	uc.logger.Infow("executing register use case", "email", utils.MaskEmail(email))

	if err := validatePassword(cmd.Password); err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil && !errors.IsNotFoundError(err) {
		return nil, errors.WrapPersistence("get user by email", email, err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("email is already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register user")
	}

	now := uc.clock()
	user, err := account.NewUser(email, hash, now)
	if err != nil {
		return nil, err
	}
	prof, err := profile.NewProfile(user.ID(), user.Email(), now)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.users.Create(txCtx, user); err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError("email is already registered")
			}
			return errors.WrapPersistence("create user", user.ID(), err)
		}
		if err := uc.profiles.Create(txCtx, prof); err != nil {
			return errors.WrapPersistence("create profile", user.ID(), err)
		}
		return nil
	})
	if err != nil {
		if !errors.IsConflictError(err) {
			uc.logger.Errorw("failed to register user", "email", utils.MaskEmail(email), "error", err)
		}
		return nil, err
	}

	token, err := uc.tokens.Issue(user.ID(), authorization.RoleUser)
	if err != nil {
		uc.logger.Errorw("failed to issue token", "user_id", user.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue access token")
	}

	uc.logger.Infow("user registered successfully", "user_id", user.ID())
	return authResult(user, authorization.RoleUser, token), nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return errors.NewValidationError("password must be at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		return errors.NewValidationError("password must be at most 72 bytes")
	}
	return nil
}

func authResult(u *account.User, role authorization.UserRole, token *IssuedToken) *dto.AuthResultDTO {
	return &dto.AuthResultDTO{
		User:        toUserDTO(u, role),
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
	}
}

func toUserDTO(u *account.User, role authorization.UserRole) dto.UserDTO {
	return dto.UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		Role:      role.String(),
		CreatedAt: u.CreatedAt(),
	}
}
