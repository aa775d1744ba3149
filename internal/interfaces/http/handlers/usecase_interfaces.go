package handlers

import (
	"context"

	accountdto "github.com/perkloop/perkloop/internal/application/account/dto"
	accountUsecases "github.com/perkloop/perkloop/internal/application/account/usecases"
	profiledto "github.com/perkloop/perkloop/internal/application/profile/dto"
	profileUsecases "github.com/perkloop/perkloop/internal/application/profile/usecases"
	wdto "github.com/perkloop/perkloop/internal/application/withdrawal/dto"
	wUsecases "github.com/perkloop/perkloop/internal/application/withdrawal/usecases"
	yielddto "github.com/perkloop/perkloop/internal/application/yield/dto"
	yieldUsecases "github.com/perkloop/perkloop/internal/application/yield/usecases"
)

// Account

type registerUseCase interface {
	Execute(ctx context.Context, cmd accountUsecases.RegisterCommand) (*accountdto.AuthResultDTO, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd accountUsecases.LoginCommand) (*accountdto.AuthResultDTO, error)
}

type getMeUseCase interface {
	Execute(ctx context.Context, userID string) (*accountdto.UserDTO, error)
}

// Yield

type listProductsUseCase interface {
	Execute(ctx context.Context) ([]yielddto.ProductDTO, error)
}

type quoteDepositUseCase interface {
	Execute(ctx context.Context, query yieldUsecases.QuoteDepositQuery) (*yielddto.DepositQuoteDTO, error)
}

type quoteCadenceUseCase interface {
	Execute(ctx context.Context, query yieldUsecases.QuoteCadenceQuery) (*yielddto.CadenceQuoteDTO, error)
}

type getRatesUseCase interface {
	Execute(ctx context.Context) (*yielddto.RatesDTO, error)
}

// Profile

type getProfileUseCase interface {
	Execute(ctx context.Context, query profileUsecases.GetProfileQuery) (*profiledto.ProfileDTO, error)
}

type updateBankAccountUseCase interface {
	Execute(ctx context.Context, cmd profileUsecases.UpdateBankAccountCommand) (*profiledto.ProfileDTO, error)
}

// Withdrawals

type setPreferenceUseCase interface {
	Execute(ctx context.Context, cmd wUsecases.SetPreferenceCommand) (*wdto.PreferenceDTO, error)
}

type listPreferencesUseCase interface {
	Execute(ctx context.Context, userID string) ([]wdto.PreferenceDTO, error)
}

type requestPrincipalUseCase interface {
	Execute(ctx context.Context, cmd wUsecases.RequestPrincipalCommand) (*wdto.PrincipalRequestDTO, error)
}

