package usecases

import (
	"context"
	stderrors "errors"

	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/errors"
)

func asDuplicate(err error, target **investment.DuplicateError) bool {
	return stderrors.As(err, target)
}

// loadOwned fetches an investment and checks it belongs to userID.
func loadOwned(ctx context.Context, repo investment.Repository, investmentID, userID string) (*investment.Investment, error) {
	inv, err := repo.GetByID(ctx, investmentID)
	if err != nil {
		return nil, errors.WrapPersistence("get investment", investmentID, err)
	}
	if inv == nil {
		return nil, investment.ErrNotFound(investmentID)
	}
	if !inv.IsOwnedBy(userID) {
		return nil, errors.NewForbiddenError("investment belongs to another user")
	}
	return inv, nil
}
