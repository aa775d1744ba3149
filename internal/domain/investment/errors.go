package investment

import (
	"fmt"
	"time"

	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/errors"
)

func ErrNotFound(id string) error {
	return errors.NewNotFoundError("investment not found", id)
}

func errTransition(id string, from vo.Status, action string) error {
	return errors.NewStateConflictError(
		fmt.Sprintf("cannot %s an investment that is %s", action, from),
		id,
	)
}

func errNotMatured(id string, expected time.Time) error {
	return errors.NewStateConflictError(
		"investment has not matured yet",
		fmt.Sprintf("%s matures at %s", id, expected.UTC().Format(time.RFC3339)),
	)
}

// DuplicateError is returned when a user checks out a product they already
// hold in an open investment. The caller decides whether to merge or cancel.
type DuplicateError struct {
	*errors.AppError
	Existing *Investment
}

func NewDuplicateError(existing *Investment) *DuplicateError {
	return &DuplicateError{
		AppError: errors.NewDuplicateInvestmentError(
			"an open investment for this product already exists",
			existing.ID(),
		),
		Existing: existing,
	}
}

func (e *DuplicateError) Error() string {
	return e.AppError.Error()
}

func (e *DuplicateError) Unwrap() error {
	return e.AppError
}
