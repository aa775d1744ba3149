package withdrawal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

type RequestStatus string

const (
	RequestStatusPending RequestStatus = "pending"
	RequestStatusDone    RequestStatus = "done"
)

func (s RequestStatus) IsValid() bool {
	return s == RequestStatusPending || s == RequestStatusDone
}

// PrincipalRequest asks for principal back. Settlement happens by manual
// bank transfer; the request only tracks whether that has been done.
type PrincipalRequest struct {
	id           uint
	userID       string
	userEmail    string
	depositUSD   decimal.Decimal
	exchangeRate decimal.Decimal
	indicatedJPY decimal.Decimal
	status       RequestStatus
	requestedAt  time.Time
	processedAt  *time.Time
}

// NewPrincipalRequest quotes the JPY amount at the given USD/JPY rate,
// rounded to whole yen.
func NewPrincipalRequest(userID, email string, depositUSD, usdJPY decimal.Decimal, now time.Time) (*PrincipalRequest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewValidationError("user id is required")
	}
	if !depositUSD.IsPositive() {
		return nil, errors.NewValidationError("no principal is available to withdraw")
	}
	if !usdJPY.IsPositive() {
		return nil, errors.NewValidationError("exchange rate must be greater than zero")
	}

	return &PrincipalRequest{
		userID:       userID,
		userEmail:    email,
		depositUSD:   depositUSD,
		exchangeRate: usdJPY,
		indicatedJPY: depositUSD.Mul(usdJPY).Round(0),
		status:       RequestStatusPending,
		requestedAt:  now,
	}, nil
}

// SetStatus toggles between pending and done. It reports whether anything changed.
func (r *PrincipalRequest) SetStatus(status RequestStatus, now time.Time) (bool, error) {
	if !status.IsValid() {
		return false, errors.NewValidationError("invalid request status", string(status))
	}
	if r.status == status {
		return false, nil
	}

	r.status = status
	if status == RequestStatusDone {
		r.processedAt = &now
	} else {
		r.processedAt = nil
	}
	return true, nil
}

func (r *PrincipalRequest) ID() uint {
	return r.id
}

func (r *PrincipalRequest) SetID(id uint) {
	r.id = id
}

func (r *PrincipalRequest) UserID() string {
	return r.userID
}

func (r *PrincipalRequest) UserEmail() string {
	return r.userEmail
}

func (r *PrincipalRequest) DepositUSD() decimal.Decimal {
	return r.depositUSD
}

func (r *PrincipalRequest) ExchangeRate() decimal.Decimal {
	return r.exchangeRate
}

func (r *PrincipalRequest) IndicatedJPY() decimal.Decimal {
	return r.indicatedJPY
}

func (r *PrincipalRequest) Status() RequestStatus {
	return r.status
}

func (r *PrincipalRequest) RequestedAt() time.Time {
	return r.requestedAt
}

func (r *PrincipalRequest) ProcessedAt() *time.Time {
	return r.processedAt
}

func ReconstructPrincipalRequest(
	id uint,
	userID, userEmail string,
	depositUSD, exchangeRate, indicatedJPY decimal.Decimal,
	status RequestStatus,
	requestedAt time.Time,
	processedAt *time.Time,
) *PrincipalRequest {
	return &PrincipalRequest{
		id:           id,
		userID:       userID,
		userEmail:    userEmail,
		depositUSD:   depositUSD,
		exchangeRate: exchangeRate,
		indicatedJPY: indicatedJPY,
		status:       status,
		requestedAt:  requestedAt,
		processedAt:  processedAt,
	}
}
