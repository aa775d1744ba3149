// Package withdrawal covers how users want returns paid out and their
// requests to take principal back.
package withdrawal

import (
	"strings"
	"time"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

type Type string

const (
	TypeReturns   Type = "returns"
	TypePrincipal Type = "principal"
)

func (t Type) IsValid() bool {
	return t == TypeReturns || t == TypePrincipal
}

type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	default:
		return false
	}
}

// Preference is unique per (user, withdrawal type); saving one replaces the previous.
type Preference struct {
	id             uint
	userID         string
	withdrawalType Type
	frequency      *Frequency
	createdAt      time.Time
	updatedAt      time.Time
}

// NewPreference validates the pairing rule: returns need a frequency,
// principal must not have one.
func NewPreference(userID string, t Type, frequency string, now time.Time) (*Preference, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewValidationError("user id is required")
	}
	if !t.IsValid() {
		return nil, errors.NewValidationError("invalid withdrawal type", string(t))
	}

	p := &Preference{
		userID:         userID,
		withdrawalType: t,
		createdAt:      now,
		updatedAt:      now,
	}

	frequency = strings.TrimSpace(frequency)
	switch t {
	case TypeReturns:
		f := Frequency(frequency)
		if !f.IsValid() {
			return nil, errors.NewValidationError("returns withdrawals need a frequency of weekly, biweekly, monthly or quarterly")
		}
		p.frequency = &f
	case TypePrincipal:
		if frequency != "" {
			return nil, errors.NewValidationError("principal withdrawals do not take a frequency")
		}
	}

	return p, nil
}

func (p *Preference) ID() uint {
	return p.id
}

func (p *Preference) SetID(id uint) {
	p.id = id
}

func (p *Preference) UserID() string {
	return p.userID
}

func (p *Preference) Type() Type {
	return p.withdrawalType
}

func (p *Preference) Frequency() *Frequency {
	return p.frequency
}

func (p *Preference) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Preference) UpdatedAt() time.Time {
	return p.updatedAt
}

func ReconstructPreference(id uint, userID string, t Type, frequency *Frequency, createdAt, updatedAt time.Time) *Preference {
	return &Preference{
		id:             id,
		userID:         userID,
		withdrawalType: t,
		frequency:      frequency,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}
