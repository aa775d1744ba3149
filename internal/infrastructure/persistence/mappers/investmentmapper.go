package mappers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
)

// InvestmentMapper handles the conversion between Investment domain entities and persistence models.
type InvestmentMapper interface {
	ToEntity(model *models.InvestmentModel) (*investment.Investment, error)
	ToEntities(models []*models.InvestmentModel) ([]*investment.Investment, error)
	ToModel(entity *investment.Investment) *models.InvestmentModel
}

type InvestmentMapperImpl struct{}

func NewInvestmentMapper() InvestmentMapper {
	return &InvestmentMapperImpl{}
}

// ToModel flattens deployment and payout metadata into nullable columns.
func (m *InvestmentMapperImpl) ToModel(entity *investment.Investment) *models.InvestmentModel {
	if entity == nil {
		return nil
	}

	model := &models.InvestmentModel{
		ID:                 entity.ID(),
		UserID:             entity.UserID(),
		ProductName:        entity.ProductName(),
		DepositAmount:      entity.DepositAmount(),
		InvestmentDays:     entity.InvestmentDays(),
		PaymentMethod:      entity.PaymentMethod().String(),
		Status:             entity.Status().String(),
		Returns:            entity.Returns(),
		ReferenceCode:      entity.ReferenceCode(),
		ExpectedReturnDate: entity.ExpectedReturnDate(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}

	if dep := entity.Deployment(); dep != nil {
		model.JPYAmount = decimalPtr(dep.JPYAmount)
		model.JPYReceivedAt = timePtr(dep.JPYReceivedAt)
		model.USDCAmount = decimalPtr(dep.USDCAmount)
		model.USDCConvertedAt = timePtr(dep.USDCConvertedAt)
		model.DeployTxHash = stringPtr(dep.TxHash)
		model.DeployedAt = timePtr(dep.DeployedAt)
	}

	if p := entity.Payout(); p != nil {
		model.PayoutAmount = decimalPtr(p.Amount)
		model.PayoutProcessedAt = timePtr(p.ProcessedAt)
		model.PayoutTransactionID = stringPtr(p.TransactionID)
	}

	return model
}

func (m *InvestmentMapperImpl) ToEntity(model *models.InvestmentModel) (*investment.Investment, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to map investment %s: %w", model.ID, err)
	}
	method, err := vo.NewPaymentMethod(model.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("failed to map investment %s: %w", model.ID, err)
	}

	var deployment *investment.Deployment
	if model.DeployTxHash != nil {
		deployment = &investment.Deployment{
			JPYAmount:       derefDecimal(model.JPYAmount),
			JPYReceivedAt:   derefTime(model.JPYReceivedAt),
			USDCAmount:      derefDecimal(model.USDCAmount),
			USDCConvertedAt: derefTime(model.USDCConvertedAt),
			TxHash:          *model.DeployTxHash,
			DeployedAt:      derefTime(model.DeployedAt),
		}
	}

	var payout *investment.Payout
	if model.PayoutTransactionID != nil {
		payout = &investment.Payout{
			Amount:        derefDecimal(model.PayoutAmount),
			ProcessedAt:   derefTime(model.PayoutProcessedAt),
			TransactionID: *model.PayoutTransactionID,
		}
	}

	return investment.ReconstructInvestment(
		model.ID, model.UserID, model.ProductName,
		model.DepositAmount,
		model.InvestmentDays,
		method,
		status,
		model.Returns,
		model.ReferenceCode,
		utcPtr(model.ExpectedReturnDate),
		deployment,
		payout,
		model.CreatedAt.UTC(), model.UpdatedAt.UTC(),
	), nil
}

func (m *InvestmentMapperImpl) ToEntities(items []*models.InvestmentModel) ([]*investment.Investment, error) {
	result := make([]*investment.Investment, 0, len(items))
	for _, model := range items {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, nil
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
