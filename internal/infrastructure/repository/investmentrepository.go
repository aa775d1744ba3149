package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/mappers"
	"github.com/perkloop/perkloop/internal/infrastructure/persistence/models"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// InvestmentRepository implements investment.Repository with GORM.
// Every method joins the transaction carried by ctx, if any.
type InvestmentRepository struct {
	db     *gorm.DB
	mapper mappers.InvestmentMapper
	logger logger.Interface
}

func NewInvestmentRepository(gdb *gorm.DB, logger logger.Interface) investment.Repository {
	return &InvestmentRepository{
		db:     gdb,
		mapper: mappers.NewInvestmentMapper(),
		logger: logger,
	}
}

func (r *InvestmentRepository) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *investment.Investment) error {
	model := r.mapper.ToModel(inv)
	if err := r.conn(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create investment", "id", inv.ID(), "error", err)
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

// Update writes every column, including created_at, which a deposit merge resets.
func (r *InvestmentRepository) Update(ctx context.Context, inv *investment.Investment) error {
	model := r.mapper.ToModel(inv)
	result := r.conn(ctx).Model(&models.InvestmentModel{ID: model.ID}).Select("*").Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update investment", "id", inv.ID(), "error", result.Error)
		return fmt.Errorf("failed to update investment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return investment.ErrNotFound(inv.ID())
	}
	return nil
}

func (r *InvestmentRepository) Delete(ctx context.Context, id string) error {
	result := r.conn(ctx).Where("id = ?", id).Delete(&models.InvestmentModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete investment", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete investment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return investment.ErrNotFound(id)
	}
	return nil
}

func (r *InvestmentRepository) GetByID(ctx context.Context, id string) (*investment.Investment, error) {
	var model models.InvestmentModel
	if err := r.conn(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investment.ErrNotFound(id)
		}
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvestmentRepository) FindOpenByUserAndProduct(ctx context.Context, userID, productName string) (*investment.Investment, error) {
	var model models.InvestmentModel
	err := r.conn(ctx).
		Where("user_id = ? AND product_name = ?", userID, productName).
		Scopes(db.StatusIn(statusStrings(vo.OpenStatuses())...), db.NewestFirst()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find open investment: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvestmentRepository) ListByUser(ctx context.Context, userID string) ([]*investment.Investment, error) {
	return r.List(ctx, investment.ListFilter{UserID: userID})
}

func (r *InvestmentRepository) List(ctx context.Context, filter investment.ListFilter) ([]*investment.Investment, error) {
	var items []*models.InvestmentModel
	query := r.conn(ctx).Scopes(
		db.StatusIn(statusStrings(filter.Statuses)...),
		db.NewestFirst(),
		db.Limit(filter.Limit),
	)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return r.mapper.ToEntities(items)
}

// SuspendAllActive is a single UPDATE so the window where some rows are
// suspended and others are not is one statement wide.
func (r *InvestmentRepository) SuspendAllActive(ctx context.Context, now time.Time) (int64, error) {
	result := r.conn(ctx).Model(&models.InvestmentModel{}).
		Where("status = ?", vo.StatusActive.String()).
		Updates(map[string]any{
			"status":     vo.StatusSuspended.String(),
			"updated_at": now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to suspend active investments", "error", result.Error)
		return result.RowsAffected, fmt.Errorf("failed to suspend investments: %w", result.Error)
	}
	r.logger.Warnw("active investments suspended", "count", result.RowsAffected)
	return result.RowsAffected, nil
}

func (r *InvestmentRepository) CountByStatus(ctx context.Context, statuses ...vo.Status) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.InvestmentModel{}).
		Scopes(db.StatusIn(statusStrings(statuses)...)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count investments: %w", err)
	}
	return count, nil
}

func (r *InvestmentRepository) SumDeposits(ctx context.Context, statuses ...vo.Status) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.conn(ctx).Model(&models.InvestmentModel{}).
		Select("SUM(deposit_amount)").
		Scopes(db.StatusIn(statusStrings(statuses)...)).
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum deposits: %w", err)
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

func (r *InvestmentRepository) CountMaturingBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&models.InvestmentModel{}).
		Where("status = ?", vo.StatusActive.String()).
		Where("expected_return_date >= ? AND expected_return_date <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count maturing investments: %w", err)
	}
	return count, nil
}

type userTotalsRow struct {
	UserID         string
	OpenDeposits   decimal.NullDecimal
	ActiveDeposits decimal.NullDecimal
	ActiveCount    int64
	PendingCount   int64
	TotalReturns   decimal.NullDecimal
}

func (r *InvestmentRepository) TotalsByUser(ctx context.Context) ([]investment.UserTotals, error) {
	var rows []userTotalsRow
	err := r.conn(ctx).Model(&models.InvestmentModel{}).
		Select(`user_id,
			SUM(deposit_amount) AS open_deposits,
			SUM(CASE WHEN status = ? THEN deposit_amount ELSE 0 END) AS active_deposits,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS active_count,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS pending_count,
			SUM(accrued_returns) AS total_returns`,
			vo.StatusActive.String(), vo.StatusActive.String(), vo.StatusPending.String()).
		Scopes(db.StatusIn(statusStrings(vo.OpenStatuses())...)).
		Group("user_id").
		Order("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate investments by user: %w", err)
	}

	result := make([]investment.UserTotals, 0, len(rows))
	for _, row := range rows {
		result = append(result, investment.UserTotals{
			UserID:         row.UserID,
			OpenDeposits:   nullToZero(row.OpenDeposits),
			ActiveDeposits: nullToZero(row.ActiveDeposits),
			ActiveCount:    row.ActiveCount,
			PendingCount:   row.PendingCount,
			Returns:        nullToZero(row.TotalReturns),
		})
	}
	return result, nil
}

func statusStrings(statuses []vo.Status) []string {
	result := make([]string, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, s.String())
	}
	return result
}

func nullToZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
