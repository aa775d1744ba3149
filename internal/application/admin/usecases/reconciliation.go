package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/admin/dto"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

const missingValue = "N/A"

var refundCSVHeader = []string{"Email", "Bank Name", "Branch", "Account Number", "Holder Name", "Refund Amount"}

// RefundList is the projection of unresolved investments joined with the
// owners' bank details.
type RefundList struct {
	Rows  []dto.RefundRowDTO
	Total decimal.Decimal
}

func buildRefundList(ctx context.Context, investments investment.Repository, profiles profile.Repository) (*RefundList, error) {
	invs, err := investments.List(ctx, investment.ListFilter{Statuses: vo.ReconciliationStatuses()})
	if err != nil {
		return nil, errors.WrapPersistence("list investments for refund", "", err)
	}

	userIDs := make([]string, 0, len(invs))
	seen := make(map[string]struct{}, len(invs))
	for _, inv := range invs {
		if _, ok := seen[inv.UserID()]; ok {
			continue
		}
		seen[inv.UserID()] = struct{}{}
		userIDs = append(userIDs, inv.UserID())
	}

	byUser := map[string]*profile.Profile{}
	if len(userIDs) > 0 {
		byUser, err = profiles.GetByUserIDs(ctx, userIDs)
		if err != nil {
			return nil, errors.WrapPersistence("get profiles for refund", "", err)
		}
	}

	list := &RefundList{Rows: make([]dto.RefundRowDTO, 0, len(invs)), Total: decimal.Zero}
	for _, inv := range invs {
		row := dto.RefundRowDTO{
			InvestmentID: inv.ID(),
			UserID:       inv.UserID(),
			Status:       inv.Status().String(),
			RefundAmount: inv.TotalOwed(),
		}
		if p, ok := byUser[inv.UserID()]; ok && p != nil {
			bank := p.BankAccount()
			row.Email = p.Email()
			row.BankName = bank.BankName
			row.Branch = bank.Branch
			row.AccountNumber = bank.AccountNumber
			row.HolderName = bank.HolderName
		}
		list.Rows = append(list.Rows, row)
		list.Total = list.Total.Add(row.RefundAmount)
	}
	return list, nil
}

// RefundFilename is the download name of the refund list for the business date of now.
func RefundFilename(now time.Time) string {
	return "refund-list-" + biztime.FormatBizDate(now) + ".csv"
}

func orMissing(v string) string {
	if v == "" {
		return missingValue
	}
	return spreadsheetSafe(v)
}

// spreadsheetSafe prefixes a cell that a spreadsheet would evaluate as a
// formula with a quote so it is shown as text.
func spreadsheetSafe(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// EncodeRefundCSV renders the refund rows with missing values written as N/A.
func EncodeRefundCSV(rows []dto.RefundRowDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(refundCSVHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			orMissing(r.Email),
			orMissing(r.BankName),
			orMissing(r.Branch),
			orMissing(r.AccountNumber),
			orMissing(r.HolderName),
			r.RefundAmount.String(),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportRefundListUseCase produces the manual refund list as CSV.
type ExportRefundListUseCase struct {
	investments investment.Repository
	profiles    profile.Repository
	roles       RoleChecker
	logger      logger.Interface
	clock       func() time.Time
}

func NewExportRefundListUseCase(
	investments investment.Repository,
	profiles profile.Repository,
	roles RoleChecker,
	logger logger.Interface,
) *ExportRefundListUseCase {
	return &ExportRefundListUseCase{
		investments: investments,
		profiles:    profiles,
		roles:       roles,
		logger:      logger,
		clock:       biztime.NowUTC,
	}
}

// Execute returns the file name and CSV body.
func (uc *ExportRefundListUseCase) Execute(ctx context.Context, actor Actor) (string, []byte, error) {
	uc.logger.Infow("executing export refund list use case", "admin_id", actor.UserID)

	if err := requireAdmin(ctx, uc.roles, actor, uc.logger); err != nil {
		return "", nil, err
	}

	list, err := buildRefundList(ctx, uc.investments, uc.profiles)
	if err != nil {
		uc.logger.Errorw("failed to build refund list", "error", err)
		return "", nil, err
	}

	body, err := EncodeRefundCSV(list.Rows)
	if err != nil {
		uc.logger.Errorw("failed to encode refund list", "error", err)
		return "", nil, errors.NewInternalError("failed to encode refund list")
	}

	uc.logger.Infow("refund list exported", "rows", len(list.Rows), "total", list.Total.String())
	return RefundFilename(uc.clock()), body, nil
}
