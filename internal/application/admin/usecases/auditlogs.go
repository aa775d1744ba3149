package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"time"

	"github.com/perkloop/perkloop/internal/application/admin/dto"
	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/constants"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

var auditCSVHeader = []string{"Timestamp", "Action Type", "Investment ID", "Details"}

type ListAuditLogsQuery struct {
	Actor Actor
	Limit int
}

// ListAuditLogsUseCase reads the most recent audit entries.
type ListAuditLogsUseCase struct {
	repo   audit.Repository
	roles  RoleChecker
	logger logger.Interface
	clock  func() time.Time
}

func NewListAuditLogsUseCase(repo audit.Repository, roles RoleChecker, logger logger.Interface) *ListAuditLogsUseCase {
	return &ListAuditLogsUseCase{
		repo:   repo,
		roles:  roles,
		logger: logger,
		clock:  biztime.NowUTC,
	}
}

// NormalizeAuditLimit applies the default and the cap.
func NormalizeAuditLimit(limit int) int {
	if limit <= 0 {
		return constants.DefaultAuditLogLimit
	}
	if limit > constants.MaxAuditLogLimit {
		return constants.MaxAuditLogLimit
	}
	return limit
}

func (uc *ListAuditLogsUseCase) Execute(ctx context.Context, query ListAuditLogsQuery) ([]dto.AuditLogDTO, error) {
	if err := requireAdmin(ctx, uc.roles, query.Actor, uc.logger); err != nil {
		return nil, err
	}

	entries, err := uc.repo.ListRecent(ctx, NormalizeAuditLimit(query.Limit))
	if err != nil {
		uc.logger.Errorw("failed to list audit logs", "error", err)
		return nil, errors.WrapPersistence("list audit logs", "", err)
	}

	result := make([]dto.AuditLogDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.AuditLogDTO{
			ID:           e.ID(),
			AdminUserID:  e.AdminUserID(),
			ActionType:   string(e.Action()),
			InvestmentID: e.InvestmentID(),
			Details:      e.Details(),
			IPAddress:    e.IPAddress(),
			CreatedAt:    e.CreatedAt(),
		})
	}
	return result, nil
}

// ExportCSV renders the same entries as a CSV download.
func (uc *ListAuditLogsUseCase) ExportCSV(ctx context.Context, query ListAuditLogsQuery) (string, []byte, error) {
	logs, err := uc.Execute(ctx, query)
	if err != nil {
		return "", nil, err
	}

	body, err := EncodeAuditCSV(logs)
	if err != nil {
		uc.logger.Errorw("failed to encode audit logs", "error", err)
		return "", nil, errors.NewInternalError("failed to encode audit logs")
	}
	return "audit-logs-" + biztime.FormatBizDate(uc.clock()) + ".csv", body, nil
}

func EncodeAuditCSV(logs []dto.AuditLogDTO) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(auditCSVHeader); err != nil {
		return nil, err
	}
	for _, l := range logs {
		details, err := json.Marshal(l.Details)
		if err != nil {
			return nil, err
		}
		investmentID := missingValue
		if l.InvestmentID != nil {
			investmentID = spreadsheetSafe(*l.InvestmentID)
		}
		record := []string{
			l.CreatedAt.UTC().Format(time.RFC3339),
			spreadsheetSafe(l.ActionType),
			investmentID,
			spreadsheetSafe(string(details)),
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
