package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// MaturityDigestJob e-mails administrators the active investments whose
// expected return date falls within the maturing window, soonest first.
// Nothing is sent when no investment is due.
type MaturityDigestJob struct {
	investments investment.Repository
	notifier    MaturityNotifier
	windowDays  int
	logger      logger.Interface
	clock       func() time.Time
}

func NewMaturityDigestJob(investments investment.Repository, notifier MaturityNotifier, windowDays int, logger logger.Interface) *MaturityDigestJob {
	if windowDays <= 0 {
		windowDays = defaultMaturingWindowDays
	}
	return &MaturityDigestJob{
		investments: investments,
		notifier:    notifier,
		windowDays:  windowDays,
		logger:      logger,
		clock:       biztime.NowUTC,
	}
}

// Execute returns the number of investments listed in the digest.
func (j *MaturityDigestJob) Execute(ctx context.Context) (int, error) {
	now := j.clock()
	until := biztime.AddDays(now, j.windowDays)

	active, err := j.investments.List(ctx, investment.ListFilter{Statuses: []vo.Status{vo.StatusActive}})
	if err != nil {
		return 0, errors.WrapPersistence("list active investments", "", err)
	}

	items := make([]MaturingItem, 0)
	for _, inv := range active {
		due := inv.ExpectedReturnDate()
		if due == nil || due.After(until) {
			continue
		}
		items = append(items, MaturingItem{
			InvestmentID:       inv.ID(),
			UserID:             inv.UserID(),
			ProductName:        inv.ProductName(),
			TotalOwed:          inv.TotalOwed(),
			ExpectedReturnDate: *due,
		})
	}
	if len(items) == 0 {
		return 0, nil
	}

	sort.Slice(items, func(a, b int) bool {
		return items[a].ExpectedReturnDate.Before(items[b].ExpectedReturnDate)
	})

	if j.notifier != nil {
		notice := MaturityNotice{WindowDays: j.windowDays, Items: items, GeneratedAt: now}
		if err := j.notifier.NotifyMaturingInvestments(ctx, notice); err != nil {
			j.logger.Errorw("failed to send maturity digest", "count", len(items), "error", err)
			return len(items), err
		}
	}

	j.logger.Infow("maturity digest sent", "count", len(items), "window_days", j.windowDays)
	return len(items), nil
}
