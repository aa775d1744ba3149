package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

func TestMaturityDigestJob_ListsDueInvestmentsSoonestFirst(t *testing.T) {
	repo := newMemoryInvestments(
		newInvestment("late", "u1", vo.StatusActive, "1000", "10", timePtr(testNow.Add(6*24*time.Hour))),
		newInvestment("soon", "u2", vo.StatusActive, "2000", "0", timePtr(testNow.Add(24*time.Hour))),
		newInvestment("overdue", "u3", vo.StatusActive, "500", "5", timePtr(testNow.Add(-24*time.Hour))),
		newInvestment("far", "u1", vo.StatusActive, "3000", "0", timePtr(testNow.Add(20*24*time.Hour))),
		newInvestment("pending", "u4", vo.StatusPending, "100", "0", nil),
	)
	notifier := &recordingMaturityNotifier{}
	job := NewMaturityDigestJob(repo, notifier, 7, logger.NewNopLogger())
	job.clock = func() time.Time { return testNow }

	count, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.Len(t, notifier.notices, 1)
	notice := notifier.notices[0]
	assert.Equal(t, 7, notice.WindowDays)
	require.Len(t, notice.Items, 3)
	assert.Equal(t, "overdue", notice.Items[0].InvestmentID)
	assert.Equal(t, "soon", notice.Items[1].InvestmentID)
	assert.Equal(t, "late", notice.Items[2].InvestmentID)
	assert.Equal(t, "1010", notice.Items[2].TotalOwed.String())
}

func TestMaturityDigestJob_NothingDue(t *testing.T) {
	repo := newMemoryInvestments(
		newInvestment("far", "u1", vo.StatusActive, "3000", "0", timePtr(testNow.Add(20*24*time.Hour))),
	)
	notifier := &recordingMaturityNotifier{}
	job := NewMaturityDigestJob(repo, notifier, 0, logger.NewNopLogger())
	job.clock = func() time.Time { return testNow }

	count, err := job.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, notifier.notices)
}

func TestMaturityDigestJob_NotifierFailure(t *testing.T) {
	repo := newMemoryInvestments(
		newInvestment("soon", "u2", vo.StatusActive, "2000", "0", timePtr(testNow.Add(24*time.Hour))),
	)
	notifier := &recordingMaturityNotifier{Err: fmt.Errorf("smtp down")}
	job := NewMaturityDigestJob(repo, notifier, 7, logger.NewNopLogger())
	job.clock = func() time.Time { return testNow }

	count, err := job.Execute(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, count)
}
