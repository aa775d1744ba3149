package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/shared/logger"
)

type countingRefresher struct {
	exchangeRate atomic.Int32
	apy          atomic.Int32
}

func (c *countingRefresher) RefreshExchangeRate(context.Context) error {
	c.exchangeRate.Add(1)
	return nil
}

func (c *countingRefresher) RefreshAPY(context.Context) error {
	c.apy.Add(1)
	return assert.AnError
}

type countingJob struct {
	runs atomic.Int32
}

func (j *countingJob) Execute(context.Context) (int, error) {
	j.runs.Add(1)
	return 0, nil
}

func TestSchedulerManager_FeedJobsStartImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	refresher := &countingRefresher{}
	require.NoError(t, m.RegisterFeedJobs(refresher, time.Hour, 50*time.Millisecond))
	assert.Len(t, m.Jobs(), 2)

	m.Start()
	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool {
		return refresher.exchangeRate.Load() >= 1 && refresher.apy.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	assert.NoError(t, m.Stop())
}

func TestSchedulerManager_RegisterMaturityDigest(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, m.RegisterMaturityDigest(&countingJob{}, ""))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "maturity-digest", m.Jobs()[0].Name())

	assert.Error(t, m.RegisterMaturityDigest(&countingJob{}, "not a cron"))
}

func TestSchedulerManager_RunBatchSwallowsErrors(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)

	job := &countingJob{}
	m.runBatch(context.Background(), "test", job)
	assert.Equal(t, int32(1), job.runs.Load())
}
