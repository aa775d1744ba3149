package investment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeProgress_LoopsAfterFirstCycle(t *testing.T) {
	now := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * 24 * time.Hour)

	p := ComputeProgress(created, 7, now)

	assert.Equal(t, 10, p.DaysPassed)
	assert.Equal(t, 3, p.DaysInCurrentCycle)
	assert.Equal(t, 4, p.RemainingDays)
	assert.InDelta(t, 42.857, p.Percent, 0.001)
}

func TestComputeProgress_FloorOfTwoPercent(t *testing.T) {
	now := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created time.Time
		days    int
	}{
		{"just created", now, 30},
		{"exact cycle boundary", now.Add(-30 * 24 * time.Hour), 30},
		{"less than a day in", now.Add(-23 * time.Hour), 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputeProgress(tt.created, tt.days, now)
			assert.Equal(t, 0, p.DaysInCurrentCycle)
			assert.Equal(t, tt.days, p.RemainingDays)
			assert.Equal(t, MinProgressPercent, p.Percent)
		})
	}
}

func TestComputeProgress_LastDayOfCycle(t *testing.T) {
	now := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)
	p := ComputeProgress(now.Add(-6*24*time.Hour), 7, now)

	assert.Equal(t, 6, p.DaysInCurrentCycle)
	assert.Equal(t, 1, p.RemainingDays)
}

func TestComputeProgress_FutureStartAndBadPeriod(t *testing.T) {
	now := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)

	p := ComputeProgress(now.Add(48*time.Hour), 7, now)
	assert.Equal(t, 0, p.DaysPassed)
	assert.Equal(t, 7, p.RemainingDays)

	p = ComputeProgress(now, 0, now)
	assert.Equal(t, MinProgressPercent, p.Percent)
}
