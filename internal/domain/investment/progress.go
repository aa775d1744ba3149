package investment

import (
	"time"

	"github.com/perkloop/perkloop/internal/shared/biztime"
)

// MinProgressPercent keeps the progress bar from rendering empty.
const MinProgressPercent = 2.0

// Progress is the derived position inside the recurring cycle. It is
// recomputed on every read and never stored.
type Progress struct {
	DaysPassed         int
	DaysInCurrentCycle int
	RemainingDays      int
	Percent            float64
}

// ComputeProgress loops over cycles of investmentDays starting at cycleStart:
// after the first cycle completes the countdown starts again.
func ComputeProgress(cycleStart time.Time, investmentDays int, now time.Time) Progress {
	if investmentDays <= 0 {
		return Progress{Percent: MinProgressPercent}
	}

	daysPassed := biztime.WholeDaysBetween(cycleStart, now)
	inCycle := daysPassed % investmentDays

	percent := float64(inCycle) / float64(investmentDays) * 100
	if percent < MinProgressPercent {
		percent = MinProgressPercent
	}

	return Progress{
		DaysPassed:         daysPassed,
		DaysInCurrentCycle: inCycle,
		RemainingDays:      investmentDays - inCycle,
		Percent:            percent,
	}
}
