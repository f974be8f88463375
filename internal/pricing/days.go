package pricing

import (
	"math"
	"time"
)

// MaxTierIndex is the rate slot used for five days and longer.
const MaxTierIndex = 4

// DayCount counts calendar days of an inclusive range; a same-day rental is
// one day. Never less than 1.
func DayCount(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// TierIndex maps a day count onto a rate slot and the days charged beyond it.
func TierIndex(days int) (idx, extraDays int) {
	switch {
	case days <= 1:
		return 0, 0
	case days <= MaxTierIndex+1:
		return days - 1, 0
	default:
		return MaxTierIndex, days - (MaxTierIndex + 1)
	}
}
