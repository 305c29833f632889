package dlutil

import (
	"time"
)

func GetSpeed(downloaded int64, startTime time.Time) float64 {
	if startTime.IsZero() {
		return 0
	}
	elapsed := time.Since(startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(downloaded) / elapsed
}

// Percent returns downloaded/total in the range [0, 1]; an unknown total
// yields 0.
func Percent(downloaded, total int64) float64 {
	if total <= 0 || downloaded <= 0 {
		return 0
	}
	if downloaded >= total {
		return 1
	}
	return float64(downloaded) / float64(total)
}
