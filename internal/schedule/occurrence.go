package schedule

import (
	"sort"
	"time"
)

// Expand produces the chronological call instants for a course of medicine:
// one per parsed time of day, per calendar day, for durationDays days
// starting on startDate's day. Instants at or before now are dropped, so the
// result only ever contains future times. A non-positive duration yields
// nothing.
func Expand(startDate time.Time, durationDays int, times []TimeOfDay, now time.Time) []time.Time {
	if durationDays <= 0 || len(times) == 0 {
		return nil
	}

	daily := make([]TimeOfDay, len(times))
	copy(daily, times)
	sort.Slice(daily, func(i, j int) bool {
		if daily[i].Hour != daily[j].Hour {
			return daily[i].Hour < daily[j].Hour
		}
		return daily[i].Minute < daily[j].Minute
	})

	var occurrences []time.Time
	for day := 0; day < durationDays; day++ {
		callDate := startDate.AddDate(0, 0, day)
		for _, t := range daily {
			at := time.Date(callDate.Year(), callDate.Month(), callDate.Day(),
				t.Hour, t.Minute, 0, 0, startDate.Location())
			if at.After(now) {
				occurrences = append(occurrences, at)
			}
		}
	}
	return occurrences
}
