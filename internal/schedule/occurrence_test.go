package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestExpandTwoDayCourse(t *testing.T) {
	// Prescription created 08:00 day one, evaluated at 09:00: the first
	// morning dose is already past and must not be scheduled.
	created := date(2024, time.January, 1, 8, 0)
	now := date(2024, time.January, 1, 9, 0)
	times := ParseTiming("8am and 8pm")
	require.Len(t, times, 2)

	got := Expand(created, 2, times, now)

	assert.Equal(t, []time.Time{
		date(2024, time.January, 1, 20, 0),
		date(2024, time.January, 2, 8, 0),
		date(2024, time.January, 2, 20, 0),
	}, got)
}

func TestExpandNonPositiveDuration(t *testing.T) {
	times := []TimeOfDay{{Hour: 8}}
	now := date(2024, time.January, 1, 0, 0)

	assert.Empty(t, Expand(date(2024, time.January, 1, 8, 0), 0, times, now))
	assert.Empty(t, Expand(date(2024, time.January, 1, 8, 0), -3, times, now))
}

func TestExpandNoTimes(t *testing.T) {
	now := date(2024, time.January, 1, 0, 0)
	assert.Empty(t, Expand(date(2024, time.January, 1, 8, 0), 5, nil, now))
}

func TestExpandAllFuture(t *testing.T) {
	created := date(2024, time.March, 10, 12, 0)
	now := date(2024, time.March, 12, 23, 30)
	times := []TimeOfDay{{Hour: 9}, {Hour: 21}}

	got := Expand(created, 7, times, now)
	require.NotEmpty(t, got)
	for _, at := range got {
		assert.True(t, at.After(now), "occurrence %s is not in the future", at)
	}
	// 7 days x 2 times = 14 total, 6 of them on or before the 12th 23:30.
	assert.Len(t, got, 8)
}

func TestExpandChronologicalOrder(t *testing.T) {
	created := date(2024, time.June, 1, 0, 0)
	now := date(2024, time.May, 31, 0, 0)
	// daily times deliberately unsorted
	times := []TimeOfDay{{Hour: 21}, {Hour: 8, Minute: 30}}

	got := Expand(created, 3, times, now)
	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].After(got[i-1]), "sequence not ascending at %d", i)
	}
}

func TestExpandDeterministic(t *testing.T) {
	created := date(2024, time.February, 28, 10, 0)
	now := date(2024, time.February, 28, 0, 0)
	times := []TimeOfDay{{Hour: 10}, {Hour: 22}}

	first := Expand(created, 3, times, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Expand(created, 3, times, now))
	}
}
