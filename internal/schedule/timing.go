// Package schedule converts free-text medicine timings into concrete call
// instants. Parsing is deliberately forgiving: anything that cannot be read
// as a time is dropped, never surfaced as an error, so one bad segment can
// not sink a whole prescription.
package schedule

import (
	"sort"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time in 24-hour form.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// ParseTiming reads a timing description such as "9am and 2:30 pm" and
// returns the distinct times it mentions, sorted ascending. Segments are
// separated by the standalone word "and"; within a segment the first token
// that looks numeric (contains a colon, or is all digits once colons and an
// attached am/pm are removed) is taken as the time, and "am"/"pm" anywhere
// in the segment selects the half of the day. Unreadable segments
// contribute nothing.
func ParseTiming(text string) []TimeOfDay {
	seen := make(map[TimeOfDay]struct{})

	for _, segment := range splitSegments(text) {
		t, ok := parseSegment(segment)
		if !ok {
			continue
		}
		seen[t] = struct{}{}
	}

	times := make([]TimeOfDay, 0, len(seen))
	for t := range seen {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool {
		if times[i].Hour != times[j].Hour {
			return times[i].Hour < times[j].Hour
		}
		return times[i].Minute < times[j].Minute
	})
	return times
}

// splitSegments breaks the lowercased input into token groups separated by
// the word "and".
func splitSegments(text string) [][]string {
	var segments [][]string
	var current []string

	for _, token := range strings.Fields(strings.ToLower(text)) {
		if token == "and" {
			segments = append(segments, current)
			current = nil
			continue
		}
		current = append(current, token)
	}
	return append(segments, current)
}

func parseSegment(tokens []string) (TimeOfDay, bool) {
	numeric := ""
	for _, token := range tokens {
		// "9am" and "2:30pm" count as numeric once the attached
		// meridiem is peeled off; the marker itself is still read from
		// the whole segment below.
		candidate := strings.TrimSuffix(strings.TrimSuffix(token, "am"), "pm")
		if strings.Contains(candidate, ":") || isDigits(strings.ReplaceAll(candidate, ":", "")) {
			numeric = candidate
			break
		}
	}
	if numeric == "" {
		return TimeOfDay{}, false
	}

	var t TimeOfDay
	if strings.Contains(numeric, ":") {
		parts := strings.SplitN(numeric, ":", 2)
		hour, err := strconv.Atoi(parts[0])
		if err != nil {
			return TimeOfDay{}, false
		}
		minute, err := strconv.Atoi(parts[1])
		if err != nil {
			return TimeOfDay{}, false
		}
		t = TimeOfDay{Hour: hour, Minute: minute}
	} else {
		hour, err := strconv.Atoi(numeric)
		if err != nil {
			return TimeOfDay{}, false
		}
		t = TimeOfDay{Hour: hour}
	}

	// 12-hour markers may sit anywhere in the segment ("9 pm", "9pm").
	segment := strings.Join(tokens, " ")
	if strings.Contains(segment, "pm") && t.Hour != 12 {
		t.Hour += 12
	} else if strings.Contains(segment, "am") && t.Hour == 12 {
		t.Hour = 0
	}

	if !t.valid() {
		return TimeOfDay{}, false
	}
	return t, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
