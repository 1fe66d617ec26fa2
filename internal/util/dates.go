package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

var timeOfDayPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// PolishMonth resolves a Polish genitive month name ("stycznia", "lutego", ...).
func PolishMonth(name string) (time.Month, bool) {
	m := map[string]time.Month{
		"stycznia":     time.January,
		"lutego":       time.February,
		"marca":        time.March,
		"kwietnia":     time.April,
		"maja":         time.May,
		"czerwca":      time.June,
		"lipca":        time.July,
		"sierpnia":     time.August,
		"września":     time.September,
		"października": time.October,
		"listopada":    time.November,
		"grudnia":      time.December,
	}

	month, ok := m[strings.ToLower(name)]
	return month, ok
}

var (
	warsawOnce sync.Once
	warsawLoc  *time.Location
)

func warsaw() *time.Location {
	warsawOnce.Do(func() {
		loc, err := time.LoadLocation("Europe/Warsaw")
		if err != nil {
			loc = time.FixedZone("CET", 60*60)
		}
		warsawLoc = loc
	})

	return warsawLoc
}

// NormalizePublicationTime maps the locale-specific publication text of a
// listing page to a stable display form. A bare "HH:MM" is the site's way of
// saying "today", given in UTC; it is converted to Warsaw local time. A full
// date with a Polish month name ("3 maja 2025") is reformatted numerically.
// Anything else is returned verbatim.
func NormalizePublicationTime(raw string, now time.Time) string {
	trimmed := strings.TrimSpace(raw)

	if timeOfDayPattern.MatchString(trimmed) {
		parsed, err := time.Parse("15:04", trimmed)
		if err != nil {
			return trimmed
		}

		utc := time.Date(now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)

		return utc.In(warsaw()).Format("15:04")
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 3 {
		day, dayErr := strconv.Atoi(fields[0])
		month, monthOk := PolishMonth(fields[1])
		year, yearErr := strconv.Atoi(fields[2])

		if dayErr == nil && monthOk && yearErr == nil {
			return fmt.Sprintf("%02d.%02d.%d", day, month, year)
		}
	}

	return trimmed
}
