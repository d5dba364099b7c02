package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ROCOffset converts a Gregorian year into the local calendar epoch.
const ROCOffset = 1911

// academicYearStart is the month in which a new academic year begins.
const academicYearStart = time.August

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole 24h periods from start to end, floored.
// It is negative when end precedes start.
func DaysBetween(start, end time.Time) int {
	d := end.Sub(start)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// AddDays adds n calendar days, keeping the wall clock.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ToROCYear converts a Gregorian year to the local calendar epoch.
func ToROCYear(gregorian int) int {
	return gregorian - ROCOffset
}

// FromROCYear converts a local calendar year back to Gregorian.
func FromROCYear(roc int) int {
	return roc + ROCOffset
}

// AcademicYear returns the local-epoch academic year that contains t.
// The year turns over in August: 2025-10-01 is in 114, 2025-03-01 is in 113.
func AcademicYear(t time.Time) int {
	year := t.Year()
	if t.Month() < academicYearStart {
		year--
	}
	return ToROCYear(year)
}
