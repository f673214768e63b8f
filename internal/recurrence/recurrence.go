// Package recurrence implements the occurrence calculator for recurring
// transactions: pure date arithmetic over recurring rules, with no storage or
// clock dependencies.
package recurrence

import (
	"fmt"
	"time"

	"github.com/pennyledger/backend/internal/model"
)

// Advance returns the next occurrence strictly after d under rule.
//
// Daily rules add Interval days. Weekly rules add Interval weeks and, when
// DayOfWeek is set, shift forward (never backward) to the next matching
// weekday. Monthly rules add Interval months; when DayOfMonth is set the day
// is clamped to the last valid day of the target month, so a day-31 rule
// fires on the 30th of a 30-day month rather than rolling into the next one.
// Yearly rules add Interval years with optional MonthOfYear/DayOfMonth
// overrides and the same clamping. Time of day and location are preserved.
func Advance(d time.Time, rule model.RecurringRule) time.Time {
	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	switch rule.Frequency {
	case model.FrequencyWeekly:
		next := d.AddDate(0, 0, 7*interval)
		if rule.DayOfWeek != nil {
			target := time.Weekday(*rule.DayOfWeek % 7)
			shift := (int(target) - int(next.Weekday()) + 7) % 7
			next = next.AddDate(0, 0, shift)
		}
		return next

	case model.FrequencyMonthly:
		day := d.Day()
		if rule.DayOfMonth != nil {
			day = *rule.DayOfMonth
		}
		return dateWithClampedDay(d, d.Year(), d.Month()+time.Month(interval), day)

	case model.FrequencyYearly:
		month := d.Month()
		if rule.MonthOfYear != nil {
			month = time.Month(*rule.MonthOfYear)
		}
		day := d.Day()
		if rule.DayOfMonth != nil {
			day = *rule.DayOfMonth
		}
		return dateWithClampedDay(d, d.Year()+interval, month, day)

	default: // daily
		return d.AddDate(0, 0, interval)
	}
}

// FirstOccurrenceAfter resolves the first occurrence of a series relative to
// now. A future start date is the first occurrence itself; otherwise the rule
// is applied repeatedly from the start date until the result lands strictly
// after now. This is what keeps a series created long after its nominal start
// on a sensible upcoming date instead of hundreds of days overdue.
func FirstOccurrenceAfter(start time.Time, rule model.RecurringRule, now time.Time) time.Time {
	if start.After(now) {
		return start
	}
	occurrence := start
	for !occurrence.After(now) {
		occurrence = Advance(occurrence, rule)
	}
	return occurrence
}

// Describe renders a rule as a short human-readable frequency label,
// e.g. "Monthly" or "Every 2 weeks".
func Describe(rule model.RecurringRule) string {
	singular, plural := frequencyNouns(rule.Frequency)
	if rule.Interval <= 1 {
		return singular
	}
	return fmt.Sprintf("Every %d %s", rule.Interval, plural)
}

// ValidateRule checks a rule's shape at creation time. The calculator itself
// never validates; malformed day fields are handled at use time by clamping.
func ValidateRule(rule model.RecurringRule) error {
	if !rule.Frequency.Valid() {
		return fmt.Errorf("unknown frequency %q", rule.Frequency)
	}
	if rule.Interval < 1 {
		return fmt.Errorf("interval must be >= 1, got %d", rule.Interval)
	}
	if rule.DayOfWeek != nil && (*rule.DayOfWeek < 0 || *rule.DayOfWeek > 6) {
		return fmt.Errorf("dayOfWeek must be 0-6, got %d", *rule.DayOfWeek)
	}
	if rule.DayOfMonth != nil && (*rule.DayOfMonth < 1 || *rule.DayOfMonth > 31) {
		return fmt.Errorf("dayOfMonth must be 1-31, got %d", *rule.DayOfMonth)
	}
	if rule.MonthOfYear != nil && (*rule.MonthOfYear < 1 || *rule.MonthOfYear > 12) {
		return fmt.Errorf("monthOfYear must be 1-12, got %d", *rule.MonthOfYear)
	}
	return nil
}

// dateWithClampedDay builds a date in the given year/month with day clamped to
// the month's length, carrying over d's clock and location. The month may be
// out of range (e.g. month 14); time.Date normalizes it before clamping.
func dateWithClampedDay(d time.Time, year int, month time.Month, day int) time.Time {
	// Normalize year/month first so we clamp against the real target month.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, d.Location())
	year, month = firstOfMonth.Year(), firstOfMonth.Month()

	if last := daysInMonth(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func frequencyNouns(f model.Frequency) (singular, plural string) {
	switch f {
	case model.FrequencyDaily:
		return "Daily", "days"
	case model.FrequencyWeekly:
		return "Weekly", "weeks"
	case model.FrequencyMonthly:
		return "Monthly", "months"
	case model.FrequencyYearly:
		return "Yearly", "years"
	}
	return string(f), string(f)
}
