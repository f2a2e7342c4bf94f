package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/life-grid/internal/config"
)

const secondsPerDay = 24 * 60 * 60

// Elapsed holds the number of fully completed units between a birthdate and
// a reference date. Each component is capped to the grid ceiling of its mode.
type Elapsed struct {
	Years  int
	Months int
	Weeks  int
}

// For returns the component matching the given view mode.
func (e Elapsed) For(mode ViewMode) int {
	switch mode {
	case ModeYears:
		return e.Years
	case ModeMonths:
		return e.Months
	case ModeWeeks:
		return e.Weeks
	default:
		return 0
	}
}

// ComputeElapsed parses birthDate and measures the completed years, months
// and weeks up to ref. It fails with ErrInvalidDate when the input is not a
// real calendar date and with ErrFutureDate when it lies after ref.
func ComputeElapsed(birthDate string, ref time.Time) (Elapsed, error) {
	birth, err := ParseBirthDate(birthDate, ref.Location())
	if err != nil {
		return Elapsed{}, err
	}
	return Between(birth, ref)
}

// ComputeElapsedNow is ComputeElapsed against the clock's current time.
func ComputeElapsedNow(birthDate string, clock Clock) (Elapsed, error) {
	return ComputeElapsed(birthDate, clock.Now())
}

// ParseBirthDate converts user input into a calendar date at midnight in loc.
// Only layouts carrying a year are accepted.
func ParseBirthDate(input string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	t, yearKnown, err := parseDate(value)
	if err != nil || !yearKnown {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// Between computes the elapsed units from birth to ref using calendar dates
// only; the time of day of either argument is ignored.
func Between(birth, ref time.Time) (Elapsed, error) {
	by, bm, bd := birth.Date()
	ry, rm, rd := ref.Date()

	// UTC midnights keep the day count immune to DST transitions.
	birthDay := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	refDay := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)

	if birthDay.After(refDay) {
		return Elapsed{}, ErrFutureDate
	}

	years := ry - by
	if rm < bm || (rm == bm && rd < bd) {
		years--
	}

	months := completedMonths(birthDay, refDay)

	days := (refDay.Unix() - birthDay.Unix()) / secondsPerDay
	weeks := days / config.DaysPerWeek

	return Elapsed{
		Years:  min(years, config.MaxYears),
		Months: min(months, config.MaxMonths),
		Weeks:  int(min(weeks, int64(config.MaxWeeks))),
	}, nil
}

// completedMonths counts whole months between two UTC midnights. The
// reference is stepped back by the calendar month difference and the last
// month is dropped when that lands before birth. A reference late in
// February steps back from day 30, and the last day of a month completes a
// span of a single month.
func completedMonths(birthDay, refDay time.Time) int {
	by, bm, _ := birthDay.Date()
	ry, rm, rd := refDay.Date()

	months := (ry-by)*config.MonthsPerYear + int(rm) - int(bm)
	if months < 1 {
		return 0
	}

	day := rd
	if rm == time.February && rd > config.LateFebruaryDay {
		day = config.FebruaryAnchorDay
	}
	anchor := time.Date(ry, rm, day, 0, 0, 0, 0, time.UTC)
	anchor = time.Date(anchor.Year(), anchor.Month()-time.Month(months), anchor.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case !anchor.Before(birthDay):
		return months
	case months == 1 && rd == daysIn(ry, rm):
		return months
	default:
		return months - 1
	}
}

// daysIn returns the number of days of month m in year y.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// parseDate handles the date layouts accepted for a birthdate, including the
// ones found in vCard BDAY fields. The boolean reports whether a year was present.
func parseDate(value string) (time.Time, bool, error) {
	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrInvalidDate)
}
