/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package calendar is the calendar arithmetic primitive dxcal builds on.
//
// It answers three questions about the proleptic Gregorian calendar at hour
// resolution, in UTC:
//
//   - does a year/month/day/hour combination exist (Date),
//   - what instant is reached by adding a structured Delta (Clock.Add),
//   - what structured Delta separates two instants (Clock.Between).
//
// Month lengths and leap years come from cloudeng.io/datetime. Instants are
// plain time.Time values; the package never consults time zones and always
// constructs times in time.UTC.
package calendar

import (
	"fmt"
	"time"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"

	"cloudeng.io/datetime"
)

// Supported range of years for absolute instants.
const (
	MinYear = 1
	MaxYear = 9999
)

// Default is the Clock used when no other is configured. It clamps the
// day-of-month when adding months.
var Default = Clock{Overflow: Clamp}

// DaysIn returns the number of days in the given month of the given year.
func DaysIn(year int, month time.Month) int {
	return datetime.DaysInMonth(year, datetime.Month(month))
}

// Date returns the instant year-month-day hour:00 UTC.
//
// Unlike time.Date, Date does not normalize: every component must name an
// existing calendar position, otherwise the returned error wraps
// ErrInvalidCalendarDate and identifies the offending field. Year must be
// within [MinYear, MaxYear], month within [1, 12], day within the length of
// that month and hour within [0, 23].
func Date(year, month, day, hour int) (time.Time, error) {
	if year < MinYear || year > MaxYear {
		return time.Time{}, invalid("Year", year, fmt.Sprintf("must be within [%d, %d]", MinYear, MaxYear))
	}
	if month < 1 || month > 12 {
		return time.Time{}, invalid("Month", month, "must be within [1, 12]")
	}
	if n := DaysIn(year, time.Month(month)); day < 1 || day > n {
		return time.Time{}, invalid("Day", day, fmt.Sprintf("must be within [1, %d] for %04d-%02d", n, year, month))
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, invalid("Hour", hour, "must be within [0, 23]")
	}
	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC), nil
}

// InRange reports whether t falls within the supported years.
func InRange(t time.Time) bool {
	y := t.Year()
	return y >= MinYear && y <= MaxYear
}

func invalid(field string, value int, reason string) error {
	return &dxerrors.ValidationError{
		Type:   "Date",
		Field:  field,
		Reason: reason,
		Value:  value,
		Err:    dxerrors.ErrInvalidCalendarDate,
	}
}

// Clock performs calendar arithmetic under a given Overflow policy.
// The zero Clock clamps.
type Clock struct {
	Overflow Overflow
}

// Add returns t moved by d.
//
// Years and months are applied first, as a change of calendar month; the
// day-of-month is then resolved according to c.Overflow. Days and hours are
// applied afterwards as elapsed time, so they carry across month and year
// boundaries and respect leap years.
func (c Clock) Add(t time.Time, d Delta) time.Time {
	if d.Years != 0 || d.Months != 0 {
		year, month, day := t.Date()
		total := int(month) - 1 + d.Months + 12*d.Years
		year += floorDiv(total, 12)
		month = time.Month(total - 12*floorDiv(total, 12) + 1)
		if c.Overflow == Clamp {
			if n := DaysIn(year, month); day > n {
				day = n
			}
		}
		t = time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}

	// Keep the hour count small enough for a time.Duration.
	days := d.Days + d.Hours/24
	hours := d.Hours % 24
	return t.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
}

// Between returns the Delta that takes from to to, expressed in the largest
// units possible: whole months first (stepped with Add so the Overflow
// policy is honoured), then the remainder as days and hours. Every non-zero
// field carries the sign of to - from. Sub-hour remainders are dropped.
//
// For example, with the Clamp policy:
//
//	Between(2021-01-31 00h, 2021-02-28 00h) = {Months: 1}
//	Between(2021-01-01 00h, 2022-03-02 05h) = {Years: 1, Months: 2, Days: 1, Hours: 5}
func (c Clock) Between(from, to time.Time) Delta {
	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	anchor := c.Add(from, Delta{Months: months})

	if to.Before(from) {
		for to.After(anchor) {
			months++
			anchor = c.Add(from, Delta{Months: months})
		}
	} else {
		for to.Before(anchor) {
			months--
			anchor = c.Add(from, Delta{Months: months})
		}
	}

	hours := int(to.Sub(anchor) / time.Hour)
	return Delta{
		Years:  months / 12,
		Months: months % 12,
		Days:   hours / 24,
		Hours:  hours % 24,
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
