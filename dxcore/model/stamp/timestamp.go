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

// Package stamp implements hour-resolution calendar timestamps in the packed
// YYYYMMDDHH form.
//
// Two value types share the four calendar fields (Year, Month, Day, Hour):
//
//   - Timestamp is a fully specified value. It usually names an absolute
//     instant, although parsing only checks field bounds, so a Timestamp may
//     still name a date that does not exist (2021-04-31). Such values fail
//     when converted with Time, and every operation that needs an instant
//     (comparison, arithmetic, iteration) reports ErrInvalidCalendarDate.
//
//   - Offset holds any subset of the four fields. It is used as an operand
//     for arithmetic ("3 months" is Months(3)) and as the partial form of a
//     timestamp built field by field. Offset.Timestamp resolves it once every
//     field is present.
//
// The packed text form is the interchange format. For every Timestamp that
// passes Validate, ParseTimestamp(t.String()) == t.
//
// Calendar arithmetic is delegated to a calendar.Clock. The methods on
// Timestamp use DefaultCalendar, which clamps the day-of-month when adding
// months (2021013100 + 1 month = 2021022800). Use NewCalendar with another
// clock for different behavior.
//
// All values are immutable. Operations that look like updates return a new
// value which the caller rebinds:
//
//	t, err = t.Add(stamp.Days(1))
package stamp

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"time"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model"
	"dirpx.dev/dxcal/dxcore/model/calendar"
	"gopkg.in/yaml.v3"
)

// PackedLen is the length of the packed YYYYMMDDHH encoding.
const PackedLen = 10

// Timestamp is a calendar position at hour resolution.
//
// The zero value is 0000000000, which passes Validate (the packed bounds
// admit zeros) but is not a calendar date.
type Timestamp struct {
	// Year is the year, within [0, 9999] for a valid value.
	Year int

	// Month is the month of the year, within [0, 12] for a valid value.
	Month int

	// Day is the day of the month, within [0, 31] for a valid value.
	Day int

	// Hour is the hour of the day, within [0, 23] for a valid value.
	Hour int
}

// Compile-time check that Timestamp implements model.Model interface.
var _ model.Model = (*Timestamp)(nil)

// New returns the Timestamp with the given fields. It performs no
// validation; call Validate or Time to check the value.
func New(year, month, day, hour int) Timestamp {
	return Timestamp{Year: year, Month: month, Day: day, Hour: hour}
}

// ParseTimestamp parses a packed YYYYMMDDHH value.
//
// The input must be exactly ten ASCII digits, otherwise the returned error
// wraps ErrBadLength. Each field is then checked against its bounds
// (month <= 12, day <= 31, hour <= 23); a violation wraps ErrOutOfRange and
// names the field. Whether the date exists on the calendar is not checked
// here: "2021023000" parses, and fails later in Time.
func ParseTimestamp(s string) (Timestamp, error) {
	if len(s) != PackedLen {
		return Timestamp{}, &dxerrors.ParseError{Type: "Timestamp", Value: s, Err: dxerrors.ErrBadLength}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Timestamp{}, &dxerrors.ParseError{Type: "Timestamp", Value: s, Err: dxerrors.ErrBadLength}
		}
	}

	t := Timestamp{
		Year:  digits(s[0:4]),
		Month: digits(s[4:6]),
		Day:   digits(s[6:8]),
		Hour:  digits(s[8:10]),
	}
	if err := t.Validate(); err != nil {
		return Timestamp{}, err
	}
	return t, nil
}

// MustParse is like ParseTimestamp but panics on error. It is intended for
// literals in tests and package-level variables.
func MustParse(s string) Timestamp {
	t, err := ParseTimestamp(s)
	if err != nil {
		panic(fmt.Sprintf("stamp: MustParse(%q): %v", s, err))
	}
	return t
}

func digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// FromTime returns the Timestamp of t's wall clock year, month, day and
// hour in t's own location. Minutes and below are dropped.
func FromTime(t time.Time) Timestamp {
	year, month, day := t.Date()
	return Timestamp{Year: year, Month: int(month), Day: day, Hour: t.Hour()}
}

// Get returns the value of field f, or 0 for an invalid Field.
func (t Timestamp) Get(f Field) int {
	switch f {
	case Year:
		return t.Year
	case Month:
		return t.Month
	case Day:
		return t.Day
	case Hour:
		return t.Hour
	default:
		return 0
	}
}

// String returns the packed YYYYMMDDHH text of t, each field zero-padded to
// its width.
func (t Timestamp) String() string {
	return Year.format(t.Year) + Month.format(t.Month) + Day.format(t.Day) + Hour.format(t.Hour)
}

// Int returns the packed form as an integer, so 2021013105 for 31 January
// 2021 05:00. For valid values it equals parsing String as base 10.
func (t Timestamp) Int() int64 {
	return int64(t.Year)*1_000_000 + int64(t.Month)*10_000 + int64(t.Day)*100 + int64(t.Hour)
}

// Hash returns a hash of the packed projection. Two values with the same
// String have the same Hash. Equality of instants does not enter into it.
func (t Timestamp) Hash() uint64 {
	return uint64(t.Int())
}

// Time returns t as an absolute instant in UTC.
//
// It fails with an error wrapping ErrInvalidCalendarDate when the fields do
// not name an existing calendar position: month or day 0, 31 April,
// 29 February outside leap years, or a year outside [1, 9999].
func (t Timestamp) Time() (time.Time, error) {
	tm, err := calendar.Date(t.Year, t.Month, t.Day, t.Hour)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %s: %w", t, err)
	}
	return tm, nil
}

// Offset returns t as an Offset with all four fields present.
func (t Timestamp) Offset() Offset {
	return NewOffset(t.Year, t.Month, t.Day, t.Hour)
}

// Validate checks every field against the bounds of the packed encoding.
// It does not check that the date exists; see Time.
func (t Timestamp) Validate() error {
	for f := Year; f <= Hour; f++ {
		if err := f.check("Timestamp", t.Get(f)); err != nil {
			return err
		}
	}
	return nil
}

// IsZero reports whether every field is zero.
func (t Timestamp) IsZero() bool {
	return t == Timestamp{}
}

// TypeName returns "Timestamp".
func (t Timestamp) TypeName() string {
	return "Timestamp"
}

// Redacted returns the packed text; timestamps carry nothing sensitive.
func (t Timestamp) Redacted() string {
	return t.String()
}

// Compare orders t and other by the instants they name. It returns -1, 0 or
// +1, or an error when either side fails Time.
func (t Timestamp) Compare(other Timestamp) (int, error) {
	a, err := t.Time()
	if err != nil {
		return 0, err
	}
	b, err := other.Time()
	if err != nil {
		return 0, err
	}
	return a.Compare(b), nil
}

// Equal reports whether t and other name the same instant. It is false when
// either is not a valid instant. Callers that must tell an unequal pair from
// an invalid one use Compare, or the generic Compare for other operands,
// which report ErrNotAbsolute and ErrInvalidCalendarDate.
func (t Timestamp) Equal(other Timestamp) bool {
	c, err := t.Compare(other)
	return err == nil && c == 0
}

// Before reports whether t is strictly earlier than other. It is false when
// either is not a valid instant; see Compare for the error.
func (t Timestamp) Before(other Timestamp) bool {
	c, err := t.Compare(other)
	return err == nil && c < 0
}

// After reports whether t is strictly later than other. It is false when
// either is not a valid instant; see Compare for the error.
func (t Timestamp) After(other Timestamp) bool {
	c, err := t.Compare(other)
	return err == nil && c > 0
}

// Add returns t moved forward by o, with absent fields of o counted as zero.
func (t Timestamp) Add(o Offset) (Timestamp, error) {
	return DefaultCalendar.Add(t, o)
}

// Sub returns t moved backward by o.
func (t Timestamp) Sub(o Offset) (Timestamp, error) {
	return DefaultCalendar.Sub(t, o)
}

// AddDelta returns t moved forward by the structured delta d.
func (t Timestamp) AddDelta(d calendar.Delta) (Timestamp, error) {
	return DefaultCalendar.AddDelta(t, d)
}

// SubDelta returns t moved backward by the structured delta d.
func (t Timestamp) SubDelta(d calendar.Delta) (Timestamp, error) {
	return DefaultCalendar.AddDelta(t, d.Neg())
}

// OffsetTo returns the calendar offset from t to other, largest units first,
// such that t.Add of the result is other in the common case. See
// calendar.Clock.Between for the exact semantics.
func (t Timestamp) OffsetTo(other Timestamp) (Offset, error) {
	return DefaultCalendar.Between(t, other)
}

// HoursBetween returns the absolute elapsed time between t and other in
// hours. The result does not depend on argument order and covers the whole
// range of years 1..9999, which a time.Duration cannot hold.
func (t Timestamp) HoursBetween(other Timestamp) (float64, error) {
	a, err := t.Time()
	if err != nil {
		return 0, err
	}
	b, err := other.Time()
	if err != nil {
		return 0, err
	}
	return math.Abs(float64(a.Unix()-b.Unix()) / 3600), nil
}

// Until returns the hourly sequence from t to end, both included.
func (t Timestamp) Until(end Timestamp) (iter.Seq[Timestamp], error) {
	return DefaultCalendar.Until(t, end)
}

// For returns the hourly sequence from t up to t.Add(o), excluding the end
// unless includeLast is set.
func (t Timestamp) For(o Offset, includeLast bool) (iter.Seq[Timestamp], error) {
	return DefaultCalendar.For(t, o, includeLast)
}

// MarshalJSON encodes a valid Timestamp as its packed string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the packed form either as a JSON string
// ("2021013100") or as a JSON number (2021013100). JSON null leaves t
// unchanged.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &dxerrors.UnmarshalError{Type: "Timestamp", Data: data, Reason: "empty data"}
	}
	if string(data) == "null" {
		return nil
	}

	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return &dxerrors.UnmarshalError{Type: "Timestamp", Data: data, Reason: err.Error()}
		}
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseTimestamp.
func (t *Timestamp) UnmarshalText(text []byte) error {
	parsed, err := ParseTimestamp(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes a valid Timestamp as a quoted scalar so that YAML
// readers keep the leading zeros.
func (t Timestamp) MarshalYAML() (any, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Tag: "!!str", Value: t.String()}, nil
}

// UnmarshalYAML decodes a scalar, quoted or not, via ParseTimestamp.
func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &dxerrors.UnmarshalError{Type: "Timestamp", Data: []byte(node.Value), Reason: "expected a scalar"}
	}
	parsed, err := ParseTimestamp(node.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
