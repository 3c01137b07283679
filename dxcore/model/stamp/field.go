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

package stamp

import (
	"encoding/json"
	"fmt"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Field names one of the four components of a Timestamp or an Offset.
//
// The packed YYYYMMDDHH encoding lays the fields out in declaration order,
// Year first, each with a fixed decimal width (4, 2, 2, 2). Each field also
// carries the bounds enforced when a Timestamp is parsed from packed text.
// The bounds deliberately admit month 0 and day 0: they describe what the
// packed encoding can hold, not what the calendar accepts.
type Field int

const (
	// Year is the four digit year, within [0, 9999].
	Year Field = iota

	// Month is the month of the year, within [0, 12].
	Month

	// Day is the day of the month, within [0, 31].
	Day

	// Hour is the hour of the day, within [0, 23].
	Hour
)

// Compile-time check that Field implements model.Model interface.
var _ model.Model = (*Field)(nil)

// String constants for Field values used in serialization and diagnostics.
const (
	YearStr  = "year"
	MonthStr = "month"
	DayStr   = "day"
	HourStr  = "hour"
)

var fieldSpecs = [...]struct {
	name  string
	label string
	width int
	min   int
	max   int
}{
	Year:  {YearStr, "Year", 4, 0, 9999},
	Month: {MonthStr, "Month", 2, 0, 12},
	Day:   {DayStr, "Day", 2, 0, 31},
	Hour:  {HourStr, "Hour", 2, 0, 23},
}

// ParseField converts a textual representation into a Field value.
//
//	"year",  "Year",  "YEAR"  -> Year
//	"month", "Month", "MONTH" -> Month
//	"day",   "Day",   "DAY"   -> Day
//	"hour",  "Hour",  "HOUR"  -> Hour
//
// Any other input yields a *ParseError.
func ParseField(s string) (Field, error) {
	switch s {
	case YearStr, "Year", "YEAR":
		return Year, nil
	case MonthStr, "Month", "MONTH":
		return Month, nil
	case DayStr, "Day", "DAY":
		return Day, nil
	case HourStr, "Hour", "HOUR":
		return Hour, nil
	default:
		return Year, &dxerrors.ParseError{Type: "Field", Value: s}
	}
}

// String returns the lowercase name of the field, or "unknown".
func (f Field) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return fieldSpecs[f].name
}

// Valid reports whether f is one of the defined constants.
func (f Field) Valid() bool {
	return f >= Year && f <= Hour
}

// Width returns the number of digits f occupies in the packed encoding.
func (f Field) Width() int {
	if !f.Valid() {
		return 0
	}
	return fieldSpecs[f].width
}

// Bounds returns the inclusive range a packed value of f must fall within.
func (f Field) Bounds() (lo, hi int) {
	if !f.Valid() {
		return 0, -1
	}
	return fieldSpecs[f].min, fieldSpecs[f].max
}

// check reports an ErrOutOfRange *ValidationError for v outside of f's
// bounds, attributed to typ.
func (f Field) check(typ string, v int) error {
	lo, hi := f.Bounds()
	if v < lo || v > hi {
		return &dxerrors.ValidationError{
			Type:   typ,
			Field:  fieldSpecs[f].label,
			Reason: fmt.Sprintf("must be within [%d, %d], got %d", lo, hi, v),
			Value:  v,
			Err:    dxerrors.ErrOutOfRange,
		}
	}
	return nil
}

// format renders v zero-padded to f's width.
func (f Field) format(v int) string {
	return fmt.Sprintf("%0*d", f.Width(), v)
}

// TypeName returns "Field".
func (f Field) TypeName() string {
	return "Field"
}

// Redacted returns the same string as String.
func (f Field) Redacted() string {
	return f.String()
}

// IsZero reports whether f is Year, the first field.
func (f Field) IsZero() bool {
	return f == Year
}

// Validate returns a *MarshalError for values outside the defined constants.
func (f Field) Validate() error {
	if !f.Valid() {
		return &dxerrors.MarshalError{Type: "Field", Value: int(f)}
	}
	return nil
}

// MarshalJSON encodes f as its lowercase name.
func (f Field) MarshalJSON() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON decodes a field name via ParseField.
func (f *Field) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Field", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseField(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalYAML encodes f as a scalar string.
func (f Field) MarshalYAML() (any, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f.String(), nil
}

// UnmarshalYAML decodes a scalar field name.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Field", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseField(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
