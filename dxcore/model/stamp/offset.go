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
	"strings"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model"
	"dirpx.dev/dxcal/dxcore/model/calendar"
	"gopkg.in/yaml.v3"
)

// Offset is a timestamp-shaped value in which each field is independently
// present or absent.
//
// An Offset plays two roles. As an arithmetic operand it is a calendar
// delta: Months(1) is "one month", and absent fields count as zero. Built
// field by field it is a partial timestamp that becomes a Timestamp once
// every field is present; no field is validated until then.
//
// Offsets are comparable with ==. Values are never range checked, so
// Hours(49) and Days(-3) are both legitimate offsets.
type Offset struct {
	values  [4]int
	present uint8
}

// Compile-time check that Offset implements model.Model interface.
var _ model.Model = (*Offset)(nil)

// Years returns an Offset with only the year field set.
func Years(n int) Offset { return Offset{}.With(Year, n) }

// Months returns an Offset with only the month field set.
func Months(n int) Offset { return Offset{}.With(Month, n) }

// Days returns an Offset with only the day field set.
func Days(n int) Offset { return Offset{}.With(Day, n) }

// Hours returns an Offset with only the hour field set.
func Hours(n int) Offset { return Offset{}.With(Hour, n) }

// NewOffset returns an Offset with all four fields present.
func NewOffset(years, months, days, hours int) Offset {
	return Offset{values: [4]int{years, months, days, hours}, present: 0b1111}
}

// OffsetFromDelta returns d as an Offset with all four fields present.
func OffsetFromDelta(d calendar.Delta) Offset {
	return NewOffset(d.Years, d.Months, d.Days, d.Hours)
}

// With returns a copy of o with field f set to v. An invalid Field leaves o
// unchanged.
func (o Offset) With(f Field, v int) Offset {
	if f.Valid() {
		o.values[f] = v
		o.present |= 1 << f
	}
	return o
}

// Without returns a copy of o with field f absent.
func (o Offset) Without(f Field) Offset {
	if f.Valid() {
		o.values[f] = 0
		o.present &^= 1 << f
	}
	return o
}

// Has reports whether field f is present.
func (o Offset) Has(f Field) bool {
	return f.Valid() && o.present&(1<<f) != 0
}

// Get returns the value of field f and whether it is present.
func (o Offset) Get(f Field) (int, bool) {
	if !o.Has(f) {
		return 0, false
	}
	return o.values[f], true
}

// Value returns the value of field f, or 0 when it is absent.
func (o Offset) Value(f Field) int {
	v, _ := o.Get(f)
	return v
}

// Complete reports whether all four fields are present.
func (o Offset) Complete() bool {
	return o.present == 0b1111
}

// Plus returns the field-wise sum of o and other. A field is present in the
// result if it is present in either operand.
func (o Offset) Plus(other Offset) Offset {
	for f := Year; f <= Hour; f++ {
		if other.Has(f) {
			o = o.With(f, o.Value(f)+other.values[f])
		}
	}
	return o
}

// Neg returns o with every present field negated.
func (o Offset) Neg() Offset {
	for f := Year; f <= Hour; f++ {
		o.values[f] = -o.values[f]
	}
	return o
}

// Delta converts o to a structured calendar delta, absent fields as zero.
func (o Offset) Delta() calendar.Delta {
	return calendar.Delta{
		Years:  o.values[Year],
		Months: o.values[Month],
		Days:   o.values[Day],
		Hours:  o.values[Hour],
	}
}

// Timestamp resolves o into a fully specified Timestamp. It fails with an
// error wrapping ErrNotAbsolute when any field is absent. Field bounds and
// calendar validity are left to Timestamp.Validate and Timestamp.Time.
func (o Offset) Timestamp() (Timestamp, error) {
	if !o.Complete() {
		var missing []string
		for f := Year; f <= Hour; f++ {
			if !o.Has(f) {
				missing = append(missing, fieldSpecs[f].label)
			}
		}
		return Timestamp{}, &dxerrors.ValidationError{
			Type:   "Offset",
			Reason: "missing " + strings.Join(missing, ", "),
			Value:  o.String(),
			Err:    dxerrors.ErrNotAbsolute,
		}
	}
	return New(o.values[Year], o.values[Month], o.values[Day], o.values[Hour]), nil
}

// String returns the packed YYYYMMDDHH projection of o. Absent fields are
// rendered as zeros, so Months(1) and NewOffset(0, 1, 0, 0) print the same
// "0000010000": the projection does not distinguish absent from zero.
func (o Offset) String() string {
	var sb strings.Builder
	for f := Year; f <= Hour; f++ {
		sb.WriteString(f.format(o.values[f]))
	}
	return sb.String()
}

// Int returns the packed projection as an integer, absent fields as zero.
func (o Offset) Int() int64 {
	return int64(o.values[Year])*1_000_000 + int64(o.values[Month])*10_000 + int64(o.values[Day])*100 + int64(o.values[Hour])
}

// Hash returns a hash of the packed projection, consistent with String.
func (o Offset) Hash() uint64 {
	return uint64(o.Int())
}

// Validate always succeeds: any combination of present fields with any
// values is a usable offset.
func (o Offset) Validate() error {
	return nil
}

// IsZero reports whether no field is present.
func (o Offset) IsZero() bool {
	return o.present == 0
}

// TypeName returns "Offset".
func (o Offset) TypeName() string {
	return "Offset"
}

// Redacted returns the packed projection.
func (o Offset) Redacted() string {
	return o.String()
}

// offsetWire is the serialized form of an Offset: absent fields are omitted.
type offsetWire struct {
	Year  *int `json:"year,omitempty" yaml:"year,omitempty"`
	Month *int `json:"month,omitempty" yaml:"month,omitempty"`
	Day   *int `json:"day,omitempty" yaml:"day,omitempty"`
	Hour  *int `json:"hour,omitempty" yaml:"hour,omitempty"`
}

func (o Offset) wire() offsetWire {
	var w offsetWire
	ptr := func(f Field) *int {
		if v, ok := o.Get(f); ok {
			return &v
		}
		return nil
	}
	w.Year, w.Month, w.Day, w.Hour = ptr(Year), ptr(Month), ptr(Day), ptr(Hour)
	return w
}

func (w offsetWire) offset() Offset {
	var o Offset
	for f, p := range map[Field]*int{Year: w.Year, Month: w.Month, Day: w.Day, Hour: w.Hour} {
		if p != nil {
			o = o.With(f, *p)
		}
	}
	return o
}

// MarshalJSON encodes o as an object holding the present fields, for
// example {"month":1}.
func (o Offset) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.wire())
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (o *Offset) UnmarshalJSON(data []byte) error {
	var w offsetWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &dxerrors.UnmarshalError{Type: "Offset", Data: data, Reason: err.Error()}
	}
	*o = w.offset()
	return nil
}

// MarshalYAML encodes o as a mapping holding the present fields.
func (o Offset) MarshalYAML() (any, error) {
	return o.wire(), nil
}

// UnmarshalYAML decodes the mapping form written by MarshalYAML.
func (o *Offset) UnmarshalYAML(node *yaml.Node) error {
	var w offsetWire
	if err := node.Decode(&w); err != nil {
		return &dxerrors.UnmarshalError{Type: "Offset", Data: []byte(node.Value), Reason: err.Error()}
	}
	*o = w.offset()
	return nil
}
