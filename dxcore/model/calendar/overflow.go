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

package calendar

import (
	"encoding/json"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Overflow controls what Clock.Add does with a day-of-month that does not
// exist in the month reached by adding years and months.
//
// Adding one month to January 31 lands on "February 31". Calendar libraries
// disagree on what that means:
//
//  1. Clamp the day to the last day of the target month, so January 31 plus
//     one month is February 28 (or 29 in a leap year). This is the relative
//     delta behavior most date libraries expose to application code.
//
//  2. Normalize the overflowing days into the following month, so January 31
//     plus one month is March 3 (March 2 in a leap year). This is what
//     time.Date does with out-of-range days.
//
// Overflow only affects the years/months part of a Delta. Days and hours are
// always added as elapsed time after the month has been resolved.
type Overflow int

const (
	// Clamp pins the day-of-month to the length of the target month.
	//
	// Example:
	//   2021-01-31 + 1 month = 2021-02-28
	//   2020-01-31 + 1 month = 2020-02-29
	Clamp Overflow = iota

	// Normalize carries the surplus days into the next month.
	//
	// Example:
	//   2021-01-31 + 1 month = 2021-03-03
	Normalize
)

// Compile-time check that Overflow implements model.Model interface.
var _ model.Model = (*Overflow)(nil)

// String constants for Overflow values used in serialization, parsing,
// configuration files and command-line flags.
const (
	ClampStr     = "clamp"
	NormalizeStr = "normalize"
)

// String returns the canonical lowercase name of the Overflow value, or
// "unknown" for values outside the defined constants.
func (o Overflow) String() string {
	switch o {
	case Clamp:
		return ClampStr
	case Normalize:
		return NormalizeStr
	default:
		return "unknown"
	}
}

// ParseOverflow converts a textual representation into an Overflow value.
//
// Accepted inputs:
//
//	"clamp", "Clamp", "CLAMP"             -> Clamp
//	"normalize", "Normalize", "NORMALIZE" -> Normalize
//
// Any other input yields a *ParseError and the returned value MUST NOT be used.
func ParseOverflow(str string) (Overflow, error) {
	switch str {
	case ClampStr, "Clamp", "CLAMP":
		return Clamp, nil
	case NormalizeStr, "Normalize", "NORMALIZE":
		return Normalize, nil
	default:
		return Clamp, &dxerrors.ParseError{Type: "Overflow", Value: str}
	}
}

// Valid reports whether the Overflow value is one of the defined constants.
func (o Overflow) Valid() bool {
	return o == Clamp || o == Normalize
}

// MarshalJSON encodes a valid Overflow as its canonical string.
func (o Overflow) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Overflow", Value: int(o)}
	}
	return []byte(`"` + o.String() + `"`), nil
}

// UnmarshalJSON accepts the string form ("clamp") or the numeric form (0, 1)
// of an Overflow.
func (o *Overflow) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &dxerrors.UnmarshalError{Type: "Overflow", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &dxerrors.UnmarshalError{Type: "Overflow", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseOverflow(str)
		if err != nil {
			return err
		}
		*o = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &dxerrors.UnmarshalError{Type: "Overflow", Data: data, Reason: err.Error()}
	}
	if !Overflow(i).Valid() {
		return &dxerrors.UnmarshalError{Type: "Overflow", Data: data, Reason: "invalid numeric value"}
	}
	*o = Overflow(i)
	return nil
}

// MarshalText implements encoding.TextMarshaler. It is what environment
// variables and flag values are decoded through.
func (o Overflow) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Overflow", Value: int(o)}
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseOverflow.
func (o *Overflow) UnmarshalText(text []byte) error {
	parsed, err := ParseOverflow(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// TypeName returns "Overflow".
func (o Overflow) TypeName() string {
	return "Overflow"
}

// Redacted returns the same string as String; an Overflow is not sensitive.
func (o Overflow) Redacted() string {
	return o.String()
}

// IsZero reports whether o is Clamp, the default policy.
func (o Overflow) IsZero() bool {
	return o == Clamp
}

// Validate returns a *MarshalError for values outside the defined constants.
func (o Overflow) Validate() error {
	if !o.Valid() {
		return &dxerrors.MarshalError{Type: "Overflow", Value: int(o)}
	}
	return nil
}

// MarshalYAML encodes a valid Overflow as a scalar string.
func (o Overflow) MarshalYAML() (any, error) {
	if !o.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Overflow", Value: int(o)}
	}
	return o.String(), nil
}

// UnmarshalYAML decodes a scalar string via ParseOverflow.
func (o *Overflow) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: "Overflow", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseOverflow(str)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
