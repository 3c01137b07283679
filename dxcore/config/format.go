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

package config

import (
	dxerrors "dirpx.dev/dxcal/dxcore/errors"
)

// Format selects how dxcal renders results.
type Format int

const (
	// FormatText prints packed timestamps and offsets one per line.
	FormatText Format = iota

	// FormatJSON prints one JSON document per result.
	FormatJSON

	// FormatYAML prints one YAML document per result.
	FormatYAML
)

// String constants for Format values.
const (
	FormatTextStr = "text"
	FormatJSONStr = "json"
	FormatYAMLStr = "yaml"
)

// ParseFormat converts "text", "json" or "yaml", in any of lower, Title or
// UPPER case, into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case FormatTextStr, "Text", "TEXT":
		return FormatText, nil
	case FormatJSONStr, "Json", "JSON":
		return FormatJSON, nil
	case FormatYAMLStr, "Yaml", "YAML":
		return FormatYAML, nil
	default:
		return FormatText, &dxerrors.ParseError{Type: "Format", Value: s}
	}
}

// String returns the lowercase name of f, or "unknown".
func (f Format) String() string {
	switch f {
	case FormatText:
		return FormatTextStr
	case FormatJSON:
		return FormatJSONStr
	case FormatYAML:
		return FormatYAMLStr
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the defined constants.
func (f Format) Valid() bool {
	return f >= FormatText && f <= FormatYAML
}

// MarshalText implements encoding.TextMarshaler. JSON and YAML encoders
// use it as well.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, &dxerrors.MarshalError{Type: "Format", Value: int(f)}
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseFormat.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
