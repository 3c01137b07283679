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
	"errors"
	"testing"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"gopkg.in/yaml.v3"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		input   string
		want    Field
		wantErr bool
	}{
		{"year", Year, false},
		{"Month", Month, false},
		{"DAY", Day, false},
		{"hour", Hour, false},
		{"minute", Year, true},
		{"", Year, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseField(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseField(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseField(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestField_Layout(t *testing.T) {
	tests := []struct {
		field  Field
		name   string
		width  int
		lo, hi int
	}{
		{Year, "year", 4, 0, 9999},
		{Month, "month", 2, 0, 12},
		{Day, "day", 2, 0, 31},
		{Hour, "hour", 2, 0, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.field.String(), tt.name)
			}
			if tt.field.Width() != tt.width {
				t.Errorf("Width() = %d, want %d", tt.field.Width(), tt.width)
			}
			lo, hi := tt.field.Bounds()
			if lo != tt.lo || hi != tt.hi {
				t.Errorf("Bounds() = [%d, %d], want [%d, %d]", lo, hi, tt.lo, tt.hi)
			}
		})
	}

	if Field(7).Valid() || Field(7).String() != "unknown" || Field(7).Width() != 0 {
		t.Error("undefined Field must be invalid")
	}
}

func TestField_Check(t *testing.T) {
	if err := Month.check("Timestamp", 12); err != nil {
		t.Errorf("check(12) error = %v", err)
	}

	err := Month.check("Timestamp", 13)
	if !errors.Is(err, dxerrors.ErrOutOfRange) {
		t.Fatalf("check(13) error = %v, want ErrOutOfRange", err)
	}
	var ve *dxerrors.ValidationError
	if !errors.As(err, &ve) || ve.Field != "Month" || ve.Type != "Timestamp" {
		t.Errorf("check(13) error = %#v", err)
	}
	if err.Error() != "dxcal: invalid Timestamp.Month: must be within [0, 12], got 13" {
		t.Errorf("check(13) message = %q", err.Error())
	}
}

func TestField_Format(t *testing.T) {
	tests := []struct {
		field Field
		v     int
		want  string
	}{
		{Year, 1, "0001"},
		{Year, 2021, "2021"},
		{Month, 3, "03"},
		{Hour, 0, "00"},
		{Day, 31, "31"},
	}
	for _, tt := range tests {
		if got := tt.field.format(tt.v); got != tt.want {
			t.Errorf("%v.format(%d) = %q, want %q", tt.field, tt.v, got, tt.want)
		}
	}
}

func TestField_Serialization(t *testing.T) {
	data, err := json.Marshal(Day)
	if err != nil || string(data) != `"day"` {
		t.Errorf("json.Marshal(Day) = %s, %v", data, err)
	}
	var f Field
	if err := json.Unmarshal([]byte(`"hour"`), &f); err != nil || f != Hour {
		t.Errorf("json.Unmarshal() = %v, %v", f, err)
	}
	if err := json.Unmarshal([]byte(`3`), &f); err == nil {
		t.Error("json.Unmarshal() of a number should fail")
	}

	out, err := yaml.Marshal(map[string]Field{"field": Month})
	if err != nil || string(out) != "field: month\n" {
		t.Errorf("yaml.Marshal() = %q, %v", out, err)
	}
	var m map[string]Field
	if err := yaml.Unmarshal([]byte("field: Year\n"), &m); err != nil || m["field"] != Year {
		t.Errorf("yaml.Unmarshal() = %v, %v", m, err)
	}

	if _, err := json.Marshal(Field(9)); err == nil {
		t.Error("json.Marshal() of an undefined Field should fail")
	}
}
