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

package stamp_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model/calendar"
	"dirpx.dev/dxcal/dxcore/model/stamp"
	"gopkg.in/yaml.v3"
)

func TestOffset_Constructors(t *testing.T) {
	tests := []struct {
		name    string
		offset  stamp.Offset
		field   stamp.Field
		value   int
		present int
	}{
		{"years", stamp.Years(2), stamp.Year, 2, 1},
		{"months", stamp.Months(-1), stamp.Month, -1, 1},
		{"days", stamp.Days(40), stamp.Day, 40, 1},
		{"hours", stamp.Hours(49), stamp.Hour, 49, 1},
		{"all", stamp.NewOffset(1, 2, 3, 4), stamp.Day, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := tt.offset.Get(tt.field)
			if !ok || v != tt.value {
				t.Errorf("Get(%s) = %d, %v; want %d, true", tt.field, v, ok, tt.value)
			}
			n := 0
			for _, f := range []stamp.Field{stamp.Year, stamp.Month, stamp.Day, stamp.Hour} {
				if tt.offset.Has(f) {
					n++
				}
			}
			if n != tt.present {
				t.Errorf("present fields = %d, want %d", n, tt.present)
			}
		})
	}
}

func TestOffset_WithWithout(t *testing.T) {
	o := stamp.Offset{}.With(stamp.Year, 2021).With(stamp.Hour, 5)
	if !o.Has(stamp.Year) || !o.Has(stamp.Hour) || o.Has(stamp.Month) {
		t.Fatalf("With() presence mismatch: %+v", o)
	}
	if o.Value(stamp.Month) != 0 {
		t.Errorf("Value(Month) = %d, want 0", o.Value(stamp.Month))
	}
	if o.Complete() {
		t.Error("Complete() = true for a partial offset")
	}

	o = o.Without(stamp.Hour)
	if o.Has(stamp.Hour) {
		t.Error("Without(Hour) left the field present")
	}
	if o != stamp.Years(2021) {
		t.Errorf("Without() = %v, want Years(2021)", o)
	}

	if got := o.With(stamp.Field(9), 1); got != o {
		t.Error("With() of an invalid field must not change the offset")
	}
}

func TestOffset_Timestamp(t *testing.T) {
	full := stamp.Offset{}.
		With(stamp.Year, 2021).
		With(stamp.Month, 1).
		With(stamp.Day, 31).
		With(stamp.Hour, 5)

	ts, err := full.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp() error = %v", err)
	}
	if ts.String() != "2021013105" {
		t.Errorf("Timestamp() = %s, want 2021013105", ts)
	}

	_, err = stamp.Offset{}.With(stamp.Month, 1).With(stamp.Hour, 2).Timestamp()
	if !errors.Is(err, dxerrors.ErrNotAbsolute) {
		t.Fatalf("Timestamp() error = %v, want ErrNotAbsolute", err)
	}
	if !strings.Contains(err.Error(), "missing Year, Day") {
		t.Errorf("Timestamp() error = %q, want the missing fields named", err)
	}
}

func TestOffset_PlusNeg(t *testing.T) {
	sum := stamp.Months(1).Plus(stamp.Days(2)).Plus(stamp.Days(3))
	if sum.Value(stamp.Month) != 1 || sum.Value(stamp.Day) != 5 || sum.Has(stamp.Year) {
		t.Errorf("Plus() = %+v", sum.Delta())
	}

	neg := sum.Neg()
	if neg.Value(stamp.Month) != -1 || neg.Value(stamp.Day) != -5 || neg.Has(stamp.Year) {
		t.Errorf("Neg() = %+v", neg.Delta())
	}
	if neg.Neg() != sum {
		t.Error("Neg().Neg() must be the identity")
	}
}

func TestOffset_Delta(t *testing.T) {
	d := calendar.Delta{Years: 1, Months: 2, Days: 3, Hours: 4}
	o := stamp.OffsetFromDelta(d)
	if !o.Complete() {
		t.Error("OffsetFromDelta() must set all fields")
	}
	if o.Delta() != d {
		t.Errorf("Delta() = %+v, want %+v", o.Delta(), d)
	}
	if got := stamp.Hours(3).Delta(); got != (calendar.Delta{Hours: 3}) {
		t.Errorf("Hours(3).Delta() = %+v", got)
	}
}

func TestOffset_Projection(t *testing.T) {
	tests := []struct {
		name   string
		offset stamp.Offset
		text   string
		num    int64
	}{
		{"month", stamp.Months(1), "0000010000", 10000},
		{"explicit_zeros", stamp.NewOffset(0, 1, 0, 0), "0000010000", 10000},
		{"full", stamp.NewOffset(2021, 1, 31, 5), "2021013105", 2021013105},
		{"empty", stamp.Offset{}, "0000000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.offset.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
			if got := tt.offset.Int(); got != tt.num {
				t.Errorf("Int() = %d, want %d", got, tt.num)
			}
			if got := tt.offset.Hash(); got != uint64(tt.num) {
				t.Errorf("Hash() = %d, want %d", got, tt.num)
			}
		})
	}

	// Absent and zero project identically but stay distinct values.
	if stamp.Months(1) == stamp.NewOffset(0, 1, 0, 0) {
		t.Error("absent and zero fields must remain distinguishable with ==")
	}
}

func TestOffset_ModelContract(t *testing.T) {
	if !(stamp.Offset{}).IsZero() || stamp.Hours(0).IsZero() {
		t.Error("IsZero() must report the absence of every field")
	}
	if stamp.Days(-3).Validate() != nil {
		t.Error("Validate() must accept any offset")
	}
	if stamp.Days(1).TypeName() != "Offset" {
		t.Errorf("TypeName() = %q", stamp.Days(1).TypeName())
	}
}

func TestOffset_JSON(t *testing.T) {
	tests := []struct {
		offset stamp.Offset
		want   string
	}{
		{stamp.Months(1), `{"month":1}`},
		{stamp.Hours(0), `{"hour":0}`},
		{stamp.NewOffset(1, 2, 3, 4), `{"year":1,"month":2,"day":3,"hour":4}`},
		{stamp.Offset{}, `{}`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.offset)
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		if string(data) != tt.want {
			t.Errorf("json.Marshal() = %s, want %s", data, tt.want)
		}
		var back stamp.Offset
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("json.Unmarshal() error = %v", err)
		}
		if back != tt.offset {
			t.Errorf("json round trip = %v, want %v", back, tt.offset)
		}
	}

	var o stamp.Offset
	if err := json.Unmarshal([]byte(`"2021013100"`), &o); err == nil {
		t.Error("json.Unmarshal() of a string should fail")
	}
}

func TestOffset_YAML(t *testing.T) {
	data, err := yaml.Marshal(stamp.Days(2).With(stamp.Hour, 6))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if string(data) != "day: 2\nhour: 6\n" {
		t.Errorf("yaml.Marshal() = %q", data)
	}

	var o stamp.Offset
	if err := yaml.Unmarshal([]byte("month: -1\n"), &o); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if o != stamp.Months(-1) {
		t.Errorf("yaml.Unmarshal() = %v, want Months(-1)", o)
	}
}
