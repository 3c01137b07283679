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
	"fmt"
	"iter"
	"strconv"
	"time"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
)

// Operand lists the kinds of value accepted where a Timestamp is expected:
// a Timestamp, a complete Offset, an absolute time.Time, or the packed form
// as a string or an integer. Anything else does not compile.
type Operand interface {
	Timestamp | Offset | time.Time | string | int | int64
}

// Coerce converts an operand to a Timestamp.
//
// Strings and integers go through ParseTimestamp, so they must be exactly
// ten digits; an integer therefore cannot name a year before 1000. Offsets
// must have every field present. A time.Time contributes its wall clock
// fields.
func Coerce[T Operand](v T) (Timestamp, error) {
	switch x := any(v).(type) {
	case Timestamp:
		return x, nil
	case Offset:
		return x.Timestamp()
	case time.Time:
		return FromTime(x), nil
	case string:
		return ParseTimestamp(x)
	case int:
		return ParseTimestamp(strconv.Itoa(x))
	case int64:
		return ParseTimestamp(strconv.FormatInt(x, 10))
	default:
		return Timestamp{}, &dxerrors.ParseError{Type: "Timestamp", Value: fmt.Sprint(v)}
	}
}

// Compare coerces v and orders t against it by instant.
func Compare[T Operand](t Timestamp, v T) (int, error) {
	other, err := Coerce(v)
	if err != nil {
		return 0, err
	}
	return t.Compare(other)
}

// Until coerces end and returns t.Until(end).
func Until[T Operand](start Timestamp, end T) (iter.Seq[Timestamp], error) {
	e, err := Coerce(end)
	if err != nil {
		return nil, err
	}
	return start.Until(e)
}

// HoursBetween coerces v and returns t.HoursBetween(v).
func HoursBetween[T Operand](t Timestamp, v T) (float64, error) {
	other, err := Coerce(v)
	if err != nil {
		return 0, err
	}
	return t.HoursBetween(other)
}
