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
	"time"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model/calendar"
)

// Clock is the calendar arithmetic primitive a Calendar delegates to.
// calendar.Clock implements it.
type Clock interface {
	// Add returns t moved by d.
	Add(t time.Time, d calendar.Delta) time.Time

	// Between returns the delta that takes from to to.
	Between(from, to time.Time) calendar.Delta
}

// Calendar binds timestamp arithmetic to a Clock. The zero Calendar uses
// calendar.Default.
type Calendar struct {
	clock Clock
}

// DefaultCalendar is the Calendar used by the Timestamp methods.
var DefaultCalendar = NewCalendar(calendar.Default)

// NewCalendar returns a Calendar using clock. A nil clock selects
// calendar.Default.
func NewCalendar(clock Clock) Calendar {
	return Calendar{clock: clock}
}

func (c Calendar) clockOrDefault() Clock {
	if c.clock == nil {
		return calendar.Default
	}
	return c.clock
}

// Add returns t moved forward by o, absent fields of o counted as zero.
func (c Calendar) Add(t Timestamp, o Offset) (Timestamp, error) {
	return c.AddDelta(t, o.Delta())
}

// Sub returns t moved backward by o.
func (c Calendar) Sub(t Timestamp, o Offset) (Timestamp, error) {
	return c.AddDelta(t, o.Delta().Neg())
}

// AddDelta returns t moved by d.
//
// t must be a valid instant. The result must stay within the supported
// years; leaving them is reported as ErrInvalidCalendarDate.
func (c Calendar) AddDelta(t Timestamp, d calendar.Delta) (Timestamp, error) {
	start, err := t.Time()
	if err != nil {
		return Timestamp{}, err
	}
	end := c.clockOrDefault().Add(start, d)
	if !calendar.InRange(end) {
		return Timestamp{}, &dxerrors.ValidationError{
			Type:   "Timestamp",
			Reason: fmt.Sprintf("%s %+v leaves years [%d, %d]", t, d, calendar.MinYear, calendar.MaxYear),
			Value:  t.String(),
			Err:    dxerrors.ErrInvalidCalendarDate,
		}
	}
	return FromTime(end), nil
}

// Between returns the offset from t to other, all four fields present.
func (c Calendar) Between(t, other Timestamp) (Offset, error) {
	from, err := t.Time()
	if err != nil {
		return Offset{}, err
	}
	to, err := other.Time()
	if err != nil {
		return Offset{}, err
	}
	return OffsetFromDelta(c.clockOrDefault().Between(from, to)), nil
}
