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
	"time"

	dxerrors "dirpx.dev/dxcal/dxcore/errors"
	"dirpx.dev/dxcal/dxcore/model/calendar"
)

// Until returns the sequence of hourly timestamps from start to end, both
// included. Until(2021010100, 2021010103) yields 00, 01, 02 and 03.
//
// Both bounds must be valid instants, and end must not be before start: a
// sequence stepping forward one hour at a time would never reach it, so
// that case is reported as ErrUnreachable instead. The returned sequence is
// lazy and may be ranged over any number of times.
func (c Calendar) Until(start, end Timestamp) (iter.Seq[Timestamp], error) {
	from, err := start.Time()
	if err != nil {
		return nil, err
	}
	to, err := end.Time()
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, unreachable(start, end)
	}
	return c.hourly(from, to, true), nil
}

// For returns the sequence of hourly timestamps from start up to
// start + o. The end itself is included only when includeLast is set, so
// For(2021010100, Hours(3), false) yields 00, 01 and 02.
//
// An offset that moves backwards is reported as ErrUnreachable.
func (c Calendar) For(start Timestamp, o Offset, includeLast bool) (iter.Seq[Timestamp], error) {
	from, err := start.Time()
	if err != nil {
		return nil, err
	}
	end, err := c.Add(start, o)
	if err != nil {
		return nil, err
	}
	to, err := end.Time()
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, unreachable(start, end)
	}
	return c.hourly(from, to, includeLast), nil
}

func (c Calendar) hourly(from, to time.Time, includeLast bool) iter.Seq[Timestamp] {
	clock := c.clockOrDefault()
	step := calendar.Delta{Hours: 1}
	return func(yield func(Timestamp) bool) {
		for cur := from; cur.Before(to); cur = clock.Add(cur, step) {
			if !yield(FromTime(cur)) {
				return
			}
		}
		if includeLast {
			yield(FromTime(to))
		}
	}
}

func unreachable(start, end Timestamp) error {
	return &dxerrors.ValidationError{
		Type:   "Timestamp",
		Reason: fmt.Sprintf("end %s is before start %s", end, start),
		Value:  end.String(),
		Err:    dxerrors.ErrUnreachable,
	}
}

// Map returns a sequence yielding fn applied to each value of seq.
func Map[In, Out any](seq iter.Seq[In], fn func(In) Out) iter.Seq[Out] {
	return func(yield func(Out) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// Filter returns a sequence yielding the values of seq for which keep
// reports true.
func Filter[V any](seq iter.Seq[V], keep func(V) bool) iter.Seq[V] {
	return func(yield func(V) bool) {
		for v := range seq {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}
