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
	"strconv"
	"strings"
)

// Delta is a structured calendar offset: a number of years, months, days and
// hours. Unlike a time.Duration it is not a fixed amount of elapsed time;
// "1 month" is 28 to 31 days depending on where it is applied.
//
// Fields may be negative. A Delta is applied by Clock.Add and produced by
// Clock.Between.
type Delta struct {
	Years  int `json:"years,omitempty" yaml:"years,omitempty"`
	Months int `json:"months,omitempty" yaml:"months,omitempty"`
	Days   int `json:"days,omitempty" yaml:"days,omitempty"`
	Hours  int `json:"hours,omitempty" yaml:"hours,omitempty"`
}

// Neg returns the Delta with every field negated.
func (d Delta) Neg() Delta {
	return Delta{Years: -d.Years, Months: -d.Months, Days: -d.Days, Hours: -d.Hours}
}

// IsZero reports whether every field of d is zero.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// String renders d in a compact form such as "1y2mo-3d4h". Zero fields are
// omitted; the zero Delta renders as "0h".
func (d Delta) String() string {
	if d.IsZero() {
		return "0h"
	}
	var sb strings.Builder
	for _, part := range []struct {
		n    int
		unit string
	}{
		{d.Years, "y"},
		{d.Months, "mo"},
		{d.Days, "d"},
		{d.Hours, "h"},
	} {
		if part.n != 0 {
			sb.WriteString(strconv.Itoa(part.n))
			sb.WriteString(part.unit)
		}
	}
	return sb.String()
}
