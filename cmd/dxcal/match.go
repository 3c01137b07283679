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

package main

import (
	"fmt"
	"iter"

	"dirpx.dev/dxcal/dxcore/model/stamp"
	"github.com/adhocore/gronx"
)

// matching narrows seq to the hours at which the cron expression expr is
// due. An empty expr keeps every hour. Timestamps carry no minutes, so the
// minute field of expr must admit minute 0 for anything to match.
func matching(seq iter.Seq[stamp.Timestamp], expr string) (iter.Seq[stamp.Timestamp], error) {
	if expr == "" {
		return seq, nil
	}

	gron := gronx.New()
	if !gron.IsValid(expr) {
		return nil, fmt.Errorf("match: invalid cron expression %q", expr)
	}

	return stamp.Filter(seq, func(ts stamp.Timestamp) bool {
		tm, err := ts.Time()
		if err != nil {
			return false
		}
		due, err := gron.IsDue(expr, tm)
		return err == nil && due
	}), nil
}
