// Copyright 2026 The Log Archiver Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package timeutils defines calendar helpers missing from the time package.
package timeutils

import "time"

// UTCMidnight returns the start of t's day in UTC.
func UTCMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SubtractDays moves t back by the given number of calendar days, keeping the
// wall clock time.
func SubtractDays(t time.Time, days uint) time.Time {
	return t.AddDate(0, 0, -int(days))
}
