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

package timeutils

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestUTCMidnight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "utc",
			in:   time.Date(2020, 10, 31, 4, 15, 0, 0, time.UTC),
			want: time.Date(2020, 10, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "ahead_of_utc",
			in:   time.Date(2020, 11, 1, 3, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
			want: time.Date(2020, 10, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already_midnight",
			in:   time.Date(2020, 10, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2020, 10, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, UTCMidnight(tc.in)); diff != "" {
				t.Fatalf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSubtractDays(t *testing.T) {
	t.Parallel()

	day := time.Date(2020, 10, 31, 4, 15, 0, 0, time.UTC)

	cases := []struct {
		name string
		days uint
		want time.Time
	}{
		{
			name: "zero",
			days: 0,
			want: day,
		},
		{
			name: "fortnight",
			days: 14,
			want: time.Date(2020, 10, 17, 4, 15, 0, 0, time.UTC),
		},
		{
			name: "ninety",
			days: 90,
			want: time.Date(2020, 8, 2, 4, 15, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := SubtractDays(day, tc.days)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}
