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

package archive

import (
	"testing"
	"time"
)

func TestDeriveWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		now       time.Time
		retention uint
		wantFrom  time.Time
		wantTo    time.Time
	}{
		{
			name:      "default_retention",
			now:       time.Date(2020, 6, 30, 13, 45, 10, 0, time.UTC),
			retention: 0,
			wantFrom:  time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC),
			wantTo:    time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "explicit_ninety",
			now:       time.Date(2020, 6, 30, 0, 0, 0, 0, time.UTC),
			retention: 90,
			wantFrom:  time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC),
			wantTo:    time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "one_day",
			now:       time.Date(2021, 1, 1, 23, 59, 59, 0, time.UTC),
			retention: 1,
			wantFrom:  time.Date(2020, 12, 30, 0, 0, 0, 0, time.UTC),
			wantTo:    time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "non_utc_input",
			now:       time.Date(2021, 1, 2, 8, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
			retention: 1,
			wantFrom:  time.Date(2020, 12, 30, 0, 0, 0, 0, time.UTC),
			wantTo:    time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := DeriveWindow(tc.now, tc.retention)
			if !w.From.Equal(tc.wantFrom) {
				t.Errorf("expected from %s to be %s", w.From, tc.wantFrom)
			}
			if !w.To.Equal(tc.wantTo) {
				t.Errorf("expected to %s to be %s", w.To, tc.wantTo)
			}
			if got := w.To.Sub(w.From); got != 24*time.Hour {
				t.Errorf("expected window width of 24h, got %s", got)
			}
			if got, want := w.ToMillis()-w.FromMillis(), int64(86400000); got != want {
				t.Errorf("expected millis width %d, got %d", want, got)
			}
		})
	}
}

func TestDeriveWindow_sameDay(t *testing.T) {
	t.Parallel()

	morning := DeriveWindow(time.Date(2022, 9, 1, 0, 0, 1, 0, time.UTC), 30)
	evening := DeriveWindow(time.Date(2022, 9, 1, 23, 59, 0, 0, time.UTC), 30)
	if morning != evening {
		t.Errorf("expected %v to be %v", morning, evening)
	}

	next := DeriveWindow(time.Date(2022, 9, 2, 12, 0, 0, 0, time.UTC), 30)
	if !next.From.Equal(morning.To) {
		t.Errorf("expected consecutive windows to touch: %s != %s", next.From, morning.To)
	}
}

func TestNormalizeLogGroupName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "/aws/lambda/police_protest_info", want: "aws-lambda-police_protest_info"},
		{in: "plain", want: "plain"},
		{in: "no/leading/slash", want: "no-leading-slash"},
		{in: "//double", want: "-double"},
		{in: "/", want: ""},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeLogGroupName(tc.in); got != tc.want {
				t.Errorf("expected %q to be %q", got, tc.want)
			}
		})
	}
}

func TestDestinationPrefix(t *testing.T) {
	t.Parallel()

	w := TimeWindow{
		From: time.Date(2020, 3, 1, 4, 0, 0, 0, time.UTC),
		To:   time.Date(2020, 3, 2, 4, 0, 0, 0, time.UTC),
	}

	cases := []struct {
		name     string
		root     string
		logGroup string
		want     string
	}{
		{
			name:     "slashed",
			logGroup: "/aws/lambda/police_protest_info",
			want:     "aws-lambda-police_protest_info/2020/03/01/04",
		},
		{
			name:     "plain",
			logGroup: "plain",
			want:     "plain/2020/03/01/04",
		},
		{
			name:     "root",
			root:     "/archive/",
			logGroup: "/app",
			want:     "archive/app/2020/03/01/04",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := DestinationPrefix(tc.root, tc.logGroup, w)
			if got != tc.want {
				t.Errorf("expected %q to be %q", got, tc.want)
			}
			if again := DestinationPrefix(tc.root, tc.logGroup, w); again != got {
				t.Errorf("expected repeated call to yield %q, got %q", got, again)
			}
		})
	}
}
