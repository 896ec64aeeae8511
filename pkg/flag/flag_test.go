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

package flag

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringListVar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want StringListVar
	}{
		{
			name: "single",
			in:   "/aws/lambda/fn",
			want: StringListVar{"/aws/lambda/fn"},
		},
		{
			name: "trims_and_dedupes",
			in:   " /a , /b,/a,, ",
			want: StringListVar{"/a", "/b"},
		},
		{
			name: "case_sensitive",
			in:   "/App,/app",
			want: StringListVar{"/App", "/app"},
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got StringListVar
			fs := flag.NewFlagSet("", flag.ContinueOnError)
			fs.Var(&got, "log-groups", "")
			if err := fs.Parse([]string{"-log-groups", tc.in}); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestStringListVar_setTwice(t *testing.T) {
	t.Parallel()

	var l StringListVar
	if err := l.Set("a"); err != nil {
		t.Fatal(err)
	}
	if err := l.Set("b"); err == nil {
		t.Errorf("expected error on second set")
	}
	if got, want := l.String(), "a"; got != want {
		t.Errorf("expected %q to be %q", got, want)
	}
}
