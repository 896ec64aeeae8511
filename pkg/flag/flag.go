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

// Package flag contains flag.Value implementations for command line tools.
package flag

import (
	"fmt"
	"strings"
)

// StringListVar is a comma separated list flag. Entries are trimmed, empty
// entries are dropped and duplicates keep their first position.
type StringListVar []string

// String returns the list joined by commas.
func (l *StringListVar) String() string {
	return strings.Join(*l, ",")
}

// Set parses the flag value. It may only be called once.
func (l *StringListVar) Set(val string) error {
	if len(*l) > 0 {
		return fmt.Errorf("already set")
	}

	unique := map[string]struct{}{}
	for _, v := range strings.Split(val, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, seen := unique[v]; !seen {
			*l = append(*l, v)
			unique[v] = struct{}{}
		}
	}
	return nil
}
