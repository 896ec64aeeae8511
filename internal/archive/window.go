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
	"strings"
	"time"

	"github.com/cloudwatch-archiver/log-archiver/pkg/timeutils"
)

// DefaultRetentionDays is used when no retention is configured.
const DefaultRetentionDays = 90

// windowWidth is the size of the slice exported per invocation.
const windowWidth = 24 * time.Hour

// prefixTimeLayout formats the window start as YYYY/MM/DD/HH.
const prefixTimeLayout = "2006/01/02/15"

// TimeWindow is the half-open interval [From, To) of log events to export.
type TimeWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// FromMillis returns From as milliseconds since the epoch.
func (w TimeWindow) FromMillis() int64 {
	return w.From.UnixMilli()
}

// ToMillis returns To as milliseconds since the epoch.
func (w TimeWindow) ToMillis() int64 {
	return w.To.UnixMilli()
}

// EffectiveRetentionDays returns the retention actually applied.
func EffectiveRetentionDays(days uint) uint {
	if days == 0 {
		return DefaultRetentionDays
	}
	return days
}

// DeriveWindow returns the 24 hour window that ends retentionDays before the
// start of now's UTC day. Every invocation on the same UTC day derives the same
// window, and invocations on consecutive days derive adjacent windows, so a
// daily schedule exports each day exactly once.
func DeriveWindow(now time.Time, retentionDays uint) TimeWindow {
	days := EffectiveRetentionDays(retentionDays)

	to := timeutils.SubtractDays(timeutils.UTCMidnight(now), days)
	return TimeWindow{
		From: to.Add(-windowWidth),
		To:   to,
	}
}

// NormalizeLogGroupName turns a log group name into a single object key
// segment: one leading "/" is dropped and every remaining "/" becomes "-".
func NormalizeLogGroupName(name string) string {
	return strings.ReplaceAll(strings.TrimPrefix(name, "/"), "/", "-")
}

// DestinationPrefix returns the object prefix the export of logGroup over w is
// written under: [root/]<normalized-name>/YYYY/MM/DD/HH of the window start.
func DestinationPrefix(root, logGroup string, w TimeWindow) string {
	prefix := NormalizeLogGroupName(logGroup) + "/" + w.From.UTC().Format(prefixTimeLayout)
	if root = strings.Trim(root, "/"); root != "" {
		prefix = root + "/" + prefix
	}
	return prefix
}
