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
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
)

// Fatal errors abort the whole invocation.
var (
	ErrConfig            = errors.New("configuration error")
	ErrDiscovery         = errors.New("unable to list log groups")
	ErrNoMatchingSources = errors.New("no log groups match the export allow-list")
)

// Per-source errors are recorded on that source's ExportResult and never abort
// the remaining sources.
var (
	ErrDestinationNotFound = errors.New("export destination not found")
	ErrSubmission          = errors.New("export task submission failed")
	ErrQueryFailed         = errors.New("unable to verify export task status")
	ErrPollTimedOut        = errors.New("export task still running")
	ErrCanceled            = errors.New("export task polling canceled")
)

// NoMatchingSourcesError is returned when filtering the discovered log groups
// against the allow-list produced nothing. It keeps the discovery data so the
// operator can see what was actually there.
type NoMatchingSourcesError struct {
	Discovered []*cwlogs.LogGroup
	Requested  []string
}

func (e *NoMatchingSourcesError) Error() string {
	return fmt.Sprintf("%s: requested [%s], discovered %d log groups",
		ErrNoMatchingSources, strings.Join(e.Requested, ", "), len(e.Discovered))
}

func (e *NoMatchingSourcesError) Unwrap() error {
	return ErrNoMatchingSources
}
