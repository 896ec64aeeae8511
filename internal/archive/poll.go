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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
	"github.com/cloudwatch-archiver/log-archiver/pkg/logging"
	"github.com/sethvargo/go-retry"
)

const (
	// DefaultPollTimeout applies when no poll timeout is configured.
	DefaultPollTimeout = 300 * time.Second

	// DefaultInitialBackoff applies when no initial backoff is configured.
	DefaultInitialBackoff = 2 * time.Second
)

// State is the state of the export task poll loop.
type State string

const (
	StatePending     State = "PENDING"
	StateCompleted   State = "COMPLETED"
	StateTimedOut    State = "TIMED_OUT"
	StateQueryFailed State = "QUERY_FAILED"
	StateCanceled    State = "CANCELED"
)

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s != StatePending
}

// JobStatus is the outcome of polling one export task.
type JobStatus struct {
	TaskID     string `json:"taskId"`
	LogGroup   string `json:"logGroupName,omitempty"`
	State      State  `json:"state"`
	StatusCode string `json:"statusCode,omitempty"`

	// Task is the last snapshot returned by the status query, if any.
	Task *cwlogs.ExportTask `json:"task,omitempty"`

	// Queries is the number of status queries issued.
	Queries int `json:"queries"`

	// Backoff is the last interval slept before the final query.
	Backoff time.Duration `json:"-"`

	// Waited is the total time spent sleeping between queries.
	Waited        time.Duration `json:"-"`
	WaitedSeconds float64       `json:"timeTakenSeconds"`

	Message string `json:"message,omitempty"`

	err error
}

// Err returns the error associated with a non-completed terminal state.
func (s *JobStatus) Err() error {
	return s.err
}

func (s *JobStatus) finish(state State, err error) *JobStatus {
	s.State = state
	s.WaitedSeconds = s.Waited.Seconds()
	s.err = err
	if err != nil {
		s.Message = err.Error()
	}
	return s
}

// PollUntilTerminal polls the export task until it completes, the poll budget
// is exhausted, a status query fails, or ctx is done.
//
// Each iteration sleeps for the current backoff, queries the task, and only
// then decides: a backoff that already exceeds timeout ends the loop as
// TIMED_OUT even when the query reported COMPLETED. Otherwise a COMPLETED task
// ends the loop and anything else doubles the backoff.
func (c *Coordinator) PollUntilTerminal(ctx context.Context, taskID string, timeout, initialBackoff time.Duration) *JobStatus {
	logger := logging.FromContext(ctx).Named("archive.PollUntilTerminal").With("task_id", taskID)

	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	if initialBackoff <= 0 {
		initialBackoff = DefaultInitialBackoff
	}

	// Doubling with no cap and no jitter.
	b := retry.NewExponential(initialBackoff)

	status := &JobStatus{
		TaskID: taskID,
		State:  StatePending,
	}

	for {
		backoff, _ := b.Next()
		status.Backoff = backoff

		if err := c.sleep(ctx, backoff); err != nil {
			logger.Warnw("polling canceled", "waited", status.Waited, "error", err)
			return status.finish(StateCanceled,
				fmt.Errorf("%w: task %s after %s: %v", ErrCanceled, taskID, status.Waited, err))
		}
		status.Waited += backoff

		task, err := c.logs.DescribeExportTask(ctx, taskID)
		status.Queries++
		if err != nil {
			if ctx.Err() != nil || isContextError(err) {
				logger.Warnw("polling canceled during query", "waited", status.Waited, "error", err)
				return status.finish(StateCanceled,
					fmt.Errorf("%w: task %s after %s: %v", ErrCanceled, taskID, status.Waited, err))
			}
			logger.Errorw("failed to query export task", "error", err)
			return status.finish(StateQueryFailed,
				fmt.Errorf("%w: task %s: %v", ErrQueryFailed, taskID, err))
		}

		status.Task = task
		status.StatusCode = task.StatusCode
		status.LogGroup = task.LogGroupName

		if backoff > timeout {
			logger.Warnw("poll timeout elapsed", "status", task.StatusCode, "backoff", backoff, "timeout", timeout)
			return status.finish(StateTimedOut,
				fmt.Errorf("%w: task %s, status %s", ErrPollTimedOut, taskID, task.StatusCode))
		}

		if task.Completed() {
			logger.Infow("export task completed",
				"log_group", task.LogGroupName,
				"waited", status.Waited,
				"queries", status.Queries)
			return status.finish(StateCompleted, nil)
		}

		logger.Debugw("export task not complete", "status", task.StatusCode, "backoff", backoff)
	}
}

// isContextError reports whether err stems from a canceled or expired context.
func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
