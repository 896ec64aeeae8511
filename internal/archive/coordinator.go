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

// Package archive exports CloudWatch Logs log groups that crossed the
// retention boundary into S3 and tracks each export task to completion.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
	"github.com/cloudwatch-archiver/log-archiver/internal/serverenv"
	"github.com/cloudwatch-archiver/log-archiver/internal/storage"
	"github.com/cloudwatch-archiver/log-archiver/pkg/logging"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.opencensus.io/stats"
	"golang.org/x/sync/errgroup"
)

// Coordinator drives the export of allow-listed log groups for a single
// invocation. It holds no state across invocations.
type Coordinator struct {
	config    *Config
	logs      cwlogs.Client
	blobstore storage.Blobstore

	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
	newTaskName func() string
}

// New creates a coordinator from the collaborators in the server environment.
func New(cfg *Config, env *serverenv.ServerEnv) (*Coordinator, error) {
	if env.LogsClient() == nil {
		return nil, fmt.Errorf("missing logs client in server environment")
	}
	if env.Blobstore() == nil {
		return nil, fmt.Errorf("missing blobstore in server environment")
	}
	seedInMemory(cfg, env)
	return NewCoordinator(cfg, env.LogsClient(), env.Blobstore()), nil
}

// seedInMemory makes every allow-listed log group and the destination bucket
// exist when the in-memory collaborators are configured. Other client types
// are left untouched.
func seedInMemory(cfg *Config, env *serverenv.ServerEnv) {
	if cfg.Logs.ClientType == cwlogs.ClientTypeInMemory {
		if m, ok := env.LogsClient().(*cwlogs.Memory); ok {
			for _, name := range cfg.LogGroups {
				m.EnsureLogGroup(name)
			}
		}
	}
	if cfg.Storage.BlobstoreType == storage.BlobstoreTypeMemory && cfg.Bucket != "" {
		if m, ok := env.Blobstore().(*storage.Memory); ok {
			m.CreateBucket(cfg.Bucket)
		}
	}
}

// NewCoordinator creates a coordinator over the given collaborators.
func NewCoordinator(cfg *Config, logs cwlogs.Client, blobstore storage.Blobstore) *Coordinator {
	return &Coordinator{
		config:    cfg,
		logs:      logs,
		blobstore: blobstore,

		now:   time.Now,
		sleep: sleepContext,
		newTaskName: func() string {
			return uuid.New().String()
		},
	}
}

// ExportJob is a submitted export task.
type ExportJob struct {
	TaskID            string     `json:"taskId"`
	TaskName          string     `json:"taskName"`
	LogGroup          string     `json:"logGroupName"`
	Window            TimeWindow `json:"window"`
	Destination       string     `json:"destination"`
	DestinationPrefix string     `json:"destinationPrefix"`
}

// Submit verifies that bucket exists and submits an export of logGroup's
// events within w. It is attempted exactly once.
func (c *Coordinator) Submit(ctx context.Context, logGroup string, w TimeWindow, bucket string) (*ExportJob, error) {
	logger := logging.FromContext(ctx).Named("archive.Submit")

	if err := c.blobstore.BucketExists(ctx, bucket); err != nil {
		return nil, fmt.Errorf("%w: bucket %q: %v", ErrDestinationNotFound, bucket, err)
	}

	job := &ExportJob{
		TaskName:          c.newTaskName(),
		LogGroup:          logGroup,
		Window:            w,
		Destination:       bucket,
		DestinationPrefix: DestinationPrefix(c.config.PrefixRoot, logGroup, w),
	}

	id, err := c.logs.CreateExportTask(ctx, &cwlogs.ExportTaskInput{
		TaskName:          job.TaskName,
		LogGroupName:      job.LogGroup,
		From:              w.From,
		To:                w.To,
		Destination:       job.Destination,
		DestinationPrefix: job.DestinationPrefix,
	})
	if err != nil {
		stats.Record(ctx, mSubmitFailed.M(1))
		return nil, fmt.Errorf("%w: log group %q: %v", ErrSubmission, logGroup, err)
	}
	job.TaskID = id

	stats.Record(ctx, mExportsSubmitted.M(1))
	logger.Infow("submitted export task",
		"task_id", job.TaskID,
		"log_group", job.LogGroup,
		"from", w.From,
		"to", w.To,
		"destination", job.Destination,
		"prefix", job.DestinationPrefix)
	return job, nil
}

// ExportResult is the outcome of exporting one log group.
type ExportResult struct {
	LogGroup string     `json:"logGroupName"`
	Success  bool       `json:"status"`
	Job      *ExportJob `json:"job,omitempty"`
	Status   *JobStatus `json:"task_info,omitempty"`
	Error    string     `json:"error_message,omitempty"`

	err error
}

// Err returns the error that caused the export to fail, if any.
func (r *ExportResult) Err() error {
	return r.err
}

func (r *ExportResult) fail(err error) *ExportResult {
	r.Success = false
	r.err = err
	r.Error = err.Error()
	return r
}

// ExportOne derives the window for logGroup, submits the export and polls it
// until a terminal state. Submission failures skip polling.
func (c *Coordinator) ExportOne(ctx context.Context, logGroup string) *ExportResult {
	result := &ExportResult{LogGroup: logGroup}

	w := DeriveWindow(c.now(), c.config.RetentionDays)
	job, err := c.Submit(ctx, logGroup, w, c.config.Bucket)
	if err != nil {
		logging.FromContext(ctx).Named("archive.ExportOne").
			Errorw("failed to submit export", "log_group", logGroup, "error", err)
		return result.fail(err)
	}
	result.Job = job

	status := c.PollUntilTerminal(ctx, job.TaskID, c.config.PollTimeout, c.config.InitialBackoff)
	if status.LogGroup == "" {
		status.LogGroup = logGroup
	}
	result.Status = status
	recordFinished(ctx, status)

	if status.State != StateCompleted {
		return result.fail(status.Err())
	}
	result.Success = true
	return result
}

// DiscoveryContext describes what discovery saw when no log group matched the
// allow-list.
type DiscoveryContext struct {
	All       []*cwlogs.LogGroup `json:"all_logs"`
	Requested []string           `json:"cw_logs_to_export"`
	Filtered  []*cwlogs.LogGroup `json:"filtered_logs"`
}

// RunResult is the outcome of a single invocation. Status reports whether the
// invocation reached the point of attempting every export; per-source
// failures are recorded in ExportTasks and do not affect it.
type RunResult struct {
	RunID        string            `json:"run_id"`
	Status       bool              `json:"status"`
	ErrorMessage string            `json:"error_message"`
	ExportTasks  []*ExportResult   `json:"export_tasks,omitempty"`
	LogGroups    *DiscoveryContext `json:"lgs,omitempty"`
	StartedAt    time.Time         `json:"started_at"`
	FinishedAt   time.Time         `json:"finished_at"`
}

// ConfigFailure is the result of an invocation whose configuration could not
// be loaded. No work is attempted. Errors not already classified are wrapped in
// ErrConfig.
func ConfigFailure(err error) *RunResult {
	if !errors.Is(err, ErrConfig) {
		err = fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return &RunResult{
		Status:       false,
		ErrorMessage: err.Error(),
	}
}

// Run discovers the allow-listed log groups and exports each of them.
func (c *Coordinator) Run(ctx context.Context) *RunResult {
	result := &RunResult{
		RunID:     uuid.New().String(),
		StartedAt: c.now().UTC(),
	}

	logger := logging.FromContext(ctx).Named("archive.Run").With(
		"run_id", result.RunID,
		"owner", c.config.Owner,
		"environment", c.config.Environment)
	ctx = logging.WithLogger(ctx, logger)

	finish := func(err error) *RunResult {
		result.FinishedAt = c.now().UTC()
		if err != nil {
			stats.Record(ctx, mRunFailed.M(1))
			result.ErrorMessage = err.Error()
			return result
		}
		result.Status = true
		return result
	}

	all, err := c.logs.ListLogGroups(ctx)
	if err != nil {
		logger.Errorw("failed to list log groups", "error", err)
		return finish(fmt.Errorf("%w: %v", ErrDiscovery, err))
	}

	groups := cwlogs.FilterLogGroups(all, c.config.LogGroups)
	if len(groups) == 0 {
		nerr := &NoMatchingSourcesError{Discovered: all, Requested: c.config.LogGroups}
		logger.Errorw("no log groups to export", "requested", c.config.LogGroups, "discovered", len(all))
		result.LogGroups = &DiscoveryContext{
			All:       all,
			Requested: c.config.LogGroups,
			Filtered:  []*cwlogs.LogGroup{},
		}
		return finish(nerr)
	}

	logger.Infow("exporting log groups", "log_groups", cwlogs.Names(groups))
	result.ExportTasks = c.exportAll(ctx, groups)

	var merr *multierror.Error
	for _, r := range result.ExportTasks {
		if !r.Success {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", r.LogGroup, r.Err()))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		logger.Warnw("some exports did not complete",
			"failed", merr.Len(),
			"total", len(result.ExportTasks),
			"error", err)
	} else {
		logger.Infow("all exports completed", "total", len(result.ExportTasks))
	}

	finish(nil)

	if c.config.WriteManifest {
		if err := c.writeManifest(ctx, result); err != nil {
			logger.Errorw("failed to write run manifest", "error", err)
		}
	}
	return result
}

// exportAll exports each group, in order, with at most Parallelism exports in
// flight. Results keep the order of groups.
func (c *Coordinator) exportAll(ctx context.Context, groups []*cwlogs.LogGroup) []*ExportResult {
	results := make([]*ExportResult, len(groups))

	limit := c.config.Parallelism
	if limit <= 1 {
		for i, lg := range groups {
			results[i] = c.ExportOne(ctx, lg.Name)
		}
		return results
	}

	// Workers never return an error so one source cannot cancel another.
	var g errgroup.Group
	g.SetLimit(limit)
	for i, lg := range groups {
		i, name := i, lg.Name
		g.Go(func() error {
			results[i] = c.ExportOne(ctx, name)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
