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

// Package cwlogs is an interface over CloudWatch Logs log group discovery and
// export tasks.
package cwlogs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
)

// Export task status codes as reported by CloudWatch Logs.
const (
	StatusCompleted     = cloudwatchlogs.ExportTaskStatusCodeCompleted
	StatusPending       = cloudwatchlogs.ExportTaskStatusCodePending
	StatusRunning       = cloudwatchlogs.ExportTaskStatusCodeRunning
	StatusFailed        = cloudwatchlogs.ExportTaskStatusCodeFailed
	StatusCancelled     = cloudwatchlogs.ExportTaskStatusCodeCancelled
	StatusPendingCancel = cloudwatchlogs.ExportTaskStatusCodePendingCancel
)

// ErrTaskNotFound is returned when a described export task does not exist.
var ErrTaskNotFound = errors.New("export task not found")

// LogGroup is a discovered log group.
type LogGroup struct {
	Name            string    `json:"logGroupName"`
	ARN             string    `json:"arn,omitempty"`
	CreationTime    time.Time `json:"creationTime,omitempty"`
	RetentionInDays int64     `json:"retentionInDays,omitempty"`
	StoredBytes     int64     `json:"storedBytes,omitempty"`
}

// ExportTaskInput is a request to copy one log group's events in [From, To)
// into an S3 bucket under DestinationPrefix.
type ExportTaskInput struct {
	TaskName          string
	LogGroupName      string
	From              time.Time
	To                time.Time
	Destination       string
	DestinationPrefix string
}

// ExportTask is a point-in-time snapshot of an export task.
type ExportTask struct {
	TaskID            string    `json:"taskId"`
	TaskName          string    `json:"taskName,omitempty"`
	LogGroupName      string    `json:"logGroupName"`
	StatusCode        string    `json:"statusCode"`
	StatusMessage     string    `json:"statusMessage,omitempty"`
	From              time.Time `json:"from"`
	To                time.Time `json:"to"`
	Destination       string    `json:"destination,omitempty"`
	DestinationPrefix string    `json:"destinationPrefix,omitempty"`
}

// Completed reports whether the task reached the COMPLETED status.
func (t *ExportTask) Completed() bool {
	return t != nil && t.StatusCode == StatusCompleted
}

// Client is the subset of CloudWatch Logs used by the archiver.
type Client interface {
	// ListLogGroups returns every log group visible to the caller, following
	// pagination until exhausted.
	ListLogGroups(ctx context.Context) ([]*LogGroup, error)

	// CreateExportTask submits an asynchronous export and returns its task ID.
	CreateExportTask(ctx context.Context, in *ExportTaskInput) (string, error)

	// DescribeExportTask returns the current status of the given task.
	DescribeExportTask(ctx context.Context, taskID string) (*ExportTask, error)
}

// ClientFor returns the logs client for the configured type.
func ClientFor(ctx context.Context, cfg *Config, provider client.ConfigProvider) (Client, error) {
	switch typ := cfg.ClientType; typ {
	case ClientTypeAWS:
		if provider == nil {
			return nil, fmt.Errorf("logs client %v requires an aws session", typ)
		}
		return NewAWSClient(ctx, provider, cfg)
	case ClientTypeInMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown logs client type: %v", typ)
	}
}

// FilterLogGroups returns the log groups whose name is an exact member of
// allow, in discovery order.
func FilterLogGroups(all []*LogGroup, allow []string) []*LogGroup {
	allowed := make(map[string]struct{}, len(allow))
	for _, name := range allow {
		allowed[name] = struct{}{}
	}

	var ret []*LogGroup
	for _, lg := range all {
		if lg == nil {
			continue
		}
		if _, ok := allowed[lg.Name]; ok {
			ret = append(ret, lg)
		}
	}
	return ret
}

// Names returns the names of the given log groups.
func Names(groups []*LogGroup) []string {
	ret := make([]string, 0, len(groups))
	for _, lg := range groups {
		ret = append(ret, lg.Name)
	}
	return ret
}
