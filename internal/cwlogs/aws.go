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

package cwlogs

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs/cloudwatchlogsiface"
)

// describePageSize is the maximum page size DescribeLogGroups accepts.
const describePageSize = 50

// Compile-time check to verify implements interface.
var _ Client = (*AWSClient)(nil)

// AWSClient implements Client on top of the CloudWatch Logs API.
type AWSClient struct {
	svc    cloudwatchlogsiface.CloudWatchLogsAPI
	prefix string
}

// NewAWSClient creates a CloudWatch Logs client from the given AWS session.
func NewAWSClient(ctx context.Context, provider client.ConfigProvider, cfg *Config) (Client, error) {
	return NewAWSClientWithAPI(cloudwatchlogs.New(provider), cfg), nil
}

// NewAWSClientWithAPI wraps an existing CloudWatch Logs API client.
func NewAWSClientWithAPI(svc cloudwatchlogsiface.CloudWatchLogsAPI, cfg *Config) *AWSClient {
	c := &AWSClient{svc: svc}
	if cfg != nil {
		c.prefix = cfg.LogGroupNamePrefix
	}
	return c
}

// ListLogGroups lists all log groups, following nextToken until exhausted.
func (c *AWSClient) ListLogGroups(ctx context.Context) ([]*LogGroup, error) {
	input := &cloudwatchlogs.DescribeLogGroupsInput{
		Limit: aws.Int64(describePageSize),
	}
	if c.prefix != "" {
		input.LogGroupNamePrefix = aws.String(c.prefix)
	}

	var ret []*LogGroup
	if err := c.svc.DescribeLogGroupsPagesWithContext(ctx, input,
		func(page *cloudwatchlogs.DescribeLogGroupsOutput, _ bool) bool {
			for _, lg := range page.LogGroups {
				ret = append(ret, logGroupFromAPI(lg))
			}
			return true
		}); err != nil {
		return nil, fmt.Errorf("cwlogs.ListLogGroups: %w", err)
	}
	return ret, nil
}

// CreateExportTask submits an export task.
func (c *AWSClient) CreateExportTask(ctx context.Context, in *ExportTaskInput) (string, error) {
	input := &cloudwatchlogs.CreateExportTaskInput{
		TaskName:     aws.String(in.TaskName),
		LogGroupName: aws.String(in.LogGroupName),
		From:         aws.Int64(in.From.UnixMilli()),
		To:           aws.Int64(in.To.UnixMilli()),
		Destination:  aws.String(in.Destination),
	}
	if in.DestinationPrefix != "" {
		input.DestinationPrefix = aws.String(in.DestinationPrefix)
	}

	out, err := c.svc.CreateExportTaskWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("cwlogs.CreateExportTask: %w", err)
	}

	id := aws.StringValue(out.TaskId)
	if id == "" {
		return "", fmt.Errorf("cwlogs.CreateExportTask: response did not include a task id")
	}
	return id, nil
}

// DescribeExportTask returns the status snapshot of the task.
func (c *AWSClient) DescribeExportTask(ctx context.Context, taskID string) (*ExportTask, error) {
	out, err := c.svc.DescribeExportTasksWithContext(ctx, &cloudwatchlogs.DescribeExportTasksInput{
		TaskId: aws.String(taskID),
	})
	if err != nil {
		return nil, fmt.Errorf("cwlogs.DescribeExportTask: %w", err)
	}
	if len(out.ExportTasks) == 0 || out.ExportTasks[0] == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	return exportTaskFromAPI(out.ExportTasks[0]), nil
}

func logGroupFromAPI(lg *cloudwatchlogs.LogGroup) *LogGroup {
	ret := &LogGroup{
		Name:            aws.StringValue(lg.LogGroupName),
		ARN:             aws.StringValue(lg.Arn),
		RetentionInDays: aws.Int64Value(lg.RetentionInDays),
		StoredBytes:     aws.Int64Value(lg.StoredBytes),
	}
	if lg.CreationTime != nil {
		ret.CreationTime = time.UnixMilli(*lg.CreationTime).UTC()
	}
	return ret
}

func exportTaskFromAPI(t *cloudwatchlogs.ExportTask) *ExportTask {
	ret := &ExportTask{
		TaskID:            aws.StringValue(t.TaskId),
		TaskName:          aws.StringValue(t.TaskName),
		LogGroupName:      aws.StringValue(t.LogGroupName),
		Destination:       aws.StringValue(t.Destination),
		DestinationPrefix: aws.StringValue(t.DestinationPrefix),
	}
	if t.From != nil {
		ret.From = time.UnixMilli(*t.From).UTC()
	}
	if t.To != nil {
		ret.To = time.UnixMilli(*t.To).UTC()
	}
	if t.Status != nil {
		ret.StatusCode = aws.StringValue(t.Status.Code)
		ret.StatusMessage = aws.StringValue(t.Status.Message)
	}
	return ret
}
