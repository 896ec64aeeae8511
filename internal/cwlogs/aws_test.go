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
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs/cloudwatchlogsiface"
	"github.com/google/go-cmp/cmp"
)

type fakeLogsAPI struct {
	cloudwatchlogsiface.CloudWatchLogsAPI

	pages   []*cloudwatchlogs.DescribeLogGroupsOutput
	listErr error
	listIn  *cloudwatchlogs.DescribeLogGroupsInput

	createIn  *cloudwatchlogs.CreateExportTaskInput
	createOut *cloudwatchlogs.CreateExportTaskOutput
	createErr error

	describeOut *cloudwatchlogs.DescribeExportTasksOutput
	describeErr error
}

func (f *fakeLogsAPI) DescribeLogGroupsPagesWithContext(_ aws.Context, in *cloudwatchlogs.DescribeLogGroupsInput, fn func(*cloudwatchlogs.DescribeLogGroupsOutput, bool) bool, _ ...request.Option) error {
	f.listIn = in
	if f.listErr != nil {
		return f.listErr
	}
	for i, p := range f.pages {
		if !fn(p, i == len(f.pages)-1) {
			break
		}
	}
	return nil
}

func (f *fakeLogsAPI) CreateExportTaskWithContext(_ aws.Context, in *cloudwatchlogs.CreateExportTaskInput, _ ...request.Option) (*cloudwatchlogs.CreateExportTaskOutput, error) {
	f.createIn = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeLogsAPI) DescribeExportTasksWithContext(_ aws.Context, in *cloudwatchlogs.DescribeExportTasksInput, _ ...request.Option) (*cloudwatchlogs.DescribeExportTasksOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return f.describeOut, nil
}

func TestAWSClient_ListLogGroups(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	fake := &fakeLogsAPI{
		pages: []*cloudwatchlogs.DescribeLogGroupsOutput{
			{
				LogGroups: []*cloudwatchlogs.LogGroup{
					{LogGroupName: aws.String("/aws/lambda/a"), CreationTime: aws.Int64(created.UnixMilli()), RetentionInDays: aws.Int64(90)},
					{LogGroupName: aws.String("/aws/lambda/b"), StoredBytes: aws.Int64(1024)},
				},
				NextToken: aws.String("next"),
			},
			{
				LogGroups: []*cloudwatchlogs.LogGroup{
					{LogGroupName: aws.String("plain"), Arn: aws.String("arn:aws:logs:plain")},
				},
			},
		},
	}

	client := NewAWSClientWithAPI(fake, &Config{LogGroupNamePrefix: "/aws"})
	got, err := client.ListLogGroups(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := []*LogGroup{
		{Name: "/aws/lambda/a", CreationTime: created, RetentionInDays: 90},
		{Name: "/aws/lambda/b", StoredBytes: 1024},
		{Name: "plain", ARN: "arn:aws:logs:plain"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}

	if got, want := aws.Int64Value(fake.listIn.Limit), int64(describePageSize); got != want {
		t.Errorf("expected limit %d to be %d", got, want)
	}
	if got, want := aws.StringValue(fake.listIn.LogGroupNamePrefix), "/aws"; got != want {
		t.Errorf("expected prefix %q to be %q", got, want)
	}
}

func TestAWSClient_ListLogGroups_error(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("throttled")
	client := NewAWSClientWithAPI(&fakeLogsAPI{listErr: wantErr}, nil)
	if _, err := client.ListLogGroups(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("expected %v to wrap %v", err, wantErr)
	}
}

func TestAWSClient_CreateExportTask(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 7, 17, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	cases := []struct {
		name      string
		out       *cloudwatchlogs.CreateExportTaskOutput
		createErr error
		want      string
		err       bool
	}{
		{
			name: "ok",
			out:  &cloudwatchlogs.CreateExportTaskOutput{TaskId: aws.String("task-1")},
			want: "task-1",
		},
		{
			name:      "api_error",
			createErr: errors.New("LimitExceededException"),
			err:       true,
		},
		{
			name: "empty_id",
			out:  &cloudwatchlogs.CreateExportTaskOutput{},
			err:  true,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeLogsAPI{createOut: tc.out, createErr: tc.createErr}
			client := NewAWSClientWithAPI(fake, nil)

			got, err := client.CreateExportTask(context.Background(), &ExportTaskInput{
				TaskName:          "name",
				LogGroupName:      "/aws/lambda/a",
				From:              from,
				To:                to,
				Destination:       "bucket",
				DestinationPrefix: "aws-lambda-a/2026/07/17/00",
			})
			if (err != nil) != tc.err {
				t.Fatalf("expected error %t, got %v", tc.err, err)
			}
			if got != tc.want {
				t.Errorf("expected %q to be %q", got, tc.want)
			}

			in := fake.createIn
			if got, want := aws.Int64Value(in.From), from.UnixMilli(); got != want {
				t.Errorf("expected from %d to be %d", got, want)
			}
			if got, want := aws.Int64Value(in.To), to.UnixMilli(); got != want {
				t.Errorf("expected to %d to be %d", got, want)
			}
			if got, want := aws.StringValue(in.DestinationPrefix), "aws-lambda-a/2026/07/17/00"; got != want {
				t.Errorf("expected prefix %q to be %q", got, want)
			}
		})
	}
}

func TestAWSClient_DescribeExportTask(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 7, 17, 0, 0, 0, 0, time.UTC)

	fake := &fakeLogsAPI{
		describeOut: &cloudwatchlogs.DescribeExportTasksOutput{
			ExportTasks: []*cloudwatchlogs.ExportTask{
				{
					TaskId:       aws.String("task-1"),
					LogGroupName: aws.String("/aws/lambda/a"),
					From:         aws.Int64(from.UnixMilli()),
					To:           aws.Int64(from.Add(24 * time.Hour).UnixMilli()),
					Status: &cloudwatchlogs.ExportTaskStatus{
						Code:    aws.String(cloudwatchlogs.ExportTaskStatusCodeRunning),
						Message: aws.String("in progress"),
					},
				},
			},
		},
	}

	client := NewAWSClientWithAPI(fake, nil)
	got, err := client.DescribeExportTask(context.Background(), "task-1")
	if err != nil {
		t.Fatal(err)
	}

	want := &ExportTask{
		TaskID:        "task-1",
		LogGroupName:  "/aws/lambda/a",
		StatusCode:    StatusRunning,
		StatusMessage: "in progress",
		From:          from,
		To:            from.Add(24 * time.Hour),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
	if got.Completed() {
		t.Errorf("expected running task to not be completed")
	}

	empty := NewAWSClientWithAPI(&fakeLogsAPI{describeOut: &cloudwatchlogs.DescribeExportTasksOutput{}}, nil)
	if _, err := empty.DescribeExportTask(context.Background(), "task-2"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
