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

	"github.com/cloudwatch-archiver/log-archiver/pkg/observability"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	archiveMetricsPrefix = observability.MetricRoot + "archive/"

	mExportsSubmitted = stats.Int64(archiveMetricsPrefix+"exports_submitted",
		"Export tasks submitted", stats.UnitDimensionless)
	mExportsFinished = stats.Int64(archiveMetricsPrefix+"exports_finished",
		"Export tasks that reached a terminal poll state", stats.UnitDimensionless)
	mSubmitFailed = stats.Int64(archiveMetricsPrefix+"submit_failed",
		"Instances of export submission failures", stats.UnitDimensionless)
	mRunFailed = stats.Int64(archiveMetricsPrefix+"run_failed",
		"Instances of invocations that ended with status=false", stats.UnitDimensionless)
	mExportWait = stats.Float64(archiveMetricsPrefix+"export_wait",
		"Time spent polling an export task", stats.UnitSeconds)

	stateTagKey = tag.MustNewKey("state")
)

func init() {
	observability.CollectViews(
		&view.View{
			Name:        observability.MetricRoot + "exports_submitted_count",
			Description: "Total count of export tasks submitted",
			Measure:     mExportsSubmitted,
			Aggregation: view.Sum(),
		},
		&view.View{
			Name:        observability.MetricRoot + "exports_finished_count",
			Description: "Total count of export tasks by terminal state",
			Measure:     mExportsFinished,
			TagKeys:     []tag.Key{stateTagKey},
			Aggregation: view.Sum(),
		},
		&view.View{
			Name:        observability.MetricRoot + "export_submit_failed_count",
			Description: "Total count of export submission failures",
			Measure:     mSubmitFailed,
			Aggregation: view.Sum(),
		},
		&view.View{
			Name:        observability.MetricRoot + "run_failed_count",
			Description: "Total count of failed invocations",
			Measure:     mRunFailed,
			Aggregation: view.Sum(),
		},
		&view.View{
			Name:        observability.MetricRoot + "export_wait_seconds",
			Description: "Distribution of export task poll durations",
			Measure:     mExportWait,
			Aggregation: view.Distribution(2, 6, 14, 30, 62, 126, 254, 510, 1022),
		},
	)
}

func recordFinished(ctx context.Context, status *JobStatus) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(stateTagKey, string(status.State))},
		mExportsFinished.M(1))
	stats.Record(ctx, mExportWait.M(status.Waited.Seconds()))
}
