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

// Package observability sets up and configures observability tools.
package observability

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
)

// MetricRoot is the prefix applied to every measure and view name.
const MetricRoot = "log-archiver/"

func defaultViews() []*view.View {
	var ret []*view.View
	ret = append(ret, ochttp.DefaultServerViews...)
	ret = append(ret, ochttp.DefaultClientViews...)
	return ret
}

var collectedViews = struct {
	views []*view.View
	sync.Mutex
}{}

// CollectViews collects all the OpenCensus views and register at a later time
// when we setup the metric exporter.
// This is mainly to be able to "register" the views in a module's init(), but
// still be able to handle the errors correctly.
// Typical usage:
//
//	var v = view.View{...}
//	func init() {
//	  observability.CollectViews(v)
//	}
//
// Actual view registration happens in exporter.StartExporter().
func CollectViews(views ...*view.View) {
	collectedViews.Lock()
	defer collectedViews.Unlock()
	collectedViews.views = append(collectedViews.views, views...)
}

// AllViews returns the collected OpenCensus views.
func AllViews() []*view.View {
	collectedViews.Lock()
	defer collectedViews.Unlock()

	ret := make([]*view.View, 0, len(collectedViews.views))
	ret = append(ret, collectedViews.views...)
	return append(ret, defaultViews()...)
}

// Exporter defines the minimum shared functionality for an observability exporter
// used by this application.
type Exporter interface {
	io.Closer
	StartExporter(ctx context.Context) error
}

// NewFromEnv returns the observability exporter given the provided configuration, or an error
// if it failed to be created.
func NewFromEnv(config *Config) (Exporter, error) {
	// Create a separate ctx.
	// The main ctx will be canceled when the server is shutting down. Sharing
	// the main ctx prevent the last batch of the metrics to be uploaded.
	ctx := context.Background()
	switch config.ExporterType {
	case ExporterNoop:
		return NewNoop(ctx)
	case ExporterOCAgent:
		return NewOpenCensus(ctx, &config.OpenCensus)
	case ExporterPrometheus:
		return NewPrometheus(ctx, &config.Prometheus)
	default:
		return nil, fmt.Errorf("unknown observability exporter type %v", config.ExporterType)
	}
}

func registerViews() error {
	for _, v := range AllViews() {
		if err := view.Register(v); err != nil {
			return fmt.Errorf("view registration failed for %s: %w", v.Name, err)
		}
	}
	return nil
}
