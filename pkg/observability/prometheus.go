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

package observability

import (
	"context"
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats/view"
)

var (
	_ Exporter     = (*prometheusExporter)(nil)
	_ http.Handler = (*prometheusExporter)(nil)
)

// prometheusExporter exposes collected views on a scrape endpoint. The
// exporter itself is an http.Handler and is expected to be mounted at
// /metrics by the caller.
type prometheusExporter struct {
	exporter *prometheus.Exporter
}

// NewPrometheus creates a new pull-based metrics exporter.
func NewPrometheus(_ context.Context, config *PrometheusConfig) (Exporter, error) {
	namespace := "log_archiver"
	if config != nil && config.Namespace != "" {
		namespace = config.Namespace
	}

	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	return &prometheusExporter{exporter: pe}, nil
}

// StartExporter registers the exporter and all collected views.
func (e *prometheusExporter) StartExporter(_ context.Context) error {
	view.RegisterExporter(e.exporter)

	if err := registerViews(); err != nil {
		return fmt.Errorf("failed to start prometheus exporter: %w", err)
	}
	return nil
}

// ServeHTTP serves the scrape endpoint.
func (e *prometheusExporter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.exporter.ServeHTTP(w, r)
}

// Close unregisters the exporter.
func (e *prometheusExporter) Close() error {
	view.UnregisterExporter(e.exporter)
	return nil
}
