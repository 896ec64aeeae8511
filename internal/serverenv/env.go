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

// Package serverenv defines common parameters for the sever environment.
package serverenv

import (
	"context"
	"fmt"

	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
	"github.com/cloudwatch-archiver/log-archiver/internal/storage"
	"github.com/cloudwatch-archiver/log-archiver/pkg/observability"
	"github.com/hashicorp/go-multierror"
)

// ServerEnv represents latent environment configuration for servers in this
// application. It is built once per process and never mutated afterwards.
type ServerEnv struct {
	blobstore             storage.Blobstore
	logsClient            cwlogs.Client
	observabilityExporter observability.Exporter
}

// Option defines function types to modify the ServerEnv on creation.
type Option func(*ServerEnv) *ServerEnv

// New creates a new ServerEnv with the requested options.
func New(ctx context.Context, opts ...Option) *ServerEnv {
	env := &ServerEnv{}

	for _, f := range opts {
		env = f(env)
	}

	return env
}

// WithBlobStorage creates an Option to install a specific Blobstore instance.
func WithBlobStorage(storage storage.Blobstore) Option {
	return func(s *ServerEnv) *ServerEnv {
		s.blobstore = storage
		return s
	}
}

// WithLogsClient creates an Option to install a specific CloudWatch Logs
// client.
func WithLogsClient(c cwlogs.Client) Option {
	return func(s *ServerEnv) *ServerEnv {
		s.logsClient = c
		return s
	}
}

// WithObservabilityExporter creates an Option to install a specific
// observability exporter system.
func WithObservabilityExporter(oe observability.Exporter) Option {
	return func(s *ServerEnv) *ServerEnv {
		s.observabilityExporter = oe
		return s
	}
}

// Blobstore returns the installed blobstore.
func (s *ServerEnv) Blobstore() storage.Blobstore {
	return s.blobstore
}

// LogsClient returns the installed CloudWatch Logs client.
func (s *ServerEnv) LogsClient() cwlogs.Client {
	return s.logsClient
}

// ObservabilityExporter returns the installed observability exporter.
func (s *ServerEnv) ObservabilityExporter() observability.Exporter {
	return s.observabilityExporter
}

// Close shuts down the server env, closing database connections, etc.
func (s *ServerEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var result *multierror.Error

	if s.observabilityExporter != nil {
		if err := s.observabilityExporter.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close observability exporter: %w", err))
		}
	}

	return result.ErrorOrNil()
}
