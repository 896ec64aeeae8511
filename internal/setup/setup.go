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

// Package setup provides common logic for configuring the various services.
package setup

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
	"github.com/cloudwatch-archiver/log-archiver/internal/serverenv"
	"github.com/cloudwatch-archiver/log-archiver/internal/storage"
	"github.com/cloudwatch-archiver/log-archiver/pkg/logging"
	"github.com/cloudwatch-archiver/log-archiver/pkg/observability"
	"github.com/sethvargo/go-envconfig"
)

// AWSConfigProvider signals that the config provided knows how to configure
// the shared AWS session.
type AWSConfigProvider interface {
	AWSConfig() *AWSConfig
}

// BlobstoreConfigProvider provides the information about current storage
// configuration.
type BlobstoreConfigProvider interface {
	BlobstoreConfig() *storage.Config
}

// LogsClientConfigProvider provides the configuration for the CloudWatch Logs
// client.
type LogsClientConfigProvider interface {
	LogsClientConfig() *cwlogs.Config
}

// ObservabilityExporterConfigProvider signals that the config knows how to
// configure an observability exporter.
type ObservabilityExporterConfigProvider interface {
	ObservabilityExporterConfig() *observability.Config
}

// Validator is implemented by configs that check themselves after processing.
type Validator interface {
	Validate() error
}

// Setup runs common initialization code for all servers. See SetupWith.
func Setup(ctx context.Context, config interface{}) (*serverenv.ServerEnv, error) {
	return SetupWith(ctx, config, envconfig.OsLookuper())
}

// SetupWith processes the given configuration using envconfig. It is
// responsible for establishing the AWS session, the blobstore, the logs
// client and the observability exporter, depending on which provider
// interfaces the config implements.
func SetupWith(ctx context.Context, config interface{}, l envconfig.Lookuper) (*serverenv.ServerEnv, error) {
	logger := logging.FromContext(ctx).Named("setup.Setup")

	if err := envconfig.ProcessWith(ctx, config, l); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	logger.Debugw("provided", "config", config)

	if v, ok := config.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	awsConfig := &AWSConfig{}
	if provider, ok := config.(AWSConfigProvider); ok {
		awsConfig = provider.AWSConfig()
	}

	// The session is only created when an AWS-backed component asks for it, so
	// in-memory setups never touch credentials.
	var sess *session.Session
	awsSession := func() (client.ConfigProvider, error) {
		if sess != nil {
			return sess, nil
		}
		s, err := NewAWSSession(awsConfig)
		if err != nil {
			return nil, err
		}
		logger.Infow("created aws session", "region", awsConfig.Region)
		sess = s
		return sess, nil
	}

	var opts []serverenv.Option
	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	if provider, ok := config.(ObservabilityExporterConfigProvider); ok {
		logger.Debugw("configuring observability exporter")

		oeConfig := provider.ObservabilityExporterConfig()
		oe, err := observability.NewFromEnv(oeConfig)
		if err != nil {
			return nil, fmt.Errorf("unable to create ObservabilityExporter provider: %w", err)
		}
		if err := oe.StartExporter(ctx); err != nil {
			return nil, fmt.Errorf("error initializing observability exporter: %w", err)
		}
		closers = append(closers, oe.Close)
		opts = append(opts, serverenv.WithObservabilityExporter(oe))
		logger.Infow("observability exporter", "config", oeConfig.ExporterType)
	}

	if provider, ok := config.(BlobstoreConfigProvider); ok {
		logger.Debugw("configuring blobstore")

		cfg := provider.BlobstoreConfig()

		var p client.ConfigProvider
		if cfg.BlobstoreType == storage.BlobstoreTypeAWSS3 {
			s, err := awsSession()
			if err != nil {
				cleanup()
				return nil, err
			}
			p = s
		}

		blobStore, err := storage.BlobstoreFor(ctx, cfg, p)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("unable to connect to storage system: %w", err)
		}
		opts = append(opts, serverenv.WithBlobStorage(blobStore))
		logger.Infow("blobstore", "config", cfg.BlobstoreType)
	}

	if provider, ok := config.(LogsClientConfigProvider); ok {
		logger.Debugw("configuring logs client")

		cfg := provider.LogsClientConfig()

		var p client.ConfigProvider
		if cfg.ClientType == cwlogs.ClientTypeAWS {
			s, err := awsSession()
			if err != nil {
				cleanup()
				return nil, err
			}
			p = s
		}

		logsClient, err := cwlogs.ClientFor(ctx, cfg, p)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("unable to create logs client: %w", err)
		}
		opts = append(opts, serverenv.WithLogsClient(logsClient))
		logger.Infow("logs client", "config", cfg.ClientType)
	}

	return serverenv.New(ctx, opts...), nil
}
