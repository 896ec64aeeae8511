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

// This package is the service that archives CloudWatch Logs log groups to S3;
// it is intended to be invoked over HTTP once per day by a scheduler.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/cloudwatch-archiver/log-archiver/internal/archive"
	"github.com/cloudwatch-archiver/log-archiver/internal/buildinfo"
	"github.com/cloudwatch-archiver/log-archiver/internal/setup"
	"github.com/cloudwatch-archiver/log-archiver/pkg/logging"
	"github.com/cloudwatch-archiver/log-archiver/pkg/server"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	logger := logging.NewLoggerFromEnv().
		With("build_id", buildinfo.BuildID).
		With("build_tag", buildinfo.BuildTag)
	ctx = logging.WithLogger(ctx, logger)

	defer func() {
		done()
		if r := recover(); r != nil {
			logger.Fatalw("application panic", "panic", r)
		}
	}()

	err := realMain(ctx)
	done()

	if err != nil {
		logger.Fatal(err)
	}
	logger.Info("successful shutdown")
}

func realMain(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	var config archive.Config
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	archiveServer, err := archive.NewServer(&config, env)
	if err != nil {
		return fmt.Errorf("archive.NewServer: %w", err)
	}

	srv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	logger.Infow("listening",
		"port", config.Port,
		"bucket", config.Bucket,
		"log_groups", config.LogGroups,
		"retention_days", archive.EffectiveRetentionDays(config.RetentionDays))

	return srv.ServeHTTPHandler(ctx, archiveServer.Routes(ctx))
}
