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

// This tool runs a single log archive invocation and prints the result as
// JSON. It exits non-zero when the invocation reports status=false.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cloudwatch-archiver/log-archiver/internal/archive"
	"github.com/cloudwatch-archiver/log-archiver/internal/buildinfo"
	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
	"github.com/cloudwatch-archiver/log-archiver/internal/setup"
	"github.com/cloudwatch-archiver/log-archiver/internal/storage"
	cflag "github.com/cloudwatch-archiver/log-archiver/pkg/flag"
	"github.com/cloudwatch-archiver/log-archiver/pkg/logging"
	"github.com/cloudwatch-archiver/log-archiver/pkg/render"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

var (
	envFile = flag.String("env-file", "", "Optional dotenv file to load before reading the environment.")
	dryRun  = flag.Bool("dry-run", false, "Use in-memory CloudWatch Logs and S3 seeded from the configuration.")

	logGroups cflag.StringListVar
)

func init() {
	flag.Var(&logGroups, "log-groups", "Comma separated log groups to export, overrides EXPORT_LOG_GROUPS.")
}

func main() {
	flag.Parse()

	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	logger := logging.NewLoggerFromEnv().
		With("build_id", buildinfo.BuildID).
		With("build_tag", buildinfo.BuildTag)
	ctx = logging.WithLogger(ctx, logger)

	result := realMain(ctx)
	done()

	if err := render.NewRenderer().WriteJSON(os.Stdout, result); err != nil {
		logger.Fatalw("failed to print result", "error", err)
	}
	if !result.Status {
		os.Exit(1)
	}
}

func realMain(ctx context.Context) *archive.RunResult {
	logger := logging.FromContext(ctx)

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return archive.ConfigFailure(fmt.Errorf("%w: failed to load %s: %v", archive.ErrConfig, *envFile, err))
		}
	}

	overrides := make(map[string]string)
	if len(logGroups) > 0 {
		overrides["EXPORT_LOG_GROUPS"] = strings.Join(logGroups, ",")
	}
	if *dryRun {
		overrides["BLOBSTORE"] = string(storage.BlobstoreTypeMemory)
		overrides["LOGS_CLIENT"] = string(cwlogs.ClientTypeInMemory)
	}
	lookuper := envconfig.MultiLookuper(envconfig.MapLookuper(overrides), envconfig.OsLookuper())

	var config archive.Config
	env, err := setup.SetupWith(ctx, &config, lookuper)
	if err != nil {
		logger.Errorw("failed to load configuration", "error", err)
		return archive.ConfigFailure(err)
	}
	defer env.Close(ctx)

	if *dryRun {
		logger.Infow("dry run", "log_groups", config.LogGroups, "bucket", config.Bucket)
	}

	coordinator, err := archive.New(&config, env)
	if err != nil {
		return archive.ConfigFailure(err)
	}

	if t := config.InvocationTimeout; t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}
	return coordinator.Run(ctx)
}
