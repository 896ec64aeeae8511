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
	"fmt"
	"time"

	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
	"github.com/cloudwatch-archiver/log-archiver/internal/setup"
	"github.com/cloudwatch-archiver/log-archiver/internal/storage"
	"github.com/cloudwatch-archiver/log-archiver/pkg/observability"
)

// Compile-time check to assert this config matches requirements.
var (
	_ setup.AWSConfigProvider                   = (*Config)(nil)
	_ setup.BlobstoreConfigProvider             = (*Config)(nil)
	_ setup.LogsClientConfigProvider            = (*Config)(nil)
	_ setup.ObservabilityExporterConfigProvider = (*Config)(nil)
	_ setup.Validator                           = (*Config)(nil)
)

// Config represents the configuration and associated environment variables for
// the archive components. It is processed once per process and treated as
// read-only afterwards.
type Config struct {
	AWS                   setup.AWSConfig
	Storage               storage.Config
	Logs                  cwlogs.Config
	ObservabilityExporter observability.Config

	Port string `env:"PORT, default=8080"`

	// Owner and Environment are informational and attached to every log line
	// of an invocation.
	Owner       string `env:"OWNER"`
	Environment string `env:"ENVIRONMENT"`

	// RetentionDays is the age in whole days past which log data is archived.
	// Zero means DefaultRetentionDays.
	RetentionDays uint `env:"EXPORT_RETENTION_DAYS, default=90"`

	// LogGroups is the allow-list of log group names to export.
	LogGroups []string `env:"EXPORT_LOG_GROUPS"`

	Bucket     string `env:"EXPORT_BUCKET"`
	PrefixRoot string `env:"EXPORT_PREFIX_ROOT"`

	PollTimeout       time.Duration `env:"EXPORT_POLL_TIMEOUT, default=300s"`
	InitialBackoff    time.Duration `env:"EXPORT_INITIAL_BACKOFF, default=2s"`
	Parallelism       int           `env:"EXPORT_PARALLELISM, default=1"`
	InvocationTimeout time.Duration `env:"EXPORT_INVOCATION_TIMEOUT, default=30m"`
	WriteManifest     bool          `env:"EXPORT_WRITE_MANIFEST, default=false"`
}

func (c *Config) AWSConfig() *setup.AWSConfig {
	return &c.AWS
}

func (c *Config) BlobstoreConfig() *storage.Config {
	return &c.Storage
}

func (c *Config) LogsClientConfig() *cwlogs.Config {
	return &c.Logs
}

func (c *Config) ObservabilityExporterConfig() *observability.Config {
	return &c.ObservabilityExporter
}

// Validate checks the processed configuration. All failures wrap ErrConfig.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("%w: EXPORT_BUCKET is required", ErrConfig)
	}
	if len(c.LogGroups) == 0 {
		return fmt.Errorf("%w: EXPORT_LOG_GROUPS must name at least one log group", ErrConfig)
	}
	for i, lg := range c.LogGroups {
		if lg == "" {
			return fmt.Errorf("%w: EXPORT_LOG_GROUPS entry %d is empty", ErrConfig, i)
		}
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("%w: EXPORT_INITIAL_BACKOFF must be positive, got %s", ErrConfig, c.InitialBackoff)
	}
	if c.PollTimeout < 0 {
		return fmt.Errorf("%w: EXPORT_POLL_TIMEOUT must not be negative, got %s", ErrConfig, c.PollTimeout)
	}
	if c.InvocationTimeout < 0 {
		return fmt.Errorf("%w: EXPORT_INVOCATION_TIMEOUT must not be negative, got %s", ErrConfig, c.InvocationTimeout)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: EXPORT_PARALLELISM must be at least 1, got %d", ErrConfig, c.Parallelism)
	}
	return nil
}

// TestConfigDefaults returns a configuration populated with the default values.
// It should only be used for testing.
func TestConfigDefaults() *Config {
	return &Config{
		AWS:                   setup.AWSConfig{Region: "ap-northeast-1", MaxRetries: 3},
		Storage:               storage.Config{BlobstoreType: storage.BlobstoreTypeAWSS3},
		Logs:                  cwlogs.Config{ClientType: cwlogs.ClientTypeAWS},
		ObservabilityExporter: observability.Config{
			ExporterType: observability.ExporterNoop,
			OpenCensus:   observability.OpenCensusConfig{SampleRate: 0.40},
			Prometheus:   observability.PrometheusConfig{Namespace: "log_archiver"},
		},
		Port:              "8080",
		RetentionDays:     90,
		PollTimeout:       300 * time.Second,
		InitialBackoff:    2 * time.Second,
		Parallelism:       1,
		InvocationTimeout: 30 * time.Minute,
	}
}

// TestConfigValued returns a configuration populated with values that match
// TestConfigValues() It should only be used for testing.
func TestConfigValued() *Config {
	cfg := TestConfigDefaults()
	cfg.Owner = "20181625"
	cfg.Environment = "prod"
	cfg.RetentionDays = 30
	cfg.LogGroups = []string{"/aws/lambda/police_protest_info", "plain"}
	cfg.Bucket = "police-log"
	cfg.PrefixRoot = "archive"
	cfg.PollTimeout = 50000 * time.Second
	cfg.InitialBackoff = 4 * time.Second
	cfg.Parallelism = 2
	cfg.WriteManifest = true
	return cfg
}

// TestConfigValues returns a list of configuration that corresponds to
// TestConfigValued. It should only be used for testing.
func TestConfigValues() map[string]string {
	return map[string]string{
		"OWNER":                  "20181625",
		"ENVIRONMENT":            "prod",
		"EXPORT_RETENTION_DAYS":  "30",
		"EXPORT_LOG_GROUPS":      "/aws/lambda/police_protest_info,plain",
		"EXPORT_BUCKET":          "police-log",
		"EXPORT_PREFIX_ROOT":     "archive",
		"EXPORT_POLL_TIMEOUT":    "50000s",
		"EXPORT_INITIAL_BACKOFF": "4s",
		"EXPORT_PARALLELISM":     "2",
		"EXPORT_WRITE_MANIFEST":  "true",
	}
}
