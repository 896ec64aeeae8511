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

package setup

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
)

// AWSConfig configures the AWS session shared by every AWS-backed component.
// Credentials are resolved through the default provider chain.
type AWSConfig struct {
	Region     string `env:"AWS_REGION, default=ap-northeast-1"`
	Endpoint   string `env:"AWS_ENDPOINT"`
	MaxRetries int    `env:"AWS_MAX_RETRIES, default=3"`
}

// NewAWSSession creates a session from the given configuration. A custom
// endpoint (for example localstack) forces path-style S3 addressing.
func NewAWSSession(cfg *AWSConfig) (*session.Session, error) {
	awsCfg := aws.NewConfig().WithMaxRetries(cfg.MaxRetries)
	if cfg.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *awsCfg,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return sess, nil
}
