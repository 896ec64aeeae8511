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

// ClientType defines a specific logs client implementation.
type ClientType string

const (
	ClientTypeAWS      ClientType = "AWS_CLOUDWATCH_LOGS"
	ClientTypeInMemory ClientType = "IN_MEMORY"
)

// Config defines the configuration for log group discovery.
type Config struct {
	ClientType ClientType `env:"LOGS_CLIENT, default=AWS_CLOUDWATCH_LOGS"`

	// LogGroupNamePrefix narrows discovery server-side. Filtering against the
	// allow-list still happens afterwards.
	LogGroupNamePrefix string `env:"EXPORT_LOG_GROUP_PREFIX"`
}
