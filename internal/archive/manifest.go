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
	"encoding/json"
	"fmt"
	"path"
)

const manifestContentType = "application/json"

// ManifestKey returns the object key of the manifest for the given run.
func ManifestKey(root string, r *RunResult) string {
	return path.Join(root, "manifests", r.StartedAt.UTC().Format("2006/01/02"), r.RunID+".json")
}

// writeManifest stores the run result as JSON in the export bucket.
func (c *Coordinator) writeManifest(ctx context.Context, r *RunResult) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	key := ManifestKey(c.config.PrefixRoot, r)
	if err := c.blobstore.CreateObject(ctx, c.config.Bucket, key, b, manifestContentType); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", key, err)
	}
	return nil
}
