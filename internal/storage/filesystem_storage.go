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

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Compile-time check to verify implements interface.
var _ Blobstore = (*FilesystemStorage)(nil)

// FilesystemStorage implements Blobstore on the local filesystem. A bucket is a
// directory, an object is a file beneath it.
type FilesystemStorage struct{}

// NewFilesystemStorage creates a Blobstore compatible storage for the
// filesystem.
func NewFilesystemStorage(_ context.Context) (Blobstore, error) {
	return &FilesystemStorage{}, nil
}

// BucketExists checks that the bucket directory exists.
func (s *FilesystemStorage) BucketExists(_ context.Context, bucket string) error {
	stat, err := os.Stat(bucket)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("bucket %q: %w", bucket, ErrBucketNotFound)
		}
		return fmt.Errorf("storage.BucketExists: %w", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("bucket %q is not a directory: %w", bucket, ErrBucketNotFound)
	}
	return nil
}

// CreateObject creates a new object or overwrites an existing one. Intermediate
// directories of the key are created as needed.
func (s *FilesystemStorage) CreateObject(_ context.Context, bucket, key string, contents []byte, _ string) error {
	pth := filepath.Join(bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(pth), 0o755); err != nil {
		return fmt.Errorf("storage.CreateObject: %w", err)
	}
	if err := os.WriteFile(pth, contents, 0o600); err != nil {
		return fmt.Errorf("storage.CreateObject: %w", err)
	}
	return nil
}
