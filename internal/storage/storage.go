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

// Package storage is an interface over the archive destination.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/client"
)

// ErrBucketNotFound is returned by BucketExists when the destination does not
// exist (or the caller is not allowed to learn that it does).
var ErrBucketNotFound = errors.New("bucket not found")

// ErrNotFound is the error returned when an object does not exist.
var ErrNotFound = errors.New("storage object not found")

// Blobstore defines the minimum interface for a blob storage system.
type Blobstore interface {
	// BucketExists returns nil if the bucket exists and is reachable,
	// ErrBucketNotFound if it does not exist, or any other error encountered
	// while probing.
	BucketExists(ctx context.Context, bucket string) error

	// CreateObject creates or overwrites an object in the storage system.
	CreateObject(ctx context.Context, bucket, key string, contents []byte, contentType string) error
}

// BlobstoreFor returns the blobstore for the given type, or an error if one
// does not exist. The provider is only consulted for AWS-backed stores and may
// be nil otherwise.
func BlobstoreFor(ctx context.Context, cfg *Config, provider client.ConfigProvider) (Blobstore, error) {
	switch typ := cfg.BlobstoreType; typ {
	case BlobstoreTypeAWSS3:
		if provider == nil {
			return nil, fmt.Errorf("blobstore %v requires an aws session", typ)
		}
		return NewAWSS3(ctx, provider)
	case BlobstoreTypeFilesystem:
		return NewFilesystemStorage(ctx)
	case BlobstoreTypeMemory:
		return NewMemory(ctx)
	case BlobstoreTypeNoop:
		return NewNoop(ctx)
	default:
		return nil, fmt.Errorf("unknown blobstore type: %v", typ)
	}
}
