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
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Compile-time check to verify implements interface.
var _ Blobstore = (*AWSS3)(nil)

// AWSS3 implements the Blobstore interface on top of Amazon S3.
type AWSS3 struct {
	svc s3iface.S3API
}

// NewAWSS3 creates an S3 backed Blobstore from the given AWS session.
func NewAWSS3(ctx context.Context, provider client.ConfigProvider) (Blobstore, error) {
	return NewAWSS3WithClient(s3.New(provider)), nil
}

// NewAWSS3WithClient wraps an existing S3 client.
func NewAWSS3WithClient(svc s3iface.S3API) *AWSS3 {
	return &AWSS3{svc: svc}
}

// BucketExists issues a HEAD request against the bucket. A missing bucket
// surfaces only as a 404 status code since HEAD responses carry no body.
func (s *AWSS3) BucketExists(ctx context.Context, bucket string) error {
	if _, err := s.svc.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("bucket %q: %w: %v", bucket, ErrBucketNotFound, err)
		}
		return fmt.Errorf("storage.BucketExists: %w", err)
	}
	return nil
}

// CreateObject creates a new S3 object or overwrites an existing one.
func (s *AWSS3) CreateObject(ctx context.Context, bucket, key string, contents []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(key),
		CacheControl: aws.String("no-cache, max-age=0"),
		Body:         bytes.NewReader(contents),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.svc.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("storage.CreateObject: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var rerr awserr.RequestFailure
	if errors.As(err, &rerr) && rerr.StatusCode() == http.StatusNotFound {
		return true
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, "NotFound":
			return true
		}
	}
	return false
}
