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
	"path"
	"sort"
	"sync"
)

// Compile-time check to verify implements interface.
var _ Blobstore = (*Memory)(nil)

// Memory implements Blobstore and provides the ability write files to
// memory. Buckets must be created with CreateBucket before they are reported
// as existing.
type Memory struct {
	lock    sync.Mutex
	buckets map[string]struct{}
	data    map[string][]byte
}

// NewMemory creates a Blobstore that writes data in memory.
func NewMemory(_ context.Context) (Blobstore, error) {
	return NewMemoryWithBuckets(), nil
}

// NewMemoryWithBuckets creates an in-memory blobstore with the given buckets
// already present.
func NewMemoryWithBuckets(buckets ...string) *Memory {
	m := &Memory{
		buckets: make(map[string]struct{}, len(buckets)),
		data:    make(map[string][]byte),
	}
	for _, b := range buckets {
		m.buckets[b] = struct{}{}
	}
	return m
}

// CreateBucket marks the bucket as existing.
func (s *Memory) CreateBucket(bucket string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.buckets[bucket] = struct{}{}
}

// BucketExists reports whether the bucket was created.
func (s *Memory) BucketExists(_ context.Context, bucket string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.buckets[bucket]; !ok {
		return fmt.Errorf("bucket %q: %w", bucket, ErrBucketNotFound)
	}
	return nil
}

// CreateObject creates a new object.
func (s *Memory) CreateObject(_ context.Context, bucket, key string, contents []byte, _ string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.buckets[bucket]; !ok {
		return fmt.Errorf("bucket %q: %w", bucket, ErrBucketNotFound)
	}

	s.data[path.Join(bucket, key)] = contents
	return nil
}

// GetObject returns the contents for the given object. If the object does not
// exist, it returns ErrNotFound.
func (s *Memory) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	v, ok := s.data[path.Join(bucket, key)]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// Keys returns the sorted list of stored object paths, bucket included.
func (s *Memory) Keys() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
