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

// Package render writes JSON responses for HTTP handlers and CLIs.
package render

import (
	"bytes"
	"sync"
)

// Renderer buffers output so a failed encode never produces a partial
// response.
type Renderer struct {
	pool *sync.Pool
}

// NewRenderer returns a renderer with a pool of 1KiB buffers.
func NewRenderer() *Renderer {
	return &Renderer{
		pool: &sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 1024))
			},
		},
	}
}

func (r *Renderer) buffer() *bytes.Buffer {
	b := r.pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}
