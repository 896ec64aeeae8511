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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwatch-archiver/log-archiver/internal/cwlogs"
	"github.com/cloudwatch-archiver/log-archiver/internal/serverenv"
	"github.com/cloudwatch-archiver/log-archiver/internal/storage"
)

func testServer(t *testing.T, cfg *Config, logs *cwlogs.Memory) (*Server, http.Handler) {
	t.Helper()

	ctx := context.Background()
	env := serverenv.New(ctx,
		serverenv.WithLogsClient(logs),
		serverenv.WithBlobStorage(storage.NewMemoryWithBuckets(cfg.Bucket)))

	s, err := NewServer(cfg, env)
	if err != nil {
		t.Fatal(err)
	}

	sleeper := &fakeSleeper{}
	s.coordinator.sleep = sleeper.sleep
	return s, s.Routes(ctx)
}

func TestServer_export(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		path       string
		method     string
		groups     []string
		wantCode   int
		wantStatus bool
		wantTasks  int
	}{
		{
			name:       "root",
			path:       "/",
			method:     http.MethodGet,
			groups:     []string{"/app"},
			wantCode:   http.StatusOK,
			wantStatus: true,
			wantTasks:  1,
		},
		{
			name:       "export_post",
			path:       "/export",
			method:     http.MethodPost,
			groups:     []string{"/app", "/other"},
			wantCode:   http.StatusOK,
			wantStatus: true,
			wantTasks:  2,
		},
		{
			name:     "no_match",
			path:     "/export",
			method:   http.MethodGet,
			groups:   []string{"/missing"},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := runConfig(tc.groups...)
			_, h := testServer(t, cfg, cwlogs.NewMemory("/app", "/other"))

			r := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if got, want := w.Code, tc.wantCode; got != want {
				t.Errorf("expected code %d to be %d: %s", got, want, w.Body.String())
			}

			var result RunResult
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Fatal(err)
			}
			if got, want := result.Status, tc.wantStatus; got != want {
				t.Errorf("expected status %t to be %t", got, want)
			}
			if got, want := len(result.ExportTasks), tc.wantTasks; got != want {
				t.Errorf("expected %d export tasks, got %d", want, got)
			}
			if !tc.wantStatus && result.ErrorMessage == "" {
				t.Errorf("expected error message")
			}
		})
	}
}

func TestServer_overlapping(t *testing.T) {
	t.Parallel()

	s, h := testServer(t, runConfig("/app"), cwlogs.NewMemory("/app"))

	s.running.Lock()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	s.running.Unlock()

	if got, want := w.Code, http.StatusConflict; got != want {
		t.Errorf("expected code %d to be %d", got, want)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got, want := w.Code, http.StatusOK; got != want {
		t.Errorf("expected code %d to be %d", got, want)
	}
}

func TestServer_invocationTimeout(t *testing.T) {
	t.Parallel()

	logs := cwlogs.NewMemory("/app")
	logs.Script("/app", cwlogs.StatusRunning)

	cfg := runConfig("/app")
	cfg.InvocationTimeout = time.Nanosecond
	s, h := testServer(t, cfg, logs)
	s.coordinator.sleep = sleepContext

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var result RunResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.ExportTasks) != 1 {
		t.Fatalf("expected 1 export task, got %d", len(result.ExportTasks))
	}
	task := result.ExportTasks[0]
	if task.Success {
		t.Errorf("expected export to fail")
	}
	if task.Status == nil || task.Status.State != StateCanceled {
		t.Errorf("expected canceled state, got %#v", task.Status)
	}
}

func TestServer_health(t *testing.T) {
	t.Parallel()

	_, h := testServer(t, runConfig("/app"), cwlogs.NewMemory("/app"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if got, want := w.Code, http.StatusOK; got != want {
		t.Errorf("expected code %d to be %d", got, want)
	}
}
