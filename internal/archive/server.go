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
	"fmt"
	"net/http"
	"sync"

	"github.com/cloudwatch-archiver/log-archiver/internal/middleware"
	"github.com/cloudwatch-archiver/log-archiver/internal/serverenv"
	"github.com/cloudwatch-archiver/log-archiver/pkg/logging"
	"github.com/cloudwatch-archiver/log-archiver/pkg/render"
	"github.com/cloudwatch-archiver/log-archiver/pkg/server"
	"github.com/gorilla/mux"
)

// Server runs an export invocation for every request to its export route.
type Server struct {
	config      *Config
	env         *serverenv.ServerEnv
	coordinator *Coordinator
	h           *render.Renderer

	// running guards against overlapping invocations.
	running sync.Mutex
}

// NewServer creates a new export server.
func NewServer(cfg *Config, env *serverenv.ServerEnv) (*Server, error) {
	c, err := New(cfg, env)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      cfg,
		env:         env,
		coordinator: c,
		h:           render.NewRenderer(),
	}, nil
}

// Routes defines and returns the routes for the export server.
func (s *Server) Routes(ctx context.Context) *mux.Router {
	logger := logging.FromContext(ctx).Named("archive")

	r := mux.NewRouter()
	r.Use(middleware.Recovery())
	r.Use(middleware.PopulateRequestID())
	r.Use(middleware.PopulateLogger(logger))

	r.Handle("/health", server.HandleHealthz())
	if h, ok := s.env.ObservabilityExporter().(http.Handler); ok {
		r.Handle("/metrics", h)
	}

	r.Handle("/", s.handleExport()).Methods(http.MethodGet, http.MethodPost)
	r.Handle("/export", s.handleExport()).Methods(http.MethodGet, http.MethodPost)

	return r
}

func (s *Server) handleExport() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx).Named("archive.handleExport")

		if !s.running.TryLock() {
			logger.Warnw("export already in progress")
			s.h.RenderJSON(w, http.StatusConflict, fmt.Errorf("export already in progress"))
			return
		}
		defer s.running.Unlock()

		if t := s.config.InvocationTimeout; t > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, t)
			defer cancel()
		}

		result := s.coordinator.Run(ctx)

		code := http.StatusOK
		if !result.Status {
			code = http.StatusInternalServerError
		}
		s.h.RenderJSON(w, code, result)
	})
}
