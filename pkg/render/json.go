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

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-multierror"
)

const (
	jsonContentType = "application/json"

	// jsonErrTmpl is filled with Printf, so values must already be JSON safe.
	jsonErrTmpl = `{"error":"%s"}`
	jsonOKResp  = `{"ok":true}`
)

type singleError struct {
	Error string `json:"error,omitempty"`
}

type multiError struct {
	Errors []string `json:"errors,omitempty"`
}

// RenderJSON writes data as JSON with the given status code.
//
// A nil data yields `{"ok":true}` for 2xx codes and `{"error":"<status text>"}`
// otherwise. Errors are rendered as `{"error":"..."}` and a *multierror.Error
// as `{"errors":[...]}`. If encoding fails a generic 500 is written instead.
func (r *Renderer) RenderJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", jsonContentType)

	if data == nil {
		w.WriteHeader(code)
		if code >= 200 && code < 300 {
			fmt.Fprint(w, jsonOKResp)
			return
		}
		fmt.Fprintf(w, jsonErrTmpl, http.StatusText(code))
		return
	}

	b := r.buffer()
	defer r.pool.Put(b)

	if err := json.NewEncoder(b).Encode(normalize(data)); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, jsonErrTmpl, http.StatusText(http.StatusInternalServerError))
		return
	}

	w.WriteHeader(code)
	_, _ = b.WriteTo(w)
}

// WriteJSON writes data to w as indented JSON followed by a newline. Nothing
// is written if encoding fails.
func (r *Renderer) WriteJSON(w io.Writer, data interface{}) error {
	b := r.buffer()
	defer r.pool.Put(b)

	enc := json.NewEncoder(b)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(data)); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}

	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}

func normalize(data interface{}) interface{} {
	if merr, ok := data.(*multierror.Error); ok {
		errs := merr.WrappedErrors()
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		return &multiError{Errors: msgs}
	}

	if err, ok := data.(error); ok {
		return &singleError{Error: err.Error()}
	}
	return data
}
