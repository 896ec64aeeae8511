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

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Compile-time check to verify implements interface.
var _ Client = (*Memory)(nil)

// Memory is an in-memory Client. Each created task walks through a scripted
// list of status codes, one per DescribeExportTask call, and then stays on the
// last one. Unscripted log groups complete on the first describe.
type Memory struct {
	mu sync.Mutex

	groups  []*LogGroup
	scripts map[string][]string
	tasks   map[string]*memoryTask

	submissions []*ExportTaskInput

	listErr     error
	createErrs  map[string]error
	describeErr map[string]error
}

type memoryTask struct {
	task   ExportTask
	script []string
	calls  int
}

// NewMemory creates a new in-memory logs client with the given log groups.
func NewMemory(groups ...string) *Memory {
	m := &Memory{
		scripts:     make(map[string][]string),
		tasks:       make(map[string]*memoryTask),
		createErrs:  make(map[string]error),
		describeErr: make(map[string]error),
	}
	for _, name := range groups {
		m.groups = append(m.groups, &LogGroup{Name: name})
	}
	return m
}

// AddLogGroup appends a log group to the discovery results.
func (m *Memory) AddLogGroup(lg *LogGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = append(m.groups, lg)
}

// EnsureLogGroup adds a log group with the given name unless one is already
// present.
func (m *Memory) EnsureLogGroup(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, lg := range m.groups {
		if lg.Name == name {
			return
		}
	}
	m.groups = append(m.groups, &LogGroup{Name: name})
}

// Script sets the status codes returned for tasks created for logGroup.
func (m *Memory) Script(logGroup string, codes ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[logGroup] = codes
}

// FailList makes ListLogGroups return err.
func (m *Memory) FailList(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

// FailCreate makes CreateExportTask for logGroup return err.
func (m *Memory) FailCreate(logGroup string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createErrs[logGroup] = err
}

// FailDescribe makes DescribeExportTask for tasks of logGroup return err.
func (m *Memory) FailDescribe(logGroup string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.describeErr[logGroup] = err
}

// Submissions returns every successfully submitted export request in order.
func (m *Memory) Submissions() []*ExportTaskInput {
	m.mu.Lock()
	defer m.mu.Unlock()

	ret := make([]*ExportTaskInput, len(m.submissions))
	copy(ret, m.submissions)
	return ret
}

// DescribeCalls returns how many times the task was described.
func (m *Memory) DescribeCalls(taskID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tasks[taskID]; ok {
		return t.calls
	}
	return 0
}

// ListLogGroups returns the configured log groups.
func (m *Memory) ListLogGroups(_ context.Context) ([]*LogGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	ret := make([]*LogGroup, 0, len(m.groups))
	for _, lg := range m.groups {
		cp := *lg
		ret = append(ret, &cp)
	}
	return ret, nil
}

// CreateExportTask records the request and returns a fresh task ID.
func (m *Memory) CreateExportTask(_ context.Context, in *ExportTaskInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.createErrs[in.LogGroupName]; err != nil {
		return "", err
	}

	cp := *in
	m.submissions = append(m.submissions, &cp)

	id := uuid.New().String()
	m.tasks[id] = &memoryTask{
		task: ExportTask{
			TaskID:            id,
			TaskName:          in.TaskName,
			LogGroupName:      in.LogGroupName,
			StatusCode:        StatusPending,
			From:              in.From,
			To:                in.To,
			Destination:       in.Destination,
			DestinationPrefix: in.DestinationPrefix,
		},
		script: m.scripts[in.LogGroupName],
	}
	return id, nil
}

// DescribeExportTask advances the task along its script.
func (m *Memory) DescribeExportTask(_ context.Context, taskID string) (*ExportTask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	t.calls++

	if err := m.describeErr[t.task.LogGroupName]; err != nil {
		return nil, err
	}

	switch {
	case len(t.script) == 0:
		t.task.StatusCode = StatusCompleted
	case t.calls <= len(t.script):
		t.task.StatusCode = t.script[t.calls-1]
	default:
		t.task.StatusCode = t.script[len(t.script)-1]
	}

	cp := t.task
	return &cp, nil
}
