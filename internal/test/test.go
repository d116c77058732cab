package test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"yt-curator/internal/blob"
)

// MockTaskEnqueuer is a mock implementation of tasks.TaskEnqueuer for
// testing.
type MockTaskEnqueuer struct {
	EnqueuedTasks []*asynq.Task
}

func (m *MockTaskEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	m.EnqueuedTasks = append(m.EnqueuedTasks, task)
	return &asynq.TaskInfo{ID: "test-task-id", Queue: "default"}, nil
}

// MemoryBlob is an in-memory blob.Store for tests. Documents round-trip
// through JSON so tests exercise the same tags as the real store.
type MemoryBlob struct {
	mu      sync.Mutex
	Docs    map[string][]byte
	Created []string
	Puts    int

	// Failure switches for degraded-store scenarios.
	FailGet    bool
	FailPut    bool
	FailCreate bool
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{Docs: map[string][]byte{}}
}

func (m *MemoryBlob) Get(ctx context.Context, id string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailGet {
		return errors.New("store unavailable")
	}
	data, ok := m.Docs[id]
	if !ok {
		return blob.ErrNotFound
	}
	return json.Unmarshal(data, v)
}

func (m *MemoryBlob) Put(ctx context.Context, id string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut {
		return errors.New("store unavailable")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.Docs[id] = data
	m.Puts++
	return nil
}

func (m *MemoryBlob) Create(ctx context.Context, v any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate {
		return "", errors.New("store unavailable")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	m.Docs[id] = data
	m.Created = append(m.Created, id)
	return "https://blobs.test/api/jsonBlob/" + id, nil
}
