package job

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"task_recommender/internal/model"
)

// Status represents the status of an asynchronous recommendation job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job represents one asynchronous recommendation run.
type Job struct {
	ID        string                 `json:"id"`
	Status    Status                 `json:"status"`
	Result    []model.Recommendation `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// Manager manages asynchronous jobs using an in-memory store.
// Accessors return copies; the stored structs never leave the mutex.
type Manager struct {
	jobs map[string]*Job
	mu   sync.RWMutex
}

// NewManager creates a new job manager.
func NewManager() *Manager {
	return &Manager{
		jobs: make(map[string]*Job),
	}
}

// NewJob creates a new job, stores it, and returns a copy of it.
func (m *Manager) NewJob() Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	j := &Job{
		ID:        uuid.New().String(),
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	m.jobs[j.ID] = j
	return *j
}

// GetJob retrieves a copy of a job by its ID.
// The copy can be read or serialized without holding the manager's lock
// while a background goroutine keeps updating the job.
// The Result slice is shared with the stored job but is never mutated
// after SetResult, so reading it is safe.
func (m *Manager) GetJob(id string) (Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	j, exists := m.jobs[id]
	if !exists {
		return Job{}, fmt.Errorf("job with ID '%s' not found", id)
	}
	return *j, nil
}

// UpdateStatus updates the status of a job.
func (m *Manager) UpdateStatus(id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, exists := m.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID '%s' not found", id)
	}
	j.Status = status
	return nil
}

// SetResult sets the successful result of a job and marks it as completed.
func (m *Manager) SetResult(id string, result []model.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, exists := m.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID '%s' not found", id)
	}
	j.Result = result
	j.Status = StatusCompleted
	j.Error = ""
	return nil
}

// SetError sets the error message for a failed job and marks it as failed.
func (m *Manager) SetError(id string, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, exists := m.jobs[id]
	if !exists {
		return fmt.Errorf("job with ID '%s' not found", id)
	}
	j.Error = err.Error()
	j.Status = StatusFailed
	return nil
}
