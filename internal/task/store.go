// Package task tracks the lifecycle of dashboard generation tasks.
package task

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dashforge/internal/grammar"
)

// Status values for a task.
const (
	StatusPending       = "pending"
	StatusRunning       = "running"
	StatusCompleted     = "completed"
	StatusFailed        = "failed"
	StatusAwaitingHuman = "awaiting_human"
)

// Store sentinel errors.
var (
	ErrNotFound     = errors.New("task not found")
	ErrInvalidState = errors.New("task is not awaiting human correction")
)

// Task is the externally observable record of one generation run.
type Task struct {
	ID          string               `json:"task_id"`
	Status      string               `json:"status"`
	Attempts    int                  `json:"attempts"`
	Result      map[string]any       `json:"result,omitempty"`
	Error       string               `json:"error,omitempty"`
	Diagnostics []grammar.Diagnostic `json:"diagnostics,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Update describes a partial task mutation. Nil fields are left untouched.
type Update struct {
	Status      *string
	Attempts    *int
	Result      map[string]any
	Error       *string
	Diagnostics []grammar.Diagnostic
}

// Store is the in-memory task map. Mutation is atomic per task id; readers
// never observe a task older than its last completed update.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

// NewStore creates an empty task store.
func NewStore() *Store {
	return &Store{tasks: make(map[string]Task)}
}

// Create registers a new pending task and returns it.
func (s *Store) Create() Task {
	now := time.Now().UTC()
	t := Task{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()

	log.Debug().Str("task_id", t.ID).Msg("task created")
	return t
}

// Get returns a task by id.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

// Update applies a partial mutation to a task and returns the new value.
func (s *Store) Update(id string, update Update) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}

	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Attempts != nil {
		t.Attempts = *update.Attempts
	}
	if update.Result != nil {
		t.Result = update.Result
	}
	if update.Error != nil {
		t.Error = *update.Error
	}
	if update.Diagnostics != nil {
		t.Diagnostics = update.Diagnostics
	}
	t.UpdatedAt = time.Now().UTC()

	s.tasks[id] = t
	log.Debug().Str("task_id", id).Str("status", t.Status).Msg("task updated")
	return t, nil
}

// SubmitCorrection accepts a human-supplied dashboard for a task awaiting
// human review. The correction is authoritative: it is not re-validated.
func (s *Store) SubmitCorrection(id string, dashboard map[string]any) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	if t.Status != StatusAwaitingHuman {
		return Task{}, ErrInvalidState
	}

	t.Status = StatusCompleted
	t.Result = dashboard
	t.Error = ""
	t.Diagnostics = nil
	t.UpdatedAt = time.Now().UTC()

	s.tasks[id] = t
	log.Info().Str("task_id", id).Msg("human correction accepted")
	return t, nil
}
