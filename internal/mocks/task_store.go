package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, task *domain.Task) error
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn       func(ctx context.Context, task *domain.Task) error
	DeleteFn       func(ctx context.Context, id int64) error
	ListByAuthorFn func(ctx context.Context, email string, page, size int) ([]*domain.Task, int64, error)

	// Data for default implementation
	Tasks       map[int64]*domain.Task
	NextID      int64
	CreateError error
	UpdateError error
	DeleteError error

	// Comments, when set, mirrors the ON DELETE CASCADE constraint on
	// comments.task_id: deleting a task also removes its comments.
	Comments *MockCommentStore
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks:  make(map[int64]*domain.Task),
		NextID: 1,
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	task.ID = m.NextID
	m.NextID++
	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}

	copied := *task
	return &copied, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}

	delete(m.Tasks, id)

	if m.Comments != nil {
		for commentID, comment := range m.Comments.Comments {
			if comment.TaskID == id {
				delete(m.Comments.Comments, commentID)
			}
		}
	}
	return nil
}

// ListByAuthor implements the TaskStore interface
func (m *MockTaskStore) ListByAuthor(
	ctx context.Context,
	email string,
	page, size int,
) ([]*domain.Task, int64, error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, email, page, size)
	}

	var matched []*domain.Task
	for _, task := range m.Tasks {
		if task.AuthorEmail == email {
			matched = append(matched, task)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	start := page * size
	if start >= len(matched) {
		return []*domain.Task{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// WithTx implements the TaskStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
