package store

import (
	"context"
	"database/sql"

	"github.com/velder/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task and fills in its generated ID.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update persists changes to an existing task (status, priority, name,
	// description, assignee). The author email column is never written.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID. The comments table cascades on
	// delete, so the task's comments are removed with it.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// ListByAuthor returns the page of tasks authored by email, newest
	// first, along with the total number of tasks for that author.
	ListByAuthor(ctx context.Context, email string, page, size int) ([]*domain.Task, int64, error)

	// WithTx returns a TaskStore instance bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
