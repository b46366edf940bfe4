package store

import (
	"context"
	"database/sql"

	"github.com/velder/taskboard-api/internal/domain"
)

// CommentStore defines the interface for comment data persistence.
type CommentStore interface {
	// Create saves a new comment and fills in its generated ID.
	// Returns ErrTaskNotFound if the referenced task does not exist
	// (surfaced via the task_id foreign key).
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by its unique ID.
	// Returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)

	// Update persists changes to an existing comment's text. The author
	// email and task reference are never written.
	// Returns ErrCommentNotFound if the comment does not exist.
	Update(ctx context.Context, comment *domain.Comment) error

	// Delete removes a comment by its ID.
	// Returns ErrCommentNotFound if the comment does not exist.
	Delete(ctx context.Context, id int64) error

	// ListByAuthor returns the page of comments authored by email, newest
	// first, along with the total count for that author.
	ListByAuthor(ctx context.Context, email string, page, size int) ([]*domain.Comment, int64, error)

	// ListByTask returns the page of comments belonging to the task,
	// oldest first, along with the total count for that task.
	ListByTask(ctx context.Context, taskID int64, page, size int) ([]*domain.Comment, int64, error)

	// WithTx returns a CommentStore instance bound to the provided transaction.
	WithTx(tx *sql.Tx) CommentStore
}
