package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/store"
)

// CommentService provides comment operations. Comments are author-only:
// nobody but the comment's author may edit or delete it, the task author
// included.
type CommentService interface {
	// Create adds a comment to a task, authored by the caller. Returns
	// ErrTaskNotFound if the task does not exist.
	Create(ctx context.Context, authorEmail string, taskID int64, text string) (*domain.Comment, error)

	// Get retrieves a comment by ID.
	Get(ctx context.Context, id int64) (*domain.Comment, error)

	// ListForUser returns a page of comments authored by the given user,
	// newest first. Returns ErrUserNotFound if no account exists for the email.
	ListForUser(ctx context.Context, email string, page, size int) ([]*domain.Comment, int64, error)

	// ListForTask returns a page of a task's comments, oldest first.
	// Returns ErrTaskNotFound if the task does not exist.
	ListForTask(ctx context.Context, taskID int64, page, size int) ([]*domain.Comment, int64, error)

	// Edit replaces the comment's text. Author only.
	Edit(ctx context.Context, callerEmail string, id int64, text string) (*domain.Comment, error)

	// Delete removes a comment. Author only.
	Delete(ctx context.Context, callerEmail string, id int64) error
}

// CommentServiceImpl implements the CommentService interface
type CommentServiceImpl struct {
	commentStore store.CommentStore
	taskStore    store.TaskStore
	userStore    store.UserStore
	txManager    TxManager
	logger       *slog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentStore store.CommentStore,
	taskStore store.TaskStore,
	userStore store.UserStore,
	txManager TxManager,
	logger *slog.Logger,
) *CommentServiceImpl {
	return &CommentServiceImpl{
		commentStore: commentStore,
		taskStore:    taskStore,
		userStore:    userStore,
		txManager:    txManager,
		logger:       logger.With("component", "comment_service"),
	}
}

// Create adds a comment to a task.
// The task lookup gives a friendly error for the common case; the foreign
// key on comments.task_id is the backstop if the task is deleted between
// lookup and insert, and the store maps that to the same not-found error.
func (s *CommentServiceImpl) Create(
	ctx context.Context,
	authorEmail string,
	taskID int64,
	text string,
) (*domain.Comment, error) {
	comment, err := domain.NewComment(taskID, authorEmail, text)
	if err != nil {
		s.logger.Debug("comment validation failed during create",
			"error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.taskStore.WithTx(tx).GetByID(ctx, taskID); err != nil {
			return s.mapTaskLookupError(err, taskID)
		}
		return s.commentStore.WithTx(tx).Create(ctx, comment)
	})
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, err
		}
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task vanished during comment creation",
				"task_id", taskID)
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to save comment",
			"error", err,
			"task_id", taskID)
		return nil, NewServiceError("create_comment", "failed to save comment", err)
	}

	s.logger.Info("comment created successfully",
		"comment_id", comment.ID,
		"task_id", taskID)

	return comment, nil
}

// Get retrieves a comment by ID.
func (s *CommentServiceImpl) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.commentStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrCommentNotFound) {
			s.logger.Debug("comment not found",
				"comment_id", id)
			return nil, ErrCommentNotFound
		}
		s.logger.Error("failed to retrieve comment",
			"error", err,
			"comment_id", id)
		return nil, NewServiceError("get_comment", "failed to retrieve comment", err)
	}

	return comment, nil
}

// ListForUser returns a page of the user's comments.
func (s *CommentServiceImpl) ListForUser(
	ctx context.Context,
	email string,
	page, size int,
) ([]*domain.Comment, int64, error) {
	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check user existence for comment listing",
			"error", err)
		return nil, 0, NewServiceError("list_comments", "failed to check user existence", err)
	}
	if !exists {
		s.logger.Debug("comment listing requested for unknown user")
		return nil, 0, ErrUserNotFound
	}

	comments, total, err := s.commentStore.ListByAuthor(ctx, email, page, size)
	if err != nil {
		s.logger.Error("failed to list comments by author",
			"error", err)
		return nil, 0, NewServiceError("list_comments", "failed to list comments", err)
	}

	return comments, total, nil
}

// ListForTask returns a page of a task's comments.
func (s *CommentServiceImpl) ListForTask(
	ctx context.Context,
	taskID int64,
	page, size int,
) ([]*domain.Comment, int64, error) {
	if _, err := s.taskStore.GetByID(ctx, taskID); err != nil {
		return nil, 0, s.mapTaskLookupError(err, taskID)
	}

	comments, total, err := s.commentStore.ListByTask(ctx, taskID, page, size)
	if err != nil {
		s.logger.Error("failed to list comments by task",
			"error", err,
			"task_id", taskID)
		return nil, 0, NewServiceError("list_comments", "failed to list comments", err)
	}

	return comments, total, nil
}

// Edit replaces the comment's text after checking the caller authored it.
func (s *CommentServiceImpl) Edit(
	ctx context.Context,
	callerEmail string,
	id int64,
	text string,
) (*domain.Comment, error) {
	var updated *domain.Comment

	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.commentStore.WithTx(tx)

		comment, err := txStore.GetByID(ctx, id)
		if err != nil {
			return s.mapCommentLookupError(err, id)
		}

		if !comment.IsAuthor(callerEmail) {
			s.logger.Debug("comment edit denied: caller is not the author",
				"comment_id", id)
			return ErrForbidden
		}

		if err := comment.SetText(text); err != nil {
			s.logger.Debug("comment text rejected",
				"error", err,
				"comment_id", id)
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		if err := txStore.Update(ctx, comment); err != nil {
			s.logger.Error("failed to update comment",
				"error", err,
				"comment_id", id)
			return NewServiceError("edit_comment", "failed to update comment", err)
		}

		updated = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment updated successfully",
		"comment_id", id)

	return updated, nil
}

// Delete removes a comment after checking the caller authored it.
func (s *CommentServiceImpl) Delete(ctx context.Context, callerEmail string, id int64) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.commentStore.WithTx(tx)

		comment, err := txStore.GetByID(ctx, id)
		if err != nil {
			return s.mapCommentLookupError(err, id)
		}

		if !comment.IsAuthor(callerEmail) {
			s.logger.Debug("comment delete denied: caller is not the author",
				"comment_id", id)
			return ErrForbidden
		}

		if err := txStore.Delete(ctx, id); err != nil {
			s.logger.Error("failed to delete comment",
				"error", err,
				"comment_id", id)
			return NewServiceError("delete_comment", "failed to delete comment", err)
		}

		s.logger.Info("comment deleted successfully",
			"comment_id", id)
		return nil
	})
}

func (s *CommentServiceImpl) mapTaskLookupError(err error, taskID int64) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		s.logger.Debug("task not found",
			"task_id", taskID)
		return ErrTaskNotFound
	}
	s.logger.Error("failed to retrieve task",
		"error", err,
		"task_id", taskID)
	return NewServiceError("get_task", "failed to retrieve task", err)
}

func (s *CommentServiceImpl) mapCommentLookupError(err error, id int64) error {
	if errors.Is(err, store.ErrCommentNotFound) {
		s.logger.Debug("comment not found",
			"comment_id", id)
		return ErrCommentNotFound
	}
	s.logger.Error("failed to retrieve comment",
		"error", err,
		"comment_id", id)
	return NewServiceError("get_comment", "failed to retrieve comment", err)
}
