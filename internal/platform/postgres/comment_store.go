package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/platform/logger"
	"github.com/velder/taskboard-api/internal/store"
)

// CommentStore implements store.CommentStore against a PostgreSQL database.
type CommentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCommentStore creates a PostgreSQL implementation of store.CommentStore.
// If log is nil, the default logger is used.
func NewCommentStore(db store.DBTX, log *slog.Logger) *CommentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CommentStore{
		db:     db,
		logger: log.With(slog.String("component", "comment_store")),
	}
}

// WithTx implements store.CommentStore.WithTx
func (s *CommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return &CommentStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CommentStore.Create
// A foreign key violation on task_id maps to store.ErrTaskNotFound: the
// referenced task disappeared between lookup and insert, or was never there.
func (s *CommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO comments (task_id, author_email, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		comment.TaskID,
		comment.AuthorEmail,
		comment.Text,
		comment.CreatedAt,
		comment.UpdatedAt,
	).Scan(&comment.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Debug("task not found during comment creation",
				slog.Int64("task_id", comment.TaskID))
			return store.ErrTaskNotFound
		}

		log.Error("failed to create comment",
			slog.String("error", err.Error()),
			slog.Int64("task_id", comment.TaskID))
		return store.NewStoreError("comment", "create", "failed to insert comment", err)
	}

	log.Info("comment created successfully",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("task_id", comment.TaskID))
	return nil
}

// GetByID implements store.CommentStore.GetByID
func (s *CommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, task_id, author_email, text, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment domain.Comment
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.AuthorEmail,
		&comment.Text,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("comment not found", slog.Int64("comment_id", id))
			return nil, store.ErrCommentNotFound
		}
		log.Error("failed to get comment by ID",
			slog.String("error", err.Error()),
			slog.Int64("comment_id", id))
		return nil, store.NewStoreError("comment", "get_by_id", "query failed", err)
	}

	return &comment, nil
}

// Update implements store.CommentStore.Update
// Only the text and updated_at columns are written; author and task
// reference are immutable.
func (s *CommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := comment.Validate(); err != nil {
		log.Warn("comment validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("comment_id", comment.ID))
		return err
	}

	query := `
		UPDATE comments
		SET text = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, comment.Text, comment.UpdatedAt, comment.ID)
	if err != nil {
		log.Error("failed to update comment",
			slog.String("error", err.Error()),
			slog.Int64("comment_id", comment.ID))
		return store.NewStoreError("comment", "update", "failed to update comment", err)
	}

	if err := checkRowsAffected(result, store.ErrCommentNotFound); err != nil {
		log.Debug("comment not found for update", slog.Int64("comment_id", comment.ID))
		return err
	}

	log.Info("comment updated successfully", slog.Int64("comment_id", comment.ID))
	return nil
}

// Delete implements store.CommentStore.Delete
func (s *CommentStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete comment",
			slog.String("error", err.Error()),
			slog.Int64("comment_id", id))
		return store.NewStoreError("comment", "delete", "failed to delete comment", err)
	}

	if err := checkRowsAffected(result, store.ErrCommentNotFound); err != nil {
		log.Debug("comment not found for delete", slog.Int64("comment_id", id))
		return err
	}

	log.Info("comment deleted successfully", slog.Int64("comment_id", id))
	return nil
}

// ListByAuthor implements store.CommentStore.ListByAuthor
func (s *CommentStore) ListByAuthor(
	ctx context.Context,
	email string,
	page, size int,
) ([]*domain.Comment, int64, error) {
	countQuery := `SELECT COUNT(*) FROM comments WHERE author_email = $1`
	listQuery := `
		SELECT id, task_id, author_email, text, created_at, updated_at
		FROM comments
		WHERE author_email = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return s.list(ctx, countQuery, listQuery, email, page, size)
}

// ListByTask implements store.CommentStore.ListByTask
// Comments of a task read oldest first, the order a discussion is written.
func (s *CommentStore) ListByTask(
	ctx context.Context,
	taskID int64,
	page, size int,
) ([]*domain.Comment, int64, error) {
	countQuery := `SELECT COUNT(*) FROM comments WHERE task_id = $1`
	listQuery := `
		SELECT id, task_id, author_email, text, created_at, updated_at
		FROM comments
		WHERE task_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`
	return s.list(ctx, countQuery, listQuery, taskID, page, size)
}

func (s *CommentStore) list(
	ctx context.Context,
	countQuery, listQuery string,
	filter any,
	page, size int,
) ([]*domain.Comment, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, filter).Scan(&total); err != nil {
		log.Error("failed to count comments",
			slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("comment", "list", "count failed", err)
	}

	rows, err := s.db.QueryContext(ctx, listQuery, filter, size, page*size)
	if err != nil {
		log.Error("failed to query comments",
			slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("comment", "list", "query failed", err)
	}
	defer closeRows(rows, log)

	comments := []*domain.Comment{}
	for rows.Next() {
		var comment domain.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.AuthorEmail,
			&comment.Text,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan comment row",
				slog.String("error", err.Error()))
			return nil, 0, store.NewStoreError("comment", "list", "scan failed", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning comment rows",
			slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("comment", "list", "row iteration failed", err)
	}

	return comments, total, nil
}
