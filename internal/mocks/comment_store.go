package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/store"
)

// MockCommentStore implements store.CommentStore for testing
type MockCommentStore struct {
	// Function fields for customizable behavior
	CreateFn       func(ctx context.Context, comment *domain.Comment) error
	GetByIDFn      func(ctx context.Context, id int64) (*domain.Comment, error)
	UpdateFn       func(ctx context.Context, comment *domain.Comment) error
	DeleteFn       func(ctx context.Context, id int64) error
	ListByAuthorFn func(ctx context.Context, email string, page, size int) ([]*domain.Comment, int64, error)
	ListByTaskFn   func(ctx context.Context, taskID int64, page, size int) ([]*domain.Comment, int64, error)

	// Data for default implementation
	Comments    map[int64]*domain.Comment
	NextID      int64
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockCommentStore creates a new mock store with initialized defaults
func NewMockCommentStore() *MockCommentStore {
	return &MockCommentStore{
		Comments: make(map[int64]*domain.Comment),
		NextID:   1,
	}
}

// Create implements the CommentStore interface
func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	comment.ID = m.NextID
	m.NextID++
	m.Comments[comment.ID] = comment
	return nil
}

// GetByID implements the CommentStore interface
func (m *MockCommentStore) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	comment, exists := m.Comments[id]
	if !exists {
		return nil, store.ErrCommentNotFound
	}

	copied := *comment
	return &copied, nil
}

// Update implements the CommentStore interface
func (m *MockCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, comment)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Comments[comment.ID]; !exists {
		return store.ErrCommentNotFound
	}

	copied := *comment
	m.Comments[comment.ID] = &copied
	return nil
}

// Delete implements the CommentStore interface
func (m *MockCommentStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, exists := m.Comments[id]; !exists {
		return store.ErrCommentNotFound
	}

	delete(m.Comments, id)
	return nil
}

// ListByAuthor implements the CommentStore interface
func (m *MockCommentStore) ListByAuthor(
	ctx context.Context,
	email string,
	page, size int,
) ([]*domain.Comment, int64, error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, email, page, size)
	}

	matched := m.filter(func(c *domain.Comment) bool { return c.AuthorEmail == email })
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginateComments(matched, page, size)
}

// ListByTask implements the CommentStore interface
func (m *MockCommentStore) ListByTask(
	ctx context.Context,
	taskID int64,
	page, size int,
) ([]*domain.Comment, int64, error) {
	if m.ListByTaskFn != nil {
		return m.ListByTaskFn(ctx, taskID, page, size)
	}

	matched := m.filter(func(c *domain.Comment) bool { return c.TaskID == taskID })
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginateComments(matched, page, size)
}

// WithTx implements the CommentStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockCommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return m
}

func (m *MockCommentStore) filter(keep func(*domain.Comment) bool) []*domain.Comment {
	var matched []*domain.Comment
	for _, comment := range m.Comments {
		if keep(comment) {
			matched = append(matched, comment)
		}
	}
	return matched
}

func paginateComments(matched []*domain.Comment, page, size int) ([]*domain.Comment, int64, error) {
	total := int64(len(matched))
	start := page * size
	if start >= len(matched) {
		return []*domain.Comment{}, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
