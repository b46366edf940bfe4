package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/mocks"
	"github.com/velder/taskboard-api/internal/service"
)

type commentServiceFixture struct {
	svc          *service.CommentServiceImpl
	commentStore *mocks.MockCommentStore
	taskStore    *mocks.MockTaskStore
	userStore    *mocks.MockUserStore
}

func newCommentServiceFixture(t *testing.T) *commentServiceFixture {
	t.Helper()

	commentStore := mocks.NewMockCommentStore()
	taskStore := mocks.NewMockTaskStore()
	taskStore.Comments = commentStore
	userStore := mocks.NewMockUserStore()
	svc := service.NewCommentService(commentStore, taskStore, userStore, mocks.NewMockTxManager(), testLogger())
	return &commentServiceFixture{
		svc:          svc,
		commentStore: commentStore,
		taskStore:    taskStore,
		userStore:    userStore,
	}
}

func (f *commentServiceFixture) seedTask(t *testing.T) *domain.Task {
	t.Helper()

	task, err := domain.NewTask("name", "", domain.TaskStatusOpen, domain.TaskPriorityLow, authorEmail, "")
	require.NoError(t, err)
	require.NoError(t, f.taskStore.Create(context.Background(), task))
	return task
}

func (f *commentServiceFixture) seedComment(t *testing.T, taskID int64, author string) *domain.Comment {
	t.Helper()

	comment, err := f.svc.Create(context.Background(), author, taskID, "first comment")
	require.NoError(t, err)
	return comment
}

func TestCommentCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a comment on an existing task", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)

		comment, err := f.svc.Create(context.Background(), otherEmail, task.ID, "nice work")
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, task.ID, comment.TaskID)
		assert.Equal(t, otherEmail, comment.AuthorEmail)
	})

	t.Run("fails for missing task", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		_, err := f.svc.Create(context.Background(), otherEmail, 9999, "text")
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)

		_, err := f.svc.Create(context.Background(), otherEmail, task.ID, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestCommentGet(t *testing.T) {
	t.Parallel()

	f := newCommentServiceFixture(t)
	task := f.seedTask(t)
	seeded := f.seedComment(t, task.ID, otherEmail)

	comment, err := f.svc.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, comment.ID)

	_, err = f.svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}

func TestCommentEdit(t *testing.T) {
	t.Parallel()

	t.Run("author edits the text", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)
		seeded := f.seedComment(t, task.ID, otherEmail)

		updated, err := f.svc.Edit(context.Background(), otherEmail, seeded.ID, "edited")
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		assert.Equal(t, otherEmail, updated.AuthorEmail)
		assert.Equal(t, task.ID, updated.TaskID)
	})

	t.Run("task author may not edit someone else's comment", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)
		seeded := f.seedComment(t, task.ID, otherEmail)

		_, err := f.svc.Edit(context.Background(), authorEmail, seeded.ID, "edited")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)
		seeded := f.seedComment(t, task.ID, otherEmail)

		_, err := f.svc.Edit(context.Background(), otherEmail, seeded.ID, "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("fails for missing comment", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		_, err := f.svc.Edit(context.Background(), otherEmail, 9999, "edited")
		assert.ErrorIs(t, err, service.ErrCommentNotFound)
	})
}

func TestCommentDelete(t *testing.T) {
	t.Parallel()

	t.Run("author deletes the comment", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)
		seeded := f.seedComment(t, task.ID, otherEmail)

		require.NoError(t, f.svc.Delete(context.Background(), otherEmail, seeded.ID))

		_, err := f.svc.Get(context.Background(), seeded.ID)
		assert.ErrorIs(t, err, service.ErrCommentNotFound)
	})

	t.Run("task author may not delete someone else's comment", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)
		seeded := f.seedComment(t, task.ID, otherEmail)

		err := f.svc.Delete(context.Background(), authorEmail, seeded.ID)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("fails for missing comment", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		err := f.svc.Delete(context.Background(), otherEmail, 9999)
		assert.ErrorIs(t, err, service.ErrCommentNotFound)
	})
}

func TestTaskDeleteRemovesComments(t *testing.T) {
	t.Parallel()

	f := newCommentServiceFixture(t)
	task := f.seedTask(t)
	keptTask := f.seedTask(t)

	doomed := f.seedComment(t, task.ID, otherEmail)
	kept := f.seedComment(t, keptTask.ID, otherEmail)

	taskSvc := service.NewTaskService(f.taskStore, f.userStore, mocks.NewMockTxManager(), testLogger())
	require.NoError(t, taskSvc.Delete(context.Background(), authorEmail, task.ID))

	// The schema cascades the delete; the comment must go with its task.
	_, err := f.svc.Get(context.Background(), doomed.ID)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)

	_, _, err = f.svc.ListForTask(context.Background(), task.ID, 0, 10)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	// Comments on other tasks are untouched.
	survivor, err := f.svc.Get(context.Background(), kept.ID)
	require.NoError(t, err)
	assert.Equal(t, keptTask.ID, survivor.TaskID)
}

func TestCommentListForUser(t *testing.T) {
	t.Parallel()

	t.Run("returns the author's comments", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		f.userStore.Users[otherEmail] = &domain.User{ID: 1, Email: otherEmail}
		task := f.seedTask(t)
		f.seedComment(t, task.ID, otherEmail)
		f.seedComment(t, task.ID, otherEmail)

		comments, total, err := f.svc.ListForUser(context.Background(), otherEmail, 0, 10)
		require.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, int64(2), total)
	})

	t.Run("fails for unknown user", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		_, _, err := f.svc.ListForUser(context.Background(), "ghost@example.com", 0, 10)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestCommentListForTask(t *testing.T) {
	t.Parallel()

	t.Run("returns the task's comments", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		task := f.seedTask(t)
		f.seedComment(t, task.ID, otherEmail)
		f.seedComment(t, task.ID, authorEmail)

		comments, total, err := f.svc.ListForTask(context.Background(), task.ID, 0, 10)
		require.NoError(t, err)
		assert.Len(t, comments, 2)
		assert.Equal(t, int64(2), total)
	})

	t.Run("fails for missing task", func(t *testing.T) {
		t.Parallel()

		f := newCommentServiceFixture(t)
		_, _, err := f.svc.ListForTask(context.Background(), 9999, 0, 10)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}
