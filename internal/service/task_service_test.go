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

const (
	authorEmail   = "author@example.com"
	assigneeEmail = "worker@example.com"
	otherEmail    = "third@example.com"
)

type taskServiceFixture struct {
	svc       *service.TaskServiceImpl
	taskStore *mocks.MockTaskStore
	userStore *mocks.MockUserStore
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	taskStore := mocks.NewMockTaskStore()
	userStore := mocks.NewMockUserStore()
	svc := service.NewTaskService(taskStore, userStore, mocks.NewMockTxManager(), testLogger())
	return &taskServiceFixture{svc: svc, taskStore: taskStore, userStore: userStore}
}

func (f *taskServiceFixture) seedTask(t *testing.T) *domain.Task {
	t.Helper()

	task, err := f.svc.Create(
		context.Background(),
		authorEmail,
		"Write report",
		"Quarterly report",
		domain.TaskStatusOpen,
		domain.TaskPriorityMedium,
		assigneeEmail,
	)
	require.NoError(t, err)
	return task
}

func TestTaskCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates and assigns an ID", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		task := f.seedTask(t)

		assert.NotZero(t, task.ID)
		assert.Equal(t, authorEmail, task.AuthorEmail)
		assert.Equal(t, assigneeEmail, task.AssignedEmail)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		_, err := f.svc.Create(
			context.Background(),
			authorEmail, "name", "",
			domain.TaskStatus("DONE"), domain.TaskPriorityLow, "",
		)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskGet(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	seeded := f.seedTask(t)

	task, err := f.svc.Get(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, task.ID)

	_, err = f.svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
}

func TestTaskListForUser(t *testing.T) {
	t.Parallel()

	t.Run("returns the author's tasks", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		f.userStore.Users[authorEmail] = &domain.User{ID: 1, Email: authorEmail}
		f.seedTask(t)
		f.seedTask(t)

		tasks, total, err := f.svc.ListForUser(context.Background(), authorEmail, 0, 10)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
		assert.Equal(t, int64(2), total)
	})

	t.Run("fails for unknown user", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		_, _, err := f.svc.ListForUser(context.Background(), "ghost@example.com", 0, 10)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestTaskEditAuthorization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		caller  string
		edit    func(f *taskServiceFixture, id int64) error
		wantErr error
	}{
		{
			name:   "author may edit status",
			caller: authorEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.EditStatus(context.Background(), authorEmail, id, domain.TaskStatusFinished)
				return err
			},
		},
		{
			name:   "assignee may edit status",
			caller: assigneeEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.EditStatus(context.Background(), assigneeEmail, id, domain.TaskStatusInProgress)
				return err
			},
		},
		{
			name:   "third party may not edit status",
			caller: otherEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.EditStatus(context.Background(), otherEmail, id, domain.TaskStatusFinished)
				return err
			},
			wantErr: service.ErrForbidden,
		},
		{
			name:   "author may edit priority",
			caller: authorEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.EditPriority(context.Background(), authorEmail, id, domain.TaskPriorityHigh)
				return err
			},
		},
		{
			name:   "assignee may not edit priority",
			caller: assigneeEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.EditPriority(context.Background(), assigneeEmail, id, domain.TaskPriorityHigh)
				return err
			},
			wantErr: service.ErrForbidden,
		},
		{
			name:   "author may rename",
			caller: authorEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.Edit(context.Background(), authorEmail, id, "new name", "new desc")
				return err
			},
		},
		{
			name:   "assignee may not rename",
			caller: assigneeEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.Edit(context.Background(), assigneeEmail, id, "new name", "new desc")
				return err
			},
			wantErr: service.ErrForbidden,
		},
		{
			name:   "author may reassign",
			caller: authorEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.EditAssigned(context.Background(), authorEmail, id, otherEmail)
				return err
			},
		},
		{
			name:   "assignee may not reassign",
			caller: assigneeEmail,
			edit: func(f *taskServiceFixture, id int64) error {
				_, err := f.svc.EditAssigned(context.Background(), assigneeEmail, id, assigneeEmail)
				return err
			},
			wantErr: service.ErrForbidden,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newTaskServiceFixture(t)
			task := f.seedTask(t)

			err := tc.edit(f, task.ID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTaskEdit(t *testing.T) {
	t.Parallel()

	t.Run("persists the change", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		task := f.seedTask(t)

		updated, err := f.svc.EditStatus(context.Background(), authorEmail, task.ID, domain.TaskStatusFinished)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusFinished, updated.Status)

		reloaded, err := f.svc.Get(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusFinished, reloaded.Status)
	})

	t.Run("never changes the author", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		task := f.seedTask(t)

		updated, err := f.svc.EditAssigned(context.Background(), authorEmail, task.ID, otherEmail)
		require.NoError(t, err)
		assert.Equal(t, authorEmail, updated.AuthorEmail)
		assert.Equal(t, otherEmail, updated.AssignedEmail)
	})

	t.Run("rejects invalid mutation as validation error", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		task := f.seedTask(t)

		_, err := f.svc.Edit(context.Background(), authorEmail, task.ID, "", "desc")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("fails for missing task", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		_, err := f.svc.EditStatus(context.Background(), authorEmail, 9999, domain.TaskStatusFinished)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}

func TestTaskDelete(t *testing.T) {
	t.Parallel()

	t.Run("author deletes the task", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		task := f.seedTask(t)

		require.NoError(t, f.svc.Delete(context.Background(), authorEmail, task.ID))

		_, err := f.svc.Get(context.Background(), task.ID)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})

	t.Run("assignee may not delete", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		task := f.seedTask(t)

		err := f.svc.Delete(context.Background(), assigneeEmail, task.ID)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("fails for missing task", func(t *testing.T) {
		t.Parallel()

		f := newTaskServiceFixture(t)
		err := f.svc.Delete(context.Background(), authorEmail, 9999)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}
