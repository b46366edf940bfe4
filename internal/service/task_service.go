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

// TaskService provides task management operations with per-caller
// authorization. All mutating operations identify the caller by email, taken
// from the validated access token.
//
// Authorization rules:
//   - EditStatus is allowed for the task's author or its assignee
//   - every other mutation is allowed for the author only
type TaskService interface {
	// Create creates a task authored by the caller.
	Create(
		ctx context.Context,
		authorEmail, name, description string,
		status domain.TaskStatus,
		priority domain.TaskPriority,
		assignedEmail string,
	) (*domain.Task, error)

	// Get retrieves a task by ID. Returns ErrTaskNotFound if it does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// ListForUser returns a page of tasks authored by the given user, newest
	// first, with the total count. Returns ErrUserNotFound if no account
	// exists for the email.
	ListForUser(ctx context.Context, email string, page, size int) ([]*domain.Task, int64, error)

	// Delete removes a task and, through the schema's cascade, its comments.
	// Only the author may delete. Returns ErrForbidden for anyone else.
	Delete(ctx context.Context, callerEmail string, id int64) error

	// EditStatus changes the task's status. Allowed for author or assignee.
	EditStatus(ctx context.Context, callerEmail string, id int64, status domain.TaskStatus) (*domain.Task, error)

	// EditPriority changes the task's priority. Author only.
	EditPriority(ctx context.Context, callerEmail string, id int64, priority domain.TaskPriority) (*domain.Task, error)

	// Edit changes the task's name and description. Author only.
	Edit(ctx context.Context, callerEmail string, id int64, name, description string) (*domain.Task, error)

	// EditAssigned changes the task's assignee. Author only. The assignee
	// email is recorded as given; it is not checked against the user table.
	EditAssigned(ctx context.Context, callerEmail string, id int64, assignedEmail string) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	txManager TxManager
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	txManager TxManager,
	logger *slog.Logger,
) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		txManager: txManager,
		logger:    logger.With("component", "task_service"),
	}
}

// Create creates a task authored by the caller.
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	authorEmail, name, description string,
	status domain.TaskStatus,
	priority domain.TaskPriority,
	assignedEmail string,
) (*domain.Task, error) {
	task, err := domain.NewTask(name, description, status, priority, authorEmail, assignedEmail)
	if err != nil {
		s.logger.Debug("task validation failed during create",
			"error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logger.Error("failed to save task",
			"error", err)
		return nil, NewServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created successfully",
		"task_id", task.ID)

	return task, nil
}

// Get retrieves a task by ID.
func (s *TaskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found",
				"task_id", id)
			return nil, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", id)
		return nil, NewServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// ListForUser returns a page of the user's authored tasks.
func (s *TaskServiceImpl) ListForUser(
	ctx context.Context,
	email string,
	page, size int,
) ([]*domain.Task, int64, error) {
	exists, err := s.userStore.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check user existence for task listing",
			"error", err)
		return nil, 0, NewServiceError("list_tasks", "failed to check user existence", err)
	}
	if !exists {
		s.logger.Debug("task listing requested for unknown user")
		return nil, 0, ErrUserNotFound
	}

	tasks, total, err := s.taskStore.ListByAuthor(ctx, email, page, size)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err)
		return nil, 0, NewServiceError("list_tasks", "failed to list tasks", err)
	}

	return tasks, total, nil
}

// Delete removes a task after checking the caller authored it.
func (s *TaskServiceImpl) Delete(ctx context.Context, callerEmail string, id int64) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return s.mapLookupError(err, id)
		}

		if !task.IsAuthor(callerEmail) {
			s.logger.Debug("task delete denied: caller is not the author",
				"task_id", id)
			return ErrForbidden
		}

		if err := txStore.Delete(ctx, id); err != nil {
			s.logger.Error("failed to delete task",
				"error", err,
				"task_id", id)
			return NewServiceError("delete_task", "failed to delete task", err)
		}

		s.logger.Info("task deleted successfully",
			"task_id", id)
		return nil
	})
}

// EditStatus changes a task's status. The assignee may do this too, so they
// can move work they are responsible for without owning the task.
func (s *TaskServiceImpl) EditStatus(
	ctx context.Context,
	callerEmail string,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	return s.edit(ctx, "edit_task_status", id, func(task *domain.Task) error {
		if !task.IsAuthorOrAssignee(callerEmail) {
			s.logger.Debug("status edit denied: caller is neither author nor assignee",
				"task_id", id)
			return ErrForbidden
		}
		return task.SetStatus(status)
	})
}

// EditPriority changes a task's priority. Author only.
func (s *TaskServiceImpl) EditPriority(
	ctx context.Context,
	callerEmail string,
	id int64,
	priority domain.TaskPriority,
) (*domain.Task, error) {
	return s.edit(ctx, "edit_task_priority", id, func(task *domain.Task) error {
		if !task.IsAuthor(callerEmail) {
			s.logger.Debug("priority edit denied: caller is not the author",
				"task_id", id)
			return ErrForbidden
		}
		return task.SetPriority(priority)
	})
}

// Edit changes a task's name and description. Author only.
func (s *TaskServiceImpl) Edit(
	ctx context.Context,
	callerEmail string,
	id int64,
	name, description string,
) (*domain.Task, error) {
	return s.edit(ctx, "edit_task", id, func(task *domain.Task) error {
		if !task.IsAuthor(callerEmail) {
			s.logger.Debug("task edit denied: caller is not the author",
				"task_id", id)
			return ErrForbidden
		}
		return task.Rename(name, description)
	})
}

// EditAssigned changes a task's assignee. Author only.
func (s *TaskServiceImpl) EditAssigned(
	ctx context.Context,
	callerEmail string,
	id int64,
	assignedEmail string,
) (*domain.Task, error) {
	return s.edit(ctx, "edit_task_assigned", id, func(task *domain.Task) error {
		if !task.IsAuthor(callerEmail) {
			s.logger.Debug("assignee edit denied: caller is not the author",
				"task_id", id)
			return ErrForbidden
		}
		return task.Reassign(assignedEmail)
	})
}

// edit loads the task, applies mutate, and persists the result, all within
// one transaction. mutate carries the authorization check so the decision is
// made against the row the update will touch.
func (s *TaskServiceImpl) edit(
	ctx context.Context,
	operation string,
	id int64,
	mutate func(task *domain.Task) error,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return s.mapLookupError(err, id)
		}

		if err := mutate(task); err != nil {
			if errors.Is(err, ErrForbidden) {
				return err
			}
			s.logger.Debug("task mutation rejected",
				"error", err,
				"task_id", id)
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		if err := txStore.Update(ctx, task); err != nil {
			s.logger.Error("failed to update task",
				"error", err,
				"task_id", id)
			return NewServiceError(operation, "failed to update task", err)
		}

		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated successfully",
		"task_id", id,
		"operation", operation)

	return updated, nil
}

func (s *TaskServiceImpl) mapLookupError(err error, id int64) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		s.logger.Debug("task not found",
			"task_id", id)
		return ErrTaskNotFound
	}
	s.logger.Error("failed to retrieve task",
		"error", err,
		"task_id", id)
	return NewServiceError("get_task", "failed to retrieve task", err)
}
