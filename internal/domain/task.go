package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the workflow state of a task
type TaskStatus string

// Possible task status values (closed set)
const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusFinished   TaskStatus = "FINISHED"
)

// TaskPriority represents the urgency of a task
type TaskPriority string

// Possible task priority values (closed set)
const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// Common validation errors for Task
var (
	ErrEmptyTaskName        = errors.New("task name cannot be empty")
	ErrTaskNameTooLong      = errors.New("task name must be at most 100 characters long")
	ErrTaskDescTooLong      = errors.New("task description must be at most 300 characters long")
	ErrEmptyTaskAuthor      = errors.New("task author email cannot be empty")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrAssignedEmailTooLong = errors.New("assigned email must be at most 50 characters long")
)

// Field length limits for Task
const (
	MaxTaskNameLength = 100
	MaxTaskDescLength = 300
)

// Task is a unit of work created by an author and optionally delegated to
// an assignee. The author email is immutable after creation; status and
// priority are always members of their closed sets. Comments belong to a
// task by task ID and do not outlive it.
type Task struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	AuthorEmail   string       `json:"author_email"`
	AssignedEmail string       `json:"assigned_email,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewTask creates a Task authored by authorEmail. The assignee email is
// stored as given; it is not checked against the user table (a known gap
// carried over from the original design, kept deliberately).
// Returns an error if validation fails.
func NewTask(
	name, description string,
	status TaskStatus,
	priority TaskPriority,
	authorEmail, assignedEmail string,
) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Name:          name,
		Description:   description,
		Status:        status,
		Priority:      priority,
		AuthorEmail:   authorEmail,
		AssignedEmail: assignedEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Name == "" {
		return ErrEmptyTaskName
	}

	if len(t.Name) > MaxTaskNameLength {
		return ErrTaskNameTooLong
	}

	if len(t.Description) > MaxTaskDescLength {
		return ErrTaskDescTooLong
	}

	if t.AuthorEmail == "" {
		return ErrEmptyTaskAuthor
	}

	if len(t.AssignedEmail) > MaxEmailLength {
		return ErrAssignedEmailTooLong
	}

	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}

	if !t.Priority.Valid() {
		return ErrInvalidTaskPriority
	}

	return nil
}

// SetStatus updates the task status and the UpdatedAt timestamp.
// Returns an error if the status is not one of the enumerated values.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidTaskStatus
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// SetPriority updates the task priority and the UpdatedAt timestamp.
// Returns an error if the priority is not one of the enumerated values.
func (t *Task) SetPriority(priority TaskPriority) error {
	if !priority.Valid() {
		return ErrInvalidTaskPriority
	}

	t.Priority = priority
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Rename overwrites name and description together; the two fields are never
// updated independently.
func (t *Task) Rename(name, description string) error {
	if name == "" {
		return ErrEmptyTaskName
	}
	if len(name) > MaxTaskNameLength {
		return ErrTaskNameTooLong
	}
	if len(description) > MaxTaskDescLength {
		return ErrTaskDescTooLong
	}

	t.Name = name
	t.Description = description
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Reassign overwrites the assignee email. The email is not checked for
// existence, matching create.
func (t *Task) Reassign(assignedEmail string) error {
	if len(assignedEmail) > MaxEmailLength {
		return ErrAssignedEmailTooLong
	}

	t.AssignedEmail = assignedEmail
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAuthor reports whether email matches the task author.
func (t *Task) IsAuthor(email string) bool {
	return t.AuthorEmail == email
}

// IsAuthorOrAssignee reports whether email matches the task author or the
// currently assigned user. Status transitions are allowed for both.
func (t *Task) IsAuthorOrAssignee(email string) bool {
	return t.AuthorEmail == email || (t.AssignedEmail != "" && t.AssignedEmail == email)
}

// Valid reports whether the status is a member of the closed set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusFinished:
		return true
	default:
		return false
	}
}

// Valid reports whether the priority is a member of the closed set.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}
