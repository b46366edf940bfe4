package api

import (
	"time"

	"github.com/velder/taskboard-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=50"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse defines the successful response for the login endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	Description   string `json:"description"    validate:"max=300"`
	Status        string `json:"status"         validate:"required,oneof=OPEN IN_PROGRESS FINISHED"`
	Priority      string `json:"priority"       validate:"required,oneof=LOW MEDIUM HIGH"`
	AssignedEmail string `json:"assignedEmail"  validate:"omitempty,email,max=50"`
}

// EditTaskStatusRequest defines the payload for changing a task's status.
type EditTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS FINISHED"`
}

// EditTaskPriorityRequest defines the payload for changing a task's priority.
type EditTaskPriorityRequest struct {
	Priority string `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
}

// EditTaskRequest defines the payload for changing a task's name and
// description. Both fields are always written together.
type EditTaskRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=300"`
}

// EditTaskAssignedRequest defines the payload for changing a task's assignee.
// An empty email clears the assignment.
type EditTaskAssignedRequest struct {
	AssignedEmail string `json:"assignedEmail" validate:"omitempty,email,max=50"`
}

// CreateCommentRequest defines the payload for adding a comment to a task.
type CreateCommentRequest struct {
	TaskID int64  `json:"taskId" validate:"required,gt=0"`
	Text   string `json:"text"   validate:"required,max=300"`
}

// EditCommentRequest defines the payload for replacing a comment's text.
type EditCommentRequest struct {
	CommentID int64  `json:"commentId" validate:"required,gt=0"`
	Text      string `json:"text"      validate:"required,max=300"`
}

// TaskResponse is the client-facing view of a task.
type TaskResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	AuthorEmail   string    `json:"authorEmail"`
	AssignedEmail string    `json:"assignedEmail,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CommentResponse is the client-facing view of a comment.
type CommentResponse struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"taskId"`
	AuthorEmail string    `json:"authorEmail"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PageResponse wraps a page of results with the pagination metadata clients
// use to walk the collection.
type PageResponse struct {
	Content       interface{} `json:"content"`
	Number        int         `json:"number"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
}

// NewTaskResponse converts a domain task into its client-facing view.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Name:          task.Name,
		Description:   task.Description,
		Status:        string(task.Status),
		Priority:      string(task.Priority),
		AuthorEmail:   task.AuthorEmail,
		AssignedEmail: task.AssignedEmail,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

// NewTaskResponses converts a slice of domain tasks.
func NewTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, NewTaskResponse(task))
	}
	return out
}

// NewCommentResponse converts a domain comment into its client-facing view.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:          comment.ID,
		TaskID:      comment.TaskID,
		AuthorEmail: comment.AuthorEmail,
		Text:        comment.Text,
		CreatedAt:   comment.CreatedAt,
		UpdatedAt:   comment.UpdatedAt,
	}
}

// NewCommentResponses converts a slice of domain comments.
func NewCommentResponses(comments []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, NewCommentResponse(comment))
	}
	return out
}

// NewPageResponse assembles pagination metadata around a page of content.
func NewPageResponse(content interface{}, page, size int, total int64) PageResponse {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return PageResponse{
		Content:       content,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
