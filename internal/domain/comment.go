package domain

import (
	"errors"
	"time"
)

// Common validation errors for Comment
var (
	ErrEmptyCommentText   = errors.New("comment text cannot be empty")
	ErrCommentTextTooLong = errors.New("comment text must be at most 300 characters long")
	ErrEmptyCommentAuthor = errors.New("comment author email cannot be empty")
	ErrMissingCommentTask = errors.New("comment must reference a task")
)

// MaxCommentTextLength is the storage limit for comment text.
const MaxCommentTextLength = 300

// Comment is an annotation on a task. It references its owning task by ID
// only; there is no back-pointer from Task, and "comments of a task" is an
// explicit store query. A comment cannot outlive its task.
type Comment struct {
	ID          int64     `json:"id"`
	TaskID      int64     `json:"task_id"`
	AuthorEmail string    `json:"author_email"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewComment creates a Comment on the given task authored by authorEmail.
// Returns an error if validation fails.
func NewComment(taskID int64, authorEmail, text string) (*Comment, error) {
	now := time.Now().UTC()
	comment := &Comment{
		TaskID:      taskID,
		AuthorEmail: authorEmail,
		Text:        text,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := comment.Validate(); err != nil {
		return nil, err
	}

	return comment, nil
}

// Validate checks if the Comment has valid data.
// Returns an error if any field fails validation.
func (c *Comment) Validate() error {
	if c.TaskID <= 0 {
		return ErrMissingCommentTask
	}

	if c.AuthorEmail == "" {
		return ErrEmptyCommentAuthor
	}

	if c.Text == "" {
		return ErrEmptyCommentText
	}

	if len(c.Text) > MaxCommentTextLength {
		return ErrCommentTextTooLong
	}

	return nil
}

// SetText overwrites the comment text and updates the UpdatedAt timestamp.
// The author and owning task never change.
func (c *Comment) SetText(text string) error {
	if text == "" {
		return ErrEmptyCommentText
	}
	if len(text) > MaxCommentTextLength {
		return ErrCommentTextTooLong
	}

	c.Text = text
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAuthor reports whether email matches the comment author.
func (c *Comment) IsAuthor(email string) bool {
	return c.AuthorEmail == email
}
