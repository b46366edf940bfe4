package domain

import (
	"strings"
	"testing"
)

func TestNewComment(t *testing.T) {
	comment, err := NewComment(7, "author@example.com", "Looks good")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if comment.TaskID != 7 {
		t.Errorf("Expected task ID 7, got %d", comment.TaskID)
	}

	if comment.Text != "Looks good" {
		t.Errorf("Expected text %q, got %q", "Looks good", comment.Text)
	}

	if comment.CreatedAt.IsZero() || comment.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Missing task reference
	_, err = NewComment(0, "author@example.com", "text")
	if err != ErrMissingCommentTask {
		t.Errorf("Expected error %v, got %v", ErrMissingCommentTask, err)
	}

	// Missing author
	_, err = NewComment(7, "", "text")
	if err != ErrEmptyCommentAuthor {
		t.Errorf("Expected error %v, got %v", ErrEmptyCommentAuthor, err)
	}

	// Empty text
	_, err = NewComment(7, "author@example.com", "")
	if err != ErrEmptyCommentText {
		t.Errorf("Expected error %v, got %v", ErrEmptyCommentText, err)
	}

	// Text too long
	_, err = NewComment(7, "author@example.com", strings.Repeat("t", 301))
	if err != ErrCommentTextTooLong {
		t.Errorf("Expected error %v, got %v", ErrCommentTextTooLong, err)
	}
}

func TestCommentSetText(t *testing.T) {
	comment, err := NewComment(7, "author@example.com", "original")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := comment.SetText("edited"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if comment.Text != "edited" {
		t.Errorf("Expected text %q, got %q", "edited", comment.Text)
	}

	if err := comment.SetText(""); err != ErrEmptyCommentText {
		t.Errorf("Expected error %v, got %v", ErrEmptyCommentText, err)
	}

	if err := comment.SetText(strings.Repeat("t", 301)); err != ErrCommentTextTooLong {
		t.Errorf("Expected error %v, got %v", ErrCommentTextTooLong, err)
	}

	// Editing never changes author or task
	if comment.AuthorEmail != "author@example.com" || comment.TaskID != 7 {
		t.Errorf("Edit changed identity fields: %q / %d", comment.AuthorEmail, comment.TaskID)
	}
}

func TestCommentIsAuthor(t *testing.T) {
	comment, err := NewComment(7, "author@example.com", "text")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !comment.IsAuthor("author@example.com") {
		t.Error("Expected author to be recognized")
	}
	if comment.IsAuthor("other@example.com") {
		t.Error("Non-author must not pass the author check")
	}
}
