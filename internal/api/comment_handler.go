package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/velder/taskboard-api/internal/api/shared"
	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/service"
)

// CommentHandler handles comment-related API requests.
type CommentHandler struct {
	commentService service.CommentService
	validator      *validator.Validate
}

// NewCommentHandler creates a new CommentHandler with the given dependencies.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
	}
}

// Create handles POST /api/1.0/comments/create.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerEmail, ok := getAuthEmail(w, r)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	comment, err := h.commentService.Create(r.Context(), callerEmail, req.TaskID, req.Text)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, NewCommentResponse(comment), "Comment created successfully")
}

// Get handles GET /api/1.0/comments/get/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	comment, err := h.commentService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewCommentResponse(comment), "Comment retrieved successfully")
}

// Edit handles PUT /api/1.0/comments/edit.
// The target comment ID travels in the body rather than the path.
func (h *CommentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	callerEmail, ok := getAuthEmail(w, r)
	if !ok {
		return
	}

	var req EditCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	comment, err := h.commentService.Edit(r.Context(), callerEmail, req.CommentID, req.Text)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewCommentResponse(comment), "Comment updated successfully")
}

// Delete handles DELETE /api/1.0/comments/{id}/delete.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerEmail, ok := getAuthEmail(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	if err := h.commentService.Delete(r.Context(), callerEmail, id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Comment deleted successfully")
}

// ListForUser handles GET /api/1.0/comments/get/user?start&end&email.
func (h *CommentHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameter email is required")
		return
	}

	page, size, err := parsePageRange(r)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	comments, total, err := h.commentService.ListForUser(r.Context(), email, page, size)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	pageBody := NewPageResponse(NewCommentResponses(comments), page, size, total)
	shared.RespondWithData(w, r, http.StatusOK, pageBody, "Comments retrieved successfully")
}

// ListForTask handles GET /api/1.0/comments/get/task?start&end&taskId.
func (h *CommentHandler) ListForTask(w http.ResponseWriter, r *http.Request) {
	rawTaskID := r.URL.Query().Get("taskId")
	if rawTaskID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameter taskId is required")
		return
	}

	taskID, err := strconv.ParseInt(rawTaskID, 10, 64)
	if err != nil || taskID <= 0 {
		HandleServiceError(w, r, fmt.Errorf("%w: taskId has invalid format", domain.ErrInvalidID))
		return
	}

	page, size, err := parsePageRange(r)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	comments, total, err := h.commentService.ListForTask(r.Context(), taskID, page, size)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	pageBody := NewPageResponse(NewCommentResponses(comments), page, size, total)
	shared.RespondWithData(w, r, http.StatusOK, pageBody, "Comments retrieved successfully")
}
