package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/velder/taskboard-api/internal/api/shared"
	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/service"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
	}
}

// Create handles POST /api/1.0/tasks/create.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerEmail, ok := getAuthEmail(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.Create(
		r.Context(),
		callerEmail,
		req.Name,
		req.Description,
		domain.TaskStatus(req.Status),
		domain.TaskPriority(req.Priority),
		req.AssignedEmail,
	)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, NewTaskResponse(task), "Task created successfully")
}

// Get handles GET /api/1.0/tasks/get/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewTaskResponse(task), "Task retrieved successfully")
}

// ListForUser handles GET /api/1.0/tasks/get?start&end&email.
func (h *TaskHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
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

	tasks, total, err := h.taskService.ListForUser(r.Context(), email, page, size)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	pageBody := NewPageResponse(NewTaskResponses(tasks), page, size, total)
	shared.RespondWithData(w, r, http.StatusOK, pageBody, "Tasks retrieved successfully")
}

// EditStatus handles PUT /api/1.0/tasks/{id}/edit/status.
func (h *TaskHandler) EditStatus(w http.ResponseWriter, r *http.Request) {
	callerEmail, id, ok := h.editTarget(w, r)
	if !ok {
		return
	}

	var req EditTaskStatusRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.EditStatus(r.Context(), callerEmail, id, domain.TaskStatus(req.Status))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewTaskResponse(task), "Task status updated successfully")
}

// EditPriority handles PUT /api/1.0/tasks/{id}/edit/priority.
func (h *TaskHandler) EditPriority(w http.ResponseWriter, r *http.Request) {
	callerEmail, id, ok := h.editTarget(w, r)
	if !ok {
		return
	}

	var req EditTaskPriorityRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.EditPriority(r.Context(), callerEmail, id, domain.TaskPriority(req.Priority))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewTaskResponse(task), "Task priority updated successfully")
}

// Edit handles PUT /api/1.0/tasks/{id}/edit/description.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	callerEmail, id, ok := h.editTarget(w, r)
	if !ok {
		return
	}

	var req EditTaskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Edit(r.Context(), callerEmail, id, req.Name, req.Description)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewTaskResponse(task), "Task description updated successfully")
}

// EditAssigned handles PUT /api/1.0/tasks/{id}/edit/assigned.
func (h *TaskHandler) EditAssigned(w http.ResponseWriter, r *http.Request) {
	callerEmail, id, ok := h.editTarget(w, r)
	if !ok {
		return
	}

	var req EditTaskAssignedRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.EditAssigned(r.Context(), callerEmail, id, req.AssignedEmail)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, NewTaskResponse(task), "Task assigned user updated successfully")
}

// Delete handles DELETE /api/1.0/tasks/{id}/delete.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerEmail, id, ok := h.editTarget(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), callerEmail, id); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Task deleted successfully")
}

// editTarget extracts the caller email and the path task ID, writing the
// error response itself when either is missing.
func (h *TaskHandler) editTarget(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	callerEmail, ok := getAuthEmail(w, r)
	if !ok {
		return "", 0, false
	}

	id, err := getPathID(r, "id")
	if err != nil {
		HandleServiceError(w, r, err)
		return "", 0, false
	}

	return callerEmail, id, true
}

func (h *TaskHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := h.validator.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return false
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}

	return true
}
