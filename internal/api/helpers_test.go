package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/velder/taskboard-api/internal/api/shared"
	"github.com/velder/taskboard-api/internal/domain"
	"github.com/velder/taskboard-api/internal/mocks"
	"github.com/velder/taskboard-api/internal/service"
)

// apiFixture wires the real services to in-memory mocks behind a router with
// the production route layout. Authenticated routes read the caller email from
// the X-Test-Email header instead of a bearer token.
type apiFixture struct {
	router       chi.Router
	userStore    *mocks.MockUserStore
	taskStore    *mocks.MockTaskStore
	commentStore *mocks.MockCommentStore

	userService    service.UserService
	taskService    service.TaskService
	commentService service.CommentService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	commentStore := mocks.NewMockCommentStore()
	taskStore.Comments = commentStore
	txManager := mocks.NewMockTxManager()

	userService := service.NewUserService(
		userStore, mocks.NewMockJWTService(), mocks.NewMockPasswordVerifier(), txManager, logger)
	taskService := service.NewTaskService(taskStore, userStore, txManager, logger)
	commentService := service.NewCommentService(commentStore, taskStore, userStore, txManager, logger)

	userHandler := NewUserHandler(userService)
	taskHandler := NewTaskHandler(taskService)
	commentHandler := NewCommentHandler(commentService)

	r := chi.NewRouter()
	r.Route("/api/1.0", func(r chi.Router) {
		r.Post("/user/reg", userHandler.Register)
		r.Post("/user/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(headerAuth)

			r.Post("/tasks/create", taskHandler.Create)
			r.Get("/tasks/get", taskHandler.ListForUser)
			r.Get("/tasks/get/{id}", taskHandler.Get)
			r.Put("/tasks/{id}/edit/status", taskHandler.EditStatus)
			r.Put("/tasks/{id}/edit/priority", taskHandler.EditPriority)
			r.Put("/tasks/{id}/edit/description", taskHandler.Edit)
			r.Put("/tasks/{id}/edit/assigned", taskHandler.EditAssigned)
			r.Delete("/tasks/{id}/delete", taskHandler.Delete)

			r.Post("/comments/create", commentHandler.Create)
			r.Put("/comments/edit", commentHandler.Edit)
			r.Delete("/comments/{id}/delete", commentHandler.Delete)
			r.Get("/comments/get/user", commentHandler.ListForUser)
			r.Get("/comments/get/task", commentHandler.ListForTask)
			r.Get("/comments/get/{id}", commentHandler.Get)
		})
	})

	return &apiFixture{
		router:         r,
		userStore:      userStore,
		taskStore:      taskStore,
		commentStore:   commentStore,
		userService:    userService,
		taskService:    taskService,
		commentService: commentService,
	}
}

func headerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email := r.Header.Get("X-Test-Email"); email != "" {
			r = r.WithContext(shared.SetAuthEmail(r.Context(), email))
		}
		next.ServeHTTP(w, r)
	})
}

// do performs a request against the fixture's router. A non-empty asEmail is
// attached the way the auth middleware would attach it in production.
func (f *apiFixture) do(t *testing.T, method, target, asEmail string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if asEmail != "" {
		req.Header.Set("X-Test-Email", asEmail)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors shared.Response with the payload left as raw JSON so tests
// can decode it into the view type they expect.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (f *apiFixture) seedUser(t *testing.T, email string) {
	t.Helper()

	_, err := f.userService.Register(context.Background(), email, "password123")
	require.NoError(t, err)
}

func (f *apiFixture) seedTask(t *testing.T, author, assignee string) *domain.Task {
	t.Helper()

	task, err := f.taskService.Create(
		context.Background(), author, "Write report", "Quarterly report",
		domain.TaskStatusOpen, domain.TaskPriorityMedium, assignee)
	require.NoError(t, err)
	return task
}

func (f *apiFixture) seedComment(t *testing.T, author string, taskID int64) *domain.Comment {
	t.Helper()

	comment, err := f.commentService.Create(context.Background(), author, taskID, "first comment")
	require.NoError(t, err)
	return comment
}
