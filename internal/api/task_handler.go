package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskflow-api/internal/api/shared"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/platform/logger"
	"github.com/phrazzld/taskflow-api/internal/service"
)

// TaskHandler handles task-related HTTP requests. Every route requires an
// authenticated principal and only ever touches that principal's tasks.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil for TaskHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /api/tasks
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := getPrincipal(w, r, log)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), principal.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, tasksToResponse(tasks), "")
}

// GetStats handles GET /api/tasks/stats
func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := getPrincipal(w, r, log)
	if !ok {
		return
	}

	stats, err := h.taskService.GetStats(r.Context(), principal.UserID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, statsToResponse(stats), "")
}

// GetTask handles GET /api/tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), principal.UserID, taskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, taskToResponse(task), "")
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, ok := getPrincipal(w, r, log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), principal.UserID, input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusCreated, taskToResponse(task), "Task created successfully")
}

// UpdateTask handles PUT /api/tasks/{id}. Title and description are replaced
// as given; status changes only when present in the body.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), principal.UserID, taskID, input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, taskToResponse(task), "Task updated successfully")
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), principal.UserID, taskID, status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, taskToResponse(task), "Task status updated successfully")
}

// DeleteTask handles DELETE /api/tasks/{id}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	principal, taskID, ok := handlePrincipalAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), principal.UserID, taskID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, http.StatusOK, nil, "Task deleted successfully")
}
