package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskflow-api/internal/domain"
	"github.com/phrazzld/taskflow-api/internal/service"
)

// RegisterRequest defines the payload for the user registration endpoint.
// The password is also capped in bytes, which is what bcrypt limits.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72,maxbytes=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// TaskRequest is the body of task create and full update requests.
type TaskRequest struct {
	Title       string  `json:"title"       validate:"required,notblank,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status"      validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED"`
}

// UpdateStatusRequest is the body of the status patch endpoint.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED"`
}

// TaskResponse represents a task in API responses. The owner is implied by
// the bearer token and is not echoed back.
type TaskResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskStatsResponse holds per-status task counts.
type TaskStatsResponse struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Total      int64 `json:"total"`
}

// toInput converts the request for the task service. An empty status
// counts as absent.
func (req TaskRequest) toInput() (service.TaskInput, error) {
	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil && *req.Status != "" {
		status, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return service.TaskInput{}, err
		}
		input.Status = &status
	}
	return input, nil
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

func statsToResponse(stats *domain.TaskStats) TaskStatsResponse {
	return TaskStatsResponse{
		Todo:       stats.Todo,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Total:      stats.Total,
	}
}
