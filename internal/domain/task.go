package domain

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task. Any status may move to any
// other; no transitions are restricted.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// MaxTaskTitleLength mirrors the width of the tasks.title column, in
// characters.
const MaxTaskTitleLength = 255

// Validation errors for tasks.
var (
	ErrEmptyTaskID       = NewValidationError("id", "task ID cannot be empty")
	ErrEmptyTaskOwner    = NewValidationError("userId", "task owner cannot be empty")
	ErrEmptyTaskTitle    = NewValidationError("title", "title is required")
	ErrTaskTitleTooLong  = NewValidationError("title", "title must be at most 255 characters long")
	ErrInvalidTaskStatus = NewValidationError("status", "status must be one of TODO, IN_PROGRESS, COMPLETED")
)

// TaskStatuses returns every known status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}
}

// IsValid reports whether s is a known status.
func (s TaskStatus) IsValid() bool {
	return slices.Contains(TaskStatuses(), s)
}

// ParseTaskStatus converts a raw string into a TaskStatus.
// Matching is exact; "todo" is not a valid status.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.IsValid() {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}

// Task is a unit of work owned by exactly one user for its whole lifetime.
// CreatedAt and UpdatedAt are assigned by the store.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a Task owned by userID. An empty status defaults to TODO.
func NewTask(userID uuid.UUID, title string, description *string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusTodo
	}

	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}
	return nil
}

// Update overwrites title and description unconditionally, and status only
// when one is supplied. A nil description clears the stored one.
func (t *Task) Update(title string, description *string, status *TaskStatus) error {
	next := *t
	next.Title = title
	next.Description = description
	if status != nil {
		next.Status = *status
	}

	if err := next.Validate(); err != nil {
		return err
	}

	*t = next
	return nil
}

// UpdateStatus replaces the status and leaves every other field untouched.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.IsValid() {
		return ErrInvalidTaskStatus
	}
	t.Status = status
	return nil
}

// TaskStats holds per-status task counts for one user. Total is counted
// independently of the per-status counts.
type TaskStats struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Total      int64 `json:"total"`
}
