package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTaskTitleLength is the longest title, in characters, a task may carry.
const MaxTaskTitleLength = 255

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// taskStatuses lists every valid status in display order.
var taskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusDone,
}

// Common validation errors for Task
var (
	ErrEmptyTaskTitle   = errors.New("title cannot be empty")
	ErrTaskTitleTooLong = errors.New("title must be at most 255 characters long")
	ErrEmptyTaskUserID  = errors.New("task owner cannot be empty")
)

// TaskStatuses returns all valid task statuses.
func TaskStatuses() []TaskStatus {
	out := make([]TaskStatus, len(taskStatuses))
	copy(out, taskStatuses)
	return out
}

// ParseTaskStatus converts a wire value into a TaskStatus. Matching is
// case-insensitive, so "IN_PROGRESS" and "in_progress" are equivalent.
// Unknown values are rejected.
func ParseTaskStatus(value string) (TaskStatus, error) {
	candidate := TaskStatus(strings.ToLower(strings.TrimSpace(value)))
	if candidate.Valid() {
		return candidate, nil
	}

	var names []string
	for _, s := range TaskStatuses() {
		names = append(names, s.String())
	}
	return "", fmt.Errorf("%w %q: must be one of %s",
		ErrInvalidTaskStatus, value, strings.Join(names, ", "))
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	for _, known := range taskStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s TaskStatus) String() string {
	return string(s)
}

// MarshalText implements encoding.TextMarshaler.
func (s TaskStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidTaskStatus, string(s))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown values fail
// instead of decoding to a zero status.
func (s *TaskStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseTaskStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Task is a unit of work owned by exactly one account.
type Task struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskUpdate holds the fields of a partial update. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// NewTask creates a new, not yet persisted Task for the given owner.
// An empty status defaults to TaskStatusPending.
func NewTask(userID int64, title string, description *string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.UserID <= 0 {
		return NewValidationError("user_id", "must reference an account", ErrEmptyTaskUserID)
	}

	if err := validateTitle(t.Title); err != nil {
		return err
	}

	if !t.Status.Valid() {
		_, err := ParseTaskStatus(string(t.Status))
		return NewValidationError("", err.Error(), err)
	}

	return nil
}

// ApplyUpdate overwrites only the fields present in u and refreshes UpdatedAt.
// The owner and creation time are never touched. On error t is left unchanged.
func (t *Task) ApplyUpdate(u TaskUpdate) error {
	next := *t

	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
		next.Title = *u.Title
	}

	if u.Description != nil {
		desc := *u.Description
		next.Description = &desc
	}

	if u.Status != nil {
		if !u.Status.Valid() {
			_, err := ParseTaskStatus(string(*u.Status))
			return NewValidationError("", err.Error(), err)
		}
		next.Status = *u.Status
	}

	next.UpdatedAt = time.Now().UTC()
	*t = next
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "must not be blank", ErrEmptyTaskTitle)
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return NewValidationError("title", ErrTaskTitleTooLong.Error(), ErrTaskTitleTooLong)
	}
	return nil
}
