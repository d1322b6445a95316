package api

import (
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// Default paging for GET /tasks.
const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateTaskRequest defines the payload for POST /tasks. Status is decoded
// through domain.TaskStatus so unknown values fail at decode time.
type CreateTaskRequest struct {
	Title       string             `json:"title"       validate:"required,max=255"`
	Description *string            `json:"description"`
	Status      *domain.TaskStatus `json:"status"`
}

// UpdateTaskRequest defines the partial payload for PUT /tasks/{id}.
// Absent fields are left unchanged; owner and timestamps are not accepted.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"       validate:"omitempty,max=255"`
	Description *string            `json:"description"`
	Status      *domain.TaskStatus `json:"status"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	UserID      int64             `json:"user_id"`
}

// PageResponse is one page of tasks.
type PageResponse struct {
	Content       []TaskResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

func authToResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token: result.Token,
		Type:  "Bearer",
		ID:    result.Account.ID,
		Name:  result.Account.Name,
		Email: result.Account.Email,
	}
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		UserID:      task.UserID,
	}
}

func pageToResponse(page *service.TaskPage) PageResponse {
	content := make([]TaskResponse, 0, len(page.Content))
	for _, task := range page.Content {
		content = append(content, taskToResponse(task))
	}
	return PageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}
