// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for the remote task API.
// Commands and the task list never talk HTTP directly.
type Service interface {
	// Authenticate exchanges credentials for a user id.
	// Any rejection is reported as ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (string, error)

	// Register creates a new account.
	Register(ctx context.Context, username, password string) error

	// ListTasks returns the user's tasks in server order.
	ListTasks(ctx context.Context, userID string) ([]Task, error)

	// CreateTask creates a task. The server assigns the id.
	CreateTask(ctx context.Context, t NewTask) (Task, error)

	// UpdateTask applies a partial update to a task.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
