// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"taskboard/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu        sync.RWMutex
	users     map[string]fakeUser // username -> user
	tasks     []service.Task      // all users, creation order
	nextIDs   []string            // ids handed out by CreateTask before falling back to uuids
	callCount map[string]int

	// Error injection for testing
	AuthenticateErr error
	RegisterErr     error
	ListTasksErr    error
	CreateTaskErr   error
	UpdateTaskErr   error
	DeleteTaskErr   error
}

type fakeUser struct {
	id       string
	password string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		users:     make(map[string]fakeUser),
		callCount: make(map[string]int),
	}
}

// AddUser registers a user with a fixed id.
func (f *FakeService) AddUser(id, username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = fakeUser{id: id, password: password}
}

// AddTask adds an open task owned by userID.
func (f *FakeService) AddTask(userID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          taskID,
		Title:       title,
		Priority:    service.DefaultPriority,
		OwnerUserID: userID,
	})
}

// AddCompletedTask adds a completed task owned by userID.
func (f *FakeService) AddCompletedTask(userID, taskID, title string) {
	f.AddTask(userID, taskID, title)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[len(f.tasks)-1].Completed = true
}

// QueueIDs makes the next CreateTask calls return these ids in order.
func (f *FakeService) QueueIDs(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextIDs = append(f.nextIDs, ids...)
}

// Calls returns how many times the named method was called.
func (f *FakeService) Calls(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.callCount[method]
}

// Stored returns the server-side copy of the task with id.
func (f *FakeService) Stored(id string) (service.Task, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func (f *FakeService) count(method string) {
	f.mu.Lock()
	f.callCount[method]++
	f.mu.Unlock()
}

// Authenticate implements service.Service.
func (f *FakeService) Authenticate(ctx context.Context, username, password string) (string, error) {
	f.count("Authenticate")
	if f.AuthenticateErr != nil {
		return "", f.AuthenticateErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, ok := f.users[username]
	if !ok || u.password != password {
		return "", &service.Error{Kind: service.ErrInvalidCredentials, Status: 401, Message: "Invalid credentials"}
	}
	return u.id, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, username, password string) error {
	f.count("Register")
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	if username == "" || password == "" {
		return &service.Error{Kind: service.ErrValidationFailed, Status: 400, Message: "Username and password are required"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[username]; exists {
		return &service.Error{Kind: service.ErrUsernameTaken, Status: 409, Message: "Username already exists"}
	}
	f.users[username] = fakeUser{id: uuid.NewString(), password: password}
	return nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, userID string) ([]service.Task, error) {
	f.count("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var result []service.Task
	for _, t := range f.tasks {
		if t.OwnerUserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, t service.NewTask) (service.Task, error) {
	f.count("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if t.Title == "" || t.UserID == "" {
		return service.Task{}, &service.Error{Kind: service.ErrServer, Status: 400, Message: "Title and User ID are required"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.NewString()
	if len(f.nextIDs) > 0 {
		id, f.nextIDs = f.nextIDs[0], f.nextIDs[1:]
	}
	task := service.Task{
		ID:          id,
		Title:       t.Title,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		OwnerUserID: t.UserID,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) error {
	f.count("UpdateTask")
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			if patch.Completed != nil {
				f.tasks[i].Completed = *patch.Completed
			}
			return nil
		}
	}
	return errTaskNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.count("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return errTaskNotFound
}

var errTaskNotFound = &service.Error{Kind: service.ErrServer, Status: 404, Message: "Task not found"}
