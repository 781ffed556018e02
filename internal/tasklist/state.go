// Package tasklist keeps the local mirror of the current user's tasks in
// step with the remote API.
//
// Every mutation waits for the server to confirm before touching local
// state, so a failed request leaves the list exactly as it was.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"taskboard/internal/service"
)

var (
	// ErrTitleRequired is returned by Add for empty or whitespace titles.
	ErrTitleRequired = errors.New("title required")

	// ErrNotLoggedIn is returned when no user is set.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrTaskNotFound is returned when an id is not in the list.
	ErrTaskNotFound = errors.New("task not found")
)

// Notification texts.
const (
	MsgLoadFailed   = "Could not load tasks"
	MsgAdded        = "Task added"
	MsgAddFailed    = "Error adding task"
	MsgDeleted      = "Task deleted"
	MsgDeleteFailed = "Error deleting"
	MsgCompleted    = "Great!"
	MsgUpdateFailed = "Error updating"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// User supplies the current user id.
type User interface {
	CurrentUser() (string, bool)
}

// Session is a User that announces login and logout.
type Session interface {
	User
	OnChange(fn func(userID string)) (unsubscribe func())
}

// State is the ordered list of tasks for the current user.
type State struct {
	mu     sync.Mutex
	svc    service.Service
	user   User
	notify Notifier
	tasks  []service.Task
	stop   func()
}

// New creates an empty State. If user is a Session the list is reset on
// every login and logout until Close is called.
func New(svc service.Service, user User, notify Notifier) *State {
	s := &State{svc: svc, user: user, notify: notify}
	if sess, ok := user.(Session); ok {
		s.stop = sess.OnChange(func(string) { s.Reset() })
	}
	return s
}

// Close stops following the session. The list keeps its contents.
func (s *State) Close() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Load replaces the whole list with the server's. On failure the list is
// left empty.
func (s *State) Load(ctx context.Context) error {
	userID, err := s.userID()
	if err != nil {
		s.Reset()
		return err
	}

	tasks, err := s.svc.ListTasks(ctx, userID)
	if err != nil {
		s.Reset()
		s.error(MsgLoadFailed)
		return fmt.Errorf("load tasks: %w", err)
	}

	s.mu.Lock()
	s.tasks = dedupe(tasks)
	s.mu.Unlock()
	return nil
}

// Add creates a task and appends the server's copy once it is confirmed.
func (s *State) Add(ctx context.Context, title string, priority service.Priority, due string) (service.Task, error) {
	if strings.TrimSpace(title) == "" {
		return service.Task{}, ErrTitleRequired
	}
	userID, err := s.userID()
	if err != nil {
		return service.Task{}, err
	}
	if priority == "" {
		priority = service.DefaultPriority
	}

	task, err := s.svc.CreateTask(ctx, service.NewTask{
		Title:    title,
		UserID:   userID,
		Priority: priority,
		DueDate:  due,
	})
	if err != nil {
		s.error(MsgAddFailed)
		return service.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	if i := s.indexOf(task.ID); i >= 0 {
		s.tasks[i] = task
	} else {
		s.tasks = append(s.tasks, task)
	}
	s.mu.Unlock()

	s.success(MsgAdded)
	return task, nil
}

// Toggle flips the completion flag of the task with id once the server
// accepts the change.
func (s *State) Toggle(ctx context.Context, id string) (service.Task, error) {
	current, ok := s.Find(id)
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	completed := !current.Completed
	if err := s.svc.UpdateTask(ctx, id, service.TaskPatch{Completed: &completed}); err != nil {
		s.error(MsgUpdateFailed)
		return service.Task{}, fmt.Errorf("update task: %w", err)
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		// Removed while the request was in flight.
		s.mu.Unlock()
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	s.tasks[i].Completed = completed
	updated := s.tasks[i]
	s.mu.Unlock()

	if completed {
		s.success(MsgCompleted)
	}
	return updated, nil
}

// Delete removes the task with id once the server confirms.
func (s *State) Delete(ctx context.Context, id string) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.error(MsgDeleteFailed)
		return fmt.Errorf("delete task: %w", err)
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()

	s.success(MsgDeleted)
	return nil
}

// Tasks returns a copy of the list in order.
func (s *State) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Find returns the task with id.
func (s *State) Find(id string) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return service.Task{}, false
}

// Remaining counts tasks that are not completed.
func (s *State) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Reset empties the list.
func (s *State) Reset() {
	s.mu.Lock()
	s.tasks = nil
	s.mu.Unlock()
}

// indexOf must be called with mu held.
func (s *State) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) userID() (string, error) {
	if s.user == nil {
		return "", ErrNotLoggedIn
	}
	userID, ok := s.user.CurrentUser()
	if !ok {
		return "", ErrNotLoggedIn
	}
	return userID, nil
}

func (s *State) success(msg string) {
	if s.notify != nil {
		s.notify.Success(msg)
	}
}

func (s *State) error(msg string) {
	if s.notify != nil {
		s.notify.Error(msg)
	}
}

// dedupe keeps the first task for each id.
func dedupe(tasks []service.Task) []service.Task {
	seen := make(map[string]bool, len(tasks))
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
