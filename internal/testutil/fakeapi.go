package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// FakeAPI is an HTTP server speaking the task REST API, for exercising the
// real HTTP client. Its responses follow the production backend's wire
// shapes: listed tasks carry "_id", created tasks carry "task_id".
type FakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	users    map[string]fakeUser // username -> user
	tasks    []apiTask
	failures map[string]int // route name -> forced status
	requests []*http.Request
}

type apiTask struct {
	ID        string  `json:"_id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	UserID    string  `json:"user_id"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"due_date"`
}

// Route names accepted by Fail.
const (
	RouteRegister   = "register"
	RouteLogin      = "login"
	RouteListTasks  = "list-tasks"
	RouteCreateTask = "create-task"
	RouteUpdateTask = "update-task"
	RouteDeleteTask = "delete-task"
)

// NewFakeAPI starts a FakeAPI. Call Close when done.
func NewFakeAPI() *FakeAPI {
	f := &FakeAPI{
		users:    make(map[string]fakeUser),
		failures: make(map[string]int),
	}

	r := mux.NewRouter()
	r.Use(f.record)
	r.HandleFunc("/register", f.register).Methods(http.MethodPost).Name(RouteRegister)
	r.HandleFunc("/login", f.login).Methods(http.MethodPost).Name(RouteLogin)
	r.HandleFunc("/tasks", f.listTasks).Methods(http.MethodGet).Name(RouteListTasks)
	r.HandleFunc("/tasks", f.createTask).Methods(http.MethodPost).Name(RouteCreateTask)
	r.HandleFunc("/tasks/{taskID}", f.updateTask).Methods(http.MethodPut).Name(RouteUpdateTask)
	r.HandleFunc("/tasks/{taskID}", f.deleteTask).Methods(http.MethodDelete).Name(RouteDeleteTask)

	f.server = httptest.NewServer(r)
	return f
}

// URL returns the base URL of the server.
func (f *FakeAPI) URL() string { return f.server.URL }

// Close shuts the server down.
func (f *FakeAPI) Close() { f.server.Close() }

// AddUser registers a user with a fixed id.
func (f *FakeAPI) AddUser(id, username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = fakeUser{id: id, password: password}
}

// AddTask stores an open task owned by userID.
func (f *FakeAPI) AddTask(userID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, apiTask{ID: taskID, Title: title, UserID: userID, Priority: "Medium"})
}

// Fail makes every request to route answer with status.
func (f *FakeAPI) Fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = status
}

// Requests returns the requests received so far.
func (f *FakeAPI) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

// Completed reports the stored completion flag of a task.
func (f *FakeAPI) Completed(taskID string) (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == taskID {
			return t.Completed, true
		}
	}
	return false, false
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Clone(r.Context()))
		status, fail := 0, false
		if route := mux.CurrentRoute(r); route != nil {
			status, fail = f.failures[route.GetName()]
		}
		f.mu.Unlock()

		if fail {
			writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (f *FakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	_ = json.NewDecoder(r.Body).Decode(&c)
	if c.Username == "" || c.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[c.Username]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Username already exists"})
		return
	}
	id := uuid.NewString()
	f.users[c.Username] = fakeUser{id: id, password: c.Password}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully", "user_id": id})
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	_ = json.NewDecoder(r.Body).Decode(&c)

	f.mu.Lock()
	u, ok := f.users[c.Username]
	f.mu.Unlock()

	if !ok || u.password != c.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful", "user_id": u.id, "username": c.Username})
}

func (f *FakeAPI) listTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User ID is required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := []apiTask{}
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title    string  `json:"title"`
		UserID   string  `json:"user_id"`
		Priority string  `json:"priority"`
		DueDate  *string `json:"due_date"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Title == "" || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Title and User ID are required"})
		return
	}
	if req.Priority == "" {
		req.Priority = "Medium"
	}

	t := apiTask{ID: uuid.NewString(), Title: req.Title, UserID: req.UserID, Priority: req.Priority, DueDate: req.DueDate}
	f.mu.Lock()
	f.tasks = append(f.tasks, t)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Task added",
		"task_id":   t.ID,
		"title":     t.Title,
		"completed": false,
		"priority":  t.Priority,
		"due_date":  t.DueDate,
	})
}

func (f *FakeAPI) updateTask(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	completed, ok := body["completed"].(bool)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing 'completed' field"})
		return
	}

	id := mux.Vars(r)["taskID"]
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = completed
			writeJSON(w, http.StatusOK, map[string]string{"message": "Task updated"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
}

func (f *FakeAPI) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskID"]
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HTTPClient returns a client wired to the server.
func (f *FakeAPI) HTTPClient() *http.Client { return f.server.Client() }
