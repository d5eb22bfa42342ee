// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// FakeToken is the bearer token the fake service accepts and issues. It
// is a real HS256 JWT (sub "user-1", name "Test User", no expiry) so the
// claims-reading paths work against it.
const FakeToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
	"eyJzdWIiOiJ1c2VyLTEiLCJuYW1lIjoiVGVzdCBVc2VyIn0." +
	"p9PQD7yHQxNhuuPFMtkmQSRN8CCVxke9f7bqr-8CYLs"

// FakeService is an in-memory HTTP stand-in for the task service. Task
// payloads are stored and served as snake_case wire maps, the way the
// real service speaks.
type FakeService struct {
	mu     sync.Mutex
	srv    *httptest.Server
	tasks  []map[string]any
	nextID int

	// Envelope switches responses to the {success, data: {...}} wrapper.
	Envelope bool

	// Per-operation error injection: a non-zero status makes the
	// operation fail with that code and FailMessage as the body message.
	ListStatus   int
	CreateStatus int
	UpdateStatus int
	DeleteStatus int
	ToggleStatus int
	FailMessage  string

	// Requests records "METHOD /path" in arrival order.
	Requests []string
}

// NewFakeService starts the fake service. Callers must Close it.
func NewFakeService() *FakeService {
	f := &FakeService{nextID: 1, FailMessage: "service failure"}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

// URL returns the service base URL.
func (f *FakeService) URL() string { return f.srv.URL }

// Close shuts the service down.
func (f *FakeService) Close() { f.srv.Close() }

// AddTask seeds a task and returns its id.
func (f *FakeService) AddTask(title string, completed bool) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, map[string]any{
		"id":          id,
		"title":       title,
		"completed":   completed,
		"priority":    "medium",
		"created_at":  "2024-01-02T03:04:05Z",
		"updated_at":  "2024-01-02T03:04:05Z",
		"user_id":     "user-1",
		"description": "",
	})
	return id
}

// Task returns a copy of the stored wire map for id.
func (f *FakeService) Task(id int) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t["id"] == id {
			out := make(map[string]any, len(t))
			for k, v := range t {
				out[k] = v
			}
			return out, true
		}
	}
	return nil, false
}

func (f *FakeService) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.Requests = append(f.Requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	if strings.HasPrefix(r.URL.Path, "/api/auth/") {
		f.handleAuth(w, r)
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+FakeToken {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	switch {
	case r.URL.Path == "/api/tasks" && r.Method == http.MethodGet:
		f.handleList(w, r)
	case r.URL.Path == "/api/tasks" && r.Method == http.MethodPost:
		f.handleCreate(w, r)
	case strings.HasSuffix(r.URL.Path, "/complete") && r.Method == http.MethodPatch:
		f.handleToggle(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/tasks/") && r.Method == http.MethodPut:
		f.handleUpdate(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/tasks/") && r.Method == http.MethodDelete:
		f.handleDelete(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (f *FakeService) handleAuth(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/auth/signin", "/api/auth/signup":
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] == "wrong" {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"token":   FakeToken,
			"user": map[string]any{
				"id":    "user-1",
				"name":  "Test User",
				"email": creds["email"],
			},
			"message": "User signed in successfully",
		})
	case "/api/auth/signout":
		w.WriteHeader(http.StatusNoContent)
	case "/api/auth/me":
		if r.Header.Get("Authorization") != "Bearer "+FakeToken {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": "user-1", "name": "Test User", "email": "test@example.com"},
		})
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (f *FakeService) handleList(w http.ResponseWriter, r *http.Request) {
	if f.ListStatus != 0 {
		writeError(w, f.ListStatus, f.FailMessage)
		return
	}
	f.mu.Lock()
	list := make([]map[string]any, 0, len(f.tasks))
	for _, t := range f.tasks {
		if status := r.URL.Query().Get("status"); status == "pending" && t["completed"] == true {
			continue
		} else if status == "completed" && t["completed"] != true {
			continue
		}
		list = append(list, t)
	}
	f.mu.Unlock()

	if f.Envelope {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"tasks": list},
		})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (f *FakeService) handleCreate(w http.ResponseWriter, r *http.Request) {
	if f.CreateStatus != 0 {
		writeError(w, f.CreateStatus, f.FailMessage)
		return
	}
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	f.mu.Lock()
	t := map[string]any{
		"id":         f.nextID,
		"title":      body["title"],
		"completed":  false,
		"priority":   "medium",
		"created_at": "2024-01-02T03:04:05Z",
		"updated_at": "2024-01-02T03:04:05Z",
		"user_id":    "user-1",
	}
	f.nextID++
	for _, k := range []string{"description", "priority", "due_date"} {
		if v, ok := body[k]; ok && v != nil && v != "" {
			t[k] = v
		}
	}
	f.tasks = append(f.tasks, t)
	f.mu.Unlock()

	f.writeTask(w, http.StatusCreated, t)
}

func (f *FakeService) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if f.UpdateStatus != 0 {
		writeError(w, f.UpdateStatus, f.FailMessage)
		return
	}
	id, ok := pathID(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid body")
		return
	}
	f.mu.Lock()
	t := f.findLocked(id)
	if t == nil {
		f.mu.Unlock()
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	for k, v := range body {
		t[k] = v
	}
	t["updated_at"] = "2024-01-03T03:04:05Z"
	f.mu.Unlock()

	f.writeTask(w, http.StatusOK, t)
}

func (f *FakeService) handleDelete(w http.ResponseWriter, r *http.Request) {
	if f.DeleteStatus != 0 {
		writeError(w, f.DeleteStatus, f.FailMessage)
		return
	}
	id, ok := pathID(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t["id"] == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Task not found")
}

func (f *FakeService) handleToggle(w http.ResponseWriter, r *http.Request) {
	if f.ToggleStatus != 0 {
		writeError(w, f.ToggleStatus, f.FailMessage)
		return
	}
	path := strings.TrimSuffix(r.URL.Path, "/complete")
	id, ok := pathID(path)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	f.mu.Lock()
	t := f.findLocked(id)
	if t == nil {
		f.mu.Unlock()
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	t["completed"] = t["completed"] != true
	f.mu.Unlock()

	f.writeTask(w, http.StatusOK, t)
}

// findLocked returns the stored map for id; callers hold the lock.
func (f *FakeService) findLocked(id int) map[string]any {
	for _, t := range f.tasks {
		if t["id"] == id {
			return t
		}
	}
	return nil
}

func (f *FakeService) writeTask(w http.ResponseWriter, status int, t map[string]any) {
	if f.Envelope {
		writeJSON(w, status, map[string]any{
			"success": true,
			"data":    map[string]any{"task": t},
		})
		return
	}
	writeJSON(w, status, t)
}

// pathID extracts the trailing integer of /api/tasks/{id}.
func pathID(path string) (int, bool) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return 0, false
	}
	id, err := strconv.Atoi(path[i+1:])
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": msg,
	})
}
