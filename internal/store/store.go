// Package store holds the authoritative local task collection and keeps
// it reconciled with the remote service.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"taskhub/internal/api"
	"taskhub/internal/task"
)

// Filter selects the derived view. It is session-local and never touches
// the underlying collection.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"
	FilterComplete Filter = "complete"
)

// LoadState tracks the initial load. The initial fetch runs at most once
// per store; later triggers are no-ops whatever the first outcome was.
type LoadState int

const (
	LoadNotStarted LoadState = iota
	LoadLoading
	LoadLoaded
)

// Client is the slice of the task service client the store depends on.
type Client interface {
	List(ctx context.Context, params api.ListParams) ([]task.Task, error)
	Create(ctx context.Context, draft task.Draft) (task.Task, error)
	Update(ctx context.Context, id int, patch task.Patch) (task.Task, task.Fields, error)
	Remove(ctx context.Context, id int) error
	ToggleComplete(ctx context.Context, id int) (task.Task, task.Fields, error)
}

// Stats are the collection counts for the stats view.
type Stats struct {
	Total     int
	Active    int
	Completed int
}

// Store owns the local task collection. All mutations go through its
// methods; reads hand out copies. Local state changes only after the
// corresponding service call has succeeded, except that a stale mutation
// result (one overtaken by a later mutation on the same task) is
// discarded rather than applied.
type Store struct {
	mu        sync.Mutex
	client    Client
	log       zerolog.Logger
	tasks     []task.Task
	filter    Filter
	loading   bool
	loadState LoadState
	errMsg    string

	// seq tracks the latest mutation issued per task id, so responses
	// arriving out of order cannot overwrite newer state.
	seq map[int]uint64
}

// New creates an empty store backed by the given client.
func New(client Client, logger zerolog.Logger) *Store {
	return &Store{
		client: client,
		log:    logger,
		filter: FilterAll,
		seq:    make(map[int]uint64),
	}
}

// FetchAll replaces the whole collection with the service's list. On
// failure the prior collection stays: stale data beats an empty screen.
func (s *Store) FetchAll(ctx context.Context) error {
	return s.FetchWith(ctx, api.ListParams{})
}

// FetchWith is FetchAll with server-side list parameters passed through.
func (s *Store) FetchWith(ctx context.Context, params api.ListParams) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	list, err := s.client.List(ctx, params)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.tasks = list
	s.errMsg = ""
	s.log.Debug().Int("tasks", len(list)).Msg("collection replaced")
	return nil
}

// EnsureLoaded performs the initial fetch exactly once per store.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	if s.loadState != LoadNotStarted {
		s.mu.Unlock()
		return nil
	}
	s.loadState = LoadLoading
	s.mu.Unlock()

	err := s.FetchAll(ctx)

	s.mu.Lock()
	s.loadState = LoadLoaded
	s.mu.Unlock()
	return err
}

// Create sends a draft to the service and prepends the created task, so
// the collection stays most-recent-first.
func (s *Store) Create(ctx context.Context, draft task.Draft) (task.Task, error) {
	created, err := s.client.Create(ctx, draft)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return task.Task{}, err
	}
	s.tasks = append([]task.Task{created}, s.tasks...)
	s.errMsg = ""
	return created, nil
}

// Update patches a task and merges the confirmed fields into the local
// record. Fields the response omitted keep their local values.
func (s *Store) Update(ctx context.Context, id int, patch task.Patch) error {
	seq := s.nextSeq(id)

	updated, fields, err := s.client.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	if s.seq[id] != seq {
		s.log.Debug().Int("id", id).Msg("discarding stale update result")
		return nil
	}
	s.applyLocked(id, updated, fields)
	s.errMsg = ""
	return nil
}

// Remove deletes a task. The local record goes away only after the
// service has confirmed; a failed delete leaves it in place.
func (s *Store) Remove(ctx context.Context, id int) error {
	err := s.client.Remove(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.errMsg = ""
	return nil
}

// ToggleComplete flips a task's completion state via the service. A task
// the store does not hold is a no-op: no call is made, nothing changes.
func (s *Store) ToggleComplete(ctx context.Context, id int) error {
	s.mu.Lock()
	if _, ok := s.indexLocked(id); !ok {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	seq := s.nextSeq(id)

	toggled, fields, err := s.client.ToggleComplete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	if s.seq[id] != seq {
		s.log.Debug().Int("id", id).Msg("discarding stale toggle result")
		return nil
	}
	s.applyLocked(id, toggled, fields)
	s.errMsg = ""
	return nil
}

// SetFilter switches the derived view. No network effect.
func (s *Store) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch f {
	case FilterAll, FilterActive, FilterComplete:
		s.filter = f
	}
}

// Filter returns the current filter.
func (s *Store) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tasks returns the derived view: the collection narrowed by the current
// filter, in collection order. The store never re-sorts.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		switch s.filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterComplete:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// All returns the full collection regardless of filter.
func (s *Store) All() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the local record for id.
func (s *Store) Get(id int) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.indexLocked(id); ok {
		return s.tasks[i], true
	}
	return task.Task{}, false
}

// Stats counts the collection for the stats view.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last recorded error message, empty when the last
// operation succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// LoadState reports the initial-load state machine.
func (s *Store) LoadState() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadState
}

func (s *Store) nextSeq(id int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[id]++
	return s.seq[id]
}

func (s *Store) indexLocked(id int) (int, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// applyLocked merges a confirmed task into the local record with the
// same id. Absent ids are ignored: the record may have been removed
// while the call was in flight.
func (s *Store) applyLocked(id int, remote task.Task, present task.Fields) {
	i, ok := s.indexLocked(id)
	if !ok {
		s.log.Debug().Int("id", id).Msg("confirmed task no longer held locally")
		return
	}
	s.tasks[i] = mergeTask(s.tasks[i], remote, present)
}

// mergeTask folds the confirmed fields into the local record. Only keys
// the response actually carried overwrite; everything else keeps its
// local value, so a partial echo cannot reset state it never mentioned
// (a completed task stays completed when the echo omits the flag).
func mergeTask(local, remote task.Task, present task.Fields) task.Task {
	merged := local
	if present.Has("title") {
		merged.Title = remote.Title
	}
	if present.Has("description") {
		merged.Description = remote.Description
	}
	if present.Has("completed") {
		merged.Completed = remote.Completed
	}
	if present.Has("priority") {
		merged.Priority = remote.Priority
	}
	if present.Has("dueDate") {
		merged.DueDate = remote.DueDate
	}
	if present.Has("createdAt") {
		merged.CreatedAt = remote.CreatedAt
	}
	if present.Has("updatedAt") {
		merged.UpdatedAt = remote.UpdatedAt
	}
	if present.Has("userId") {
		merged.UserID = remote.UserID
	}
	return merged
}
