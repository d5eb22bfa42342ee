package store

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhub/internal/api"
	"taskhub/internal/task"
)

// stubClient satisfies Client with per-operation funcs and call counts.
type stubClient struct {
	list   func(params api.ListParams) ([]task.Task, error)
	create func(draft task.Draft) (task.Task, error)
	update func(id int, patch task.Patch) (task.Task, task.Fields, error)
	remove func(id int) error
	toggle func(id int) (task.Task, task.Fields, error)

	listCalls   int
	toggleCalls int
}

func (s *stubClient) List(_ context.Context, params api.ListParams) ([]task.Task, error) {
	s.listCalls++
	return s.list(params)
}

func (s *stubClient) Create(_ context.Context, draft task.Draft) (task.Task, error) {
	return s.create(draft)
}

func (s *stubClient) Update(_ context.Context, id int, patch task.Patch) (task.Task, task.Fields, error) {
	return s.update(id, patch)
}

func (s *stubClient) Remove(_ context.Context, id int) error {
	return s.remove(id)
}

func (s *stubClient) ToggleComplete(_ context.Context, id int) (task.Task, task.Fields, error) {
	s.toggleCalls++
	return s.toggle(id)
}

func fixedList(tasks ...task.Task) func(api.ListParams) ([]task.Task, error) {
	return func(api.ListParams) ([]task.Task, error) { return tasks, nil }
}

func fields(names ...string) task.Fields {
	f := make(task.Fields, len(names))
	for _, n := range names {
		f[n] = true
	}
	return f
}

func seeded(t *testing.T, tasks ...task.Task) (*Store, *stubClient) {
	t.Helper()
	c := &stubClient{list: fixedList(tasks...)}
	s := New(c, zerolog.Nop())
	require.NoError(t, s.FetchAll(context.Background()))
	return s, c
}

func TestFetchAllReplacesCollection(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1, Title: "one"}, task.Task{ID: 2, Title: "two"})
	assert.Len(t, s.All(), 2)

	c.list = fixedList(task.Task{ID: 3, Title: "three"})
	require.NoError(t, s.FetchAll(context.Background()))

	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, 3, all[0].ID)
	assert.Empty(t, s.Err())
}

func TestFetchAllFailureKeepsPriorCollection(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1, Title: "one"})

	c.list = func(api.ListParams) ([]task.Task, error) {
		return nil, errors.New("service down")
	}
	err := s.FetchAll(context.Background())
	require.Error(t, err)

	assert.Len(t, s.All(), 1, "stale data beats an empty screen")
	assert.Equal(t, "service down", s.Err())
	assert.False(t, s.Loading())
}

func TestEnsureLoadedRunsOnce(t *testing.T) {
	c := &stubClient{list: fixedList(task.Task{ID: 1})}
	s := New(c, zerolog.Nop())
	assert.Equal(t, LoadNotStarted, s.LoadState())

	require.NoError(t, s.EnsureLoaded(context.Background()))
	require.NoError(t, s.EnsureLoaded(context.Background()))
	require.NoError(t, s.EnsureLoaded(context.Background()))

	assert.Equal(t, 1, c.listCalls)
	assert.Equal(t, LoadLoaded, s.LoadState())
}

// A failed initial load still counts as done: the state machine never
// re-arms, matching a mount-once lifecycle.
func TestEnsureLoadedFailureStillCompletes(t *testing.T) {
	c := &stubClient{list: func(api.ListParams) ([]task.Task, error) {
		return nil, errors.New("boom")
	}}
	s := New(c, zerolog.Nop())

	require.Error(t, s.EnsureLoaded(context.Background()))
	assert.Equal(t, LoadLoaded, s.LoadState())

	require.NoError(t, s.EnsureLoaded(context.Background()))
	assert.Equal(t, 1, c.listCalls)
}

func TestCreatePrepends(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1, Title: "existing"})
	c.create = func(draft task.Draft) (task.Task, error) {
		return task.Task{ID: 2, Title: draft.Title}, nil
	}

	created, err := s.Create(context.Background(), task.Draft{Title: "newest"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "newest", all[0].Title, "new task goes first")
	assert.Equal(t, "existing", all[1].Title)
}

func TestCreateFailureLeavesCollection(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1})
	c.create = func(task.Draft) (task.Task, error) {
		return task.Task{}, errors.New("rejected")
	}

	_, err := s.Create(context.Background(), task.Draft{Title: "x"})
	require.Error(t, err)
	assert.Len(t, s.All(), 1)
	assert.Equal(t, "rejected", s.Err())
}

func TestUpdateMergePreservesOmittedFields(t *testing.T) {
	s, c := seeded(t, task.Task{
		ID: 1, Title: "keep", Description: "local notes",
		DueDate: "2024-02-20", CreatedAt: "2024-01-01T00:00:00Z",
	})
	title := "renamed"
	c.update = func(id int, patch task.Patch) (task.Task, task.Fields, error) {
		// The service echoes only the fields it changed.
		return task.Task{ID: 1, Title: *patch.Title}, fields("id", "title"), nil
	}

	require.NoError(t, s.Update(context.Background(), 1, task.Patch{Title: &title}))

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "local notes", got.Description)
	assert.Equal(t, "2024-02-20", got.DueDate)
	assert.Equal(t, "2024-01-01T00:00:00Z", got.CreatedAt)
}

// An echo that omits completed must not reset it: the decoded zero
// value false is indistinguishable from a real false except by key
// presence, and completion only ever changes through the toggle.
func TestUpdateMergeKeepsCompletedWhenOmitted(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1, Title: "done already", Completed: true})
	title := "renamed"
	c.update = func(id int, patch task.Patch) (task.Task, task.Fields, error) {
		return task.Task{ID: 1, Title: *patch.Title}, fields("id", "title"), nil
	}

	require.NoError(t, s.Update(context.Background(), 1, task.Patch{Title: &title}))

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Title)
	assert.True(t, got.Completed, "omitted completed flag must keep its local value")
}

func TestUpdateFailureRecordsError(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1, Title: "orig"})
	c.update = func(int, task.Patch) (task.Task, task.Fields, error) {
		return task.Task{}, nil, errors.New("conflict")
	}

	title := "x"
	require.Error(t, s.Update(context.Background(), 1, task.Patch{Title: &title}))

	got, _ := s.Get(1)
	assert.Equal(t, "orig", got.Title)
	assert.Equal(t, "conflict", s.Err())
}

// A mutation result overtaken by a newer mutation on the same task is
// discarded. The nested update here completes while the outer one is
// still in flight.
func TestStaleMutationResultDiscarded(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1, Title: "orig"})

	first := true
	c.update = func(id int, patch task.Patch) (task.Task, task.Fields, error) {
		if first {
			first = false
			newer := "newer"
			require.NoError(t, s.Update(context.Background(), 1, task.Patch{Title: &newer}))
		}
		return task.Task{ID: 1, Title: *patch.Title}, fields("id", "title"), nil
	}

	older := "older"
	require.NoError(t, s.Update(context.Background(), 1, task.Patch{Title: &older}))

	got, _ := s.Get(1)
	assert.Equal(t, "newer", got.Title, "the later mutation wins regardless of arrival order")
}

func TestRemoveConfirmThenDelete(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1}, task.Task{ID: 2})
	c.remove = func(id int) error { return nil }

	require.NoError(t, s.Remove(context.Background(), 1))
	assert.Len(t, s.All(), 1)
	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestRemoveFailureKeepsTask(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1})
	c.remove = func(int) error { return errors.New("denied") }

	require.Error(t, s.Remove(context.Background(), 1))
	_, ok := s.Get(1)
	assert.True(t, ok, "a failed delete leaves the record in place")
	assert.Equal(t, "denied", s.Err())
}

func TestToggleCompleteAppliesResult(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1, Title: "t", Completed: false})
	c.toggle = func(id int) (task.Task, task.Fields, error) {
		return task.Task{ID: 1, Title: "t", Completed: true}, fields("id", "title", "completed"), nil
	}

	require.NoError(t, s.ToggleComplete(context.Background(), 1))
	got, _ := s.Get(1)
	assert.True(t, got.Completed)
}

func TestToggleCompleteUnknownIDIsNoOp(t *testing.T) {
	s, c := seeded(t, task.Task{ID: 1})
	c.toggle = func(int) (task.Task, task.Fields, error) {
		return task.Task{}, nil, errors.New("should not be called")
	}

	require.NoError(t, s.ToggleComplete(context.Background(), 99))
	assert.Zero(t, c.toggleCalls, "no service call for a task the store does not hold")
}

func TestFilteredView(t *testing.T) {
	s, _ := seeded(t,
		task.Task{ID: 1, Title: "a", Completed: false},
		task.Task{ID: 2, Title: "b", Completed: true},
		task.Task{ID: 3, Title: "c", Completed: false},
	)

	assert.Len(t, s.Tasks(), 3)

	s.SetFilter(FilterActive)
	active := s.Tasks()
	require.Len(t, active, 2)
	assert.Equal(t, []int{1, 3}, []int{active[0].ID, active[1].ID}, "collection order preserved")

	s.SetFilter(FilterComplete)
	complete := s.Tasks()
	require.Len(t, complete, 1)
	assert.Equal(t, 2, complete[0].ID)

	// The filter narrows the view only; the collection is untouched.
	assert.Len(t, s.All(), 3)
}

func TestSetFilterRejectsUnknown(t *testing.T) {
	s, _ := seeded(t)
	s.SetFilter(FilterActive)
	s.SetFilter(Filter("bogus"))
	assert.Equal(t, FilterActive, s.Filter())
}

func TestStats(t *testing.T) {
	s, _ := seeded(t,
		task.Task{ID: 1, Completed: true},
		task.Task{ID: 2, Completed: false},
		task.Task{ID: 3, Completed: true},
	)
	assert.Equal(t, Stats{Total: 3, Active: 1, Completed: 2}, s.Stats())
}
