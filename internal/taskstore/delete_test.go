package taskstore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/achievo/internal/model"
)

func TestRequestThenCancelLeavesCollection(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)
	before := s.Tasks()

	s.RequestDelete("T1", "X")
	assert.Equal(t, DeletePendingConfirmation, s.DeleteState())
	req, ok := s.PendingDelete()
	require.True(t, ok)
	assert.Equal(t, model.DeleteRequest{ID: "T1", Title: "X"}, req)
	assert.Equal(t, before, s.Tasks())

	s.CancelDelete()
	assert.Equal(t, DeleteIdle, s.DeleteState())
	_, ok = s.PendingDelete()
	assert.False(t, ok)
	assert.Equal(t, before, s.Tasks())
	assert.Empty(t, n.notes)
	assertCountsConsistent(t, s)
}

func TestRequestThenConfirmRemovesTask(t *testing.T) {
	for _, id := range []string{"T1", "T2"} {
		t.Run(id, func(t *testing.T) {
			s, n := newTestStore(t, twoTasks()...)
			before := s.Stats()
			target, err := s.Get(id)
			require.NoError(t, err)

			s.RequestDelete(id, "X")
			removed, ok := s.ConfirmDelete()
			require.True(t, ok)
			assert.Equal(t, id, removed.ID)

			_, err = s.Get(id)
			assert.ErrorIs(t, err, ErrNotFound)

			after := s.Stats()
			assert.Equal(t, before.Total-1, after.Total)
			wantCompleted := before.Completed
			if target.Completed {
				wantCompleted--
			}
			assert.Equal(t, wantCompleted, after.Completed)
			assert.Equal(t, DeleteIdle, s.DeleteState())

			require.Len(t, n.notes, 1)
			assert.Equal(t, TitleDeleted, n.notes[0].title)
			assert.Contains(t, n.notes[0].description, target.Title)
			assertCountsConsistent(t, s)
		})
	}
}

func TestConfirmWhileIdleIsNoop(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)

	_, ok := s.ConfirmDelete()
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, n.notes)
}

func TestConfirmMissingTaskClosesRequest(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)

	s.RequestDelete("gone", "Gone")
	_, ok := s.ConfirmDelete()
	assert.False(t, ok)
	assert.Equal(t, DeleteIdle, s.DeleteState())
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, n.notes)
}

func TestSecondRequestReplacesFirst(t *testing.T) {
	s, _ := newTestStore(t, twoTasks()...)

	s.RequestDelete("T1", "First")
	s.RequestDelete("T2", "Second")
	removed, ok := s.ConfirmDelete()
	require.True(t, ok)
	assert.Equal(t, "T2", removed.ID)

	_, err := s.Get("T1")
	assert.NoError(t, err)
}

func TestDoubleConfirmRemovesOnce(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)

	s.RequestDelete("T1", "First")
	_, ok := s.ConfirmDelete()
	require.True(t, ok)
	_, ok = s.ConfirmDelete()
	assert.False(t, ok)

	assert.Equal(t, 1, s.Len())
	assert.Len(t, n.notes, 1)
}

func TestScenarioToggleThenDelete(t *testing.T) {
	s, _ := newTestStore(t, twoTasks()...)

	assert.Equal(t, 1, s.PendingCount())
	assert.Equal(t, 1, s.CompletedCount())

	_, ok := s.ToggleComplete("T1")
	require.True(t, ok)
	assert.Equal(t, 0, s.PendingCount())
	assert.Equal(t, 2, s.CompletedCount())

	s.RequestDelete("T2", "Second")
	_, ok = s.ConfirmDelete()
	require.True(t, ok)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, s.CompletedCount())
	assert.Equal(t, 0, s.PendingCount())
	assertCountsConsistent(t, s)
}

func TestDeleteStateString(t *testing.T) {
	assert.Equal(t, "idle", DeleteIdle.String())
	assert.Equal(t, "pending_confirmation", DeletePendingConfirmation.String())
	assert.Equal(t, "unknown", DeleteState(7).String())
}

func TestConcurrentMutationsKeepInvariants(t *testing.T) {
	s := New(nil)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 25 {
				task, err := s.Create(model.Task{Title: "t"})
				if err != nil {
					t.Error(err)
					return
				}
				s.ToggleComplete(task.ID)
				_ = s.Stats()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 200, s.Len())
	assert.Equal(t, 200, s.CompletedCount())
	assertCountsConsistent(t, s)
}
