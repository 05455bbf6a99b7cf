package taskstore

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/achievo/internal/model"
)

type note struct{ title, description string }

type recordingNotifier struct{ notes []note }

func (r *recordingNotifier) Notify(title, description string) {
	r.notes = append(r.notes, note{title, description})
}

var fixedNow = time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, seed ...model.Task) (*TaskStore, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	s := New(n, WithSeed(seed), WithClock(func() time.Time { return fixedNow }))
	return s, n
}

// assertCountsConsistent checks completed + pending == total.
func assertCountsConsistent(t *testing.T, s *TaskStore) {
	t.Helper()
	st := s.Stats()
	assert.Equal(t, st.Total, st.Completed+st.Pending)
	assert.Equal(t, s.Len(), st.Total)
	assert.Equal(t, st.Completed, s.CompletedCount())
	assert.Equal(t, st.Pending, s.PendingCount())
}

func twoTasks() []model.Task {
	return []model.Task{
		{ID: "T1", Title: "First", Priority: model.PriorityHigh, CreatedAt: fixedNow},
		{ID: "T2", Title: "Second", Priority: model.PriorityMedium, Completed: true, CreatedAt: fixedNow},
	}
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	s, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := range 50 {
		task, err := s.Create(model.Task{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
	assert.Equal(t, 50, s.Len())
	assertCountsConsistent(t, s)
}

func TestCreatePrependsWithDefaults(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)

	created, err := s.Create(model.Task{
		ID:        "ignored",
		Title:     "Buy milk",
		Completed: true,
		CreatedAt: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	first := s.Tasks()[0]
	assert.Equal(t, "Buy milk", first.Title)
	assert.False(t, first.Completed)
	assert.Nil(t, first.DueDate)
	assert.Equal(t, model.PriorityMedium, first.Priority)
	assert.Equal(t, fixedNow, first.CreatedAt)
	assert.NotEqual(t, "ignored", first.ID)
	assert.Equal(t, created, first)

	require.Len(t, n.notes, 1)
	assert.Equal(t, TitleCreated, n.notes[0].title)
	assertCountsConsistent(t, s)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)

	_, err := s.Create(model.Task{Title: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, n.notes)
}

func TestCreateNeverReusesIDs(t *testing.T) {
	ids := []string{"a", "a", "b"}
	next := 0
	s := New(nil, WithIDGenerator(func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}))

	first, err := s.Create(model.Task{Title: "one"})
	require.NoError(t, err)
	s.RequestDelete(first.ID, first.Title)
	_, ok := s.ConfirmDelete()
	require.True(t, ok)

	second, err := s.Create(model.Task{Title: "two"})
	require.NoError(t, err)
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestCreateNormalizesDueDate(t *testing.T) {
	s, _ := newTestStore(t)
	loc := time.FixedZone("BRT", -3*60*60)
	due := time.Date(2024, 12, 25, 0, 0, 0, 0, loc)

	task, err := s.Create(model.Task{Title: "x", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25T03:00:00Z", task.DueDateString())
}

func TestToggleCompleteIsInvolution(t *testing.T) {
	s, _ := newTestStore(t, twoTasks()...)

	before, err := s.Get("T1")
	require.NoError(t, err)

	_, ok := s.ToggleComplete("T1")
	require.True(t, ok)
	mid, _ := s.Get("T1")
	assert.NotEqual(t, before.Completed, mid.Completed)

	_, ok = s.ToggleComplete("T1")
	require.True(t, ok)
	after, _ := s.Get("T1")
	assert.Equal(t, before, after)
	assertCountsConsistent(t, s)
}

func TestToggleMissingIsNoop(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)
	before := s.Tasks()

	_, ok := s.ToggleComplete("nope")
	assert.False(t, ok)
	assert.Equal(t, before, s.Tasks())
	assert.Empty(t, n.notes)
}

func TestUpdateChangesOnlyPatchedFields(t *testing.T) {
	due := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	seed := twoTasks()
	seed[1].Description = "details"
	seed[1].DueDate = &due
	s, n := newTestStore(t, seed...)

	before, _ := s.Get("T2")
	high := model.PriorityHigh
	updated, ok := s.Update("T2", model.TaskPatch{Priority: &high})
	require.True(t, ok)

	assert.Equal(t, model.PriorityHigh, updated.Priority)
	expected := before
	expected.Priority = model.PriorityHigh
	assert.Equal(t, expected, updated)

	// Position is preserved.
	assert.Equal(t, "T2", s.Tasks()[1].ID)
	require.Len(t, n.notes, 1)
	assert.Equal(t, TitleUpdated, n.notes[0].title)
	assertCountsConsistent(t, s)
}

func TestUpdateMissingLeavesCollectionUnchanged(t *testing.T) {
	s, n := newTestStore(t, twoTasks()...)
	before := s.Tasks()

	title := "ghost"
	_, ok := s.Update("nope", model.TaskPatch{Title: &title})
	assert.False(t, ok)
	assert.Equal(t, before, s.Tasks())
	assert.Empty(t, n.notes)
	assertCountsConsistent(t, s)
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	s, _ := newTestStore(t, twoTasks()...)

	blank := "  "
	_, ok := s.Update("T1", model.TaskPatch{Title: &blank})
	assert.False(t, ok)

	got, _ := s.Get("T1")
	assert.Equal(t, "First", got.Title)
}

func TestUpdateCanClearDueDate(t *testing.T) {
	due := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	seed := twoTasks()
	seed[0].DueDate = &due
	s, _ := newTestStore(t, seed...)

	var none *time.Time
	got, ok := s.Update("T1", model.TaskPatch{DueDate: &none})
	require.True(t, ok)
	assert.Nil(t, got.DueDate)
}

func TestSnapshotsAreIsolated(t *testing.T) {
	due := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	seed := twoTasks()
	seed[0].DueDate = &due
	s, _ := newTestStore(t, seed...)

	snap := s.Tasks()
	snap[0].Title = "mutated"
	*snap[0].DueDate = time.Time{}

	got, _ := s.Get("T1")
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, due, *got.DueDate)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Get("x")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSeedSkipsInvalidEntries(t *testing.T) {
	s, _ := newTestStore(t,
		model.Task{ID: "a", Title: "ok"},
		model.Task{ID: "a", Title: "dup"},
		model.Task{ID: "b", Title: "  "},
		model.Task{Title: "no id"},
	)
	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "ok", tasks[0].Title)
	assert.Equal(t, model.PriorityMedium, tasks[0].Priority)
}

func TestFilter(t *testing.T) {
	seed := twoTasks()
	seed[0].Description = "Quarterly PROPOSAL"
	s, _ := newTestStore(t, seed...)

	assert.Len(t, s.Filter(Filter{}), 2)
	assert.Equal(t, "T1", s.Filter(Filter{Status: StatusPending})[0].ID)
	assert.Equal(t, "T2", s.Filter(Filter{Status: StatusCompleted})[0].ID)

	high := model.PriorityHigh
	got := s.Filter(Filter{Priority: &high})
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].ID)

	got = s.Filter(Filter{Query: "proposal"})
	require.Len(t, got, 1)
	assert.Equal(t, "T1", got[0].ID)

	assert.Empty(t, s.Filter(Filter{Query: "nothing", Status: StatusAll}))
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Query: "x"}.IsZero())
	assert.True(t, strings.EqualFold(StatusPending.String(), "pending"))
}
