package taskstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/achievo/internal/logging"
	"github.com/nhle/achievo/internal/model"
)

var (
	// ErrInvalidArgument is returned when a task would violate the title
	// invariant.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a lookup of an ID absent from the collection.
	ErrNotFound = errors.New("task not found")
)

// Notification texts emitted after successful mutations.
const (
	TitleCreated       = "Task created!"
	MessageCreated     = "Your new task was added successfully."
	TitleUpdated       = "Task updated!"
	MessageUpdated     = "Your changes were saved successfully."
	TitleDeleted       = "Task removed!"
	messageDeletedFmt  = "%q was deleted successfully."
	maxIDGenerateTries = 16
)

// Notifier receives fire-and-forget confirmation messages.
type Notifier interface {
	Notify(title, description string)
}

// Stats holds the aggregate counts shown above the task list.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithSeed loads the given tasks as the initial collection, in order.
// Tasks with an empty title or a duplicate ID are skipped.
func WithSeed(tasks []model.Task) Option {
	return func(s *TaskStore) { s.seed = tasks }
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithIDGenerator overrides the task ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *TaskStore) { s.newID = gen }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *TaskStore) { s.log = log }
}

// TaskStore is the sole owner and mutator of the task collection and the
// pending-delete confirmation state. It is safe for concurrent use.
type TaskStore struct {
	mu       sync.RWMutex
	tasks    []model.Task
	usedIDs  map[string]struct{}
	gate     deleteGate
	seed     []model.Task
	notifier Notifier
	now      func() time.Time
	newID    func() string
	log      logrus.FieldLogger
}

// New creates a TaskStore. notifier may be nil.
func New(notifier Notifier, opts ...Option) *TaskStore {
	s := &TaskStore{
		usedIDs:  make(map[string]struct{}),
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}

	for _, t := range s.seed {
		if strings.TrimSpace(t.Title) == "" || t.ID == "" {
			s.log.WithField("task_id", t.ID).Warn("skipping seed task without id or title")
			continue
		}
		if _, dup := s.usedIDs[t.ID]; dup {
			s.log.WithField("task_id", t.ID).Warn("skipping seed task with duplicate id")
			continue
		}
		t.Title = strings.TrimSpace(t.Title)
		t.Priority = t.Priority.Normalize()
		s.usedIDs[t.ID] = struct{}{}
		s.tasks = append(s.tasks, cloneTask(t))
	}
	s.seed = nil

	return s
}

// Create validates fields, assigns a fresh ID and CreatedAt, and prepends
// the new task. ID, CreatedAt, and Completed in fields are ignored.
func (s *TaskStore) Create(fields model.Task) (model.Task, error) {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return model.Task{}, fmt.Errorf("creating task: title must not be empty: %w", ErrInvalidArgument)
	}

	s.mu.Lock()
	id, err := s.generateID()
	if err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}

	task := model.Task{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(fields.Description),
		Priority:    fields.Priority.Normalize(),
		Completed:   false,
		CreatedAt:   s.now().UTC(),
	}
	if fields.DueDate != nil {
		d := fields.DueDate.UTC()
		task.DueDate = &d
	}

	s.tasks = append([]model.Task{task}, s.tasks...)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"task_id": task.ID, "priority": task.Priority.String()}).
		Info("task created")
	s.notify(TitleCreated, MessageCreated)

	return cloneTask(task), nil
}

// Update merges patch into the task with the given ID, in place. It
// reports false, changing nothing, when no task matches or the patch
// would empty the title.
func (s *TaskStore) Update(id string, patch model.TaskPatch) (model.Task, bool) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		s.log.WithField("task_id", id).Debug("ignoring update with empty title")
		return model.Task{}, false
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		s.log.WithField("task_id", id).Debug("update of missing task ignored")
		return model.Task{}, false
	}
	updated := patch.Apply(s.tasks[i])
	s.tasks[i] = updated
	s.mu.Unlock()

	s.log.WithField("task_id", id).Info("task updated")
	s.notify(TitleUpdated, MessageUpdated)

	return cloneTask(updated), true
}

// ToggleComplete flips the completion flag of the task with the given ID.
func (s *TaskStore) ToggleComplete(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		s.log.WithField("task_id", id).Debug("toggle of missing task ignored")
		return model.Task{}, false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return cloneTask(s.tasks[i]), true
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("getting task %s: %w", id, ErrNotFound)
	}
	return cloneTask(s.tasks[i]), nil
}

// Tasks returns a snapshot of the collection, most recent first.
func (s *TaskStore) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// Len returns the number of tasks in the collection.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// CompletedCount returns the number of completed tasks.
func (s *TaskStore) CompletedCount() int {
	return s.Stats().Completed
}

// PendingCount returns the number of tasks not yet completed.
func (s *TaskStore) PendingCount() int {
	return s.Stats().Pending
}

// Stats derives the aggregate counts from the current collection.
func (s *TaskStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// generateID returns an ID never handed out by this store. Callers must
// hold s.mu.
func (s *TaskStore) generateID() (string, error) {
	for range maxIDGenerateTries {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, used := s.usedIDs[id]; used {
			continue
		}
		s.usedIDs[id] = struct{}{}
		return id, nil
	}
	return "", fmt.Errorf("creating task: could not generate a unique id")
}

// indexOf returns the position of the task with the given ID, or -1.
// Callers must hold s.mu.
func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) notify(title, description string) {
	if s.notifier != nil {
		s.notifier.Notify(title, description)
	}
}

// cloneTask copies t so callers never share the DueDate pointer with the
// collection.
func cloneTask(t model.Task) model.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
