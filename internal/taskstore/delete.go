package taskstore

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nhle/achievo/internal/model"
)

// DeleteState is the state of the delete confirmation gate.
type DeleteState int

const (
	// DeleteIdle means no deletion is awaiting confirmation.
	DeleteIdle DeleteState = iota

	// DeletePendingConfirmation means a request is open and holds the
	// task's ID and title until it is confirmed or cancelled.
	DeletePendingConfirmation
)

// String returns the state name.
func (s DeleteState) String() string {
	switch s {
	case DeleteIdle:
		return "idle"
	case DeletePendingConfirmation:
		return "pending_confirmation"
	default:
		return "unknown"
	}
}

// deleteGate holds the two-phase delete state. Guarded by TaskStore.mu.
type deleteGate struct {
	state   DeleteState
	request model.DeleteRequest
}

func (g *deleteGate) open(req model.DeleteRequest) {
	g.state = DeletePendingConfirmation
	g.request = req
}

func (g *deleteGate) close() {
	g.state = DeleteIdle
	g.request = model.DeleteRequest{}
}

// RequestDelete opens a delete request for the task with the given ID and
// title. The collection is not touched. A request made while another is
// pending replaces it.
func (s *TaskStore) RequestDelete(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gate.open(model.DeleteRequest{ID: id, Title: title})
	s.log.WithField("task_id", id).Debug("delete requested")
}

// CancelDelete closes any pending delete request without changing the
// collection.
func (s *TaskStore) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate.state == DeletePendingConfirmation {
		s.log.WithField("task_id", s.gate.request.ID).Debug("delete cancelled")
	}
	s.gate.close()
}

// ConfirmDelete removes the task named by the pending request and closes
// the request. It returns the removed task and true, or false when there
// was no pending request or the task no longer exists.
func (s *TaskStore) ConfirmDelete() (model.Task, bool) {
	s.mu.Lock()
	if s.gate.state != DeletePendingConfirmation {
		s.mu.Unlock()
		return model.Task{}, false
	}

	req := s.gate.request
	s.gate.close()

	i := s.indexOf(req.ID)
	if i < 0 {
		s.mu.Unlock()
		s.log.WithField("task_id", req.ID).Debug("confirmed delete of missing task ignored")
		return model.Task{}, false
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	title := removed.Title
	if title == "" {
		title = req.Title
	}
	s.log.WithFields(logrus.Fields{"task_id": removed.ID}).Info("task deleted")
	s.notify(TitleDeleted, fmt.Sprintf(messageDeletedFmt, title))

	return cloneTask(removed), true
}

// DeleteState reports the current state of the delete gate.
func (s *TaskStore) DeleteState() DeleteState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gate.state
}

// PendingDelete returns the open delete request, if any.
func (s *TaskStore) PendingDelete() (model.DeleteRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.gate.state != DeletePendingConfirmation {
		return model.DeleteRequest{}, false
	}
	return s.gate.request, true
}
