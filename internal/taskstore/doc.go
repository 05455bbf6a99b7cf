// Package taskstore owns the in-memory task collection.
//
// A TaskStore is the only writer of its collection: views read snapshots
// through Tasks, Filter, and Stats, and request changes through Create,
// Update, ToggleComplete, and the two-phase delete (RequestDelete followed
// by ConfirmDelete or CancelDelete).
//
// The delete flow is a small state machine:
//
//	Idle --RequestDelete(id, title)--> PendingConfirmation
//	PendingConfirmation --ConfirmDelete--> Idle   (task removed)
//	PendingConfirmation --CancelDelete--> Idle    (no change)
//
// Operations that reference an ID no longer in the collection are silent
// no-ops reported through a false result; they come from UI races such as a
// repeated keypress and are never surfaced as errors.
package taskstore
