package workflow

import (
	"context"

	"github.com/willtroppe/callrep/internal/models"
)

// Sequencer walks the user through the queue of selected phones one call at a
// time. It exclusively owns the queue and the cursor; the selection set is
// only written when a status needs to be mirrored back.
type Sequencer struct {
	state    *State
	recorder *Recorder
}

// NewSequencer binds a sequencer to a session state and its recorder.
func NewSequencer(state *State, recorder *Recorder) *Sequencer {
	return &Sequencer{state: state, recorder: recorder}
}

// StartWorkflow snapshots the current selections into a fresh ordered queue.
// Membership and order are fixed from here on; only entry statuses and the
// cursor change. A new session identity is generated so each run groups its
// call logs separately.
func (q *Sequencer) StartWorkflow() error {
	if q.state.Selections.Len() == 0 {
		return &PreconditionError{Reason: "no phone numbers selected"}
	}
	if q.state.Script == nil {
		return &PreconditionError{Reason: "no call script selected"}
	}

	selections := q.state.Selections.List()
	queue := make([]*QueueEntry, len(selections))
	for i, sel := range selections {
		sel.Status = StatusPending
		queue[i] = &QueueEntry{PhoneSelection: sel, QueueIndex: i}
	}

	q.state.Selections.ResetStatuses()
	q.state.Queue = queue
	q.state.Cursor = 0
	q.state.SessionID = NewSessionID()
	q.state.inFlight = false
	return nil
}

// CurrentEntry returns a copy of the entry at the cursor, or false when the
// queue is empty or the workflow has run past its end.
func (q *Sequencer) CurrentEntry() (QueueEntry, bool) {
	if q.state.Cursor < 0 || q.state.Cursor >= len(q.state.Queue) {
		return QueueEntry{}, false
	}
	return *q.state.Queue[q.state.Cursor], true
}

// StartCurrentCall marks the entry at the cursor active. Any other active
// entry is demoted first: one call at a time, no matter how many phones are
// selected.
func (q *Sequencer) StartCurrentCall() error {
	if q.state.Cursor >= len(q.state.Queue) {
		return &PreconditionError{Reason: "no call to start: the queue is exhausted"}
	}
	for _, entry := range q.state.Queue {
		if entry.Status == StatusActive {
			entry.Status = StatusPending
		}
	}
	q.state.Selections.DeactivateAll()

	current := q.state.Queue[q.state.Cursor]
	current.Status = StatusActive
	q.state.Selections.SetStatus(current.Key(), StatusActive)
	return nil
}

// CompleteCurrentCall records one outcome for the entry at the cursor.
// Unlike the other sequencer methods it manages the state lock itself: the
// lock is released while the store write runs, so a concurrent completion
// for the same session observes inFlight and fails fast with BusyError
// instead of queueing up behind the mutex and logging the call twice. An
// entry that has already completed is rejected outright. The entry and its
// originating selection flip to completed only after the store confirms the
// write; a store failure leaves every status untouched so the user can
// retry.
func (q *Sequencer) CompleteCurrentCall(ctx context.Context, outcome Outcome, rawNotes, failureReason string, isTest bool) (*models.CallLog, error) {
	q.state.Lock()
	if q.state.Cursor >= len(q.state.Queue) {
		q.state.Unlock()
		return nil, &PreconditionError{Reason: "no call to complete: the queue is exhausted"}
	}
	entry := q.state.Queue[q.state.Cursor]
	return q.submit(ctx, entry, outcome, rawNotes, failureReason, isTest)
}

// CompleteEntry records an outcome for a named selection outside the guided
// flow (the "log this call" action on the main list). The cursor does not
// move; if the selection also appears in the queue its entry is completed
// in place. Manages the state lock like CompleteCurrentCall.
func (q *Sequencer) CompleteEntry(ctx context.Context, key SelectionKey, outcome Outcome, rawNotes, failureReason string, isTest bool) (*models.CallLog, error) {
	q.state.Lock()
	sel, ok := q.state.Selections.Get(key)
	if !ok {
		q.state.Unlock()
		return nil, &PreconditionError{Reason: "phone is not in the current selection"}
	}

	entry := &QueueEntry{PhoneSelection: sel, QueueIndex: -1}
	for _, queued := range q.state.Queue {
		if queued.Key() == key {
			entry = queued
			break
		}
	}
	return q.submit(ctx, entry, outcome, rawNotes, failureReason, isTest)
}

// submit runs one call-log submission. Called with the state locked;
// returns with it unlocked. What the recorder needs is copied out under the
// lock, the lock is dropped for the store write, and statuses flip only
// after the write succeeds.
func (q *Sequencer) submit(ctx context.Context, entry *QueueEntry, outcome Outcome, rawNotes, failureReason string, isTest bool) (*models.CallLog, error) {
	if entry.Status == StatusCompleted {
		q.state.Unlock()
		return nil, &PreconditionError{Reason: "this call was already completed"}
	}
	if q.state.inFlight {
		q.state.Unlock()
		return nil, &BusyError{}
	}
	q.state.inFlight = true
	entryCopy := *entry
	script := q.state.Script
	sessionID := q.state.SessionID
	q.state.Unlock()

	log, err := q.recorder.Record(ctx, &entryCopy, outcome, rawNotes, failureReason, script, sessionID, isTest)

	q.state.Lock()
	q.state.inFlight = false
	if err == nil {
		entry.Status = StatusCompleted
		q.state.Selections.SetStatus(entry.Key(), StatusCompleted)
	}
	q.state.Unlock()
	if err != nil {
		return nil, err
	}
	return log, nil
}

// Advance moves the cursor to the next queue entry. Returns true when the
// cursor has run past the end: the workflow is complete and CurrentEntry
// reports nothing from here on. Otherwise the new current entry is forced
// back to pending, even off a stale status, so the "start call" affordance
// is deterministic.
func (q *Sequencer) Advance() bool {
	if len(q.state.Queue) == 0 {
		return true
	}
	q.state.Cursor++
	if q.state.Cursor >= len(q.state.Queue) {
		return true
	}
	current := q.state.Queue[q.state.Cursor]
	current.Status = StatusPending
	q.state.Selections.SetStatus(current.Key(), StatusPending)
	return false
}
