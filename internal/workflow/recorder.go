package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/willtroppe/callrep/internal/models"
)

// LogStore persists finished call-log entries. The database-backed
// implementation lives in the handler layer; tests substitute fakes.
type LogStore interface {
	Submit(ctx context.Context, entry *models.CallLog) error
}

// Recorder turns a completed call attempt into exactly one CallLog and hands
// it to the external store. It owns no workflow state.
type Recorder struct {
	store  LogStore
	userID string
	now    func() time.Time
}

// NewRecorder builds a recorder writing to the given store on behalf of the
// fixed placeholder user.
func NewRecorder(store LogStore) *Recorder {
	return &Recorder{
		store:  store,
		userID: models.DefaultUserID,
		now:    time.Now,
	}
}

// Record validates the outcome, composes the final notes, and submits one
// immutable CallLog. The user's notes are stored verbatim. A failed outcome
// requires a non-empty failure reason; the reason is folded into the notes
// as a structured prefix. Submission errors surface as ExternalServiceError
// and leave no trace in memory.
func (r *Recorder) Record(ctx context.Context, entry *QueueEntry, outcome Outcome, rawNotes, failureReason string, script *ScriptRef, sessionID string, isTest bool) (*models.CallLog, error) {
	if !outcome.Valid() {
		return nil, &ValidationError{Reason: "unknown call outcome: " + string(outcome)}
	}

	failureReason = strings.TrimSpace(failureReason)

	notes := rawNotes
	if outcome == OutcomeFailed {
		if failureReason == "" {
			return nil, &ValidationError{Reason: "a failure reason is required when the call failed"}
		}
		notes = "Failed: " + failureReason
		if rawNotes != "" {
			notes += "\n\n" + rawNotes
		}
	}

	log := &models.CallLog{
		UserID:             r.userID,
		RepresentativeName: entry.RepName,
		PhoneNumber:        entry.DisplayPhone,
		PhoneType:          entry.PhoneType,
		CallDatetime:       r.now().UTC(),
		CallOutcome:        string(outcome),
		CallNotes:          notes,
		SessionID:          sessionID,
		IsTestData:         isTest,
	}
	if script != nil {
		id := script.ID
		log.ScriptID = &id
		log.ScriptTitle = script.Title
	}

	if err := r.store.Submit(ctx, log); err != nil {
		return nil, &ExternalServiceError{Op: "submit call log", Err: err}
	}
	return log, nil
}
