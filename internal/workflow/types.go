package workflow

import "sync"

// Status is the lifecycle state of a selected phone within a calling session.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Outcome is the enumerated result of a placed call.
type Outcome string

const (
	OutcomePerson    Outcome = "person"
	OutcomeVoicemail Outcome = "voicemail"
	OutcomeFailed    Outcome = "failed"
)

// Valid reports whether the outcome is one of the three known values.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePerson, OutcomeVoicemail, OutcomeFailed:
		return true
	}
	return false
}

// SelectionKey identifies one chosen contact point. Phone numbers are not
// guaranteed globally unique, so the position within the representative's
// phone list is the natural key.
type SelectionKey struct {
	RepID      uint `json:"rep_id"`
	PhoneIndex int  `json:"phone_index"`
}

// PhoneSelection is one chosen (representative, phone) pair with the display
// metadata the workflow needs without going back to the directory.
type PhoneSelection struct {
	RepID        uint   `json:"rep_id"`
	PhoneIndex   int    `json:"phone_index"`
	RepName      string `json:"rep_name"`
	RepRole      string `json:"rep_role"`
	DisplayPhone string `json:"display_phone"`
	DialPhone    string `json:"dial_phone"`
	PhoneType    string `json:"phone_type"`
	Status       Status `json:"status"`
}

// Key returns the selection's identity.
func (p PhoneSelection) Key() SelectionKey {
	return SelectionKey{RepID: p.RepID, PhoneIndex: p.PhoneIndex}
}

// QueueEntry is a queue-scoped copy of a PhoneSelection. Mutating its status
// never touches the originating selection except through the explicit
// synchronization in the sequencer.
type QueueEntry struct {
	PhoneSelection
	QueueIndex int `json:"queue_index"`
}

// ScriptRef is the script chosen for the active workflow. At most one is
// selected at a time; selection is ephemeral and never persisted.
type ScriptRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// State is the complete mutable state of one calling session: the selection
// set, the chosen script, the queue snapshot with its cursor, and the session
// identity grouping the resulting call logs. Access is serialized through
// Lock/Unlock; call-log submissions release the lock for the store write and
// rely on inFlight instead.
type State struct {
	mu sync.Mutex

	Selections *SelectionSet
	Script     *ScriptRef
	ZipCode    string

	Queue     []*QueueEntry
	Cursor    int
	SessionID string

	// set while a log submission holds no lock, guards concurrent submits
	inFlight bool
}

// NewState creates an empty session state with a fresh session identity.
func NewState() *State {
	return &State{
		Selections: NewSelectionSet(),
		SessionID:  NewSessionID(),
	}
}

func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }
