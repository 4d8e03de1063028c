package workflow

import (
	"github.com/willtroppe/callrep/pkg/script"
)

// Projection is the read-side summary the UI renders after every mutation.
// It is derived on demand and never cached; callers must request a fresh one
// after each state change.
type Projection struct {
	Ready         bool   `json:"ready"`
	StatusMessage string `json:"status_message"`

	SelectedCount  int `json:"selected_count"`
	RemainingCount int `json:"remaining_count"`
	CompletedCount int `json:"completed_count"`

	QueueLength      int     `json:"queue_length"`
	CurrentIndex     int     `json:"current_index"`
	Progress         float64 `json:"progress"`
	WorkflowComplete bool    `json:"workflow_complete"`

	CurrentEntry   *QueueEntry `json:"current_entry,omitempty"`
	RenderedScript string      `json:"rendered_script,omitempty"`
	ScriptTitle    string      `json:"script_title,omitempty"`
	SessionID      string      `json:"session_id"`
}

// Project derives the UI-facing summary from the session state. Pure
// read: the state is never mutated.
func Project(s *State) Projection {
	p := Projection{
		SelectedCount:  s.Selections.Len(),
		RemainingCount: s.Selections.CountByStatus(StatusPending) + s.Selections.CountByStatus(StatusActive),
		CompletedCount: s.Selections.CountByStatus(StatusCompleted),
		QueueLength:    len(s.Queue),
		CurrentIndex:   s.Cursor,
		SessionID:      s.SessionID,
	}

	switch {
	case p.RemainingCount == 0 && s.Script == nil:
		p.StatusMessage = "Select at least one phone number and a call script"
	case p.RemainingCount == 0:
		p.StatusMessage = "Select at least one phone number"
	case s.Script == nil:
		p.StatusMessage = "Select a call script"
	default:
		p.Ready = true
		p.StatusMessage = "Ready to call"
	}

	if s.Script != nil {
		p.ScriptTitle = s.Script.Title
	}

	if len(s.Queue) > 0 {
		if s.Cursor >= len(s.Queue) {
			p.WorkflowComplete = true
			p.Progress = 1
		} else {
			p.Progress = float64(s.Cursor) / float64(len(s.Queue))
			entry := *s.Queue[s.Cursor]
			p.CurrentEntry = &entry
			if s.Script != nil {
				p.RenderedScript = script.Resolve(s.Script.Body,
					script.CallContext(entry.RepRole, entry.RepName, s.ZipCode))
			}
		}
	} else if s.Script != nil {
		// no workflow running yet, render the list preview
		p.RenderedScript = script.Resolve(s.Script.Body, script.PreviewContext(s.ZipCode))
	}

	return p
}
