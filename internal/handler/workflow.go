package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/willtroppe/callrep/internal/models"
	"github.com/willtroppe/callrep/internal/workflow"
	"github.com/willtroppe/callrep/pkg/logger"
	"github.com/willtroppe/callrep/pkg/response"
)

// dbLogStore persists workflow call logs through gorm.
type dbLogStore struct {
	db *gorm.DB
}

func (s *dbLogStore) Submit(ctx context.Context, entry *models.CallLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// CompleteCallRequest reports the outcome of the call at the cursor.
type CompleteCallRequest struct {
	Outcome       string `json:"outcome" binding:"required"`
	Notes         string `json:"notes"`
	FailureReason string `json:"failure_reason"`
	IsTestData    bool   `json:"is_test_data"`
}

// CompleteDirectRequest reports an outcome for a named selection without
// touching the guided flow.
type CompleteDirectRequest struct {
	RepID         uint   `json:"rep_id" binding:"required"`
	PhoneIndex    *int   `json:"phone_index" binding:"required"`
	Outcome       string `json:"outcome" binding:"required"`
	Notes         string `json:"notes"`
	FailureReason string `json:"failure_reason"`
	IsTestData    bool   `json:"is_test_data"`
}

// SelectAllRequest replaces nothing: listed selections are added to the set,
// already-selected ones keep their status.
type SelectAllRequest struct {
	Selections []workflow.PhoneSelection `json:"selections" binding:"required"`
}

// SetScriptRequest picks the script for the next workflow run.
type SetScriptRequest struct {
	ScriptID uint `json:"script_id" binding:"required"`
}

// SetZipRequest sets the zip code used by the @ZipCode placeholder.
type SetZipRequest struct {
	ZipCode string `json:"zip_code"`
}

// failWorkflow maps workflow errors onto HTTP statuses: bad sequencing is
// the client's fault (400), a malformed outcome is unprocessable (422), a
// duplicate submit conflicts (409), and a store failure is upstream (502).
func failWorkflow(c *gin.Context, err error) {
	var (
		precondition *workflow.PreconditionError
		validation   *workflow.ValidationError
		busy         *workflow.BusyError
		external     *workflow.ExternalServiceError
	)
	switch {
	case errors.As(err, &precondition):
		response.Fail(c, "Workflow not ready", precondition.Reason)
	case errors.As(err, &validation):
		response.FailWithStatus(c, http.StatusUnprocessableEntity, "Invalid call result", validation.Reason)
	case errors.As(err, &busy):
		response.FailWithStatus(c, http.StatusConflict, "A call result is already being saved", nil)
	case errors.As(err, &external):
		logger.Error("Call log submission failed", zap.Error(err))
		response.FailWithStatus(c, http.StatusBadGateway, "Failed to save call log", err.Error())
	default:
		logger.Error("Workflow operation failed", zap.Error(err))
		response.FailWithStatus(c, http.StatusInternalServerError, "Workflow operation failed", err.Error())
	}
}

// WorkflowStatus returns the projection of the caller's session.
func (h *Handlers) WorkflowStatus(c *gin.Context) {
	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	response.Success(c, "OK", workflow.Project(state))
}

// ToggleSelection adds or removes one (representative, phone) pair.
func (h *Handlers) ToggleSelection(c *gin.Context) {
	var sel workflow.PhoneSelection
	if err := c.ShouldBindJSON(&sel); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	added := state.Selections.Toggle(sel)
	response.Success(c, "OK", gin.H{
		"added":    added,
		"workflow": workflow.Project(state),
	})
}

// SelectAll adds every listed selection that is not already in the set.
func (h *Handlers) SelectAll(c *gin.Context) {
	var req SelectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	state.Selections.SelectAll(req.Selections)
	response.Success(c, "OK", gin.H{"workflow": workflow.Project(state)})
}

// ClearSelection empties the selection set. The queue of a running workflow
// is untouched.
func (h *Handlers) ClearSelection(c *gin.Context) {
	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	state.Selections.DeselectAll()
	response.Success(c, "OK", gin.H{"workflow": workflow.Project(state)})
}

// SetWorkflowScript selects the script for the session. The script body is
// copied into the session so later edits do not affect a running workflow.
func (h *Handlers) SetWorkflowScript(c *gin.Context) {
	var req SetScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	script, err := models.GetScript(h.db, req.ScriptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, 404, "Script not found", nil)
			return
		}
		response.FailWithStatus(c, 500, "Failed to query script", err.Error())
		return
	}

	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	state.Script = &workflow.ScriptRef{ID: script.ID, Title: script.Title, Body: script.Content}
	response.Success(c, "OK", gin.H{"workflow": workflow.Project(state)})
}

// SetWorkflowZip sets the zip code shown by the @ZipCode placeholder.
func (h *Handlers) SetWorkflowZip(c *gin.Context) {
	var req SetZipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	state.ZipCode = req.ZipCode
	response.Success(c, "OK", gin.H{"workflow": workflow.Project(state)})
}

// StartWorkflow freezes the current selections into a calling queue.
func (h *Handlers) StartWorkflow(c *gin.Context) {
	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	seq := workflow.NewSequencer(state, h.recorder)
	if err := seq.StartWorkflow(); err != nil {
		failWorkflow(c, err)
		return
	}

	logger.Info("Workflow started",
		zap.String("session_id", state.SessionID),
		zap.Int("queue_length", len(state.Queue)),
	)
	response.Success(c, "Workflow started", gin.H{"workflow": workflow.Project(state)})
}

// StartCall marks the call at the cursor as in progress.
func (h *Handlers) StartCall(c *gin.Context) {
	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	seq := workflow.NewSequencer(state, h.recorder)
	if err := seq.StartCurrentCall(); err != nil {
		failWorkflow(c, err)
		return
	}

	response.Success(c, "Call started", gin.H{"workflow": workflow.Project(state)})
}

// CompleteCall records the outcome of the call at the cursor. The sequencer
// manages the state lock here so the database write runs outside of it.
func (h *Handlers) CompleteCall(c *gin.Context) {
	var req CompleteCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	state := h.sessions.Acquire(c)
	seq := workflow.NewSequencer(state, h.recorder)
	log, err := seq.CompleteCurrentCall(c.Request.Context(), workflow.Outcome(req.Outcome), req.Notes, req.FailureReason, req.IsTestData)
	if err != nil {
		failWorkflow(c, err)
		return
	}

	state.Lock()
	proj := workflow.Project(state)
	state.Unlock()
	response.Success(c, "Call completed", gin.H{
		"call_log": log,
		"workflow": proj,
	})
}

// CompleteCallDirect records an outcome for any current selection, outside
// the guided flow.
func (h *Handlers) CompleteCallDirect(c *gin.Context) {
	var req CompleteDirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	state := h.sessions.Acquire(c)
	key := workflow.SelectionKey{RepID: req.RepID, PhoneIndex: *req.PhoneIndex}
	seq := workflow.NewSequencer(state, h.recorder)
	log, err := seq.CompleteEntry(c.Request.Context(), key, workflow.Outcome(req.Outcome), req.Notes, req.FailureReason, req.IsTestData)
	if err != nil {
		failWorkflow(c, err)
		return
	}

	state.Lock()
	proj := workflow.Project(state)
	state.Unlock()
	response.Success(c, "Call completed", gin.H{
		"call_log": log,
		"workflow": proj,
	})
}

// AdvanceWorkflow moves the cursor to the next call.
func (h *Handlers) AdvanceWorkflow(c *gin.Context) {
	state := h.sessions.Acquire(c)
	state.Lock()
	defer state.Unlock()

	seq := workflow.NewSequencer(state, h.recorder)
	complete := seq.Advance()
	if complete {
		logger.Info("Workflow complete", zap.String("session_id", state.SessionID))
	}

	response.Success(c, "OK", gin.H{
		"workflow_complete": complete,
		"workflow":          workflow.Project(state),
	})
}
