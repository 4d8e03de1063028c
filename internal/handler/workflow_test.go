package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willtroppe/callrep/internal/models"
)

func selectionBody(repID uint, phoneIndex int, name, role, phone, phoneType string) gin.H {
	return gin.H{
		"rep_id":        repID,
		"phone_index":   phoneIndex,
		"rep_name":      name,
		"rep_role":      role,
		"display_phone": phone,
		"dial_phone":    phone,
		"phone_type":    phoneType,
	}
}

func decodeWorkflow(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data struct {
			Workflow map[string]interface{} `json:"workflow"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope.Data.Workflow
}

func TestWorkflowStatus_EmptySession(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/api/workflow/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, false, data["ready"])
	assert.Equal(t, "Select at least one phone number and a call script", data["status_message"])
	assert.NotEmpty(t, data["session_id"])
}

func TestStartWorkflow_RequiresSelectionAndScript(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/workflow/start", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkflowEndToEnd(t *testing.T) {
	engine, h := setupTestRouter(t)

	// a script to call with
	w := doJSON(t, engine, http.MethodPost, "/api/scripts", gin.H{
		"title":   "Climate Action",
		"content": "Hello @RepType @LastName, I live in @ZipCode.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// select two phones
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/selection/toggle",
		selectionBody(1, 0, "Jane Doe", "Senator", "(202) 555-1234", "DC Office"))
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/selection/toggle",
		selectionBody(2, 0, "Bob Johnson", "Representative", "(202) 555-4321", "DC Office"))
	require.Equal(t, http.StatusOK, w.Code)

	// pick script and zip
	w = doJSON(t, engine, http.MethodPut, "/api/workflow/script", gin.H{"script_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, http.MethodPut, "/api/workflow/zip", gin.H{"zip_code": "94102"})
	require.Equal(t, http.StatusOK, w.Code)

	wf := decodeWorkflow(t, w.Body.Bytes())
	assert.Equal(t, true, wf["ready"])
	assert.Equal(t, "Ready to call", wf["status_message"])

	// start: queue of two, first entry current
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	wf = decodeWorkflow(t, w.Body.Bytes())
	assert.EqualValues(t, 2, wf["queue_length"])
	assert.EqualValues(t, 0, wf["current_index"])
	sessionID, _ := wf["session_id"].(string)
	require.NotEmpty(t, sessionID)

	// start the first call: script renders against Jane Doe
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	wf = decodeWorkflow(t, w.Body.Bytes())
	assert.Equal(t, "Hello Senator Doe, I live in 94102.", wf["rendered_script"])

	// a failed outcome without a reason is rejected, nothing is logged
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete", gin.H{
		"outcome": "failed",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var count int64
	h.db.Model(&models.CallLog{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// complete it for real
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete", gin.H{
		"outcome": "person",
		"notes":   "spoke with staffer",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var logs []models.CallLog
	require.NoError(t, h.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "Jane Doe", logs[0].RepresentativeName)
	assert.Equal(t, "Climate Action", logs[0].ScriptTitle)
	assert.Equal(t, sessionID, logs[0].SessionID)

	// advance to Bob Johnson
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["workflow_complete"])
	wf = data["workflow"].(map[string]interface{})
	assert.EqualValues(t, 1, wf["current_index"])
	assert.Equal(t, 0.5, wf["progress"])

	// complete the second call as failed, with a reason this time
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete", gin.H{
		"outcome":        "failed",
		"failure_reason": "no answer",
		"notes":          "called back later",
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, h.db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "Failed: no answer\n\ncalled back later", logs[1].CallNotes)

	// final advance completes the workflow
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, true, data["workflow_complete"])
	wf = data["workflow"].(map[string]interface{})
	assert.Equal(t, 1.0, wf["progress"])
	assert.Equal(t, true, wf["workflow_complete"])
}

func TestCompleteCall_DuplicateSubmitRecordsOnce(t *testing.T) {
	engine, h := setupTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/scripts", gin.H{
		"title":   "Climate Action",
		"content": "Hello @LastName",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/selection/toggle",
		selectionBody(1, 0, "Jane Doe", "Senator", "(202) 555-1234", "DC Office"))
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, http.MethodPut, "/api/workflow/script", gin.H{"script_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/start", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete", gin.H{
		"outcome": "person",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// a repeated submit for the same call is rejected and must not write a
	// second log
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete", gin.H{
		"outcome": "person",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	h.db.Model(&models.CallLog{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// the direct route is guarded the same way for a completed selection
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete-direct", gin.H{
		"rep_id":      1,
		"phone_index": 0,
		"outcome":     "voicemail",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	h.db.Model(&models.CallLog{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCompleteCallDirect(t *testing.T) {
	engine, h := setupTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/workflow/selection/toggle",
		selectionBody(5, 0, "Jane Doe", "Senator", "(202) 555-1234", "DC Office"))
	require.Equal(t, http.StatusOK, w.Code)

	// no workflow running: direct completion still records the call
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete-direct", gin.H{
		"rep_id":      5,
		"phone_index": 0,
		"outcome":     "voicemail",
		"notes":       "left message",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var logs []models.CallLog
	require.NoError(t, h.db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "left message", logs[0].CallNotes)
	assert.Equal(t, "voicemail", logs[0].CallOutcome)

	// unknown selection
	w = doJSON(t, engine, http.MethodPost, "/api/workflow/call/complete-direct", gin.H{
		"rep_id":      99,
		"phone_index": 0,
		"outcome":     "person",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectAllAndClear(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/workflow/selection/select-all", gin.H{
		"selections": []gin.H{
			selectionBody(1, 0, "Jane Doe", "Senator", "(202) 555-1234", "DC Office"),
			selectionBody(2, 0, "Bob Johnson", "Representative", "(202) 555-4321", "DC Office"),
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	wf := decodeWorkflow(t, w.Body.Bytes())
	assert.EqualValues(t, 2, wf["selected_count"])

	w = doJSON(t, engine, http.MethodPost, "/api/workflow/selection/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
	wf = decodeWorkflow(t, w.Body.Bytes())
	assert.EqualValues(t, 0, wf["selected_count"])
}

func TestToggleSelection_RemovesOnSecondCall(t *testing.T) {
	engine, _ := setupTestRouter(t)

	body := selectionBody(1, 0, "Jane Doe", "Senator", "(202) 555-1234", "DC Office")

	w := doJSON(t, engine, http.MethodPost, "/api/workflow/selection/toggle", body)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["added"])

	w = doJSON(t, engine, http.MethodPost, "/api/workflow/selection/toggle", body)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	assert.Equal(t, false, data["added"])
	wf := data["workflow"].(map[string]interface{})
	assert.EqualValues(t, 0, wf["selected_count"])
}

func TestSetWorkflowScript_UnknownScript(t *testing.T) {
	engine, _ := setupTestRouter(t)

	w := doJSON(t, engine, http.MethodPut, "/api/workflow/script", gin.H{"script_id": 42})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
