package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/willtroppe/callrep/internal/models"
	"github.com/willtroppe/callrep/pkg/logger"
	"github.com/willtroppe/callrep/pkg/response"
)

// CreateCallLogRequest records a call placed outside the guided workflow.
type CreateCallLogRequest struct {
	UserID             string `json:"user_id"`
	RepresentativeName string `json:"representative_name" binding:"required"`
	PhoneNumber        string `json:"phone_number" binding:"required"`
	PhoneType          string `json:"phone_type" binding:"required"`
	CallDatetime       string `json:"call_datetime" binding:"required"` // RFC 3339
	CallOutcome        string `json:"call_outcome" binding:"required"`
	CallNotes          string `json:"call_notes"`
	ScriptID           *uint  `json:"script_id"`
	ScriptTitle        string `json:"script_title"`
	SessionID          string `json:"session_id"`
	IsTestData         bool   `json:"is_test_data"`
}

// CreateCallLog inserts one call log row directly.
func (h *Handlers) CreateCallLog(c *gin.Context) {
	var req CreateCallLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	callDatetime, err := time.Parse(time.RFC3339, req.CallDatetime)
	if err != nil {
		response.Fail(c, "Parameter error", "call_datetime must be RFC 3339")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = models.DefaultUserID
	}

	log := models.CallLog{
		UserID:             userID,
		RepresentativeName: req.RepresentativeName,
		PhoneNumber:        req.PhoneNumber,
		PhoneType:          req.PhoneType,
		CallDatetime:       callDatetime.UTC(),
		CallOutcome:        req.CallOutcome,
		CallNotes:          req.CallNotes,
		ScriptID:           req.ScriptID,
		ScriptTitle:        req.ScriptTitle,
		SessionID:          req.SessionID,
		IsTestData:         req.IsTestData,
	}
	if err := h.db.Create(&log).Error; err != nil {
		logger.Error("Failed to create call log", zap.Error(err))
		response.FailWithStatus(c, 500, "Failed to create call log", err.Error())
		return
	}

	response.Created(c, "Call log created", log)
}

// ListCallLogs returns matching call logs, most recent call first.
func (h *Handlers) ListCallLogs(c *gin.Context) {
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	logs, err := models.QueryCallLogs(h.db, filters)
	if err != nil {
		response.FailWithStatus(c, 500, "Failed to query call logs", err.Error())
		return
	}
	response.Success(c, "OK", logs)
}

// CallLogStats aggregates matching call logs for the analytics view.
func (h *Handlers) CallLogStats(c *gin.Context) {
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	stats, err := models.CallLogStats(h.db, filters)
	if err != nil {
		response.FailWithStatus(c, 500, "Failed to compute statistics", err.Error())
		return
	}
	response.Success(c, "OK", stats)
}

func (h *Handlers) parseFilters(c *gin.Context) (models.CallLogFilters, bool) {
	filters := models.CallLogFilters{
		UserID:      c.Query("user_id"),
		Outcome:     c.Query("outcome"),
		SessionID:   c.Query("session_id"),
		IncludeTest: c.Query("include_test") == "true",
	}

	if v := c.Query("start_date"); v != "" {
		start, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Fail(c, "Parameter error", "start_date must be RFC 3339")
			return filters, false
		}
		filters.StartDate = &start
	}
	if v := c.Query("end_date"); v != "" {
		end, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Fail(c, "Parameter error", "end_date must be RFC 3339")
			return filters, false
		}
		filters.EndDate = &end
	}

	return filters, true
}
