package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/willtroppe/callrep/internal/models"
	"github.com/willtroppe/callrep/pkg/logger"
	"github.com/willtroppe/callrep/pkg/response"
	"github.com/willtroppe/callrep/pkg/scriptgen"
)

// ScriptRequest creates or updates a call script.
type ScriptRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// GenerateScriptRequest asks for a drafted script from free-form notes.
type GenerateScriptRequest struct {
	Notes string `json:"notes"`
}

// ListScripts returns all call scripts, newest first.
func (h *Handlers) ListScripts(c *gin.Context) {
	scripts, err := models.ListScripts(h.db)
	if err != nil {
		response.FailWithStatus(c, 500, "Failed to query scripts", err.Error())
		return
	}
	response.Success(c, "OK", scripts)
}

// CreateScript saves a new call script.
func (h *Handlers) CreateScript(c *gin.Context) {
	var req ScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	script := models.CallScript{Title: req.Title, Content: req.Content}
	if err := h.db.Create(&script).Error; err != nil {
		response.FailWithStatus(c, 500, "Failed to create script", err.Error())
		return
	}
	response.Created(c, "Script created", script)
}

// GetScript fetches one script by id.
func (h *Handlers) GetScript(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("script_id"), 10, 32)
	if err != nil {
		response.Fail(c, "Parameter error", "Invalid script id")
		return
	}

	script, err := models.GetScript(h.db, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, 404, "Script not found", nil)
			return
		}
		response.FailWithStatus(c, 500, "Failed to query script", err.Error())
		return
	}
	response.Success(c, "OK", script)
}

// UpdateScript replaces a script's title and content.
func (h *Handlers) UpdateScript(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("script_id"), 10, 32)
	if err != nil {
		response.Fail(c, "Parameter error", "Invalid script id")
		return
	}

	var req ScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	script, err := models.GetScript(h.db, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, 404, "Script not found", nil)
			return
		}
		response.FailWithStatus(c, 500, "Failed to query script", err.Error())
		return
	}

	script.Title = req.Title
	script.Content = req.Content
	if err := h.db.Save(script).Error; err != nil {
		response.FailWithStatus(c, 500, "Failed to update script", err.Error())
		return
	}
	response.Success(c, "Script updated", script)
}

// DeleteScript removes a script. Existing call logs keep their copied title.
func (h *Handlers) DeleteScript(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("script_id"), 10, 32)
	if err != nil {
		response.Fail(c, "Parameter error", "Invalid script id")
		return
	}

	result := h.db.Delete(&models.CallScript{}, uint(id))
	if result.Error != nil {
		response.FailWithStatus(c, 500, "Failed to delete script", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		response.FailWithStatus(c, 404, "Script not found", nil)
		return
	}
	response.Success(c, "Script deleted", nil)
}

// GenerateScript drafts a call script from the user's notes. The draft is
// returned for review, not saved; the user edits and saves it explicitly.
func (h *Handlers) GenerateScript(c *gin.Context) {
	var req GenerateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.Notes)
	if err != nil {
		if errors.Is(err, scriptgen.ErrEmptyNotes) {
			response.Fail(c, "Parameter error", "Please provide some notes about what you want to discuss")
			return
		}
		logger.Error("Script generation failed", zap.Error(err))
		response.FailWithStatus(c, 500, "Failed to generate script", err.Error())
		return
	}

	response.Success(c, "Script generated", result)
}
