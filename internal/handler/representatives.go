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
)

// PhoneRequest is one phone number submitted with a representative.
type PhoneRequest struct {
	Phone     string `json:"phone" binding:"required"`
	Extension string `json:"extension"`
	PhoneType string `json:"phone_type"`
}

// CreateRepresentativeRequest Create representative request
type CreateRepresentativeRequest struct {
	ZipCode        string         `json:"zip_code" binding:"required"`
	Name           string         `json:"name" binding:"required"`
	Position       string         `json:"position" binding:"required"`
	CustomPosition string         `json:"custom_position"`
	Phones         []PhoneRequest `json:"phones"`
	// Single-phone fields kept for older clients; ignored when Phones is set.
	Phone     string `json:"phone"`
	Extension string `json:"extension"`
	PhoneType string `json:"phone_type"`
}

// ListRepresentatives returns the saved representatives for a zip code. When
// an external civic directory is configured its officials are attached
// alongside, so the UI can offer them for import.
func (h *Handlers) ListRepresentatives(c *gin.Context) {
	zipCode := c.Param("zip_code")

	reps, err := models.RepresentativesByZip(h.db, zipCode)
	if err != nil {
		logger.Error("Failed to query representatives", zap.String("zip", zipCode), zap.Error(err))
		response.FailWithStatus(c, 500, "Failed to query representatives", err.Error())
		return
	}

	payload := gin.H{"representatives": reps}
	if h.civic.Enabled() {
		officials, err := h.civic.LookupByZip(c.Request.Context(), zipCode)
		if err != nil {
			// the local directory still works without the upstream
			logger.Warn("Civic directory lookup failed", zap.String("zip", zipCode), zap.Error(err))
		} else {
			payload["directory"] = officials
		}
	}

	response.Success(c, "OK", payload)
}

// CreateRepresentative saves a representative with its phone numbers. The
// submitted name is split on the first space; phone numbers are normalized
// before storage.
func (h *Handlers) CreateRepresentative(c *gin.Context) {
	var req CreateRepresentativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}

	first, last := models.SplitFullName(req.Name)
	if first == "" {
		response.Fail(c, "Parameter error", "Name must not be empty")
		return
	}

	customPosition := ""
	if req.Position == "Other" {
		customPosition = req.CustomPosition
	}

	rep := models.Representative{
		ZipCode:        req.ZipCode,
		FirstName:      first,
		LastName:       last,
		Position:       req.Position,
		CustomPosition: customPosition,
	}

	phones := req.Phones
	if len(phones) == 0 && req.Phone != "" {
		phones = []PhoneRequest{{Phone: req.Phone, Extension: req.Extension, PhoneType: req.PhoneType}}
	}
	for _, p := range phones {
		phoneType := p.PhoneType
		if phoneType == "" {
			phoneType = "Main"
		}
		rep.Phones = append(rep.Phones, models.RepresentativePhone{
			Phone:     models.SanitizePhone(p.Phone),
			Extension: p.Extension,
			PhoneType: phoneType,
		})
	}

	if err := h.db.Create(&rep).Error; err != nil {
		logger.Error("Failed to create representative", zap.Error(err))
		response.FailWithStatus(c, 500, "Failed to create representative", err.Error())
		return
	}

	response.Created(c, "Representative created", rep)
}

// DeleteRepresentative soft-deletes a representative. Call logs referencing
// it keep their copied name and number.
func (h *Handlers) DeleteRepresentative(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("rep_id"), 10, 32)
	if err != nil {
		response.Fail(c, "Parameter error", "Invalid representative id")
		return
	}

	if err := models.SoftDeleteRepresentative(h.db, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, 404, "Representative not found", nil)
			return
		}
		response.FailWithStatus(c, 500, "Failed to delete representative", err.Error())
		return
	}

	response.Success(c, "Representative deleted", nil)
}

// AddPhone attaches another phone number to an existing representative.
func (h *Handlers) AddPhone(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("rep_id"), 10, 32)
	if err != nil {
		response.Fail(c, "Parameter error", "Invalid representative id")
		return
	}

	var rep models.Representative
	if err := h.db.Where("id = ? AND deleted_at IS NULL", uint(id)).First(&rep).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, 404, "Representative not found", nil)
			return
		}
		response.FailWithStatus(c, 500, "Failed to query representative", err.Error())
		return
	}

	var req PhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Parameter error", err.Error())
		return
	}
	if req.PhoneType == "" {
		req.PhoneType = "Main"
	}

	phone := models.RepresentativePhone{
		RepresentativeID: rep.ID,
		Phone:            models.SanitizePhone(req.Phone),
		Extension:        req.Extension,
		PhoneType:        req.PhoneType,
	}
	if err := h.db.Create(&phone).Error; err != nil {
		response.FailWithStatus(c, 500, "Failed to add phone", err.Error())
		return
	}

	response.Created(c, "Phone added", phone)
}

// DeletePhone soft-deletes one phone of a representative.
func (h *Handlers) DeletePhone(c *gin.Context) {
	repID, err := strconv.ParseUint(c.Param("rep_id"), 10, 32)
	if err != nil {
		response.Fail(c, "Parameter error", "Invalid representative id")
		return
	}
	phoneID, err := strconv.ParseUint(c.Param("phone_id"), 10, 32)
	if err != nil {
		response.Fail(c, "Parameter error", "Invalid phone id")
		return
	}

	if err := models.SoftDeletePhone(h.db, uint(repID), uint(phoneID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.FailWithStatus(c, 404, "Phone not found", nil)
			return
		}
		response.FailWithStatus(c, 500, "Failed to delete phone", err.Error())
		return
	}

	response.Success(c, "Phone deleted", nil)
}
