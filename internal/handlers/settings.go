package handlers

import (
	"errors"
	"net/http"

	"co2watch/internal/service"

	"github.com/gin-gonic/gin"
)

const errLoadSettings = "failed to load settings"

// Request DTO for updating the two settings. Pointers distinguish "absent"
// from zero values so one of the pair can be updated alone.
type settingsRequest struct {
	ThresholdPPM *int    `json:"threshold_ppm"`
	ContactPhone *string `json:"contact_phone"`
}

// SettingsRequest is an exported model for Swagger docs of the putSettings payload.
type SettingsRequest struct {
	// CO₂ limit in ppm; non-negative
	ThresholdPPM int `json:"threshold_ppm" example:"800"`
	// Alert phone in international format
	ContactPhone string `json:"contact_phone" example:"+37120000001"`
}

// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  service.SettingsView
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.services.Settings.GetSettings(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSettings, "settings_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Update settings
// @Description  Threshold is validated before anything is saved; a rejected value leaves the previous one untouched
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body   SettingsRequest  true  "Settings payload"
// @Success      200   {object}  service.SettingsView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings [put]
// @Security     BearerAuth
func (h *Handler) putSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPrefix + err.Error()})
		return
	}
	if req.ThresholdPPM == nil && req.ContactPhone == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	ctx := c.Request.Context()
	// Validate-then-save per field; an invalid threshold never touches the
	// stored contact and vice versa.
	if req.ThresholdPPM != nil {
		if err := h.services.Settings.SetThreshold(ctx, *req.ThresholdPPM); err != nil {
			h.respondSettingsError(c, err)
			return
		}
	}
	if req.ContactPhone != nil {
		if err := h.services.Settings.SetContact(ctx, *req.ContactPhone); err != nil {
			h.respondSettingsError(c, err)
			return
		}
	}

	view, err := h.services.Settings.GetSettings(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSettings, "settings_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) respondSettingsError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNegativeThreshold) || errors.Is(err, service.ErrEmptyContact) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, "failed to save settings", "settings_save_failed", err)
}
