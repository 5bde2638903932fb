package handlers

import (
	"net/http"

	"co2watch/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK    = "ok"
	statusSaved = "saved"

	errSaveSchedule  = "failed to save schedule"
	errLoadSchedule  = "failed to load schedule"
	errInvalidPrefix = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for replacing the timetable.
type scheduleRequest struct {
	Entries []service.TimetableEntry `json:"entries" binding:"required"`
}

// ScheduleRequest is an exported model for Swagger docs of the putSchedule payload.
type ScheduleRequest struct {
	// Raw timetable cells; blank classrooms mean empty slots
	Entries []service.TimetableEntry `json:"entries"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get weekly timetable
// @Tags         schedule
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/schedule [get]
// @Security     BearerAuth
func (h *Handler) getSchedule(c *gin.Context) {
	ctx := c.Request.Context()
	tt, err := h.services.Schedule.GetTimetable(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSchedule, "schedule_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": tt.ToRows()})
}

// @Summary      Replace weekly timetable
// @Description  Single-digit numeric classrooms are stored zero-padded ("2" -> "02"); blank classrooms clear the slot
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        body  body   ScheduleRequest  true  "Timetable payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/schedule [put]
// @Security     BearerAuth
func (h *Handler) putSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPrefix + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Schedule.SaveTimetable(ctx, req.Entries); err != nil {
		// Validation failures (unknown day, hour out of range) read better as 400.
		if h.log != nil {
			h.log.Infow("schedule_save_rejected", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSaved})
}

// @Summary      Period start times
// @Description  Advisory wall-clock start of each teaching period (1..10), for the timetable editor
// @Tags         schedule
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/schedule/slots [get]
// @Security     BearerAuth
func (h *Handler) getSlotStarts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": h.services.Schedule.SlotStarts()})
}
