package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const errRunCheck = "check failed"

// @Summary      Run a CO₂ check now
// @Description  Resolves the current timetable slot, fetches a fresh sensor snapshot, and alerts the saved phone if the reading exceeds the threshold
// @Tags         checks
// @Produce      json
// @Success      200  {object}  models.CheckResult
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]interface{}  "fetch or delivery failure"
// @Router       /api/v1/checks [post]
// @Security     BearerAuth
func (h *Handler) runCheck(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.services.Checker.RunCheck(ctx, time.Now())
	if err != nil {
		// A delivery failure still carries a valid ALERT result; return both.
		if res.Status != "" {
			if h.log != nil {
				h.log.Errorw("check_delivery_failed", "err", err, "status", res.Status)
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "result": res})
			return
		}
		h.logAndJSONError(c, http.StatusBadGateway, errRunCheck, "check_failed", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Latest check result
// @Tags         checks
// @Produce      json
// @Success      200  {object}  models.CheckResult
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/checks/latest [get]
// @Security     BearerAuth
func (h *Handler) latestCheck(c *gin.Context) {
	res, ok := h.services.Checker.LatestResult()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no check has run yet"})
		return
	}
	c.JSON(http.StatusOK, res)
}
