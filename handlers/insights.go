package handlers

import (
	"errors"
	"net/http"

	"pilgrimpath/models"
	ai "pilgrimpath/services/intelligence"
	"pilgrimpath/utils"

	"github.com/gin-gonic/gin"
)

// PredictWaitTime estimates the darshan queue for a crowd level.
func (h *AIHandler) PredictWaitTime(c *gin.Context) {
	var req models.WaitTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	minutes, err := h.Service.PredictWaitingTime(c.Request.Context(), req.CrowdLevel, req.TimeOfDay)
	if errors.Is(err, ai.ErrInvalidCrowdLevel) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "wait time prediction unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"waitTime": minutes})
}

// SafetyAlert drafts a multilingual alert for a situation.
func (h *AIHandler) SafetyAlert(c *gin.Context) {
	var req models.SafetyAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	alert, err := h.Service.GenerateSafetyAlert(c.Request.Context(), req.Situation)
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "safety alert unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// ForecastSummary summarises a weekly crowd forecast.
func (h *AIHandler) ForecastSummary(c *gin.Context) {
	var req models.ForecastSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	summary, err := h.Service.ForecastSummary(c.Request.Context(), req.Forecast)
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "forecast summary unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
