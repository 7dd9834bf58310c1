package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetWeather handles GET /api/v1/weather?city=X&days=N.
func (h *Handlers) GetWeather(c *gin.Context) {
	city := c.Query("city")

	days := 3
	if daysStr := c.Query("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil {
			days = d
		}
	}

	report, err := h.weather.GetWeatherByCity(c.Request.Context(), city, days)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Weather retrieved successfully", report)
}
