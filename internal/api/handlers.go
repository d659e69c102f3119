package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chrisdamba/menuintel/internal/demand"
	"github.com/chrisdamba/menuintel/internal/optimizer"
	"github.com/chrisdamba/menuintel/internal/seasonality"
)

const (
	dateLayout      = "2006-01-02"
	maxForecastDays = 90
)

type analyzeRequest struct {
	Items []seasonality.DishInput `json:"items" binding:"required,min=1"`
}

type demandResponse struct {
	RestaurantID string               `json:"restaurantId"`
	Date         string               `json:"date"`
	Score        int                  `json:"score"`
	Forecast     []demand.DailyDemand `json:"forecast,omitempty"`
}

type seasonalResponse struct {
	Month      string   `json:"month"`
	InSeason   []string `json:"inSeason"`
	Avoid      []string `json:"avoid"`
	Advisories []string `json:"advisories"`
}

// referenceDate reads ?date=YYYY-MM-DD, defaulting to today in UTC.
func (h *Handler) referenceDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		now := h.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func (h *Handler) suggestions(c *gin.Context) {
	date, ok := h.referenceDate(c)
	if !ok {
		return
	}
	restaurantID := c.Param("id")

	suggestions, err := h.engine.GenerateSuggestions(c.Request.Context(), restaurantID, date)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, optimizer.NewReport(restaurantID, date, h.now(), suggestions))
}

func (h *Handler) demand(c *gin.Context) {
	date, ok := h.referenceDate(c)
	if !ok {
		return
	}
	restaurantID := c.Param("id")
	resp := demandResponse{RestaurantID: restaurantID, Date: date.Format(dateLayout)}

	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 || days > maxForecastDays {
			respondError(c, http.StatusBadRequest, "invalid_request", "days must be between 1 and 90")
			return
		}
		forecast, err := h.engine.ForecastDemand(c.Request.Context(), restaurantID, date, days)
		if err != nil {
			h.respondEngineError(c, err)
			return
		}
		resp.Score = forecast[0].Score
		resp.Forecast = forecast
		c.JSON(http.StatusOK, resp)
		return
	}

	score, err := h.engine.PredictDemand(c.Request.Context(), restaurantID, date)
	if err != nil {
		h.respondEngineError(c, err)
		return
	}
	resp.Score = score
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) analyzeMenu(c *gin.Context) {
	date, ok := h.referenceDate(c)
	if !ok {
		return
	}
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.engine.AnalyzeMenuIngredients(req.Items, date))
}

func (h *Handler) seasonal(c *gin.Context) {
	date, ok := h.referenceDate(c)
	if !ok {
		return
	}
	dishes := h.engine.SeasonalDishes(date)
	c.JSON(http.StatusOK, seasonalResponse{
		Month:      date.Month().String(),
		InSeason:   dishes.InSeason,
		Avoid:      dishes.Avoid,
		Advisories: dishes.Advisories(),
	})
}
