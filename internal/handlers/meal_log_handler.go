package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snedea/meal-planner-app/internal/services"
)

// MealLogHandler handles meal logging endpoints.
type MealLogHandler struct {
	mealLogService *services.MealLogService
	now            func() time.Time
}

// NewMealLogHandler creates a new MealLogHandler.
func NewMealLogHandler(mealLogService *services.MealLogService) *MealLogHandler {
	return &MealLogHandler{mealLogService: mealLogService, now: time.Now}
}

// Create logs a food or recipe.
// @Summary Log a meal
// @Tags meal-logs
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body services.CreateMealLogRequest true "Entry"
// @Success 201 {object} models.MealLog
// @Failure 400 {object} map[string]string
// @Router /meal-logs [post]
func (h *MealLogHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateMealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	entry, err := h.mealLogService.Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// List returns one day of logs and its summary. The date defaults to today.
// @Summary Logs for a date
// @Tags meal-logs
// @Security Bearer
// @Produce json
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} services.MealLogsResponse
// @Router /meal-logs [get]
func (h *MealLogHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	date := c.DefaultQuery("date", h.now().Format("2006-01-02"))
	resp, err := h.mealLogService.ListByDate(userID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RangeSummary returns per-day totals between start and end.
// @Summary Range summary
// @Tags meal-logs
// @Security Bearer
// @Produce json
// @Param start query string true "YYYY-MM-DD"
// @Param end query string true "YYYY-MM-DD"
// @Success 200 {object} nutrition.RangeSummary
// @Router /meal-logs/summary [get]
func (h *MealLogHandler) RangeSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		badRequest(c, "start and end are required")
		return
	}

	summary, err := h.mealLogService.RangeSummary(userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Delete removes a log entry.
// @Summary Delete a log entry
// @Tags meal-logs
// @Security Bearer
// @Param id path string true "Meal log ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /meal-logs/{id} [delete]
func (h *MealLogHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "meal log")
	if !ok {
		return
	}

	if err := h.mealLogService.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
