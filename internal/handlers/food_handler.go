package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snedea/meal-planner-app/internal/services"
)

// FoodHandler handles food-related endpoints.
type FoodHandler struct {
	foodService *services.FoodService
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foodService *services.FoodService) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

// Create creates a custom food.
// @Summary Create a custom food
// @Tags foods
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body services.CreateFoodRequest true "Food data"
// @Success 201 {object} models.Food
// @Failure 400 {object} map[string]string
// @Router /foods [post]
func (h *FoodHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	food, err := h.foodService.CreateCustom(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, food)
}

// Get retrieves a food item by ID.
// @Summary Get food item by ID
// @Tags foods
// @Security Bearer
// @Produce json
// @Param id path string true "Food ID"
// @Success 200 {object} models.Food
// @Failure 404 {object} map[string]string
// @Router /foods/{id} [get]
func (h *FoodHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "food")
	if !ok {
		return
	}

	food, err := h.foodService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

// Search searches for foods by query.
// @Summary Search foods
// @Tags foods
// @Security Bearer
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Result limit" default(20)
// @Success 200 {array} models.Food
// @Router /foods/search [get]
func (h *FoodHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		badRequest(c, "Search query is required")
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}

	foods, err := h.foodService.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, foods)
}

// GetByBarcode retrieves a food by barcode.
// @Summary Get food by barcode
// @Tags foods
// @Security Bearer
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} models.Food
// @Failure 404 {object} map[string]string
// @Router /foods/barcode/{barcode} [get]
func (h *FoodHandler) GetByBarcode(c *gin.Context) {
	food, err := h.foodService.Barcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}
