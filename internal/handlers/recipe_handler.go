package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snedea/meal-planner-app/internal/services"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService *services.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipeService *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// Create creates a recipe.
// @Summary Create a recipe
// @Tags recipes
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body services.CreateRecipeRequest true "Recipe"
// @Success 201 {object} services.RecipeResponse
// @Failure 400 {object} map[string]string
// @Router /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// List returns the user's recipes.
// @Summary List own recipes
// @Tags recipes
// @Security Bearer
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} services.RecipeListResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPageSize)))

	list, err := h.recipeService.List(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one recipe.
// @Summary Get a recipe
// @Tags recipes
// @Security Bearer
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} services.RecipeResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "recipe")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Update changes a recipe.
// @Summary Update a recipe
// @Tags recipes
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path string true "Recipe ID"
// @Param request body services.UpdateRecipeRequest true "Changes"
// @Success 200 {object} services.RecipeResponse
// @Failure 403 {object} map[string]string
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "recipe")
	if !ok {
		return
	}

	var req services.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.Update(userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Delete removes a recipe.
// @Summary Delete a recipe
// @Tags recipes
// @Security Bearer
// @Param id path string true "Recipe ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id", "recipe")
	if !ok {
		return
	}

	if err := h.recipeService.Delete(userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
