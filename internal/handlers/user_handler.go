package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snedea/meal-planner-app/internal/services"
)

// UserHandler serves the current user's profile.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the current user.
// @Summary Current user
// @Tags users
// @Security Bearer
// @Produce json
// @Success 200 {object} models.User
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile changes profile fields.
// @Summary Update profile
// @Tags users
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body services.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /users/me [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateGoals changes daily targets.
// @Summary Update daily targets
// @Tags users
// @Security Bearer
// @Accept json
// @Produce json
// @Param request body services.UpdateGoalsRequest true "Targets"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Router /users/me/goals [patch]
func (h *UserHandler) UpdateGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateGoals(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Suggestions returns BMI and a suggested calorie target.
// @Summary Target suggestions
// @Tags users
// @Security Bearer
// @Produce json
// @Success 200 {object} services.Suggestions
// @Router /users/me/suggestions [get]
func (h *UserHandler) Suggestions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	s, err := h.userService.Suggestions(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
