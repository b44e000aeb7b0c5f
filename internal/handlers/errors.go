package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/snedea/meal-planner-app/internal/middleware"
	"github.com/snedea/meal-planner-app/internal/nutrition"
	"github.com/snedea/meal-planner-app/internal/repository"
	"github.com/snedea/meal-planner-app/internal/services"
)

// statusFor maps service and repository errors onto an HTTP status and the
// message returned to the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNoLoggedItem):
		return http.StatusBadRequest, "Either food_id or recipe_id must be provided"
	case errors.Is(err, services.ErrBothLoggedItem):
		return http.StatusBadRequest, "Cannot log both food and recipe in the same entry"
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
	case errors.Is(err, nutrition.ErrInvalidServings),
		errors.Is(err, nutrition.ErrInvalidServingSize),
		errors.Is(err, nutrition.ErrInvalidLoggedItem):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrEmailExists):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, repository.ErrInvalidUserData):
		return http.StatusBadRequest, "Invalid user data"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, "Not authorized to access this resource"
	case errors.Is(err, repository.ErrFoodNotFound):
		return http.StatusNotFound, "Food not found"
	case errors.Is(err, repository.ErrRecipeNotFound):
		return http.StatusNotFound, "Recipe not found"
	case errors.Is(err, repository.ErrMealLogNotFound):
		return http.StatusNotFound, "Meal log not found"
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// currentUser returns the authenticated user id. Routes using it sit behind
// middleware.AuthMiddleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	}
	return id, ok
}

func uuidParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}
