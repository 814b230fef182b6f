package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/app/services"
	"github.com/yigit/claimboard/internal/middleware"
)

// UserController handles profile operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile retrieves the profile of the authenticated user
// @Summary Get my profile
// @Description Returns the authenticated user's account and profile fields
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetProfile(ctx.Request.Context(), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}

// UpdateProfile applies a partial profile update
// @Summary Update my profile
// @Description Updates the given fields only. Academic fields are limited to students.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid profile fields"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Field not editable for this role"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	viewer, ok := viewerOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), viewer, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}
