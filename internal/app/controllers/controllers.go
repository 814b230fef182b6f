package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/claimboard/internal/app/auth"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/middleware"
)

// viewerOrAbort returns the authenticated viewer or writes a 401
func viewerOrAbort(ctx *gin.Context) (auth.Viewer, bool) {
	viewer, ok := middleware.ViewerFrom(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "User not authenticated")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return viewer, true
}

// idParamOrAbort parses a positive int64 path parameter or writes a 400
func idParamOrAbort(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails("ID must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
