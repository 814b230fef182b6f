package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/auth"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Messages and details carried by an
// apperrors.CustomError are passed through to the client.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorResponse(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Msg("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorResponse(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, withContext(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed"), err)
	case errors.Is(err, apperrors.ErrInvalidStatus):
		return http.StatusBadRequest, withContext(dto.NewErrorDetail(dto.ErrorCodeInvalidStatus, "Invalid status"), err)
	case errors.Is(err, apperrors.ErrProfileIncomplete):
		return http.StatusBadRequest, withContext(dto.NewErrorDetail(dto.ErrorCodeProfileIncomplete, apperrors.ErrProfileIncomplete.Error()), err).
			WithSeverity(dto.ErrorSeverityWarning)
	case errors.Is(err, apperrors.ErrInvalidMentor):
		return http.StatusBadRequest, withContext(dto.NewErrorDetail(dto.ErrorCodeInvalidMentor, apperrors.ErrInvalidMentor.Error()), err).
			WithField("mentorEmails")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, withContext(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"), err)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, withContext(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"), err)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, withContext(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists"), err)
	case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrConfiguration):
		return http.StatusInternalServerError, withContext(dto.NewErrorDetail(dto.ErrorCodeConfiguration, "Service misconfigured"), err).
			WithSeverity(dto.ErrorSeverityCritical)
	case errors.Is(err, apperrors.ErrStorage):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeStorageUnavailable, "File storage unavailable").
			WithDetails("Please retry the request").
			AsRetryable()
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// withContext replaces the generic message with the error's own and attaches its details
func withContext(detail *dto.ErrorDetail, err error) *dto.ErrorDetail {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) {
		if ce.Message != "" {
			detail.Message = ce.Message
		}
		if ce.Details != nil {
			detail.Details = ce.Details
		}
	}
	return detail
}

// Recovery turns panics into the standard internal error response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	})
}
