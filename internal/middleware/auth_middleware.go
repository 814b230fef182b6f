package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/claimboard/internal/app/auth"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/app/repositories"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/auth"
	"github.com/yigit/claimboard/internal/pkg/logger"
)

const (
	viewerKey = "viewer"
	userIDKey = "userID"
	roleKey   = "roleType"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repositories.IUserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware. When userRepo is set every request is checked
// against the directory so deactivated accounts and role changes apply immediately.
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.IUserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Authorization header missing")
			return
		}

		// Swagger UI sends the raw token when the Bearer prefix is left out
		tokenString := authHeader
		if !(strings.Count(authHeader, ".") == 2 && !strings.Contains(authHeader, " ")) {
			var err error
			tokenString, err = auth.ExtractBearerToken(authHeader)
			if err != nil {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "Invalid token format")
				return
			}
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		role := models.RoleType(claims.Role)
		if m.userRepo != nil {
			user, err := m.userRepo.FindByID(c.Request.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Account not found")
					return
				}
				HandleAPIError(c, err)
				return
			}
			if !user.IsActive {
				abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication failed", "Account is inactive")
				return
			}
			role = user.Role
		}

		viewer, err := appauth.NewViewer(claims.UserID, role)
		if err != nil {
			logger.Warn().Err(err).Int64("userID", claims.UserID).Msg("Token carries an unusable identity")
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		c.Set(viewerKey, viewer)
		c.Set(userIDKey, viewer.UserID())
		c.Set(roleKey, string(viewer.Role()))

		c.Next()
	}
}

// RoleRequired middleware to check if user has one of the required roles
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := ViewerFrom(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "User role not found")
			return
		}

		for _, r := range roles {
			if viewer.Role() == r {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
			WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// ViewerFrom returns the viewer stored by JWTAuth
func ViewerFrom(c *gin.Context) (appauth.Viewer, bool) {
	value, exists := c.Get(viewerKey)
	if !exists {
		return nil, false
	}
	viewer, ok := value.(appauth.Viewer)
	return viewer, ok
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
