package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/app/models/dto"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserRepo struct {
	users map[int64]*models.User
}

func (r *stubUserRepo) Create(context.Context, *models.User) (int64, error) { return 0, nil }
func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}
func (r *stubUserRepo) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (r *stubUserRepo) FindManyByEmails(context.Context, []string) ([]*models.User, error) {
	return nil, nil
}
func (r *stubUserRepo) FindManyByIDs(context.Context, []int64) ([]*models.User, error) {
	return nil, nil
}
func (r *stubUserRepo) UpdateProfile(context.Context, int64, models.ProfileUpdate) (*models.User, error) {
	return nil, nil
}

func jwtService(ttl time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: ttl, TokenIssuer: "test"})
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var resp struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func newAuthRouter(m *AuthMiddleware, roles ...models.RoleType) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{m.JWTAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, m.RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		viewer, ok := ViewerFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": viewer.UserID(), "role": viewer.Role()})
	})
	r.GET("/me", handlers...)
	return r
}

func TestJWTAuth(t *testing.T) {
	svc := jwtService(time.Hour)
	repo := &stubUserRepo{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleStudent, IsActive: true},
		2: {ID: 2, Role: models.RoleMentor, IsActive: false},
		3: {ID: 3, Role: models.RoleProctor, IsActive: true},
	}}
	router := newAuthRouter(NewAuthMiddleware(svc, repo))

	token := func(id int64, role string) string {
		tok, _, err := svc.GenerateToken(id, role)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantErr  dto.ErrorCode
		wantRole string
	}{
		{"bearer token", "Bearer " + token(1, "student"), http.StatusOK, "", "student"},
		{"raw token", token(1, "student"), http.StatusOK, "", "student"},
		{"directory role wins", "Bearer " + token(3, "student"), http.StatusOK, "", "proctor"},
		{"missing header", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized, ""},
		{"bad scheme", "Basic abc", http.StatusUnauthorized, dto.ErrorCodeInvalidToken, ""},
		{"empty bearer", "Bearer  ", http.StatusUnauthorized, dto.ErrorCodeUnauthorized, ""},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized, dto.ErrorCodeInvalidToken, ""},
		{"unknown account", "Bearer " + token(9, "student"), http.StatusUnauthorized, dto.ErrorCodeInvalidToken, ""},
		{"inactive account", "Bearer " + token(2, "mentor"), http.StatusUnauthorized, dto.ErrorCodeUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decodeError(t, w).Code)
				return
			}
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantRole, body["role"])
		})
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired, _, err := jwtService(-time.Minute).GenerateToken(1, "student")
	require.NoError(t, err)

	router := newAuthRouter(NewAuthMiddleware(jwtService(time.Hour), nil))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeExpiredToken, decodeError(t, w).Code)
}

func TestRoleRequired(t *testing.T) {
	svc := jwtService(time.Hour)
	router := newAuthRouter(NewAuthMiddleware(svc, nil), models.RoleProctor, models.RoleMentor)

	for role, want := range map[string]int{
		"proctor": http.StatusOK,
		"mentor":  http.StatusOK,
		"student": http.StatusForbidden,
	} {
		tok, _, err := svc.GenerateToken(5, role)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantErr   dto.ErrorCode
		retryable bool
	}{
		{"validation", apperrors.NewValidationError("missing required fields", "title"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, false},
		{"status", apperrors.NewCustomError(apperrors.ErrInvalidStatus, "bad status"), http.StatusBadRequest, dto.ErrorCodeInvalidStatus, false},
		{"profile", apperrors.ErrProfileIncomplete, http.StatusBadRequest, dto.ErrorCodeProfileIncomplete, false},
		{"mentor", apperrors.ErrInvalidMentor, http.StatusBadRequest, dto.ErrorCodeInvalidMentor, false},
		{"forbidden", apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden, false},
		{"not found", fmt.Errorf("error finding claim: %w", apperrors.ErrClaimNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, false},
		{"conflict", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, false},
		{"expired", auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, false},
		{"configuration", apperrors.NewConfigurationError("fallback mentor account not found"), http.StatusInternalServerError, dto.ErrorCodeConfiguration, false},
		{"storage", apperrors.NewStorageError(errors.New("disk full")), http.StatusServiceUnavailable, dto.ErrorCodeStorageUnavailable, true},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			detail := decodeError(t, w)
			assert.Equal(t, tt.wantErr, detail.Code)
			assert.Equal(t, tt.retryable, detail.Retryable)
		})
	}

	t.Run("messages and details pass through", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, apperrors.NewValidationError("missing required fields", "title", "proof"))

		detail := decodeError(t, w)
		assert.Equal(t, "missing required fields", detail.Message)
		details, ok := detail.Details.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, []interface{}{"title", "proof"}, details["fields"])
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, decodeError(t, w).Code)
}

type pagingQuery struct {
	CommonMentors int `form:"commonMentors" validate:"min=0"`
}

func TestBindQuery(t *testing.T) {
	r := gin.New()
	r.GET("/q", func(c *gin.Context) {
		var q pagingQuery
		if !BindQuery(c, &q) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"commonMentors": q.CommonMentors})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/q?commonMentors=2", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/q?commonMentors=-1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, decodeError(t, w).Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/q?commonMentors=many", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
