package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/claimboard/internal/app/auth"
	appControllers "github.com/yigit/claimboard/internal/app/controllers"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/config"
	appMiddleware "github.com/yigit/claimboard/internal/middleware"
	pkgAuth "github.com/yigit/claimboard/internal/pkg/auth"
)

type stubLeaderboardService struct{}

func (stubLeaderboardService) Leaderboard(context.Context, auth.Viewer, models.LeaderboardFilters) (*models.LeaderboardView, error) {
	return &models.LeaderboardView{}, nil
}

func (stubLeaderboardService) MyMentors(context.Context, auth.Viewer) ([]int64, error) {
	return []int64{4, 9}, nil
}

func testRouter(t *testing.T) (*gin.Engine, *pkgAuth.JWTService) {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Mode = "production"
	cfg.Server.MaxUploadMB = 1
	cfg.Server.CorsOrigins = []string{"http://localhost:5173"}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "claimboard"})
	deps := &Dependencies{
		UserController:        appControllers.NewUserController(nil),
		ClaimController:       appControllers.NewClaimController(nil),
		LeaderboardController: appControllers.NewLeaderboardController(stubLeaderboardService{}),
		AuthMiddleware:        appMiddleware.NewAuthMiddleware(jwtService, nil),
		JWTService:            jwtService,
		HealthChecks: map[string]HealthCheck{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		},
	}
	return SetupRouter(cfg, deps, zerolog.Nop()), jwtService
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_Ping(t *testing.T) {
	router, _ := testRouter(t)

	w := serve(router, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestSetupRouter_APIRequiresToken(t *testing.T) {
	router, _ := testRouter(t)

	for _, path := range []string{"/api/v1/users/me", "/api/v1/claims/student", "/api/v1/leaderboard"} {
		w := serve(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestSetupRouter_RoleGates(t *testing.T) {
	router, jwtService := testRouter(t)
	studentToken, _, err := jwtService.GenerateToken(3, string(models.RoleStudent))
	require.NoError(t, err)
	mentorToken, _, err := jwtService.GenerateToken(4, string(models.RoleMentor))
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{"student cannot list pending", http.MethodGet, "/api/v1/claims/proctor", studentToken},
		{"mentor cannot review", http.MethodPatch, "/api/v1/claims/proctor/1", mentorToken},
		{"mentor cannot submit", http.MethodPost, "/api/v1/claims/student", mentorToken},
		{"student cannot download proofs", http.MethodGet, "/api/v1/claims/1/proof/download", studentToken},
		{"student cannot list mentored claims", http.MethodGet, "/api/v1/claims/mentor", studentToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, tt.token)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestSetupRouter_MyMentors(t *testing.T) {
	router, jwtService := testRouter(t)
	token, _, err := jwtService.GenerateToken(3, string(models.RoleStudent))
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/api/v1/leaderboard/me/mentors", token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			MentorIDs []int64 `json:"mentorIds"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []int64{4, 9}, body.Data.MentorIDs)
}

func TestSetupRouter_ServesSwaggerDoc(t *testing.T) {
	router, _ := testRouter(t)

	w := serve(router, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/claims/proctor/{claimId}")
}

func TestSetupRouter_Health(t *testing.T) {
	router, _ := testRouter(t)

	w := serve(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, map[string]string{"postgres": "up", "redis": "down"}, body.Checks)
}

func TestHealthHandler_AllUp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", healthHandler(map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
	}, zerolog.Nop()))

	w := serve(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"postgres":"up"}}`, w.Body.String())
}

func TestConfigPath_EnvOverride(t *testing.T) {
	assert.Equal(t, "configs/config.yaml", ConfigPath())

	t.Setenv(ConfigPathEnv, "/etc/claimboard.yaml")
	assert.Equal(t, "/etc/claimboard.yaml", ConfigPath())
}
