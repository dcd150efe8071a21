package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tutorlane/tutor-admin-api/internal/models"
	"github.com/tutorlane/tutor-admin-api/internal/service"
	"github.com/tutorlane/tutor-admin-api/pkg/config"
)

type stubBranchRepo struct {
	branches []models.Branch
}

func (s *stubBranchRepo) List(ctx context.Context) ([]models.Branch, error) {
	return s.branches, nil
}

func (s *stubBranchRepo) FindByID(ctx context.Context, id string) (*models.Branch, error) {
	for _, b := range s.branches {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubBranchRepo) ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error) {
	return false, nil
}

func (s *stubBranchRepo) Create(ctx context.Context, branch *models.Branch) error {
	if branch.ID == "" {
		branch.ID = "br-new"
	}
	s.branches = append(s.branches, *branch)
	return nil
}

func (s *stubBranchRepo) Update(ctx context.Context, branch *models.Branch) error {
	return nil
}

func (s *stubBranchRepo) SetActive(ctx context.Context, id string, active bool) error {
	return sql.ErrNoRows
}

func buildTestRouter(branchRepo *stubBranchRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:       "test",
		APIPrefix: "/api",
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	svcs := Services{
		Branches: service.NewBranchService(branchRepo, nil, zap.NewNop()),
		Metrics:  service.NewMetricsService(),
	}
	return NewRouter(cfg, zap.NewNop(), svcs)
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRouterUnknownRouteBody(t *testing.T) {
	router := buildTestRouter(&stubBranchRepo{})

	for _, path := range []string{"/nope", "/api/nope", "/api/branches/extra/deep"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNotFound, resp.Code)
		require.JSONEq(t, `{"error":"Not Found"}`, resp.Body.String())
	}
}

func TestRouterHealthAndReady(t *testing.T) {
	router := buildTestRouter(&stubBranchRepo{})

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"ok"`)

	req, _ = http.NewRequest(http.MethodGet, "/ready", nil)
	resp = performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestRouterListBranches(t *testing.T) {
	router := buildTestRouter(&stubBranchRepo{branches: []models.Branch{
		{ID: "br-1", Code: "CEN", Name: "Central", IsActive: true},
	}})

	req, _ := http.NewRequest(http.MethodGet, "/api/branches", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"code":"CEN"`)
}

func TestRouterCreateBranchValidation(t *testing.T) {
	router := buildTestRouter(&stubBranchRepo{})

	req, _ := http.NewRequest(http.MethodPost, "/api/branches", nil)
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "VALIDATION_ERROR")
}

func TestRouterSetActiveMissingBranch(t *testing.T) {
	router := buildTestRouter(&stubBranchRepo{})

	req, _ := http.NewRequest(http.MethodPatch, "/api/branches/br-404/active", nil)
	req.Header.Set("Content-Type", "application/json")
	req.Body = http.NoBody
	resp := performRequest(router, req)
	// empty body fails binding before the lookup
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	router := buildTestRouter(&stubBranchRepo{})

	req, _ := http.NewRequest(http.MethodOptions, "/api/branches", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Equal(t, "http://localhost:3000", resp.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodOptions, "/api/branches", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp = performRequest(router, req)
	require.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := buildTestRouter(&stubBranchRepo{})

	// one request so the counter vec has at least one series
	warmup, _ := http.NewRequest(http.MethodGet, "/health", nil)
	performRequest(router, warmup)

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), "http_requests_total")
	require.Contains(t, resp.Body.String(), "goroutines_total")
}
