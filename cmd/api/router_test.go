package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"svpportal/internal/config"
	"svpportal/internal/database"
	"svpportal/internal/events"
	"svpportal/internal/mailer"
	"svpportal/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectWithPool(fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name), database.PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	cfg := &config.Config{
		AppEnv:             "test",
		JWTSecret:          "router-test-secret",
		JWTTTL:             time.Hour,
		OTPTTL:             10 * time.Minute,
		MailTimeout:        time.Second,
		UploadDir:          t.TempDir(),
		UploadURLBase:      "/uploads",
		RateLimitPerMinute: 30,
	}

	hub := events.NewHub()
	t.Cleanup(hub.Close)

	return newRouter(cfg, db, mailer.New(mailer.NewConsoleSender()), hub, nil)
}

func TestHealth(t *testing.T) {
	r := setupTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK","message":"SVP Backend API is running"}`, rr.Body.String())
}

func TestIndexAndMetrics(t *testing.T) {
	r := setupTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/applicants")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func TestApplicantSignupThroughRouter(t *testing.T) {
	r := setupTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"passportNumber": "P1234567",
		"email":          "applicant@example.com",
		"password":       "secret123",
		"firstName":      "Ali",
		"lastName":       "Raza",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/applicants", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Application submitted successfully")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/applicants", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminLoginFlow(t *testing.T) {
	r := setupTestRouter(t)

	post := func(path string, payload any, token string) *httptest.ResponseRecorder {
		b, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := post("/api/auth/register", map[string]any{"email": "officer@svp.com", "password": "password1"}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = post("/api/auth/login", map[string]any{"email": "officer@svp.com", "password": "password1"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	// registered accounts are plain users
	req = httptest.NewRequest(http.MethodGet, "/api/certificates", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
