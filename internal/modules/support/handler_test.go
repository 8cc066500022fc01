package support

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"svpportal/internal/database"
	"svpportal/internal/domain"
	"svpportal/internal/middleware"
	"svpportal/internal/pkg/jwt"
	"svpportal/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	repo   *repository.SupportTicketRepository
	admin  string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectWithPool(fmt.Sprintf("file:support_%s?mode=memory&cache=shared", name), database.PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	tokens := jwt.New("support-test-secret", time.Hour)
	admin, _ := tokens.GenerateToken(1, "admin@svp.com", "admin")

	repo := repository.NewSupportTicketRepository(db)
	r := gin.New()
	NewHandler(NewService(repo)).RegisterRoutes(
		r.Group("/api"),
		middleware.RateLimit(nil, "support_submit", 5, time.Minute, middleware.FailOpen),
		middleware.JWTAuth(tokens), middleware.AdminOnly(),
	)
	return &testEnv{router: r, repo: repo, admin: admin}
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func submit(t *testing.T, e *testEnv) int64 {
	t.Helper()
	rr := e.do(http.MethodPost, "/api/support", map[string]any{
		"name": "Bilal", "email": "Bilal@Example.com", "subject": "Cannot upload passport", "description": "The page spins forever.",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	var body struct {
		Message  string `json:"message"`
		TicketID int64  `json:"ticketId"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Ticket submitted successfully", body.Message)
	return body.TicketID
}

func TestSubmit_DefaultsToOpen(t *testing.T) {
	e := setupTestRouter(t)
	id := submit(t, e)

	rr := e.do(http.MethodGet, fmt.Sprintf("/api/support/%d", id), nil, e.admin)
	require.Equal(t, http.StatusOK, rr.Code)

	var ticket domain.SupportTicket
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ticket))
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	assert.Equal(t, "bilal@example.com", ticket.Email)
}

func TestSubmit_Validation(t *testing.T) {
	e := setupTestRouter(t)

	rr := e.do(http.MethodPost, "/api/support", map[string]any{"name": "Bilal", "email": "not-an-email"}, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "email", body.Details["Email"])
	assert.Contains(t, body.Details, "Subject")
}

func TestUpdateStatus(t *testing.T) {
	e := setupTestRouter(t)
	id := submit(t, e)

	rr := e.do(http.MethodPut, fmt.Sprintf("/api/support/%d", id), map[string]any{"status": "In Progress"}, e.admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Ticket updated"}`, rr.Body.String())

	rr = e.do(http.MethodPut, fmt.Sprintf("/api/support/%d", id), map[string]any{"status": "Escalated"}, e.admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(http.MethodPut, "/api/support/999", map[string]any{"status": "Closed"}, e.admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAdminRoutes(t *testing.T) {
	e := setupTestRouter(t)
	id := submit(t, e)

	rr := e.do(http.MethodGet, "/api/support", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.do(http.MethodGet, "/api/support", nil, e.admin)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.SupportTicket
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rr = e.do(http.MethodDelete, fmt.Sprintf("/api/support/%d", id), nil, e.admin)
	assert.JSONEq(t, `{"message":"Ticket deleted"}`, rr.Body.String())

	rr = e.do(http.MethodGet, fmt.Sprintf("/api/support/%d", id), nil, e.admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Ticket not found"}`, rr.Body.String())
}
