package user

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"svpportal/internal/database"
	"svpportal/internal/middleware"
	"svpportal/internal/pkg/jwt"
	"svpportal/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router *gin.Engine
	repo   *repository.UserRepository
	admin  string
	user   string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectWithPool(fmt.Sprintf("file:user_%s?mode=memory&cache=shared", name), database.PoolOptions{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	tokens := jwt.New("user-test-secret", time.Hour)
	admin, _ := tokens.GenerateToken(1, "admin@svp.com", "admin")
	plain, _ := tokens.GenerateToken(2, "staff@svp.com", "user")

	repo := repository.NewUserRepository(db)
	r := gin.New()
	NewHandler(NewService(repo)).RegisterRoutes(r.Group("/api"), middleware.JWTAuth(tokens), middleware.AdminOnly())

	return &testEnv{router: r, repo: repo, admin: admin, user: plain}
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestUserEndpoints_RequireAdmin(t *testing.T) {
	e := setupTestRouter(t)

	rr := e.do(http.MethodGet, "/api/users", nil, e.user)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUserEndpoints_FullFlow(t *testing.T) {
	e := setupTestRouter(t)

	rr := e.do(http.MethodPost, "/api/users", map[string]any{
		"email": "officer@svp.com", "password": "password1", "firstName": "Omar", "role": "admin",
	}, e.admin)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "User created", created.Message)
	path := fmt.Sprintf("/api/users/%d", created.ID)

	rr = e.do(http.MethodPost, "/api/users", map[string]any{"email": "officer@svp.com", "password": "password1"}, e.admin)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "User already exists")

	rr = e.do(http.MethodPost, "/api/users", map[string]any{"email": "x@svp.com", "password": "password1", "role": "root"}, e.admin)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(http.MethodGet, "/api/users", nil, e.admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password")

	rr = e.do(http.MethodPut, path, map[string]any{"email": "officer@svp.com", "firstName": "Omar", "lastName": "Farooq", "role": "user"}, e.admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = e.do(http.MethodPut, path+"/password", map[string]any{"password": "new-password"}, e.admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Password updated")

	stored, err := e.repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Farooq", stored.LastName)
	assert.Equal(t, "user", string(stored.Role))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-password")))

	rr = e.do(http.MethodDelete, path, nil, e.admin)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = e.do(http.MethodGet, path, nil, e.admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
