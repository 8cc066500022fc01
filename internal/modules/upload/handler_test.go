package upload

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"svpportal/internal/middleware"
	"svpportal/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type testEnv struct {
	router *gin.Engine
	dir    string
	admin  string
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	tokens := jwt.New("upload-test-secret", time.Hour)
	admin, _ := tokens.GenerateToken(1, "admin@svp.com", "admin")

	r := gin.New()
	NewHandler(NewService(dir, "/uploads")).RegisterRoutes(
		r.Group("/api"),
		middleware.RateLimit(nil, "upload", 10, time.Minute, middleware.FailOpen),
		middleware.JWTAuth(tokens), middleware.AdminOnly(),
	)
	return &testEnv{router: r, dir: dir, admin: admin}
}

func (e *testEnv) upload(t *testing.T, path, field, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

type uploadResponse struct {
	Message string     `json:"message"`
	File    StoredFile `json:"file"`
}

func TestUpload_Passport(t *testing.T) {
	e := setupTestRouter(t)

	rr := e.upload(t, "/api/upload/passport", "passport", "my passport.png", pngHeader)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "File uploaded successfully", body.Message)
	assert.Equal(t, "my passport.png", body.File.OriginalName)
	assert.Equal(t, int64(len(pngHeader)), body.File.Size)
	assert.True(t, strings.HasPrefix(body.File.Filename, "passport-"))
	assert.True(t, strings.HasSuffix(body.File.Filename, "_my_passport.png"))
	assert.Equal(t, "/uploads/"+body.File.Filename, body.File.Path)

	_, err := os.Stat(filepath.Join(e.dir, body.File.Filename))
	assert.NoError(t, err)
}

func TestUpload_KindMessages(t *testing.T) {
	e := setupTestRouter(t)

	rr := e.upload(t, "/api/upload/certificate", "certificate", "cert.pdf", []byte("%PDF-1.7\n"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Certificate uploaded successfully")

	rr = e.upload(t, "/api/upload/document", "document", "scan.png", pngHeader)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Document uploaded successfully")
}

func TestUpload_Rejections(t *testing.T) {
	e := setupTestRouter(t)

	rr := e.upload(t, "/api/upload/passport", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"No file uploaded"}`, rr.Body.String())

	rr = e.upload(t, "/api/upload/passport", "document", "p.png", pngHeader)
	assert.JSONEq(t, `{"message":"No file uploaded"}`, rr.Body.String())

	rr = e.upload(t, "/api/upload/document", "document", "notes.txt", []byte("plain text notes"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxFileSize)...)
	rr = e.upload(t, "/api/upload/passport", "passport", "huge.png", big)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"File size exceeds 3MB limit"}`, rr.Body.String())

	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDelete(t *testing.T) {
	e := setupTestRouter(t)

	rr := e.upload(t, "/api/upload/passport", "passport", "p.png", pngHeader)
	require.Equal(t, http.StatusOK, rr.Code)
	var body uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	del := func(name, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/upload/"+name, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		e.router.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusUnauthorized, del(body.File.Filename, "").Code)

	rr = del(body.File.Filename, e.admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"File deleted successfully"}`, rr.Body.String())

	rr = del(body.File.Filename, e.admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"File not found"}`, rr.Body.String())
}

func TestService_DeleteRejectsTraversal(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "uploads")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	secret := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("x"), 0o644))

	svc := NewService(dir, "")
	for _, name := range []string{"../secret.txt", "..", "", `..\secret.txt`} {
		assert.ErrorIs(t, svc.Delete(name), ErrInvalidName, name)
	}
	_, err := os.Stat(secret)
	assert.NoError(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "my_passport", sanitizeName("my passport.png"))
	assert.Equal(t, "file", sanitizeName(".png"))
	assert.Equal(t, "passwd", sanitizeName("../../etc/passwd"))
	assert.Len(t, sanitizeName(strings.Repeat("a", 80)+".pdf"), 40)
}
