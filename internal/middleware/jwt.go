package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"svpportal/internal/pkg/jwt"
	"svpportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// JWTAuth validates a bearer token and stores user_id, email and role on the context.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := bearerToken(c)
		authenticate(c, tokens, raw)
	}
}

// QueryTokenAuth is JWTAuth for browser websocket upgrades, which cannot set headers.
func QueryTokenAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query("token"))
		if raw == "" {
			raw, _ = bearerToken(c)
		}
		authenticate(c, tokens, raw)
	}
}

func authenticate(c *gin.Context, tokens *jwt.Service, raw string) {
	if raw == "" {
		logAuthFailure(c, http.StatusUnauthorized, "missing_auth")
		response.Message(c, http.StatusUnauthorized, "No token provided")
		c.Abort()
		return
	}

	claims, err := tokens.ValidateToken(raw)
	if err != nil {
		reason := "invalid_token"
		if errors.Is(err, jwt.ErrExpiredToken) {
			reason = "expired_token"
		}
		logAuthFailure(c, http.StatusUnauthorized, reason)
		response.Message(c, http.StatusUnauthorized, "Invalid token")
		c.Abort()
		return
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxRole, claims.Role)
	c.Next()
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func logAuthFailure(c *gin.Context, status int, reason string) {
	log.Printf(
		"auth_failure status=%d reason=%s method=%s path=%s client_ip=%s request_id=%s",
		status,
		reason,
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		requestID(c),
	)
}

// UserID returns the authenticated user id set by JWTAuth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}
