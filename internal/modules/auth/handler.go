package auth

import (
	"errors"
	"net/http"

	"svpportal/internal/middleware"
	"svpportal/internal/pkg/response"
	"svpportal/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authenticated gin.HandlerFunc) {
	g := api.Group("/auth")
	{
		g.POST("/login", h.Login)
		g.POST("/register", h.Register)
		g.GET("/me", authenticated, h.Me)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Message(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		response.ServerError(c, "Server error", err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"token": res.Token,
		"user":  toUserPublic(res.User),
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Message(c, http.StatusBadRequest, "User already exists")
			return
		}
		response.ServerError(c, "Server error", err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  user.ID,
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Message(c, http.StatusNotFound, "User not found")
			return
		}
		response.ServerError(c, "Server error", err)
		return
	}
	response.JSON(c, http.StatusOK, toUserPublic(user))
}
