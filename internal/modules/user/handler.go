package user

import (
	"errors"
	"net/http"
	"strconv"

	"svpportal/internal/pkg/response"
	"svpportal/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /users behind the given guard; every route is admin-only.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, guard ...gin.HandlerFunc) {
	g := api.Group("/users", guard...)
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.PUT("/:id/password", h.UpdatePassword)
		g.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, u)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !bind(c, &req) {
		return
	}
	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "User created", "id": u.ID})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateRequest
	if !bind(c, &req) {
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User updated")
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdatePasswordRequest
	if !bind(c, &req) {
		return
	}
	if err := h.service.UpdatePassword(c.Request.Context(), id, req.Password); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password updated")
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted")
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return false
	}
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Message(c, http.StatusNotFound, "User not found")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Message(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrAlreadyExists):
		response.Message(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, ErrInvalidRole):
		response.Message(c, http.StatusBadRequest, "Invalid role")
	default:
		response.ServerError(c, "Server error", err)
	}
}
