package laborresult

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

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limiter gin.HandlerFunc, adminGuard ...gin.HandlerFunc) {
	g := api.Group("/labor-results")
	g.GET("/check", limiter, h.Check)

	admin := g.Group("", adminGuard...)
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Check(c *gin.Context) {
	var q CheckQuery
	_ = c.ShouldBindQuery(&q)

	res, err := h.service.Check(c.Request.Context(), q)
	if err != nil {
		response.ServerError(c, "Server error", err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *Handler) List(c *gin.Context) {
	results, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req UpsertRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Labor result created", "id": res.ID})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpsertRequest
	if !bind(c, &req) {
		return
	}
	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Labor result updated")
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
	response.Message(c, http.StatusOK, "Labor result deleted")
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
		response.Message(c, http.StatusNotFound, "Labor result not found")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Message(c, http.StatusNotFound, "Labor result not found")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "Invalid date", err.Error())
	default:
		response.ServerError(c, "Server error", err)
	}
}
