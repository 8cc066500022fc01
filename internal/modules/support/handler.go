package support

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

// RegisterRoutes mounts /support. Submission is public; limiter throttles it.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limiter gin.HandlerFunc, adminGuard ...gin.HandlerFunc) {
	g := api.Group("/support")
	g.POST("", limiter, h.Submit)

	admin := g.Group("", adminGuard...)
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.PUT("/:id", h.UpdateStatus)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if !bind(c, &req) {
		return
	}
	ticket, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Ticket submitted successfully", "ticketId": ticket.ID})
}

func (h *Handler) List(c *gin.Context) {
	tickets, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tickets)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ticket, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ticket)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !bind(c, &req) {
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Ticket updated")
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
	response.Message(c, http.StatusOK, "Ticket deleted")
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
		response.Message(c, http.StatusNotFound, "Ticket not found")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Message(c, http.StatusNotFound, "Ticket not found")
	case errors.Is(err, ErrInvalidStatus):
		response.Message(c, http.StatusBadRequest, "Invalid status")
	default:
		response.ServerError(c, "Server error", err)
	}
}
