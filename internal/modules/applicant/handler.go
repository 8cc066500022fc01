package applicant

import (
	"errors"
	"net/http"
	"strconv"

	"svpportal/internal/domain"
	"svpportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /applicants. Signup and OTP routes are public and throttled by limiter;
// adminGuard protects the rest.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limiter gin.HandlerFunc, adminGuard ...gin.HandlerFunc) {
	g := api.Group("/applicants")
	{
		g.POST("", limiter, h.Create)
		g.POST("/verify-otp", limiter, h.VerifyOTP)
		g.POST("/resend-otp", limiter, h.ResendOTP)
	}

	admin := g.Group("", adminGuard...)
	{
		admin.GET("", h.List)
		admin.GET("/:id", h.Get)
		admin.PUT("/:id/status", h.UpdateStatus)
		admin.PUT("/:id/verification", h.UpdateVerification)
		admin.PUT("/:id/details", h.UpdateDetails)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"applicantId": id,
	})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.VerifyOTP(c.Request.Context(), req.Email, req.Code); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Email verified successfully")
}

func (h *Handler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ResendOTP(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "OTP resent successfully")
}

func (h *Handler) List(c *gin.Context) {
	applicants, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applicants)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, domain.ApplicantStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Status updated")
}

func (h *Handler) UpdateVerification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateVerification(c.Request.Context(), id, req.VerificationCode, req.VerificationStatus); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Verification updated")
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateDetails(c.Request.Context(), id, req); err != nil {
		writeError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Applicant updated")
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
	response.Message(c, http.StatusOK, "Applicant deleted")
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Message(c, http.StatusNotFound, "Applicant not found")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, ErrDuplicatePassport):
		response.Message(c, http.StatusBadRequest, "Applicant already exists with this passport")
	case errors.Is(err, ErrInvalidOrExpiredCode):
		response.Message(c, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, ErrInvalidStatus):
		response.Message(c, http.StatusBadRequest, "Invalid status")
	case errors.Is(err, ErrStatusFinal):
		response.Message(c, http.StatusBadRequest, "Applicant status is final")
	case errors.Is(err, ErrNotFound):
		response.Message(c, http.StatusNotFound, "Applicant not found")
	default:
		response.ServerError(c, "Server error", err)
	}
}
