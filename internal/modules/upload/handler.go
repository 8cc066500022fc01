package upload

import (
	"errors"
	"net/http"

	"svpportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// multipart framing on top of the file itself
const requestOverhead = 64 * 1024

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /upload. Uploads are public so the signup wizard can
// attach documents before an account exists; deletion sits behind adminGuard.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, limiter gin.HandlerFunc, adminGuard ...gin.HandlerFunc) {
	g := api.Group("/upload")
	g.POST("/passport", limiter, h.upload(KindPassport))
	g.POST("/certificate", limiter, h.upload(KindCertificate))
	g.POST("/document", limiter, h.upload(KindDocument))

	admin := g.Group("", adminGuard...)
	admin.DELETE("/:filename", h.Delete)
}

func (h *Handler) upload(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxFileSize+requestOverhead)

		fileHeader, err := c.FormFile(string(kind))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Message(c, http.StatusBadRequest, "File size exceeds 3MB limit")
				return
			}
			response.Message(c, http.StatusBadRequest, "No file uploaded")
			return
		}

		stored, err := h.service.Save(kind, fileHeader)
		if err != nil {
			writeError(c, err, "Upload failed")
			return
		}

		response.JSON(c, http.StatusOK, gin.H{
			"message": kind.SuccessMessage(),
			"file":    stored,
		})
	}
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("filename")); err != nil {
		writeError(c, err, "Delete failed")
		return
	}
	response.Message(c, http.StatusOK, "File deleted successfully")
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		response.Message(c, http.StatusBadRequest, "File size exceeds 3MB limit")
	case errors.Is(err, ErrEmptyFile):
		response.Message(c, http.StatusBadRequest, "No file uploaded")
	case errors.Is(err, ErrInvalidMimeType):
		response.Message(c, http.StatusBadRequest, "Only JPG, PNG and PDF files are allowed")
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidName):
		response.Message(c, http.StatusNotFound, "File not found")
	default:
		response.ServerError(c, fallback, err)
	}
}
