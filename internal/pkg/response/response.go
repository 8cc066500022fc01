package response

import "github.com/gin-gonic/gin"

// Message writes {message}.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

// JSON writes an arbitrary payload.
func JSON(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// Error writes {message, error}; detail is omitted when empty.
func Error(c *gin.Context, statusCode int, message string, detail string) {
	body := gin.H{"message": message}
	if detail != "" {
		body["error"] = detail
	}
	c.JSON(statusCode, body)
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, gin.H{
		"message": message,
		"details": details,
	})
}

// ServerError records err on the context for ErrorLogger and echoes its text.
func ServerError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	Error(c, 500, message, err.Error())
}
