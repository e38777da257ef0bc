package middleware

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool              `json:"success"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Data       any               `json:"data"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// RespondWithData writes a successful envelope around data.
func RespondWithData(c *gin.Context, code int, data any, message string) {
	c.JSON(code, Response{
		Success:    code < 400,
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

// RespondWithError writes a failed envelope with no data.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:    false,
		StatusCode: code,
		Message:    message,
	})
}

// AbortWithError is RespondWithError for middleware that must stop the chain.
func AbortWithError(c *gin.Context, code int, message string) {
	RespondWithError(c, code, message)
	c.Abort()
}
