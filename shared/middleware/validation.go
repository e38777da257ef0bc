package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesdesk/txbrowser/shared/apperror"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// RespondWithValidationError answers 400 naming the offending parameter.
func RespondWithValidationError(c *gin.Context, err *apperror.ValidationError) {
	c.JSON(http.StatusBadRequest, Response{
		Success:    false,
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid query parameters",
		Errors: []ValidationError{{
			Field:   err.Param,
			Message: err.Message,
			Type:    "invalid",
		}},
	})
}
