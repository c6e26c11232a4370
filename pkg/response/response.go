package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every JSON body carries a success flag; failures add an error message.

func Success(c *gin.Context, httpStatus int, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(httpStatus, body)
}

func OK(c *gin.Context, fields gin.H) {
	Success(c, http.StatusOK, fields)
}

func Created(c *gin.Context, fields gin.H) {
	Success(c, http.StatusCreated, fields)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"success": false, "error": message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}
