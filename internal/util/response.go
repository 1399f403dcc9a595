package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// business error codes
const (
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// Message writes a plain {"message": ...} success body.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"message": msg,
	})
}

// Error writes a structured error body with an HTTP status and a
// business code. All handler failures funnel through here so error
// responses stay uniform.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// internal server error with a canned message
func ServerError(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, CodeServerErr, msg)
}
