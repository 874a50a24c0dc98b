package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the standard API response structure
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Success sends a 200 response with a message
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Message: message})
}

// SuccessWith sends a success response with extra top-level fields next to
// status and message. An empty message is omitted.
func SuccessWith(c *gin.Context, statusCode int, message string, fields gin.H) {
	body := gin.H{"status": StatusSuccess}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Error sends an error response
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{Status: StatusError, Message: message})
}

// BadRequest sends a 400 error response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 error response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError sends a 500 error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// BadGateway sends a 502 error response
func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

// ServiceUnavailable sends a 503 error response
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, message)
}
