package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/weatherfav/internal/logging"
	"github.com/weatherfav/internal/service"
	"github.com/weatherfav/pkg/response"
)

// respondError maps a service error onto a status code. Anything
// unexpected is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, service.ErrFavoriteNotFound):
		response.NotFound(c, "favorite not found")
	case errors.Is(err, service.ErrDuplicateUsername):
		response.Conflict(c, "username already exists")
	case errors.Is(err, service.ErrDuplicateFavorite):
		response.Conflict(c, "location already in favorites")
	default:
		_ = c.Error(err)
		logging.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		response.InternalError(c, "internal server error")
	}
}
