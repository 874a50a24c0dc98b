package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Request bodies. GET and DELETE routes also accept the same fields as
// query parameters, hence the form tags. Length caps match
// models.MaxUsernameLength and models.MaxLocationLength.

type credentialsRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=50"`
	Password string `json:"password" form:"password" binding:"required"`
}

type updatePasswordRequest struct {
	Username    string `json:"username" binding:"required,max=50"`
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type favoriteRequest struct {
	UserID   uint   `json:"user_id" form:"user_id" binding:"required"`
	Location string `json:"location" form:"location" binding:"required,max=255"`
}

type updateFavoriteRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	OldLocation string `json:"old_location" binding:"required,max=255"`
	NewLocation string `json:"new_location" binding:"required,max=255"`
}

type userRequest struct {
	UserID uint `json:"user_id" form:"user_id" binding:"required"`
}

type coordsRequest struct {
	City        string `form:"city" binding:"required"`
	CountryCode string `form:"country_code"`
}

type pointRequest struct {
	Lat   *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lon   *float64 `form:"lon" binding:"required,min=-180,max=180"`
	Units string   `form:"units" binding:"omitempty,oneof=standard metric imperial"`
}

// bind decodes a JSON body when one is sent and falls back to the query
// string otherwise, so body-less GET and DELETE calls work too.
func bind(c *gin.Context, obj interface{}) error {
	if c.Request.Body != nil && c.Request.Body != http.NoBody && c.Request.ContentLength != 0 {
		return c.ShouldBindJSON(obj)
	}
	return c.ShouldBindQuery(obj)
}
