package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weatherfav/internal/service"
	"github.com/weatherfav/pkg/response"
)

// FavoriteHandler handles favorite location API requests
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// AddFavorite bookmarks a location
// POST /api/add-favorite
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	fav, err := h.favoriteService.AddFavorite(c.Request.Context(), req.UserID, req.Location)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWith(c, http.StatusCreated, fmt.Sprintf("%s added to favorites", fav.Location), gin.H{"favorite": fav})
}

// UpdateFavorite renames a favorite
// PUT /api/update-favorite
func (h *FavoriteHandler) UpdateFavorite(c *gin.Context) {
	var req updateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	if err := h.favoriteService.UpdateFavorite(c.Request.Context(), req.UserID, req.OldLocation, req.NewLocation); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, "favorite updated successfully")
}

// RemoveFavorite deletes a single favorite
// DELETE /api/remove-favorite
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := bind(c, &req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	if err := h.favoriteService.RemoveFavorite(c.Request.Context(), req.UserID, req.Location); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, "favorite removed successfully")
}

// ClearFavorites removes all of a user's favorites
// DELETE /api/clear-favorites
func (h *FavoriteHandler) ClearFavorites(c *gin.Context) {
	var req userRequest
	if err := bind(c, &req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	n, err := h.favoriteService.ClearFavorites(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWith(c, http.StatusOK, "favorites cleared successfully", gin.H{"removed": n})
}

// GetFavorites lists a user's favorites
// GET /api/get-favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	var req userRequest
	if err := bind(c, &req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	favs, err := h.favoriteService.GetFavorites(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWith(c, http.StatusOK, "", gin.H{"favorites": favs})
}

// RegisterRoutes registers favorite routes
func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/add-favorite", h.AddFavorite)
	rg.PUT("/update-favorite", h.UpdateFavorite)
	rg.DELETE("/remove-favorite", h.RemoveFavorite)
	rg.DELETE("/clear-favorites", h.ClearFavorites)
	rg.GET("/get-favorites", h.GetFavorites)
}
