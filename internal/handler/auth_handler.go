package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weatherfav/internal/service"
	"github.com/weatherfav/pkg/response"
)

// AuthHandler handles account and credential API requests
type AuthHandler struct {
	credentialService *service.CredentialService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(credentialService *service.CredentialService) *AuthHandler {
	return &AuthHandler{
		credentialService: credentialService,
	}
}

// CreateAccount handles user registration
// POST /create-account
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	user, err := h.credentialService.CreateAccount(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWith(c, http.StatusCreated, "account created successfully", gin.H{"user_id": user.ID})
}

// Login verifies a username and password. No session is created; callers
// re-send credentials when they need to prove identity again.
// GET /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	user, err := h.credentialService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWith(c, http.StatusOK, "login successful", gin.H{"user_id": user.ID})
}

// UpdatePassword handles password changes
// PUT /update-password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	if err := h.credentialService.UpdatePassword(c.Request.Context(), req.Username, req.OldPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, "password updated successfully")
}

// DeleteAccount handles account deletion
// DELETE /delete-account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	if err := h.credentialService.DeleteAccount(c.Request.Context(), req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, "account deleted successfully")
}

// GetAllUsers lists active users
// GET /get-all-users
func (h *AuthHandler) GetAllUsers(c *gin.Context) {
	users, err := h.credentialService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.SuccessWith(c, http.StatusOK, "", gin.H{"users": users})
}

// RegisterRoutes registers account routes
func (h *AuthHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/create-account", h.CreateAccount)
	r.GET("/login", h.Login)
	r.PUT("/update-password", h.UpdatePassword)
	r.DELETE("/delete-account", h.DeleteAccount)
	r.GET("/get-all-users", h.GetAllUsers)
}
