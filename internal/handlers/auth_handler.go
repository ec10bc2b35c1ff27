package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studybridge/crm-backend/internal/models"
	"github.com/studybridge/crm-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		handleServiceError(c, err, "", "Failed to log in")
		return
	}

	respondData(c, http.StatusOK, models.LoginResponse{Token: token, User: user})
}

// Me handles GET /auth/me, returning the authenticated admin user
func (h *AuthHandler) Me(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "User not found", "Failed to fetch user")
		return
	}

	respondData(c, http.StatusOK, user)
}
