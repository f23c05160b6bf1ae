package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labakery/backend/internal/application/identity"
	"github.com/labakery/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles back-office login and logout
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges the admin credentials for an access token.
// POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err, "log in")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err, "log in")
		return
	}
	h.Success(c, result)
}

// Logout revokes the caller's token.
// POST /api/admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		TokenJTI:  claims.ID,
		ExpiresAt: claims.GetExpiresAtTime(),
	})
	if err != nil {
		h.HandleError(c, err, "log out")
		return
	}
	h.Success(c, gin.H{"loggedOut": true})
}

// Me returns the identity behind the caller's token.
// GET /api/admin/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := claims.GetUserUUID()
	if err != nil {
		h.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	h.Success(c, identity.UserInfo{ID: id, Username: claims.Username, Role: claims.Role})
}
