package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest is the back-office login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// LoginInput contains the input for admin login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for lockout tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
	User        UserInfo  `json:"user"`
}

// UserInfo identifies the logged-in admin
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// LogoutInput contains the input for admin logout
type LogoutInput struct {
	TokenJTI  string
	ExpiresAt time.Time
}
