package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=50"`
	Email    string      `json:"email" binding:"required,email,max=100"`
	Password string      `json:"password" binding:"required,min=6,max=50"`
	RealName string      `json:"realName" binding:"required,min=1,max=50"`
	Nickname string      `json:"nickname" binding:"required,min=1,max=50"`
	Role     models.Role `json:"role" binding:"required,oneof=student department company"`
}

// LoginRequest represents login credentials. Identifier is a username or an email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the expired access token together with its refresh token
type RefreshTokenRequest struct {
	AccessToken  string `json:"accessToken" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest ends the session of a refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn"`
}

// UserResponse represents basic user information, never the password hash
type UserResponse struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	RealName     string      `json:"realName"`
	Nickname     string      `json:"nickname"`
	Role         models.Role `json:"role"`
	IsAdmin      bool        `json:"isAdmin"`
	RegisteredAt time.Time   `json:"registeredAt"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	User        *UserResponse `json:"user,omitempty"`
	Role        models.Role   `json:"role"`
	Token       TokenResponse `json:"token"`
	NeedProfile bool          `json:"needProfile"`
}

// NewUserResponse maps a user to its public fields
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		RealName:     u.RealName,
		Nickname:     u.Nickname,
		Role:         u.Role,
		IsAdmin:      u.IsAdmin,
		RegisteredAt: u.RegisteredAt,
	}
}
