package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/auth"
)

// UserStore is the account persistence the API services need.
type UserStore interface {
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	Create(ctx context.Context, u *models.User) error
	HasProfile(ctx context.Context, id uuid.UUID, role models.Role) (bool, error)
	SupplierOf(ctx context.Context, id uuid.UUID) (models.Supplier, error)
}

// SessionStore keeps refresh sessions and failed login counters.
type SessionStore interface {
	Create(ctx context.Context, s models.Session) error
	UserOf(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	Failures(ctx context.Context, identifier string, now time.Time, window time.Duration) (int, time.Time, error)
	RecordFailure(ctx context.Context, identifier string, now time.Time, window time.Duration) (int, error)
	ClearFailures(ctx context.Context, identifier string) error
}

// LoginPolicy throttles password guessing per identifier
type LoginPolicy struct {
	MaxFailures int
	Window      time.Duration
}

// AuthService handles authentication operations
type AuthService struct {
	users      UserStore
	sessions   SessionStore
	jwtService *auth.JWTService
	policy     LoginPolicy
	now        func() time.Time
	lgr        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, sessions SessionStore, jwtService *auth.JWTService, policy LoginPolicy, lgr zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtService: jwtService,
		policy:     policy,
		now:        time.Now,
		lgr:        lgr,
	}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email or username", apperrors.ErrAlreadyExists)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		RealName:     req.RealName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		Nickname:     req.Nickname,
		Role:         req.Role,
		RegisteredAt: s.now(),
		DeletedAt:    models.ActiveSentinel,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.lgr.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("User registered")

	return s.signIn(ctx, user)
}

// Login verifies the credentials of an active account. An identifier that has failed
// MaxFailures times inside the window is refused before its password is checked.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	now := s.now()

	failures, _, err := s.sessions.Failures(ctx, req.Identifier, now, s.policy.Window)
	if err != nil {
		return nil, err
	}
	if failures >= s.policy.MaxFailures {
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.users.FindByIdentifier(ctx, req.Identifier)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, s.recordFailure(ctx, req.Identifier, now)
	}

	if err := s.sessions.ClearFailures(ctx, req.Identifier); err != nil {
		return nil, err
	}
	if err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
		return nil, err
	}
	return s.signIn(ctx, user)
}

func (s *AuthService) recordFailure(ctx context.Context, identifier string, now time.Time) error {
	n, err := s.sessions.RecordFailure(ctx, identifier, now, s.policy.Window)
	if err != nil {
		return err
	}
	s.lgr.Warn().Str("identifier", identifier).Int("failures", n).Msg("Failed login attempt")
	if n >= s.policy.MaxFailures {
		return apperrors.ErrTooManyAttempts
	}
	return apperrors.ErrInvalidCredentials
}

// RefreshToken rotates a session. The access token must carry a valid signature and be
// expired, and the refresh token must belong to the same account.
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	claims, err := s.jwtService.ParseExpired(req.AccessToken)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}
	if !s.jwtService.Expired(claims) {
		return nil, apperrors.ErrTokenStillValid
	}

	hash := auth.HashRefreshToken(req.RefreshToken)
	owner, err := s.sessions.UserOf(ctx, hash, s.now())
	if err != nil {
		return nil, err
	}
	if owner != claims.UserID {
		s.lgr.Warn().Str("tokenUser", claims.UserID.String()).Str("sessionUser", owner.String()).Msg("Refresh token presented with a foreign access token")
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, owner)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		_ = s.sessions.Delete(ctx, hash)
		return nil, apperrors.ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Delete(ctx, hash); err != nil {
		return nil, err
	}
	return s.signIn(ctx, user)
}

// Logout ends the session of a refresh token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.Delete(ctx, auth.HashRefreshToken(refreshToken))
}

func (s *AuthService) signIn(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	session := models.Session{
		TokenHash: auth.HashRefreshToken(pair.RefreshToken),
		UserID:    user.ID,
		ExpiresAt: pair.RefreshExpiresAt,
		CreatedAt: s.now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	hasProfile, err := s.users.HasProfile(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: dto.NewUserResponse(user),
		Role: user.Role,
		Token: dto.TokenResponse{
			AccessToken:           pair.AccessToken,
			TokenType:             "Bearer",
			ExpiresIn:             pair.ExpiresIn,
			RefreshToken:          pair.RefreshToken,
			RefreshTokenExpiresIn: pair.RefreshExpiresIn,
		},
		NeedProfile: !hasProfile,
	}, nil
}
