package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/auth"
	"github.com/group7/resmatch/internal/pkg/logger"
)

const testPassword = "secret-pass"

func newTestAuthService(t *testing.T, accessExp time.Duration) (*AuthService, *fakeUsers, *fakeSessions) {
	t.Helper()
	users := newFakeUsers()
	sessions := newFakeSessions()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "service-test-secret-key",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:     "resmatch",
	})
	svc := NewAuthService(users, sessions, jwtService, LoginPolicy{MaxFailures: 3, Window: 5 * time.Minute}, logger.Nop())
	return svc, users, sessions
}

func addAccount(t *testing.T, users *fakeUsers, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatal(err)
	}
	return users.add(&models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
	})
}

func TestAuthService_Register(t *testing.T) {
	svc, users, sessions := newTestAuthService(t, 15*time.Minute)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: testPassword,
		RealName: "New Comer",
		Nickname: "nc",
		Role:     models.RoleStudent,
	}
	resp, err := svc.Register(ctx, req)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !resp.NeedProfile || resp.Role != models.RoleStudent || resp.Token.TokenType != "Bearer" {
		t.Errorf("response = %+v", resp)
	}

	stored := users.byID[resp.User.ID]
	if stored == nil || stored.IsDeleted() {
		t.Fatalf("registered user not stored as active: %+v", stored)
	}
	if stored.PasswordHash == testPassword || !auth.CheckPassword(stored.PasswordHash, testPassword) {
		t.Error("password not stored as a bcrypt hash")
	}
	if _, ok := sessions.sessions[auth.HashRefreshToken(resp.Token.RefreshToken)]; !ok {
		t.Error("refresh session not stored under the token hash")
	}

	if _, err := svc.Register(ctx, req); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Errorf("second register: expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, users, sessions := newTestAuthService(t, 15*time.Minute)
	ctx := context.Background()
	u := addAccount(t, users, "dept01", models.RoleDepartment)
	users.profiles[u.ID] = true

	first, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "dept01", Password: testPassword})
	if err != nil {
		t.Fatalf("Login by username: %v", err)
	}
	if first.NeedProfile {
		t.Error("account with a profile reported needProfile")
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "dept01@example.com", Password: testPassword}); err != nil {
		t.Fatalf("Login by email: %v", err)
	}
	if len(sessions.sessions) != 1 {
		t.Errorf("login kept %d sessions, want only the newest", len(sessions.sessions))
	}
	if _, ok := sessions.sessions[auth.HashRefreshToken(first.Token.RefreshToken)]; ok {
		t.Error("earlier session survived a new login")
	}
}

func TestAuthService_Login_Throttle(t *testing.T) {
	svc, users, sessions := newTestAuthService(t, 15*time.Minute)
	ctx := context.Background()
	addAccount(t, users, "stu01", models.RoleStudent)

	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	wrong := &dto.LoginRequest{Identifier: "stu01", Password: "wrong-pass"}
	for i := 1; i < 3; i++ {
		if _, err := svc.Login(ctx, wrong); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}
	if _, err := svc.Login(ctx, wrong); !errors.Is(err, apperrors.ErrTooManyAttempts) {
		t.Fatalf("third failure: expected ErrTooManyAttempts, got %v", err)
	}

	right := &dto.LoginRequest{Identifier: "stu01", Password: testPassword}
	if _, err := svc.Login(ctx, right); !errors.Is(err, apperrors.ErrTooManyAttempts) {
		t.Fatalf("locked identifier accepted the right password: %v", err)
	}

	now = now.Add(6 * time.Minute)
	if _, err := svc.Login(ctx, right); err != nil {
		t.Fatalf("login after the window: %v", err)
	}
	if _, ok := sessions.failures["stu01"]; ok {
		t.Error("failure counter not cleared by a successful login")
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, sessions := newTestAuthService(t, 15*time.Minute)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "ghost", Password: testPassword})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sessions.failures["ghost"] == nil {
		t.Error("unknown identifier not counted")
	}
}

func TestAuthService_Login_DeletedUser(t *testing.T) {
	svc, users, _ := newTestAuthService(t, 15*time.Minute)
	u := addAccount(t, users, "gone", models.RoleCompany)
	u.DeletedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, models.LocalZone)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "gone", Password: testPassword})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("soft deleted account: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	// a negative lifetime issues access tokens that are already expired
	svc, users, sessions := newTestAuthService(t, -time.Minute)
	ctx := context.Background()
	addAccount(t, users, "stu02", models.RoleStudent)

	login, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "stu02", Password: testPassword})
	if err != nil {
		t.Fatal(err)
	}

	req := &dto.RefreshTokenRequest{AccessToken: login.Token.AccessToken, RefreshToken: login.Token.RefreshToken}
	rotated, err := svc.RefreshToken(ctx, req)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if rotated.Token.RefreshToken == login.Token.RefreshToken {
		t.Error("refresh token not rotated")
	}
	if len(sessions.sessions) != 1 {
		t.Errorf("%d sessions after rotation, want 1", len(sessions.sessions))
	}

	if _, err := svc.RefreshToken(ctx, req); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Errorf("reused refresh token: expected ErrTokenNotFound, got %v", err)
	}
}

func TestAuthService_RefreshToken_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("access token still valid", func(t *testing.T) {
		svc, users, _ := newTestAuthService(t, 15*time.Minute)
		addAccount(t, users, "stu03", models.RoleStudent)
		login, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "stu03", Password: testPassword})
		if err != nil {
			t.Fatal(err)
		}
		_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{AccessToken: login.Token.AccessToken, RefreshToken: login.Token.RefreshToken})
		if !errors.Is(err, apperrors.ErrTokenStillValid) {
			t.Errorf("expected ErrTokenStillValid, got %v", err)
		}
	})

	t.Run("refresh token of another account", func(t *testing.T) {
		svc, users, _ := newTestAuthService(t, -time.Minute)
		addAccount(t, users, "alice", models.RoleStudent)
		addAccount(t, users, "bob", models.RoleStudent)
		alice, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "alice", Password: testPassword})
		if err != nil {
			t.Fatal(err)
		}
		bob, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "bob", Password: testPassword})
		if err != nil {
			t.Fatal(err)
		}
		_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{AccessToken: alice.Token.AccessToken, RefreshToken: bob.Token.RefreshToken})
		if !errors.Is(err, apperrors.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("garbage access token", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t, -time.Minute)
		_, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{AccessToken: "a.b.c", RefreshToken: uuid.NewString()})
		if !errors.Is(err, apperrors.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc, users, sessions := newTestAuthService(t, 15*time.Minute)
	ctx := context.Background()
	addAccount(t, users, "co01", models.RoleCompany)

	login, err := svc.Login(ctx, &dto.LoginRequest{Identifier: "co01", Password: testPassword})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, login.Token.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Error("session survived logout")
	}
	if err := svc.Logout(ctx, login.Token.RefreshToken); err != nil {
		t.Errorf("second logout: %v", err)
	}
}
