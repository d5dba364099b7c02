package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "a-test-secret-of-some-length",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:     "resmatch",
	})
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	user := &models.User{ID: uuid.New(), Role: models.RoleStudent}

	pair, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if pair.ExpiresIn != 900 || pair.RefreshExpiresIn != 7*24*3600 {
		t.Errorf("expiry = %d/%d", pair.ExpiresIn, pair.RefreshExpiresIn)
	}
	if _, err := uuid.Parse(pair.RefreshToken); err != nil {
		t.Errorf("refresh token %q is not opaque uuid: %v", pair.RefreshToken, err)
	}

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleStudent || claims.Subject != user.ID.String() {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	issued := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	pair, err := svc.GenerateTokenPair(&models.User{ID: uuid.New(), Role: models.RoleCompany})
	if err != nil {
		t.Fatal(err)
	}

	svc.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := svc.ValidateToken(pair.AccessToken); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	claims, err := svc.ParseExpired(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseExpired: %v", err)
	}
	if !svc.Expired(claims) {
		t.Error("token an hour past a 15m expiry reported live")
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	svc := testJWTService(15 * time.Minute)
	pair, err := svc.GenerateTokenPair(&models.User{ID: uuid.New(), Role: models.RoleStudent})
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "another-secret-entirely", AccessTokenExp: time.Minute})
	if _, err := other.ValidateToken(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign signature: expected ErrInvalidToken, got %v", err)
	}
	if _, err := other.ParseExpired(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseExpired must still check the signature, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New(), Role: models.RoleStudent})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateToken(unsigned); err == nil {
		t.Error("unsigned token accepted")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer a.b.c", "a.b.c", false},
		{"a.b.c", "a.b.c", false},
		{"  Bearer   a.b.c ", "a.b.c", false},
		{"", "", true},
		{"Bearer opaque", "", true},
		{"Basic dXNlcjpwYXNz", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, %v", tt.header, got, err)
		}
	}
}

func TestHashRefreshToken(t *testing.T) {
	h := HashRefreshToken("token")
	if len(h) != 64 || strings.ToLower(h) != h {
		t.Errorf("hash %q is not 64 lowercase hex characters", h)
	}
	if h == HashRefreshToken("token2") || h != HashRefreshToken("token") {
		t.Error("hash is not a deterministic function of the token")
	}
}
