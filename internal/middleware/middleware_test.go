package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenExp:  exp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "resmatch",
	})
}

func decodeError(t *testing.T, body io.Reader) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestJWTAuth(t *testing.T) {
	jwtService := newJWT(15 * time.Minute)
	mw := NewAuthMiddleware(jwtService)
	user := &models.User{ID: uuid.New(), Role: models.RoleCompany}
	pair, err := jwtService.GenerateTokenPair(user)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := newJWT(-time.Minute).GenerateTokenPair(user)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/companies-only", mw.JWTAuth(), mw.RoleRequired(models.RoleCompany, models.RoleDepartment), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			t.Error("user id missing from context")
		}
		c.String(http.StatusOK, id.String())
	})
	r.GET("/students-only", mw.JWTAuth(), mw.RoleRequired(models.RoleStudent), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
		code   dto.ErrorCode
	}{
		{"valid", "/companies-only", "Bearer " + pair.AccessToken, http.StatusOK, ""},
		{"missing header", "/companies-only", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"not a jwt", "/companies-only", "Bearer opaque", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"expired", "/companies-only", "Bearer " + expired.AccessToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"foreign signature", "/companies-only", "Bearer " + mustToken(t, user), http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"wrong role", "/students-only", "Bearer " + pair.AccessToken, http.StatusForbidden, dto.ErrorCodeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.code == "" {
				if w.Body.String() != user.ID.String() {
					t.Errorf("body = %q", w.Body.String())
				}
				return
			}
			if got := decodeError(t, w.Body); got.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Error.Code, tt.code)
			}
		})
	}
}

func mustToken(t *testing.T, user *models.User) string {
	t.Helper()
	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "some-other-secret", AccessTokenExp: time.Minute})
	pair, err := other.GenerateTokenPair(user)
	if err != nil {
		t.Fatal(err)
	}
	return pair.AccessToken
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{fmt.Errorf("%w: avgGpa", apperrors.ErrValidationFailed), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrTokenStillValid, http.StatusBadRequest, dto.ErrorCodeTokenStillValid},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
		{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrNotEligible, http.StatusForbidden, dto.ErrorCodeNotEligible},
		{fmt.Errorf("lookup: %w", apperrors.ErrResourceNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrAlreadyApplied, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrNoEligibleStudents, http.StatusUnprocessableEntity, dto.ErrorCodeNoEligibleStudent},
		{apperrors.ErrTooManyAttempts, http.StatusTooManyRequests, dto.ErrorCodeTooManyAttempts},
		{errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			resp := decodeError(t, w.Body)
			if resp.Success || resp.Error.Code != tt.code {
				t.Errorf("response = %+v", resp.Error)
			}
		})
	}
}

func TestHandleAPIError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, errors.New("pq: password authentication failed for user admin"))

	if strings.Contains(w.Body.String(), "password authentication") {
		t.Errorf("internal error text leaked: %s", w.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/resources/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 2; i++ {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/resources/"+uuid.NewString(), nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	for _, want := range []string{
		`resmatch_http_requests_total{method="GET",route="/resources/:id",status="204"} 2`,
		`resmatch_http_requests_total{method="GET",route="unmatched",status="404"} 1`,
		`resmatch_http_request_duration_seconds_count{method="GET",route="/resources/:id"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestRequestLogger(t *testing.T) {
	var sb strings.Builder
	lgr := zerolog.New(&sb)

	r := gin.New()
	r.Use(RequestLogger(lgr))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if !strings.Contains(sb.String(), `"path":"/health"`) || !strings.Contains(sb.String(), `"status":200`) {
		t.Errorf("log line = %q", sb.String())
	}
}
