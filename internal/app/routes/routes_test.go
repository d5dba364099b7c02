package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/controllers"
	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/app/models/dto"
	"github.com/group7/resmatch/internal/middleware"
	"github.com/group7/resmatch/internal/pkg/auth"
	"github.com/group7/resmatch/internal/pkg/logger"
)

type nopAuth struct{}

func (nopAuth) Register(context.Context, *dto.RegisterRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{}, nil
}
func (nopAuth) Login(context.Context, *dto.LoginRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{}, nil
}
func (nopAuth) RefreshToken(context.Context, *dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{}, nil
}
func (nopAuth) Logout(context.Context, string) error { return nil }

type nopResources struct{}

func (nopResources) Create(context.Context, uuid.UUID, *dto.CreateResourceRequest) (uuid.UUID, error) {
	return uuid.New(), nil
}
func (nopResources) ListAvailable(context.Context) ([]dto.ResourceResponse, error) {
	return []dto.ResourceResponse{}, nil
}
func (nopResources) ListMine(context.Context, uuid.UUID) ([]dto.ResourceResponse, error) {
	return []dto.ResourceResponse{}, nil
}
func (nopResources) Get(context.Context, uuid.UUID) (*dto.ResourceResponse, error) {
	return &dto.ResourceResponse{}, nil
}
func (nopResources) AddCondition(context.Context, uuid.UUID, uuid.UUID, *dto.UpsertConditionRequest) (*dto.ConditionAddedResponse, error) {
	return &dto.ConditionAddedResponse{}, nil
}
func (nopResources) UpsertCondition(context.Context, uuid.UUID, uuid.UUID, *dto.UpsertConditionRequest) (*dto.ConditionResponse, error) {
	return &dto.ConditionResponse{}, nil
}
func (nopResources) ListConditions(context.Context, uuid.UUID, uuid.UUID) ([]dto.ConditionResponse, error) {
	return []dto.ConditionResponse{}, nil
}
func (nopResources) DeleteCondition(context.Context, uuid.UUID, uuid.UUID, string) error { return nil }
func (nopResources) DeleteConditions(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 0, nil
}

type nopStudents struct{}

func (nopStudents) Profile(context.Context, uuid.UUID) (*dto.StudentProfileResponse, error) {
	return &dto.StudentProfileResponse{}, nil
}
func (nopStudents) UpsertProfile(context.Context, uuid.UUID, *dto.UpsertStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	return &dto.StudentProfileResponse{}, nil
}
func (nopStudents) GPA(context.Context, uuid.UUID) ([]dto.SemesterGPAResponse, error) {
	return []dto.SemesterGPAResponse{}, nil
}
func (nopStudents) Achievements(context.Context, uuid.UUID) ([]dto.AchievementResponse, error) {
	return []dto.AchievementResponse{}, nil
}

type nopApplications struct{}

func (nopApplications) ListMine(context.Context, uuid.UUID) ([]dto.ApplicationResponse, error) {
	return []dto.ApplicationResponse{}, nil
}
func (nopApplications) Apply(context.Context, uuid.UUID, uuid.UUID) (*dto.ApplicationResponse, error) {
	return &dto.ApplicationResponse{}, nil
}
func (nopApplications) Withdraw(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "routes-test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "resmatch",
	})
	lgr := logger.Nop()
	router := gin.New()
	SetupRouter(router, Controllers{
		Auth:        controllers.NewAuthController(nopAuth{}, lgr),
		Resource:    controllers.NewResourceController(nopResources{}, lgr),
		Student:     controllers.NewStudentController(nopStudents{}, lgr),
		Application: controllers.NewApplicationController(nopApplications{}, lgr),
	}, middleware.NewAuthMiddleware(jwtService))
	return router, jwtService
}

func bearer(t *testing.T, jwtService *auth.JWTService, role models.Role) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(&models.User{ID: uuid.New(), Role: role})
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + pair.AccessToken
}

func TestSetupRouter_Access(t *testing.T) {
	router, jwtService := newTestRouter(t)
	resourcePath := "/api/v1/resources/" + uuid.NewString()

	tests := []struct {
		name   string
		method string
		path   string
		role   models.Role
		want   int
	}{
		{"public login", http.MethodPost, "/api/v1/auth/login", "", http.StatusBadRequest},
		{"listing needs a token", http.MethodGet, "/api/v1/resources", "", http.StatusUnauthorized},
		{"listing for a student", http.MethodGet, "/api/v1/resources", models.RoleStudent, http.StatusOK},
		{"single resource", http.MethodGet, resourcePath, models.RoleCompany, http.StatusOK},
		{"own resources for a department", http.MethodGet, "/api/v1/resources/my", models.RoleDepartment, http.StatusOK},
		{"own resources for a student", http.MethodGet, "/api/v1/resources/my", models.RoleStudent, http.StatusForbidden},
		{"conditions for a company", http.MethodGet, resourcePath + "/conditions", models.RoleCompany, http.StatusOK},
		{"conditions for a student", http.MethodGet, resourcePath + "/conditions", models.RoleStudent, http.StatusForbidden},
		{"delete all conditions", http.MethodDelete, resourcePath + "/conditions", models.RoleDepartment, http.StatusOK},
		{"delete one condition", http.MethodDelete, resourcePath + "/conditions/7050", models.RoleDepartment, http.StatusOK},
		{"student profile", http.MethodGet, "/api/v1/student/profile", models.RoleStudent, http.StatusOK},
		{"student profile for a company", http.MethodGet, "/api/v1/student/profile", models.RoleCompany, http.StatusForbidden},
		{"gpa", http.MethodGet, "/api/v1/student/gpa", models.RoleStudent, http.StatusOK},
		{"achievements", http.MethodGet, "/api/v1/student/achievements", models.RoleStudent, http.StatusOK},
		{"applications", http.MethodGet, "/api/v1/student/applications", models.RoleStudent, http.StatusOK},
		{"withdraw", http.MethodDelete, "/api/v1/student/applications/" + uuid.NewString(), models.RoleStudent, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/nothing", models.RoleStudent, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			if tt.role != "" {
				req.Header.Set("Authorization", bearer(t, jwtService, tt.role))
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d: %s", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}
