package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/group7/resmatch/internal/pkg/auth"
)

// DefaultPasswordHash is the bcrypt hash shared by every generated account.
const DefaultPasswordHash = "$2b$10$mSAYMiRM1448LuLpBqQOHOJ8H0941/3Rc1a9bSRkPmFRJC6mDVQ9i"

// Config structure represents the application configuration
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Server    ServerConfig    `yaml:"server"`
	JWT       JWTConfig       `yaml:"jwt"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeneratorConfig holds the population sizes and the probabilities of the seed pipeline.
type GeneratorConfig struct {
	Seed          int64  `yaml:"seed" env:"GEN_SEED"`
	ReferenceTime string `yaml:"reference_time" env:"GEN_REFERENCE_TIME" validate:"required"`
	// CurrentROCYear is the academic year in progress; 0 derives it from ReferenceTime.
	CurrentROCYear int `yaml:"current_roc_year" env:"GEN_CURRENT_ROC_YEAR" validate:"gte=0"`

	NumStudents              int `yaml:"num_students" env:"GEN_NUM_STUDENTS" validate:"gte=0"`
	NumCompanies             int `yaml:"num_companies" env:"GEN_NUM_COMPANIES" validate:"gte=0"`
	NumSoftDeletedStudents   int `yaml:"num_soft_deleted_students" env:"GEN_NUM_SOFT_DELETED_STUDENTS" validate:"gte=0,ltefield=NumStudents"`
	NumSoftDeletedCompanies  int `yaml:"num_soft_deleted_companies" env:"GEN_NUM_SOFT_DELETED_COMPANIES" validate:"gte=0,ltefield=NumCompanies"`
	NumResources             int `yaml:"num_resources" env:"GEN_NUM_RESOURCES" validate:"gte=0"`
	NumSoftDeletedResources  int `yaml:"num_soft_deleted_resources" env:"GEN_NUM_SOFT_DELETED_RESOURCES" validate:"gte=0,ltefield=NumResources"`
	ExtraCompanyApplications int `yaml:"extra_company_applications" env:"GEN_EXTRA_COMPANY_APPLICATIONS" validate:"gte=0"`

	CoursesPerSemester    int       `yaml:"courses_per_semester" env:"GEN_COURSES_PER_SEMESTER" validate:"gt=0"`
	MinCreditsPerSemester int       `yaml:"min_credits_per_semester" env:"GEN_MIN_CREDITS_PER_SEMESTER" validate:"gt=0"`
	CourseCreditChoices   []int     `yaml:"course_credit_choices" env:"GEN_COURSE_CREDIT_CHOICES" validate:"min=1,dive,gt=0"`
	ScoreChoices          []float64 `yaml:"score_choices" env:"GEN_SCORE_CHOICES" validate:"min=1,dive,gte=0,lte=4.3"`

	TransferProbability    float64 `yaml:"transfer_probability" env:"GEN_TRANSFER_PROBABILITY" validate:"gte=0,lte=1"`
	MinorProbability       float64 `yaml:"minor_probability" env:"GEN_MINOR_PROBABILITY" validate:"gte=0,lte=1"`
	DoubleMajorProbability float64 `yaml:"double_major_probability" env:"GEN_DOUBLE_MAJOR_PROBABILITY" validate:"gte=0,lte=1"`

	MaxApplicationsPerStudent  int     `yaml:"max_applications_per_student" env:"GEN_MAX_APPLICATIONS_PER_STUDENT" validate:"gt=0"`
	MaxAchievementsPerStudent  int     `yaml:"max_achievements_per_student" env:"GEN_MAX_ACHIEVEMENTS_PER_STUDENT" validate:"gte=0"`
	MaxVerifiersPerAchievement int     `yaml:"max_verifiers_per_achievement" env:"GEN_MAX_VERIFIERS_PER_ACHIEVEMENT" validate:"gt=0"`
	PushProbability            float64 `yaml:"push_probability" env:"GEN_PUSH_PROBABILITY" validate:"gte=0,lte=1"`
	MaxPushesPerResource       int     `yaml:"max_pushes_per_resource" env:"GEN_MAX_PUSHES_PER_RESOURCE" validate:"gt=0"`

	BatchSize           int    `yaml:"batch_size" env:"GEN_BATCH_SIZE" validate:"gt=0"`
	AdminDepartmentCode string `yaml:"admin_department_code" env:"GEN_ADMIN_DEPARTMENT_CODE"`
	PasswordHash        string `yaml:"password_hash" env:"GEN_PASSWORD_HASH" validate:"required"`
}

// InputConfig points at the tabular input files.
type InputConfig struct {
	DepartmentCSV string `yaml:"department_csv" env:"INPUT_DEPARTMENT_CSV" validate:"required"`
	CourseCSV     string `yaml:"course_csv" env:"INPUT_COURSE_CSV"`
}

// OutputConfig controls where SQL scripts are written.
type OutputConfig struct {
	Dir        string `yaml:"dir" env:"OUTPUT_DIR" validate:"required"`
	MergedFile string `yaml:"merged_file" env:"OUTPUT_MERGED_FILE" validate:"required"`
}

// DatabaseConfig is only needed by the load command.
type DatabaseConfig struct {
	Host            string `yaml:"host" env:"DB_HOST"`
	Port            string `yaml:"port" env:"DB_PORT"`
	User            string `yaml:"user" env:"DB_USER"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" validate:"gt=0"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	// LoadTimeout bounds the whole load command; unparsable values fall back to five minutes.
	LoadTimeout string `yaml:"load_timeout" env:"DB_LOAD_TIMEOUT"`
}

// ServerConfig holds the HTTP API settings used by the serve command.
type ServerConfig struct {
	Port           string   `yaml:"port" env:"SERVER_PORT" validate:"required,numeric"`
	Mode           string   `yaml:"mode" env:"SERVER_MODE" validate:"oneof=debug release production test"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
}

// JWTConfig holds token signing settings. Expirations are duration strings.
type JWTConfig struct {
	Secret                 string `yaml:"secret" env:"JWT_SECRET" validate:"required,min=16"`
	AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
	RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
	Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
}

// AuthConfig controls login throttling.
type AuthConfig struct {
	MaxLoginFailures   int    `yaml:"max_login_failures" env:"AUTH_MAX_LOGIN_FAILURES" validate:"gt=0"`
	LoginFailureWindow string `yaml:"login_failure_window" env:"AUTH_LOGIN_FAILURE_WINDOW"`
}

// LoggingConfig selects level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
	Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json text"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// The file is optional; defaults plus environment are a complete configuration.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns a configuration populated with the stock demo population.
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	g := &config.Generator
	g.Seed = 42
	g.ReferenceTime = "2025-10-01T12:00:00+08:00"
	g.NumStudents = 500
	g.NumCompanies = 50
	g.NumSoftDeletedStudents = 5
	g.NumSoftDeletedCompanies = 5
	g.NumResources = 200
	g.NumSoftDeletedResources = 5
	g.ExtraCompanyApplications = 5
	g.CoursesPerSemester = 50
	g.MinCreditsPerSemester = 10
	g.CourseCreditChoices = []int{2, 3, 4}
	g.ScoreChoices = []float64{0, 1.7, 2.0, 2.3, 2.7, 3.0, 3.3, 3.7, 4.0, 4.3}
	g.TransferProbability = 0.15
	g.MinorProbability = 0.20
	g.DoubleMajorProbability = 0.12
	g.MaxApplicationsPerStudent = 5
	g.MaxAchievementsPerStudent = 6
	g.MaxVerifiersPerAchievement = 3
	g.PushProbability = 0.01
	g.MaxPushesPerResource = 1000
	g.BatchSize = 1000
	g.AdminDepartmentCode = "7050"
	g.PasswordHash = DefaultPasswordHash

	config.Input.DepartmentCSV = "data/departments.csv"
	config.Input.CourseCSV = "data/courses.csv"

	config.Output.Dir = "out"
	config.Output.MergedFile = "merged.sql"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "resource_system"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 1
	config.Database.MaxOpenConns = 4
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"
	config.Database.LoadTimeout = "5m"

	config.Server.Port = "8080"
	config.Server.Mode = "debug"
	config.Server.AllowedOrigins = []string{"http://localhost:5173"}

	config.JWT.Secret = "resmatch-development-secret"
	config.JWT.AccessTokenExpiration = "15m"
	config.JWT.RefreshTokenExpiration = "168h"
	config.JWT.Issuer = "resmatch"

	config.Auth.MaxLoginFailures = 5
	config.Auth.LoginFailureWindow = "5m"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate ensures that the configuration is valid
func (c *Config) Validate() error {
	var errs error
	if err := validate.Struct(c); err != nil {
		errs = errors.Join(errs, err)
	}

	if _, err := c.ReferenceTime(); err != nil {
		errs = errors.Join(errs, fmt.Errorf("invalid reference time: %w", err))
	}

	// The hash is written verbatim into every account row, so it has to be a real bcrypt hash.
	if err := auth.ValidateHash(c.Generator.PasswordHash); err != nil {
		errs = errors.Join(errs, fmt.Errorf("invalid password hash: %w", err))
	}

	if c.Database.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Database.ConnMaxLifetime); err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid connection max lifetime: %w", err))
		}
	}

	for name, v := range map[string]string{
		"access token expiration":  c.JWT.AccessTokenExpiration,
		"refresh token expiration": c.JWT.RefreshTokenExpiration,
		"login failure window":     c.Auth.LoginFailureWindow,
	} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			errs = errors.Join(errs, fmt.Errorf("invalid %s %q", name, v))
		}
	}

	return errs
}

// ReferenceTime parses Generator.ReferenceTime, the instant treated as "now" by the generator.
func (c *Config) ReferenceTime() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Generator.ReferenceTime)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
