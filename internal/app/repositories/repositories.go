package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Repositories holds all the repository instances
type Repositories struct {
	SeedRepository        *SeedRepository
	UserRepository        *UserRepository
	SessionRepository     *SessionRepository
	ResourceRepository    *ResourceRepository
	StudentRepository     *StudentRepository
	ApplicationRepository *ApplicationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool, lgr zerolog.Logger) *Repositories {
	return &Repositories{
		SeedRepository:        NewSeedRepository(db, lgr),
		UserRepository:        NewUserRepository(db, lgr),
		SessionRepository:     NewSessionRepository(db, lgr),
		ResourceRepository:    NewResourceRepository(db, lgr),
		StudentRepository:     NewStudentRepository(db, lgr),
		ApplicationRepository: NewApplicationRepository(db, lgr),
	}
}
