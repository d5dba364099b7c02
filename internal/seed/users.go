package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
	"github.com/group7/resmatch/internal/pkg/apperrors"
)

const (
	contactSuffix    = "聯絡人"
	maxSoftDeleteAge = 2 * 365
	suffixMin        = 100000
	suffixMax        = 999999
)

// Population is the output of the user stage.
type Population struct {
	// Users holds every account in output order. Later stages iterate in this order.
	Users []models.User
	// Departments carries ContactUserID for every department.
	Departments []models.Department
	// Admin is the contact of the admin department, who reviews registration applications.
	Admin uuid.UUID
}

// Students returns the student accounts in output order.
func (p Population) Students() []models.User {
	return models.FilterByRole(p.Users, models.RoleStudent)
}

// Suppliers returns the department and company accounts in output order.
func (p Population) Suppliers() []models.User {
	return models.FilterByRole(p.Users, models.RoleDepartment, models.RoleCompany)
}

type userFactory struct {
	src       *Source
	now       time.Time
	hash      string
	emails    map[string]struct{}
	usernames map[string]struct{}
	seq       int
}

// GenerateUsers creates one contact per department, then the company contacts, then the students,
// numbering them sequentially in that order before shuffling the whole population.
func GenerateUsers(src *Source, cfg config.GeneratorConfig, departments []models.Department, now time.Time) (Population, error) {
	if len(departments) == 0 {
		return Population{}, apperrors.ErrNoDepartments
	}

	f := &userFactory{
		src:       src,
		now:       now,
		hash:      cfg.PasswordHash,
		emails:    make(map[string]struct{}),
		usernames: make(map[string]struct{}),
	}

	depts := make([]models.Department, len(departments))
	copy(depts, departments)

	users := make([]models.User, 0, len(depts)+cfg.NumCompanies+cfg.NumStudents)
	var admin uuid.UUID
	for i := range depts {
		u := f.department(depts[i], cfg.AdminDepartmentCode)
		depts[i].ContactUserID = u.ID
		if u.IsAdmin && admin == uuid.Nil {
			admin = u.ID
		}
		users = append(users, u)
	}
	if admin == uuid.Nil {
		admin = depts[0].ContactUserID
	}

	for i := 0; i < cfg.NumCompanies; i++ {
		users = append(users, f.company(i, i < cfg.NumSoftDeletedCompanies))
	}
	for i := 0; i < cfg.NumStudents; i++ {
		users = append(users, f.student(i, i < cfg.NumSoftDeletedStudents, depts))
	}

	shuffle(src, users)

	return Population{Users: users, Departments: depts, Admin: admin}, nil
}

func (f *userFactory) base(role models.Role, registered time.Time) models.User {
	f.seq++
	return models.User{
		ID:           SequentialID(KindUser, f.seq),
		RealName:     f.src.Name(),
		Email:        uniqueString(f.emails, f.src.Email),
		PasswordHash: f.hash,
		Role:         role,
		RegisteredAt: registered,
		DeletedAt:    models.ActiveSentinel,
	}
}

func (f *userFactory) department(d models.Department, adminCode string) models.User {
	registered := f.registeredBetween(-5, -1)
	u := f.base(models.RoleDepartment, registered)
	prefix := usernamePrefix(d)
	u.Username = uniqueString(f.usernames, func() string {
		return fmt.Sprintf("%s_host_%d", prefix, f.suffix())
	})
	u.Nickname = d.Name + contactSuffix
	u.IsAdmin = adminCode != "" && d.Code == adminCode
	return u
}

func (f *userFactory) company(i int, deleted bool) models.User {
	registered := f.registeredBetween(-3, 0)
	u := f.base(models.RoleCompany, registered)
	name := f.src.Company()
	u.CompanyName = name
	u.Username = uniqueString(f.usernames, func() string {
		return fmt.Sprintf("comp_%d_%d", i, f.suffix())
	})
	u.Nickname = strings.ReplaceAll(strings.TrimSpace(name), " ", "") + contactSuffix
	if deleted {
		u.DeletedAt = f.softDeleteAt(registered)
	}
	return u
}

func (f *userFactory) student(i int, deleted bool, depts []models.Department) models.User {
	registered := f.registeredBetween(-4, 0)
	u := f.base(models.RoleStudent, registered)
	u.Username = uniqueString(f.usernames, func() string {
		return fmt.Sprintf("std_%d_%d", i, f.suffix())
	})
	if f.src.Chance(0.5) {
		u.Nickname = f.src.FirstName()
	} else {
		u.Nickname = f.src.LastName()
	}
	if deleted {
		u.DeletedAt = f.softDeleteAt(registered)
	}
	u.MainDepartmentID = pick(f.src, depts).ID
	return u
}

// registeredBetween draws a registration instant between now+fromYears and now+toYears.
func (f *userFactory) registeredBetween(fromYears, toYears int) time.Time {
	return f.src.TimeBetween(f.now.AddDate(fromYears, 0, 0), f.now.AddDate(toYears, 0, 0)).In(models.LocalZone)
}

// softDeleteAt is 1 to 730 days after registration, capped at now.
func (f *userFactory) softDeleteAt(registered time.Time) time.Time {
	at := registered.AddDate(0, 0, f.src.IntRange(1, maxSoftDeleteAge))
	if at.After(f.now) {
		return f.now.In(models.LocalZone).Truncate(time.Second)
	}
	return at
}

func (f *userFactory) suffix() int {
	return f.src.IntRange(suffixMin, suffixMax)
}
