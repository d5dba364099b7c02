package seed

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/helpers"
)

var industries = []string{
	"科技業", "生技業", "服務業", "金融業", "醫療業", "教育業", "餐飲業", "零售業", "製造業", "建築業",
	"運輸業", "物流業", "能源業", "農業", "漁業", "林業", "娛樂業", "媒體業", "廣告業", "旅遊業",
	"保險業", "電信業", "資訊服務業", "軟體業", "硬體業", "半導體業", "汽車業", "航太業", "化工業", "製藥業",
	"時尚業", "美容業", "健身業", "房地產業", "法律業", "會計業", "諮詢業", "非營利組織", "藝術業", "音樂業",
	"影視業", "出版業", "電子商務", "遊戲業", "體育產業", "環保產業", "醫美業", "家具業", "餐飲連鎖業", "跨境電商",
	"社群媒體業", "智能家居業",
}

const registrationReviewLead = time.Hour

var levels = []models.Level{models.LevelStandard, models.LevelCombined}

// BuildCompanies derives one company profile per company account, in account order.
// The profile ID reuses the account's sequence number in the company range.
func BuildCompanies(src *Source, users []models.User) ([]models.Company, error) {
	contacts := models.FilterByRole(users, models.RoleCompany)
	companies := make([]models.Company, 0, len(contacts))
	for _, u := range contacts {
		n, err := SequenceOf(u.ID)
		if err != nil {
			return nil, fmt.Errorf("company contact %s: %w", u.ID, err)
		}
		companies = append(companies, models.Company{
			ID:            SequentialID(KindCompany, n),
			Name:          u.CompanyName,
			ContactUserID: u.ID,
			Industry:      pick(src, industries),
		})
	}
	return companies, nil
}

// EntryYear is the local-epoch academic year in which the student registered.
func EntryYear(u models.User) int {
	return helpers.AcademicYear(u.RegisteredAt)
}

// BuildStudentProfiles derives a profile per student account, in account order.
// Student numbers are level, two-digit entry year, three-character department prefix and
// a three-digit counter kept per (entry year, department prefix).
func BuildStudentProfiles(src *Source, users []models.User, currentYear int) []models.StudentProfile {
	type counterKey struct {
		year int
		dept string
	}
	counters := make(map[counterKey]int)

	students := models.FilterByRole(users, models.RoleStudent)
	profiles := make([]models.StudentProfile, 0, len(students))
	for _, u := range students {
		entry := EntryYear(u)
		level := pick(src, levels)
		prefix := firstRunes(u.MainDepartmentID, 3)

		key := counterKey{year: entry, dept: prefix}
		counters[key]++

		profiles = append(profiles, models.StudentProfile{
			UserID:       u.ID,
			StudentID:    fmt.Sprintf("%s%02d%s%03d", level, entry%100, prefix, counters[key]),
			DepartmentID: u.MainDepartmentID,
			EntryYear:    entry,
			Grade:        currentYear - entry + 1,
			Level:        level,
		})
	}
	return profiles
}

// BuildRegistrationApplications records the approved request behind every department and company
// account, reviewed by admin, followed by extra pending or rejected requests from sampled companies.
func BuildRegistrationApplications(src *Source, users []models.User, admin uuid.UUID, extra int) ([]models.RegistrationApplication, error) {
	departments := models.FilterByRole(users, models.RoleDepartment)
	companies := models.FilterByRole(users, models.RoleCompany)

	approved := slices.Concat(departments, companies)
	apps := make([]models.RegistrationApplication, 0, len(approved)+extra)
	for _, u := range approved {
		app, err := newRegistration(src, u, models.RegistrationApproved, admin)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	for _, u := range sample(src, companies, extra) {
		status := pick(src, []models.RegistrationStatus{models.RegistrationPending, models.RegistrationRejected})
		app, err := newRegistration(src, u, status, admin)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// newRegistration dates the request two days before the account was created.
// Decided requests were reviewed an hour before.
func newRegistration(src *Source, u models.User, status models.RegistrationStatus, admin uuid.UUID) (models.RegistrationApplication, error) {
	id, err := newRandomID(src)
	if err != nil {
		return models.RegistrationApplication{}, fmt.Errorf("failed to draw application id: %w", err)
	}
	app := models.RegistrationApplication{
		ID:            id,
		User:          u,
		Status:        status,
		SubmitTime:    u.RegisteredAt.AddDate(0, 0, -2),
		ReviewComment: string(status),
	}
	if status != models.RegistrationPending {
		reviewed := u.RegisteredAt.Add(-registrationReviewLead)
		reviewer := admin
		app.ReviewTime = &reviewed
		app.ReviewedBy = &reviewer
	}
	return app, nil
}
