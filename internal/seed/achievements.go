package seed

import (
	"fmt"
	"time"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
	"github.com/group7/resmatch/internal/pkg/helpers"
)

const (
	unknownSource         = "某單位"
	descriptionSuffix     = "相關說明。"
	fallbackDeptEmail     = "dept@example.com"
	fallbackCompanyEmail  = "comp@example.com"
	professorEmailPattern = "prof%d@example.com"

	rejectedBelow     = 0.05
	unrecognizedBelow = 0.15
)

var (
	startOffset    = span{30, 900}
	longDuration   = span{30, 200}
	shortDuration  = span{1, 90}
	creationOffset = span{1, 30}
	voteDelay      = span{2, 3}
	decisionDelay  = span{1, 10}

	rejectedFollowUp     = []models.VerificationStatus{models.VerificationApproved, models.VerificationRejected, models.VerificationPending}
	unrecognizedOutcomes = []models.VerificationStatus{models.VerificationPending, models.VerificationApproved}
)

// GenerateAchievements gives every student profile 0..MaxAchievementsPerStudent achievements dated
// after the September 1st of the entry year.
func GenerateAchievements(src *Source, cfg config.GeneratorConfig, profiles []models.StudentProfile, departments []models.Department, companies []models.Company) []models.Achievement {
	var out []models.Achievement
	for _, p := range profiles {
		n := src.IntRange(0, cfg.MaxAchievementsPerStudent)
		entry := time.Date(helpers.FromROCYear(p.EntryYear), time.September, 1, 0, 0, 0, 0, models.LocalZone)

		for i := 0; i < n; i++ {
			category := pick(src, models.AchievementCategories)
			title := achievementTitle(src, category, sourceName(src, departments, companies))

			start := helpers.AddDays(entry, src.IntRange(startOffset.min, startOffset.max))
			length := shortDuration
			if category == models.CategoryIntern || category == models.CategoryProject {
				length = longDuration
			}
			end := helpers.AddDays(start, src.IntRange(length.min, length.max))
			created := helpers.AddDays(start, src.IntRange(creationOffset.min, creationOffset.max))

			out = append(out, models.Achievement{
				ID:           SequentialID(KindAchievement, len(out)+1),
				UserID:       p.UserID,
				Category:     category,
				Title:        title,
				Description:  title + descriptionSuffix,
				StartDate:    start,
				EndDate:      end,
				CreationDate: created,
				Status:       achievementStatus(src.Rand.Float64()),
			})
		}
	}
	return out
}

func sourceName(src *Source, departments []models.Department, companies []models.Company) string {
	if src.Chance(0.5) && len(departments) > 0 {
		return pick(src, departments).Name
	}
	if len(companies) > 0 {
		return pick(src, companies).Name
	}
	return unknownSource
}

func achievementTitle(src *Source, category models.AchievementCategory, source string) string {
	switch category {
	case models.CategoryCompetition:
		return fmt.Sprintf("%s競賽第%d名", source, src.IntRange(1, 10))
	case models.CategoryResearch:
		return source + "研究成果"
	case models.CategoryIntern:
		return source + "實習計畫"
	case models.CategoryProject:
		return source + "專案合作"
	}
	return source + "參與活動"
}

func achievementStatus(r float64) models.AchievementStatus {
	switch {
	case r < rejectedBelow:
		return models.AchievementRejected
	case r < unrecognizedBelow:
		return models.AchievementUnrecognized
	}
	return models.AchievementRecognized
}

// GenerateVerifications casts 1..MaxVerifiersPerAchievement votes on every achievement.
// Votes agree with the achievement status: a recognized achievement is approved by everyone and a
// rejected one is rejected by its first verifier. Only decided votes carry DecidedAt.
func GenerateVerifications(src *Source, cfg config.GeneratorConfig, achievements []models.Achievement, deptUsers, companyUsers []models.User) []models.AchievementVerification {
	var out []models.AchievementVerification
	for _, a := range achievements {
		n := src.IntRange(1, cfg.MaxVerifiersPerAchievement)
		for i := 0; i < n; i++ {
			typ := pick(src, models.VerifierTypes)
			email := verifierEmail(src, typ, i, deptUsers, companyUsers)
			status := voteFor(src, a.Status, i)

			created := a.CreationDate.Add(time.Duration(src.IntRange(voteDelay.min, voteDelay.max)) * time.Minute)
			v := models.AchievementVerification{
				AchievementID: a.ID,
				VerifierType:  typ,
				VerifierEmail: email,
				Status:        status,
				CreatedAt:     created,
			}
			if status != models.VerificationPending {
				decided := created.Add(time.Duration(src.IntRange(decisionDelay.min, decisionDelay.max)) * time.Minute)
				v.DecidedAt = &decided
			}
			out = append(out, v)
		}
	}
	return out
}

func verifierEmail(src *Source, typ models.VerifierType, i int, deptUsers, companyUsers []models.User) string {
	switch typ {
	case models.VerifierDepartment:
		if len(deptUsers) == 0 {
			return fallbackDeptEmail
		}
		return pick(src, deptUsers).Email
	case models.VerifierCompany:
		if len(companyUsers) == 0 {
			return fallbackCompanyEmail
		}
		return pick(src, companyUsers).Email
	}
	return fmt.Sprintf(professorEmailPattern, i)
}

func voteFor(src *Source, status models.AchievementStatus, i int) models.VerificationStatus {
	switch status {
	case models.AchievementRecognized:
		return models.VerificationApproved
	case models.AchievementRejected:
		if i == 0 {
			return models.VerificationRejected
		}
		return pick(src, rejectedFollowUp)
	}
	return pick(src, unrecognizedOutcomes)
}
