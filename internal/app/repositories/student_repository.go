package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/dberrors"
)

// StudentRepository reads and maintains student profiles and their academic record
type StudentRepository struct {
	db  *pgxpool.Pool
	lgr zerolog.Logger
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool, lgr zerolog.Logger) *StudentRepository {
	return &StudentRepository{
		db:  db,
		lgr: lgr,
	}
}

// Profile returns the student profile of an account.
func (r *StudentRepository) Profile(ctx context.Context, userID uuid.UUID) (*models.StudentProfile, error) {
	query := `
		SELECT user_id, student_id, department_id, entry_year, grade, is_poor
		FROM student_profile
		WHERE user_id = $1
	`

	var p models.StudentProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.StudentID, &p.DepartmentID, &p.EntryYear, &p.Grade, &p.IsPoor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}
	if p.StudentID != "" {
		p.Level = models.Level(p.StudentID[:1])
	}
	return &p, nil
}

// UpsertProfile creates or replaces the student profile of p.UserID.
func (r *StudentRepository) UpsertProfile(ctx context.Context, p *models.StudentProfile) error {
	query := `
		INSERT INTO student_profile (user_id, student_id, department_id, entry_year, grade, is_poor)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			student_id = EXCLUDED.student_id,
			department_id = EXCLUDED.department_id,
			entry_year = EXCLUDED.entry_year,
			grade = EXCLUDED.grade,
			is_poor = EXCLUDED.is_poor
	`
	_, err := r.db.Exec(ctx, query, p.UserID, p.StudentID, p.DepartmentID, p.EntryYear, p.Grade, p.IsPoor)
	switch {
	case err == nil:
		return nil
	case dberrors.IsForeignKeyConstraintError(err, "student_profile_department_id_fkey"):
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownDepartment, p.DepartmentID)
	case dberrors.IsDuplicateConstraintError(err, "student_profile_student_id_key"):
		return fmt.Errorf("%w: student id %s", apperrors.ErrAlreadyExists, p.StudentID)
	}
	r.lgr.Error().Err(err).Str("userID", p.UserID.String()).Msg("Error executing upsert student profile query")
	return fmt.Errorf("error saving student profile: %w", err)
}

// GPASummary returns the average and latest GPA of a student. Both are nil before any graded semester.
func (r *StudentRepository) GPASummary(ctx context.Context, userID uuid.UUID) (models.GPASummary, error) {
	query := `SELECT avg_gpa::text, current_gpa::text FROM student_gpa_summary WHERE user_id = $1`

	var (
		summary   models.GPASummary
		avg, curr *string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(&avg, &curr)
	if errors.Is(err, pgx.ErrNoRows) {
		return summary, nil
	}
	if err != nil {
		return summary, fmt.Errorf("error retrieving gpa summary: %w", err)
	}
	if summary.AvgGPA, err = parseNumeric(avg); err != nil {
		return summary, err
	}
	summary.CurrentGPA, err = parseNumeric(curr)
	return summary, err
}

// ListGPA returns the graded semesters of a student in calendar order.
func (r *StudentRepository) ListGPA(ctx context.Context, userID uuid.UUID) ([]models.SemesterGPA, error) {
	query := `SELECT semester, gpa::text FROM student_gpa WHERE user_id = $1 AND gpa IS NOT NULL`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing gpa: %w", err)
	}
	defer rows.Close()

	var out []models.SemesterGPA
	for rows.Next() {
		var semester, gpa string
		if err := rows.Scan(&semester, &gpa); err != nil {
			return nil, fmt.Errorf("error scanning gpa row: %w", err)
		}
		s, err := models.ParseSemester(semester)
		if err != nil {
			return nil, err
		}
		d, err := parseNumeric(&gpa)
		if err != nil {
			return nil, err
		}
		out = append(out, models.SemesterGPA{UserID: userID, Semester: s, GPA: *d})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gpa rows: %w", err)
	}

	// "112-10" style text ordering is wrong for semesters, so sort after parsing
	sort.Slice(out, func(i, j int) bool { return out[i].Semester.Before(out[j].Semester) })
	return out, nil
}

// ListAchievements returns the achievements of a student, newest first.
func (r *StudentRepository) ListAchievements(ctx context.Context, userID uuid.UUID) ([]models.Achievement, error) {
	query := `
		SELECT achievement_id, user_id, category, title, description, start_date, end_date, creation_date, status
		FROM achievement
		WHERE user_id = $1
		ORDER BY creation_date DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing achievements: %w", err)
	}
	defer rows.Close()

	var out []models.Achievement
	for rows.Next() {
		var (
			a          models.Achievement
			start, end *time.Time
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Category, &a.Title, &a.Description, &start, &end, &a.CreationDate, &a.Status); err != nil {
			return nil, fmt.Errorf("error scanning achievement row: %w", err)
		}
		a.StartDate = localDate(start)
		a.EndDate = localDate(end)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating achievement rows: %w", err)
	}
	return out, nil
}
