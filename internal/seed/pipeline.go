package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
	"github.com/group7/resmatch/internal/pkg/apperrors"
	"github.com/group7/resmatch/internal/pkg/logger"
	"github.com/group7/resmatch/internal/pkg/sqlscript"
)

// Dataset is everything a pipeline run produced.
type Dataset struct {
	Users         []models.User
	Departments   []models.Department
	Companies     []models.Company
	Students      []models.StudentProfile
	Registrations []models.RegistrationApplication
	Backfill      []string
	History       AcademicHistory
	Affiliations  []models.Affiliation
	Resources     []models.Resource
	Conditions    []models.ResourceCondition
	Applications  []models.Application
	Achievements  []models.Achievement
	Verifications []models.AchievementVerification
	Pushes        []models.PushRecord
}

// Pipeline generates the demo dataset and writes one script per table plus the merged script.
type Pipeline struct {
	cfg config.Config
	lgr zerolog.Logger
	now time.Time
	src *Source
}

// NewPipeline prepares a run. The random stream is created here so one Pipeline runs once.
func NewPipeline(cfg config.Config, lgr zerolog.Logger) (*Pipeline, error) {
	now, err := cfg.ReferenceTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidConfig, err)
	}
	return &Pipeline{
		cfg: cfg,
		lgr: lgr,
		now: now,
		src: NewSource(cfg.Generator.Seed),
	}, nil
}

// MergedPath is where Run writes the combined script.
func (p *Pipeline) MergedPath() string {
	return filepath.Join(p.cfg.Output.Dir, p.cfg.Output.MergedFile)
}

// Run loads the input tables, executes every stage in order and merges the per-table scripts.
// Each stage's file is written as soon as the stage finishes; files of completed stages stay on
// disk when a later stage fails.
func (p *Pipeline) Run(ctx context.Context) (*Dataset, error) {
	departments, err := LoadDepartments(p.cfg.Input.DepartmentCSV, p.lgr)
	if errors.Is(err, fs.ErrNotExist) {
		p.lgr.Warn().Str("path", p.cfg.Input.DepartmentCSV).Msg("Department table not found")
		return nil, apperrors.ErrNoDepartments
	}
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		p.lgr.Warn().Str("path", p.cfg.Input.DepartmentCSV).Msg("Department table is empty")
		return nil, apperrors.ErrNoDepartments
	}

	courseNames, fallback, err := LoadCourseNames(p.cfg.Input.CourseCSV)
	if err != nil {
		return nil, err
	}
	if fallback {
		p.lgr.Warn().Str("path", p.cfg.Input.CourseCSV).Int("names", len(courseNames)).Msg("Course table missing or empty, using placeholder names")
	}

	p.lgr.Info().
		Int64("seed", p.cfg.Generator.Seed).
		Time("reference_time", p.now).
		Int("departments", len(departments)).
		Int("course_names", len(courseNames)).
		Msg("Starting generation")

	ds, err := p.Generate(ctx, departments, courseNames)
	if err != nil {
		return ds, err
	}

	if err := ctx.Err(); err != nil {
		return ds, err
	}
	if err := sqlscript.Merge(p.cfg.Output.Dir, MergeOrder, p.MergedPath()); err != nil {
		return ds, fmt.Errorf("failed to merge scripts: %w", err)
	}
	p.lgr.Info().Str("file", p.MergedPath()).Int("parts", len(MergeOrder)).Msg("Merged script written")
	return ds, nil
}

// Generate runs the stages against already loaded inputs and writes the per-table scripts.
func (p *Pipeline) Generate(ctx context.Context, departments []models.Department, courseNames []string) (*Dataset, error) {
	g := p.cfg.Generator
	ds := &Dataset{}

	// users and profiles
	if err := ctx.Err(); err != nil {
		return ds, err
	}
	pop, err := GenerateUsers(p.src, g, departments, p.now)
	if err != nil {
		return ds, fmt.Errorf("users: %w", err)
	}
	ds.Users, ds.Departments = pop.Users, pop.Departments
	if err := p.insert("users", FileUsers, userTable, userRows(ds.Users)); err != nil {
		return ds, err
	}
	if err := p.insert("departments", FileDepartmentProfiles, departmentTable, departmentRows(ds.Departments)); err != nil {
		return ds, err
	}

	if ds.Companies, err = BuildCompanies(p.src, ds.Users); err != nil {
		return ds, fmt.Errorf("companies: %w", err)
	}
	if err := p.insert("companies", FileCompanyProfiles, companyTable, companyRows(ds.Companies)); err != nil {
		return ds, err
	}

	currentYear := CurrentAcademicYear(p.now, g.CurrentROCYear)
	ds.Students = BuildStudentProfiles(p.src, ds.Users, currentYear)
	if err := p.insert("students", FileStudentProfiles, studentTable, studentRows(ds.Students)); err != nil {
		return ds, err
	}

	if ds.Registrations, err = BuildRegistrationApplications(p.src, ds.Users, pop.Admin, g.ExtraCompanyApplications); err != nil {
		return ds, fmt.Errorf("registrations: %w", err)
	}
	if err := p.insert("registrations", FileRegistrations, registrationTable, registrationRows(ds.Registrations)); err != nil {
		return ds, err
	}

	ds.Backfill = BackfillStatements(ds.Users, ds.Departments, ds.Companies)
	if err := p.statements("user_fk_update", FileUserFKUpdate, userFKTitle, ds.Backfill); err != nil {
		return ds, err
	}

	// academic history
	if err := ctx.Err(); err != nil {
		return ds, err
	}
	enrollments := BuildEnrollments(ds.Students, currentYear-1)
	ds.History = GenerateAcademicHistory(p.src, g, enrollments, courseNames)
	p.lgr.Debug().Int("offerings", len(ds.History.Catalog)).Msg("Course catalog built")
	if err := p.insert("course_records", FileCourseRecords, courseRecordTable, courseRecordRows(ds.History.Records)); err != nil {
		return ds, err
	}
	if err := p.insert("gpa", FileGPAs, gpaTable, gpaRows(ds.History.GPAs)); err != nil {
		return ds, err
	}

	if err := ctx.Err(); err != nil {
		return ds, err
	}
	ds.Affiliations = GenerateAffiliations(p.src, g, enrollments, ds.Departments)
	if err := p.insert("affiliations", FileAffiliations, affiliationTable, affiliationRows(ds.Affiliations)); err != nil {
		return ds, err
	}

	// resources
	if err := ctx.Err(); err != nil {
		return ds, err
	}
	index := NewSupplierIndex(ds.Departments, ds.Companies)
	if ds.Resources, err = GenerateResources(p.src, g, pop.Suppliers(), index, p.now); err != nil {
		return ds, fmt.Errorf("resources: %w", err)
	}
	if err := p.insert("resources", FileResources, resourceTable, resourceRows(ds.Resources)); err != nil {
		return ds, err
	}
	ds.Conditions = GenerateConditions(p.src, ds.Resources, ds.Departments)
	if err := p.insert("conditions", FileConditions, conditionTable, conditionRows(ds.Conditions)); err != nil {
		return ds, err
	}

	students := pop.Students()
	ds.Applications = GenerateApplications(p.src, g, students, ds.Resources, p.now)
	if err := p.insert("applications", FileApplications, applicationTable, applicationRows(ds.Applications)); err != nil {
		return ds, err
	}

	// achievements
	if err := ctx.Err(); err != nil {
		return ds, err
	}
	ds.Achievements = GenerateAchievements(p.src, g, ds.Students, ds.Departments, ds.Companies)
	if err := p.insert("achievements", FileAchievements, achievementTable, achievementRows(ds.Achievements)); err != nil {
		return ds, err
	}
	deptUsers := models.FilterByRole(ds.Users, models.RoleDepartment)
	companyUsers := models.FilterByRole(ds.Users, models.RoleCompany)
	ds.Verifications = GenerateVerifications(p.src, g, ds.Achievements, deptUsers, companyUsers)
	if err := p.insert("verifications", FileVerifications, verificationTable, verificationRows(ds.Verifications)); err != nil {
		return ds, err
	}

	// push records
	if err := ctx.Err(); err != nil {
		return ds, err
	}
	if len(students) == 0 {
		p.lgr.Warn().Msg("No students generated, push records will be empty")
	}
	ds.Pushes = GeneratePushes(p.src, g, pop.Suppliers(), students, pop.Departments, ds.Resources, p.now)
	if err := p.insert("push_records", FilePushRecords, pushTable, pushRows(ds.Pushes)); err != nil {
		return ds, err
	}

	return ds, nil
}

func (p *Pipeline) insert(stage, file string, t sqlscript.Table, rows [][]any) error {
	path := filepath.Join(p.cfg.Output.Dir, file)
	if err := sqlscript.WriteInsertFile(path, t, rows, p.cfg.Generator.BatchSize); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	stageLgr := logger.Stage(p.lgr, stage)
	stageLgr.Info().Int("rows", len(rows)).Str("file", path).Msg("Stage complete")
	return nil
}

func (p *Pipeline) statements(stage, file, title string, stmts []string) error {
	path := filepath.Join(p.cfg.Output.Dir, file)
	if err := sqlscript.WriteStatementsFile(path, title, stmts, p.cfg.Generator.BatchSize); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	stageLgr := logger.Stage(p.lgr, stage)
	stageLgr.Info().Int("rows", len(stmts)).Str("file", path).Msg("Stage complete")
	return nil
}
