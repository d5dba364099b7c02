package seed

import (
	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/sqlscript"
)

// Output files, one per table plus the foreign key backfill.
const (
	FileUsers              = "insert_user_data.sql"
	FileDepartmentProfiles = "insert_department_profile.sql"
	FileCompanyProfiles    = "insert_company_profile.sql"
	FileStudentProfiles    = "insert_student_profile.sql"
	FileRegistrations      = "user_application.sql"
	FileUserFKUpdate       = "user_fk_update.sql"
	FileCourseRecords      = "insert_student_course_record.sql"
	FileGPAs               = "insert_student_gpa.sql"
	FileAffiliations       = "insert_student_department.sql"
	FileResources          = "insert_resource.sql"
	FileConditions         = "insert_resource_condition.sql"
	FileApplications       = "insert_application.sql"
	FileAchievements       = "insert_achievement.sql"
	FileVerifications      = "insert_achievement_verification.sql"
	FilePushRecords        = "insert_push_record.sql"
)

// MergeOrder lists the files in foreign key creation order.
var MergeOrder = []string{
	FileUsers,
	FileDepartmentProfiles,
	FileCompanyProfiles,
	FileStudentProfiles,
	FileRegistrations,
	FileUserFKUpdate,
	FileCourseRecords,
	FileGPAs,
	FileAffiliations,
	FileResources,
	FileConditions,
	FileApplications,
	FileAchievements,
	FileVerifications,
	FilePushRecords,
}

const userFKTitle = "'user' table FKs"

var (
	userTable = sqlscript.Table{Name: "user", Columns: []string{
		"user_id", "real_name", "email", "username", "password", "nickname", "role", "is_admin",
		"registered_at", "deleted_at", "company_id", "department_id",
	}}
	departmentTable = sqlscript.Table{Name: "department_profile", Columns: []string{
		"department_id", "department_name", "contact_person",
	}}
	companyTable = sqlscript.Table{Name: "company_profile", Columns: []string{
		"company_id", "company_name", "contact_person", "industry",
	}}
	studentTable = sqlscript.Table{Name: "student_profile", Columns: []string{
		"user_id", "student_id", "department_id", "entry_year", "grade",
	}}
	registrationTable = sqlscript.Table{Name: "user_application", Columns: []string{
		"application_id", "real_name", "email", "username", "password", "nickname", "role",
		"registered_at", "status", "submit_time", "review_time", "reviewed_by", "review_comment",
	}}
	courseRecordTable = sqlscript.Table{Name: "student_course_record", Columns: []string{
		"user_id", "semester", "course_id", "course_name", "credit", "score",
	}}
	gpaTable = sqlscript.Table{Name: "student_gpa", Columns: []string{
		"user_id", "semester", "gpa",
	}}
	affiliationTable = sqlscript.Table{Name: "student_department", Columns: []string{
		"user_id", "department_id", "role", "start_semester", "end_semester",
	}}
	resourceTable = sqlscript.Table{Name: "resource", Columns: []string{
		"resource_id", "resource_type", "quota", "department_supplier_id", "company_supplier_id",
		"title", "deadline", "description", "status", "is_deleted",
	}}
	conditionTable = sqlscript.Table{Name: "resource_condition", Columns: []string{
		"resource_id", "department_id", "avg_gpa", "current_gpa", "is_poor",
	}}
	applicationTable = sqlscript.Table{Name: "application", Columns: []string{
		"user_id", "resource_id", "apply_date", "review_status",
	}}
	achievementTable = sqlscript.Table{Name: "achievement", Columns: []string{
		"achievement_id", "user_id", "category", "title", "description", "start_date", "end_date",
		"creation_date", "status",
	}}
	verificationTable = sqlscript.Table{Name: "achievement_verification", Columns: []string{
		"achievement_id", "verifier_type", "verifier_email", "verification_status", "created_at", "decided_at",
	}}
	pushTable = sqlscript.Table{Name: "push_record", Columns: []string{
		"push_id", "pusher_id", "receiver_id", "resource_id", "push_datetime",
	}}
)

// Tables returns every generated table name in merge order, excluding the backfill.
func Tables() []string {
	return []string{
		userTable.Name, departmentTable.Name, companyTable.Name, studentTable.Name, registrationTable.Name,
		courseRecordTable.Name, gpaTable.Name, affiliationTable.Name, resourceTable.Name, conditionTable.Name,
		applicationTable.Name, achievementTable.Name, verificationTable.Name, pushTable.Name,
	}
}

func userRows(users []models.User) [][]any {
	rows := make([][]any, len(users))
	for i, u := range users {
		// company_id and department_id are set by the backfill once the profiles exist
		rows[i] = []any{u.ID, u.RealName, u.Email, u.Username, u.PasswordHash, u.Nickname, u.Role, u.IsAdmin,
			u.RegisteredAt, u.DeletedAt, nil, nil}
	}
	return rows
}

func departmentRows(departments []models.Department) [][]any {
	rows := make([][]any, len(departments))
	for i, d := range departments {
		rows[i] = []any{d.ID, d.Name, d.ContactUserID}
	}
	return rows
}

func companyRows(companies []models.Company) [][]any {
	rows := make([][]any, len(companies))
	for i, c := range companies {
		rows[i] = []any{c.ID, c.Name, c.ContactUserID, c.Industry}
	}
	return rows
}

func studentRows(profiles []models.StudentProfile) [][]any {
	rows := make([][]any, len(profiles))
	for i, p := range profiles {
		rows[i] = []any{p.UserID, p.StudentID, p.DepartmentID, p.EntryYear, p.Grade}
	}
	return rows
}

func registrationRows(apps []models.RegistrationApplication) [][]any {
	rows := make([][]any, len(apps))
	for i, a := range apps {
		u := a.User
		rows[i] = []any{a.ID, u.RealName, u.Email, u.Username, u.PasswordHash, u.Nickname, u.Role,
			u.RegisteredAt, a.Status, a.SubmitTime, a.ReviewTime, a.ReviewedBy, a.ReviewComment}
	}
	return rows
}

func courseRecordRows(records []models.CourseRecord) [][]any {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.UserID, r.Semester, r.CourseID, r.CourseName, r.Credit, r.Score}
	}
	return rows
}

func gpaRows(gpas []models.SemesterGPA) [][]any {
	rows := make([][]any, len(gpas))
	for i, g := range gpas {
		rows[i] = []any{g.UserID, g.Semester, g.GPA}
	}
	return rows
}

func affiliationRows(affiliations []models.Affiliation) [][]any {
	rows := make([][]any, len(affiliations))
	for i, a := range affiliations {
		rows[i] = []any{a.UserID, a.DepartmentID, a.Role, a.StartSemester, a.EndSemester}
	}
	return rows
}

func resourceRows(resources []models.Resource) [][]any {
	rows := make([][]any, len(resources))
	for i, r := range resources {
		deptID, companyID := r.SupplierColumns()
		rows[i] = []any{r.ID, r.Type, r.Quota, deptID, companyID, r.Title, sqlscript.DateOf(r.Deadline),
			r.Description, r.Status, r.IsDeleted}
	}
	return rows
}

func conditionRows(conditions []models.ResourceCondition) [][]any {
	rows := make([][]any, len(conditions))
	for i, c := range conditions {
		rows[i] = []any{c.ResourceID, c.DepartmentID, c.AvgGPA, c.CurrentGPA, c.IsPoor}
	}
	return rows
}

func applicationRows(apps []models.Application) [][]any {
	rows := make([][]any, len(apps))
	for i, a := range apps {
		rows[i] = []any{a.UserID, a.ResourceID, sqlscript.DateOf(a.ApplyDate), a.ReviewStatus}
	}
	return rows
}

func achievementRows(achievements []models.Achievement) [][]any {
	rows := make([][]any, len(achievements))
	for i, a := range achievements {
		rows[i] = []any{a.ID, a.UserID, a.Category, a.Title, a.Description, sqlscript.DateOf(a.StartDate),
			sqlscript.DateOf(a.EndDate), a.CreationDate, a.Status}
	}
	return rows
}

func verificationRows(verifications []models.AchievementVerification) [][]any {
	rows := make([][]any, len(verifications))
	for i, v := range verifications {
		rows[i] = []any{v.AchievementID, v.VerifierType, v.VerifierEmail, v.Status, v.CreatedAt, v.DecidedAt}
	}
	return rows
}

func pushRows(records []models.PushRecord) [][]any {
	rows := make([][]any, len(records))
	for i, p := range records {
		rows[i] = []any{p.ID, p.PusherID, p.ReceiverID, p.ResourceID, p.PushedAt}
	}
	return rows
}
