package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/apperrors"
)

type fakeUsers struct {
	byID      map[uuid.UUID]*models.User
	profiles  map[uuid.UUID]bool
	suppliers map[uuid.UUID]models.Supplier
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:      map[uuid.UUID]*models.User{},
		profiles:  map[uuid.UUID]bool{},
		suppliers: map[uuid.UUID]models.Supplier{},
	}
}

func (f *fakeUsers) add(u *models.User) *models.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.DeletedAt.IsZero() {
		u.DeletedAt = models.ActiveSentinel
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) FindByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	for _, u := range f.byID {
		if !u.IsDeleted() && (u.Username == identifier || u.Email == identifier) {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.byID[id]; ok && !u.IsDeleted() {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	for _, u := range f.byID {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) HasProfile(_ context.Context, id uuid.UUID, _ models.Role) (bool, error) {
	return f.profiles[id], nil
}

func (f *fakeUsers) SupplierOf(_ context.Context, id uuid.UUID) (models.Supplier, error) {
	if _, ok := f.byID[id]; !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if s, ok := f.suppliers[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

type failureWindow struct {
	count int
	start time.Time
}

type fakeSessions struct {
	sessions map[string]models.Session
	failures map[string]*failureWindow
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions: map[string]models.Session{},
		failures: map[string]*failureWindow{},
	}
}

func (f *fakeSessions) Create(_ context.Context, s models.Session) error {
	if _, ok := f.sessions[s.TokenHash]; ok {
		return apperrors.ErrTokenInvalid
	}
	f.sessions[s.TokenHash] = s
	return nil
}

func (f *fakeSessions) UserOf(_ context.Context, hash string, now time.Time) (uuid.UUID, error) {
	s, ok := f.sessions[hash]
	if !ok || !s.ExpiresAt.After(now) {
		return uuid.Nil, apperrors.ErrTokenNotFound
	}
	return s.UserID, nil
}

func (f *fakeSessions) Delete(_ context.Context, hash string) error {
	delete(f.sessions, hash)
	return nil
}

func (f *fakeSessions) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for h, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, h)
		}
	}
	return nil
}

func (f *fakeSessions) Failures(_ context.Context, id string, now time.Time, window time.Duration) (int, time.Time, error) {
	w, ok := f.failures[id]
	if !ok || !w.start.After(now.Add(-window)) {
		return 0, time.Time{}, nil
	}
	return w.count, w.start, nil
}

func (f *fakeSessions) RecordFailure(_ context.Context, id string, now time.Time, window time.Duration) (int, error) {
	w, ok := f.failures[id]
	if !ok || !w.start.After(now.Add(-window)) {
		w = &failureWindow{start: now}
		f.failures[id] = w
	}
	w.count++
	return w.count, nil
}

func (f *fakeSessions) ClearFailures(_ context.Context, id string) error {
	delete(f.failures, id)
	return nil
}

type fakeResources struct {
	byID       map[uuid.UUID]*models.ResourceListing
	conditions map[uuid.UUID]map[string]models.ResourceCondition
	// eligible is what UpsertCondition reports; zero rejects the change
	eligible int64
}

func newFakeResources() *fakeResources {
	return &fakeResources{
		byID:       map[uuid.UUID]*models.ResourceListing{},
		conditions: map[uuid.UUID]map[string]models.ResourceCondition{},
		eligible:   1,
	}
}

func (f *fakeResources) add(r models.Resource, supplierName string) *models.ResourceListing {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	l := &models.ResourceListing{Resource: r, SupplierName: supplierName}
	f.byID[r.ID] = l
	return l
}

func (f *fakeResources) Create(_ context.Context, r *models.Resource) error {
	f.byID[r.ID] = &models.ResourceListing{Resource: *r, SupplierName: r.Supplier.DisplayName()}
	return nil
}

func (f *fakeResources) FindByID(_ context.Context, id uuid.UUID) (*models.ResourceListing, error) {
	l, ok := f.byID[id]
	if !ok || l.IsDeleted {
		return nil, apperrors.ErrResourceNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeResources) ListAvailable(ctx context.Context) ([]models.ResourceListing, error) {
	var out []models.ResourceListing
	for id, l := range f.byID {
		if l.Status == models.StatusAvailable && !l.IsDeleted {
			cp := *l
			cp.Conditions, _ = f.ListConditions(ctx, id)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeResources) ListBySupplier(_ context.Context, s models.Supplier) ([]models.ResourceListing, error) {
	var out []models.ResourceListing
	for _, l := range f.byID {
		if l.SuppliedBy(s) && !l.IsDeleted {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeResources) SetStatus(_ context.Context, id uuid.UUID, status models.ResourceStatus) error {
	l, ok := f.byID[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	l.Status = status
	return nil
}

func (f *fakeResources) ListConditions(_ context.Context, id uuid.UUID) ([]models.ResourceCondition, error) {
	var out []models.ResourceCondition
	for _, c := range f.conditions[id] {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeResources) UpsertCondition(_ context.Context, c models.ResourceCondition) (int64, error) {
	if f.eligible == 0 {
		return 0, apperrors.ErrNoEligibleStudents
	}
	if f.conditions[c.ResourceID] == nil {
		f.conditions[c.ResourceID] = map[string]models.ResourceCondition{}
	}
	f.conditions[c.ResourceID][c.DepartmentID] = c
	return f.eligible, nil
}

func (f *fakeResources) DeleteCondition(_ context.Context, id uuid.UUID, departmentID string) error {
	if _, ok := f.conditions[id][departmentID]; !ok {
		return apperrors.ErrConditionNotFound
	}
	delete(f.conditions[id], departmentID)
	return nil
}

func (f *fakeResources) DeleteConditions(_ context.Context, id uuid.UUID) (int64, error) {
	n := int64(len(f.conditions[id]))
	delete(f.conditions, id)
	return n, nil
}

type fakeStudents struct {
	profiles map[uuid.UUID]*models.StudentProfile
	gpa      map[uuid.UUID]models.GPASummary
	semester map[uuid.UUID][]models.SemesterGPA
	achieved map[uuid.UUID][]models.Achievement
	// upsertErr is returned by UpsertProfile when set
	upsertErr error
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{
		profiles: map[uuid.UUID]*models.StudentProfile{},
		gpa:      map[uuid.UUID]models.GPASummary{},
		semester: map[uuid.UUID][]models.SemesterGPA{},
		achieved: map[uuid.UUID][]models.Achievement{},
	}
}

func (f *fakeStudents) Profile(_ context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeStudents) UpsertProfile(_ context.Context, p *models.StudentProfile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeStudents) GPASummary(_ context.Context, id uuid.UUID) (models.GPASummary, error) {
	return f.gpa[id], nil
}

func (f *fakeStudents) ListGPA(_ context.Context, id uuid.UUID) ([]models.SemesterGPA, error) {
	return f.semester[id], nil
}

func (f *fakeStudents) ListAchievements(_ context.Context, id uuid.UUID) ([]models.Achievement, error) {
	return f.achieved[id], nil
}

type appKey struct{ user, resource uuid.UUID }

type fakeApplications struct {
	rows map[appKey]*models.Application
}

func newFakeApplications() *fakeApplications {
	return &fakeApplications{rows: map[appKey]*models.Application{}}
}

func (f *fakeApplications) ListByUser(_ context.Context, id uuid.UUID) ([]models.ApplicationListing, error) {
	var out []models.ApplicationListing
	for k, a := range f.rows {
		if k.user == id {
			out = append(out, models.ApplicationListing{ResourceID: a.ResourceID, ApplyDate: a.ApplyDate, Status: a.ReviewStatus})
		}
	}
	return out, nil
}

func (f *fakeApplications) Exists(_ context.Context, user, resource uuid.UUID) (bool, error) {
	_, ok := f.rows[appKey{user, resource}]
	return ok, nil
}

func (f *fakeApplications) Create(_ context.Context, a *models.Application) error {
	f.rows[appKey{a.UserID, a.ResourceID}] = a
	return nil
}

func (f *fakeApplications) Delete(_ context.Context, user, resource uuid.UUID) error {
	k := appKey{user, resource}
	if _, ok := f.rows[k]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	delete(f.rows, k)
	return nil
}
