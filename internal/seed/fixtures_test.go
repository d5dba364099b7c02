package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/config"
)

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, models.LocalZone)

func testDepartments(n int) []models.Department {
	depts := make([]models.Department, 0, n)
	for i := 0; i < n; i++ {
		code := fmt.Sprintf("D%03d", i)
		if i == 0 {
			code = "7050"
		}
		name := fmt.Sprintf("測試學系%d", i)
		depts = append(depts, models.Department{ID: code, Code: code, Name: name, Abbr: firstRunes(name, 3)})
	}
	return depts
}

func testGenerator(students, companies int) config.GeneratorConfig {
	g := config.Default().Generator
	g.NumStudents = students
	g.NumCompanies = companies
	g.NumSoftDeletedStudents = min(g.NumSoftDeletedStudents, students)
	g.NumSoftDeletedCompanies = min(g.NumSoftDeletedCompanies, companies)
	return g
}

// world is the state of a run after the user and profile stages.
type world struct {
	src       *Source
	cfg       config.GeneratorConfig
	pop       Population
	companies []models.Company
	profiles  []models.StudentProfile
}

func newWorld(t *testing.T, seed int64, depts, students, companies int) world {
	t.Helper()
	src := NewSource(seed)
	cfg := testGenerator(students, companies)

	pop, err := GenerateUsers(src, cfg, testDepartments(depts), testNow)
	if err != nil {
		t.Fatalf("GenerateUsers: %v", err)
	}
	comps, err := BuildCompanies(src, pop.Users)
	if err != nil {
		t.Fatalf("BuildCompanies: %v", err)
	}
	profiles := BuildStudentProfiles(src, pop.Users, CurrentAcademicYear(testNow, 0))
	return world{src: src, cfg: cfg, pop: pop, companies: comps, profiles: profiles}
}

func (w world) resources(t *testing.T) []models.Resource {
	t.Helper()
	index := NewSupplierIndex(w.pop.Departments, w.companies)
	resources, err := GenerateResources(w.src, w.cfg, w.pop.Suppliers(), index, testNow)
	if err != nil {
		t.Fatalf("GenerateResources: %v", err)
	}
	return resources
}
