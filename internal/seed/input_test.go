package seed

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/group7/resmatch/internal/pkg/logger"
)

func TestParseDepartments_SplitPrograms(t *testing.T) {
	in := "\ufeffcode,name\n" +
		"7050,資訊管理學系\n" +
		"A120,藥學系\n" +
		"A120,藥學系\n" +
		"B040,物理 治療學系\n" +
		"B040,物理治療學系\n" +
		"7050,重複的學系\n" +
		"ab1,小寫代碼\n" +
		"9999, \n" +
		"short\n"

	depts, err := ParseDepartments(strings.NewReader(in), logger.Nop())
	if err != nil {
		t.Fatalf("ParseDepartments: %v", err)
	}

	want := []struct{ id, code, name string }{
		{"7050", "7050", "資訊管理學系"},
		{"A120", "A120", "藥學系(六年制)"},
		{"A120-4", "A120", "藥學系(四年制)"},
		{"B040", "B040", "物理治療學系(六年制)"},
		{"B040-4", "B040", "物理治療學系(四年制)"},
	}
	if len(depts) != len(want) {
		t.Fatalf("got %d departments, want %d: %+v", len(depts), len(want), depts)
	}
	for i, w := range want {
		d := depts[i]
		if d.ID != w.id || d.Code != w.code || d.Name != w.name {
			t.Errorf("department %d = %+v, want %+v", i, d, w)
		}
	}
	if depts[0].Abbr != "資訊管" {
		t.Errorf("Abbr = %q", depts[0].Abbr)
	}
}

func TestLoadDepartments_Missing(t *testing.T) {
	_, err := LoadDepartments(filepath.Join(t.TempDir(), "nope.csv"), logger.Nop())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestParseCourseNames(t *testing.T) {
	in := "a,b,c,d,微積分\n" +
		"a,b,c,d,普通物理\n" +
		"a,b,c,d,微積分\n" +
		"a,b,c\n" +
		"a,b,c,d,  \n"

	names, err := ParseCourseNames(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCourseNames: %v", err)
	}
	if len(names) != 2 || names[0] != "微積分" || names[1] != "普通物理" {
		t.Errorf("names = %v", names)
	}
}

func TestLoadCourseNames_Fallback(t *testing.T) {
	names, fallback, err := LoadCourseNames(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil {
		t.Fatalf("LoadCourseNames: %v", err)
	}
	if !fallback {
		t.Error("expected fallback for a missing file")
	}
	if len(names) != 1000 || names[0] != "Course_1" || names[999] != "Course_1000" {
		t.Errorf("unexpected placeholder names: %d entries, first %q", len(names), names[0])
	}
}
