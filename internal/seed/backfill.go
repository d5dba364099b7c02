package seed

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/group7/resmatch/internal/app/models"
	"github.com/group7/resmatch/internal/pkg/sqlscript"
)

// BackfillStatements links department and company contacts to their profiles.
// "user" is inserted before the profiles exist, so the foreign keys are set afterwards.
func BackfillStatements(users []models.User, departments []models.Department, companies []models.Company) []string {
	deptByContact := make(map[uuid.UUID]string, len(departments))
	for _, d := range departments {
		deptByContact[d.ContactUserID] = d.ID
	}
	companyByContact := make(map[uuid.UUID]uuid.UUID, len(companies))
	for _, c := range companies {
		companyByContact[c.ContactUserID] = c.ID
	}

	table := sqlscript.Ident("user")
	var stmts []string
	for _, u := range users {
		switch u.Role {
		case models.RoleDepartment:
			var id any
			if v, ok := deptByContact[u.ID]; ok {
				id = v
			}
			stmts = append(stmts, fmt.Sprintf("UPDATE %s SET department_id = %s WHERE user_id = %s",
				table, sqlscript.Literal(id), sqlscript.Literal(u.ID)))
		case models.RoleCompany:
			var id any
			if v, ok := companyByContact[u.ID]; ok {
				id = v
			}
			stmts = append(stmts, fmt.Sprintf("UPDATE %s SET company_id = %s WHERE user_id = %s",
				table, sqlscript.Literal(id), sqlscript.Literal(u.ID)))
		}
	}
	return stmts
}
