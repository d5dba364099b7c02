package models

import "time"

// Role defines the account role stored in "user".role
type Role string

const (
	RoleStudent    Role = "student"
	RoleDepartment Role = "department"
	RoleCompany    Role = "company"
)

// LocalZone is the fixed UTC+8 zone every generated timestamp is expressed in.
var LocalZone = time.FixedZone("UTC+8", 8*60*60)

// ActiveSentinel is the deleted_at value of an account that has not been soft deleted.
var ActiveSentinel = time.Date(9999, 12, 31, 23, 59, 59, 0, LocalZone)
