package constants

import (
	"database/sql/driver"
	"fmt"
)

// AdminRole mirrors the role column of council_admins
type AdminRole string

const (
	RoleAdmin     AdminRole = "admin"
	RoleSuperuser AdminRole = "superuser"
)

// Stringer – convenient for fmt / logs
func (r AdminRole) String() string { return string(r) }

// Valid reports whether r is one of the known roles.
func (r AdminRole) Valid() bool {
	return r == RoleAdmin || r == RoleSuperuser
}

/* ---------- DB adapters so gorm (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *AdminRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = AdminRole(v)
	case []byte:
		*r = AdminRole(v)
	default:
		return fmt.Errorf("AdminRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r AdminRole) Value() (driver.Value, error) { return string(r), nil }
