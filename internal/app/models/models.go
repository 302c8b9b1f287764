package models

// Role identifies a role record attached to a user. A user may hold several
// roles at once; each role carries its own attribute record.
type Role string

const (
	RoleStudent       Role = "student"
	RoleTeacher       Role = "teacher"
	RoleParent        Role = "parent"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether the role is one of the known role kinds.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdministrator:
		return true
	}
	return false
}

// Gender enumeration matching the gender_t database type
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// AccessLevel defines an administrator's access scope
type AccessLevel string

const (
	AccessLevelLogs AccessLevel = "logs"
	AccessLevelFull AccessLevel = "full"
)
