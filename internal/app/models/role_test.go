package models

import "testing"

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleTeacher, RoleParent, RoleAdministrator} {
		if !r.Valid() {
			t.Errorf("Valid() = false for %q", r)
		}
	}
	for _, r := range []Role{"", "janitor", "Student", "STUDENT"} {
		if r.Valid() {
			t.Errorf("Valid() = true for %q", r)
		}
	}
}
