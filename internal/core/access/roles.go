// Package access defines the user roles and the role checks shared by guards.
package access

// User types. Each maps to one profile table.
const (
	Management        = "Management"
	Auditor           = "Auditor"
	AreaOwner         = "AreaOwner"
	ResponsiblePerson = "ResponsiblePerson"
)

// IsValidUserType reports whether s names a user type.
func IsValidUserType(s string) bool {
	switch s {
	case Management, Auditor, AreaOwner, ResponsiblePerson:
		return true
	}
	return false
}

// HasRole reports whether role is one of allowed.
func HasRole(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
