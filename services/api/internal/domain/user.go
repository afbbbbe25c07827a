package domain

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleClient   Role = "CLIENT"
	RoleSupplier Role = "SUPPLIER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleSupplier:
		return true
	}
	return false
}

// User is an account on the quotation backend.
type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// Session identifies the caller of a backend request. It is passed explicitly
// to every backend call instead of being held globally.
type Session struct {
	Token  string
	UserID int64
	Role   Role
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// HasRole reports whether the session carries one of the given roles.
func (s Session) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
