package authorization

type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleAdmin     UserRole = "admin"
	RoleDeveloper UserRole = "developer"
	RoleSystem    UserRole = "system"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// IsProtected reports whether accounts with this role are exempt from
// automatic cleanup.
func (r UserRole) IsProtected() bool {
	return r == RoleDeveloper
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleDeveloper:
		return true
	}
	return false
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCustomer
}

// Actor identifies who triggered an operation. A nil UserID means the
// system itself (scheduler or CLI).
type Actor struct {
	UserID    *uint
	Username  string
	Role      UserRole
	IPAddress string
	UserAgent string
}

// SystemActor is the actor used by scheduled and command-line runs.
func SystemActor() Actor {
	return Actor{Username: "system", Role: RoleSystem}
}

func NewUserActor(userID uint, username string, role UserRole) Actor {
	return Actor{UserID: &userID, Username: username, Role: role}
}

func (a Actor) IsSystem() bool {
	return a.UserID == nil
}

// Label renders the actor for audit descriptions.
func (a Actor) Label() string {
	if a.IsSystem() {
		return "system"
	}
	if a.Username != "" {
		return a.Username
	}
	return string(a.Role)
}
