package user

// Role is the access level of a registered user. The values are the literal
// strings the usuarios table stores.
type Role string

const (
	RoleAdministrator Role = "Administrador"
	RoleEmployee      Role = "Empleado"
	RoleClient        Role = "Cliente"
	RoleUnknown       Role = ""
)

// ParseRole maps a stored or submitted role string to a Role, falling back
// to RoleUnknown for anything unrecognised.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdministrator, RoleEmployee, RoleClient:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// User represents a row of the usuarios table.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}
