package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the authenticated identity as reported by the gateway on a
// successful login or registration. Password handling lives entirely on the
// gateway side; this layer never sees more than the fields below.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
