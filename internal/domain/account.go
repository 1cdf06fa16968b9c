package domain

// Role represents an operator account's permission level.
type Role string

const (
	// RoleAdmin grants full access to the management terminal.
	RoleAdmin Role = "admin"
	// RoleUser is reserved for non-administrative operators.
	RoleUser Role = "user"
)

// Account is a privileged operator able to manage the catalog and other
// accounts. Credentials are stored and compared as plain text; this is a
// deliberate simplification for a non-adversarial local-first tool.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// IsAdmin returns true if the account has administrative privileges.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
