package domain

import (
	"strings"
	"time"
)

// JoinedAtLayout is the locale date format used for Member.JoinedAt
// (dd/mm/yyyy, Brazilian convention). Set once at creation, never mutated.
const JoinedAtLayout = "02/01/2006"

// Member is a self-registered end user with read-only catalog access.
// Members created through the social-login path have no username or password.
type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	JoinedAt string `json:"joinedAt"`
}

// FirstName returns the member's first given name, used for greetings.
func (m *Member) FirstName() string {
	name := strings.TrimSpace(m.Name)
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

// FormatJoinedAt renders a join timestamp in the persisted date format.
func FormatJoinedAt(t time.Time) string {
	return t.Format(JoinedAtLayout)
}
