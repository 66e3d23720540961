package auth

import "strings"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session es la identidad del caller para un request.
// Viaja explícita en el context; no hay estado global de sesión.
type Session struct {
	UserID   string
	Username string
	Role     string
}

func (s Session) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(s.Role), RoleAdmin)
}

func (s Session) IsZero() bool {
	return strings.TrimSpace(s.UserID) == "" && strings.TrimSpace(s.Role) == ""
}
