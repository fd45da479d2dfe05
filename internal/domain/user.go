package domain

import "time"

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account that can authenticate and borrow books.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID int64
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessUser reports whether p may act on the account with the given id.
func (p Principal) CanAccessUser(userID int64) bool {
	return p.IsAdmin() || p.UserID == userID
}
