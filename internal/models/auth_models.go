package models

import "time"

// User represents a login credential in the system. Coaches (including admins)
// link to a user row; the row may exist before the link is established.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Principal is the request-scoped identity resolved once per request from the
// JWT claims. It is passed explicitly into services that apply role scoping.
type Principal struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	CoachID int64  `json:"coach_id"`
}

// IsAdmin reports whether the principal has full administrative visibility.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == CoachRoleAdmin
}
