package domain

import "time"

// User models a registered account. PasswordHash is a bcrypt hash and is never
// rendered to callers.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the mutable user fields. Nil fields are left untouched.
type UserPatch struct {
	Username *string
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil
}
