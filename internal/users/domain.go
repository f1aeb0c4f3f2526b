package users

import "time"

// User is a principal: a credentialed account holding a set of role
// references. Username and email are each globally unique.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
