package model

import "time"

// User is an identity known to the store: either a credentialed account
// (admins, optional self-signup) or an anonymous buyer session created on
// first checkout. Email and PasswordHash are nil for anonymous users.
type User struct {
	ID           int64
	Email        *string
	PasswordHash *string
	Anonymous    bool
	CreatedAt    time.Time
}
