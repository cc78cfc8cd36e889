// Package users provides the identity store: lookup and creation of user
// records keyed by their unique username. The rest of the application
// consumes it through the Store interface so the security logic can be
// exercised against an in-memory implementation in tests.
package users

import "time"

// User is a user row as stored in the database. The password hash is opaque
// to callers and is never serialized outward.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
