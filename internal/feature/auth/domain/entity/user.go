// Package entity defines the domain entities for the auth feature.
package entity

// User is a demo account allowed to sign in.
// Only the bcrypt hash of the password is kept in memory.
type User struct {
	// Username is the login name. It is unique within the demo user set.
	Username string

	// PasswordHash is the bcrypt hash computed at startup.
	PasswordHash []byte
}
