// Package models defines the persisted server-side entities.
package models

import "time"

// User is an account in the user directory. Email is unique at the storage
// layer. PasswordHash is a bcrypt hash, never the plaintext password.
type User struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
}
