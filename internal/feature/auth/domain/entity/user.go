// Package entity defines the domain entities for the auth feature.
package entity

// Dashboard roles. There are exactly two fixed users, one per role,
// configured through environment variables.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User represents one of the dashboard's configured users.
type User struct {
	// Username is the login name, unique across the configured users.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored or configured.
	PasswordHash string

	// Role is RoleAdmin or RoleViewer.
	Role string
}
