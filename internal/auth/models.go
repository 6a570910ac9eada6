// Package auth issues and validates API credentials for the search API.
package auth

import "time"

// APIKey is a stored API credential. The secret is never persisted; only its
// bcrypt hash is.
type APIKey struct {
	ID         string
	Name       string
	SecretHash string
	Disabled   bool
	CreatedAt  time.Time
}
