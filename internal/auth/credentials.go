// Package auth checks the admin login against configured credentials.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/5w1tchy/library-admin/internal/security/password"
)

var (
	ErrNotConfigured      = errors.New("admin credentials are not configured")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Credentials is the single admin account. PasswordHash, an argon2id PHC
// string, takes precedence over the plain Password.
type Credentials struct {
	Email        string
	Password     string
	PasswordHash string
}

func (c Credentials) Configured() bool {
	return strings.TrimSpace(c.Email) != "" && (c.Password != "" || c.PasswordHash != "")
}

type Checker struct {
	creds  Credentials
	hasher *password.Hasher
}

func NewChecker(c Credentials, h *password.Hasher) *Checker {
	return &Checker{creds: c, hasher: h}
}

// Check returns nil when email and pass match the admin account exactly.
// The email is compared as typed, with no case folding or trimming.
func (c *Checker) Check(email, pass string) error {
	if !c.creds.Configured() {
		return ErrNotConfigured
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(c.creds.Email)) == 1

	var passOK bool
	if c.creds.PasswordHash != "" {
		ok, _, err := c.hasher.Verify(pass, c.creds.PasswordHash)
		if err != nil {
			return err
		}
		passOK = ok
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(pass), []byte(c.creds.Password)) == 1
	}

	if !emailOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}
