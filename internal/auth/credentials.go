package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the provided credentials are invalid.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials holds the single account accepted by the mock login. This is
// demo authentication only: there is no user database and no token.
type Credentials struct {
	username string
	hash     string
}

// NewCredentials hashes password and returns the account it describes.
func NewCredentials(username, password string) (*Credentials, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Credentials{username: username, hash: hash}, nil
}

// Check returns ErrInvalidCredentials unless username and password match.
func (c *Credentials) Check(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passOK := CheckPasswordHash(password, c.hash)
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword hashes a password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
