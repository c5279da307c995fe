package domain

import (
	"errors"
	"time"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

var ErrEmailTaken = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrUserNotFound = errors.New("user not found")
var ErrTokenInvalid = errors.New("invalid or expired token")
var ErrValidation = errors.New("invalid input")

// User models a registered account. The password is only ever held as a
// bcrypt hash; the plaintext never reaches persistence.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
