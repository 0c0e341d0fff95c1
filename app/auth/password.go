package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"yatube/app/apperrors"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", apperrors.NewFieldError("password", "must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plain-text password.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return err
}
