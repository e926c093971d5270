package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptPrefixes are the modular crypt prefixes produced by bcrypt
// implementations, including bcryptjs ($2a$) and PHP ($2y$).
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// ErrPasswordTooLong is returned when a password exceeds the 72 byte bcrypt input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashBcrypt generates a bcrypt hash using the default cost. Passwords longer
// than 72 bytes fail with ErrPasswordTooLong.
func HashBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// VerifyBcrypt checks a password against a bcrypt hash. A mismatch is not an error.
func VerifyBcrypt(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidHash
	}
}

func isBcryptHash(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
