package password

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12

	// MinLength is the minimum accepted password length
	MinLength = 8
)

// ErrTooShort is returned by ValidatePassword for passwords below MinLength
var ErrTooShort = errors.New("password must be at least 8 characters")

// Hash derives a bcrypt hash of a password for storage
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether plain matches the stored bcrypt hash
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashToken returns the hex SHA-256 digest of a refresh token, the form
// persisted in the refresh_tokens table so raw tokens never touch the DB
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidatePassword checks a candidate password against the account policy
func ValidatePassword(plain string) error {
	if len(plain) < MinLength {
		return ErrTooShort
	}
	return nil
}
