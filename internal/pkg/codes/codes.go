// Package codes generates the short referral identities handed out to
// affiliate accounts. Codes are drawn from a lowercase alphanumeric
// alphabet using crypto/rand so they are unguessable, and uniqueness is
// enforced against the caller's store through a collision callback.
package codes

import (
	"crypto/rand"
	"math/big"

	"github.com/Manaregr8/affiliate-platform/internal/core/domain"
)

const (
	// charset is the alphabet codes are drawn from. Lowercase only;
	// coupon codes are derived by uppercasing the referral code.
	charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	// AffiliateCodeLength is the length of affiliator referral codes.
	AffiliateCodeLength = 10

	// SuperCodeLength is the length of super-affiliator referral codes.
	SuperCodeLength = 8

	// maxAttempts bounds collision retries before giving up.
	maxAttempts = 5
)

// ExistsFunc reports whether a candidate code is already taken.
type ExistsFunc func(code string) (bool, error)

// random returns a random lowercase alphanumeric string of length n.
func random(n int) (string, error) {
	max := big.NewInt(int64(len(charset)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = charset[idx.Int64()]
	}
	return string(b), nil
}

// Generate produces a unique code of length n, consulting exists to
// detect collisions. It returns domain.ErrExhaustedRetries after five
// collisions in a row.
func Generate(n int, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := random(n)
		if err != nil {
			return "", err
		}
		taken, err := exists(code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", domain.ErrExhaustedRetries
}
