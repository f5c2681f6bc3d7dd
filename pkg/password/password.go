// Package password wraps bcrypt hashing for account credentials.
package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used for new hashes.
const DefaultCost = 12

// Hash derives a bcrypt hash from a plaintext password.
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the plaintext matches the stored hash.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
