// Package password wraps bcrypt hashing for admin credentials.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a salted, deliberately slow one-way hash of the plaintext.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare checks the plaintext against a stored digest in constant time.
// A malformed digest is a mismatch, never a panic.
func Compare(digest, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
}
