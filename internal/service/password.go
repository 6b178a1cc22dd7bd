package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the legacy system used for its stored hashes.
const bcryptCost = 12

// HashPassword produces a self-contained bcrypt hash string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. It returns
// false for any mismatch or malformed hash and never fails otherwise.
func CheckPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
