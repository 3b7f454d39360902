package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the user records were hashed with at
// registration. Changing it only affects new hashes.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash re-derives the hash and compares; it never reverses.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
