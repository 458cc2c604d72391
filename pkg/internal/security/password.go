package security

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way hash from the given plaintext.
// It is the only place a password gets hashed; callers must never store
// the plaintext anywhere else.
func HashPassword(raw string) (string, error) {
	data, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// VerifyPassword compares a plaintext against a stored hash via the
// library's constant-time compare.
func VerifyPassword(hashed, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}
