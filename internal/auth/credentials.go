package auth

import "golang.org/x/crypto/bcrypt"

// HashOperatorKey hashes a plaintext operator key for storage in config.
func HashOperatorKey(key string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyOperatorKey checks a presented key against the configured hash.
func VerifyOperatorKey(hashed, presented string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(presented))
}
