package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/CamiloBytes/reportesvc/domain"
)

// PasswordService implements domain.PasswordService with bcrypt. The REST
// store was seeded with plaintext passwords before this service existed, so
// Verify falls back to a constant-time comparison for stored values that
// are not bcrypt hashes. New registrations always write hashes.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a new password service.
func NewPasswordService() domain.PasswordService {
	return &PasswordService{cost: bcrypt.DefaultCost}
}

// Hash implements domain.PasswordService.
func (p *PasswordService) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService.
func (p *PasswordService) Verify(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	// Legacy plaintext record.
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

var _ domain.PasswordService = (*PasswordService)(nil)
