package auth

import (
	"github.com/you/blogsvc/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a bcrypt password service. A cost outside
// bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewPasswordService(cost int) *PasswordServiceImpl {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(secret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Compare implements domain.PasswordService
func (p *PasswordServiceImpl) Compare(candidate, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate))
	return err == nil
}

var _ domain.PasswordService = (*PasswordServiceImpl)(nil)
